// Command randgen writes or verifies deterministic random fixture files.
//
//	$ randgen -algo seiran128 -seed 401 -kind blob -n 4096 -dir fixtures
//	$ randgen -verify -dir fixtures -name seiran128-401-blob
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/moontrade/rand"
	"github.com/moontrade/rand/fixture"
	"github.com/moontrade/rand/logger"
)

var (
	name    = "randgen"
	version = "0.1.0"
	gitSHA  = ""
)

const usage = `{{NAME}} version: {{VERSION}} ({{GITSHA}})

Usage: {{NAME}} [options]

Generate options:
  -algo name       : generator algorithm  (default: seiran128)
                     [seiran128,sfc64,sfc32]
  -seed seed       : generator seed, decimal or 0x-hex  (default: 1)
  -kind kind       : payload kind  (default: blob) [blob,text,u64]
  -n count         : payload length; bytes for blob/text, words for u64
                     (default: 1024)
  -codec codec     : payload compression  (default: none)
                     [none,snappy,lz4,zstd]
  -level level     : zstd compression level  (default: 0, library default)

Output options:
  -dir path        : fixture directory  (default: fixtures)
  -name name       : fixture base name  (default: <algo>-<seed>-<kind>)
  -stdout          : write the raw payload to stdout, no fixture files

Other options:
  -verify          : verify an existing fixture instead of writing one
  -l level         : log level  (default: info) [debug,verb,info,warn,silent]
  -v               : display version
  -h               : display help, this screen
`

func main() {
	var (
		algo    string
		seedArg string
		kind    string
		n       int
		codec   string
		level   int
		dir     string
		fname   string
		stdout  bool
		verify  bool
		logLvl  string
		vers    bool
	)
	flag.Usage = func() {
		w := strings.NewReplacer(
			"{{NAME}}", name, "{{VERSION}}", version, "{{GITSHA}}", gitSHA,
		)
		fmt.Fprint(os.Stderr, w.Replace(usage))
	}
	flag.StringVar(&algo, "algo", rand.Seiran128Name, "")
	flag.StringVar(&seedArg, "seed", "1", "")
	flag.StringVar(&kind, "kind", fixture.KindBlob, "")
	flag.IntVar(&n, "n", 1024, "")
	flag.StringVar(&codec, "codec", fixture.CodecNone, "")
	flag.IntVar(&level, "level", 0, "")
	flag.StringVar(&dir, "dir", "fixtures", "")
	flag.StringVar(&fname, "name", "", "")
	flag.BoolVar(&stdout, "stdout", false, "")
	flag.BoolVar(&verify, "verify", false, "")
	flag.StringVar(&logLvl, "l", "info", "")
	flag.BoolVar(&vers, "v", false, "")
	flag.Parse()
	if vers {
		sha := ""
		if gitSHA != "" {
			sha = " (" + gitSHA + ")"
		}
		fmt.Printf("%s version %s%s\n", name, version, sha)
		return
	}
	if !logger.SetLevel(logLvl) {
		fmt.Fprintf(os.Stderr, "invalid -l: %s\n", logLvl)
		os.Exit(1)
	}

	seed, err := strconv.ParseUint(seedArg, 0, 64)
	if err != nil {
		logger.Fatal(fmt.Errorf("invalid -seed '%s'", seedArg))
	}
	if fname == "" {
		fname = fmt.Sprintf("%s-%d-%s", strings.ToLower(algo), seed, kind)
	}

	if verify {
		if err := fixture.Verify(dir, fname); err != nil {
			logger.Fatal(err, "name", fname)
		}
		logger.Info("name", fname, "fixture ok")
		return
	}

	if stdout {
		g, err := rand.New(algo, seed)
		if err != nil {
			logger.Fatal(err)
		}
		if err := streamPayload(os.Stdout, g, kind, n); err != nil {
			logger.Fatal(err)
		}
		return
	}

	m, err := fixture.Write(dir, fixture.Spec{
		Name: fname, Algo: algo, Seed: seed, Kind: kind,
		Length: n, Codec: codec, Level: level,
	})
	if err != nil {
		logger.Fatal(err)
	}
	logger.Info("name", m.Name, "algo", m.Algo, "seed", m.Seed,
		"kind", m.Kind, "codec", m.Codec, "raw", m.RawSize,
		"stored", m.StoredSize, "fixture written")
}
