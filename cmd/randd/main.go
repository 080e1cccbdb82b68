// Command randd serves named deterministic generator sessions over the
// Redis protocol, so test harnesses in any language can draw reproducible
// values from one place with an off-the-shelf client.
//
//	$ randd -a 127.0.0.1:11211
//	$ redis-cli -p 11211 gen.open sim seiran128 401
//	$ redis-cli -p 11211 gen.next sim
package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/rtime"

	"github.com/moontrade/rand/logger"
)

var (
	name    = "randd"
	version = "0.1.0"
	gitSHA  = ""
)

const usage = `{{NAME}} version: {{VERSION}} ({{GITSHA}})

Usage: {{NAME}} [-a addr] [options]

Basic options:
  -v               : display version
  -h               : display help, this screen
  -a addr          : bind to address  (default: 127.0.0.1:11211)
  -c path          : JSON config file; flags win over file values
  -l level         : log level  (default: info) [debug,verb,info,warn,silent]

Security options:
  --auth auth      : require clients to authenticate

Advanced options:
  --json-log       : emit JSON log lines instead of console output
  --localtime      : skip the internet clock check at startup
`

type config struct {
	addr      string
	conf      string
	logLevel  string
	auth      string
	jsonLog   bool
	localTime bool
	gens      []genEntry
}

type genEntry struct {
	name string
	algo string
	seed uint64
}

func versline() string {
	sha := ""
	if gitSHA != "" {
		sha = " (" + gitSHA + ")"
	}
	return fmt.Sprintf("%s version %s%s", name, version, sha)
}

func parseFlags() config {
	var conf config
	var vers bool
	flag.Usage = func() {
		w := strings.NewReplacer(
			"{{NAME}}", name, "{{VERSION}}", version, "{{GITSHA}}", gitSHA,
		)
		fmt.Fprint(os.Stderr, w.Replace(usage))
	}
	flag.BoolVar(&vers, "v", false, "")
	flag.StringVar(&conf.addr, "a", "127.0.0.1:11211", "")
	flag.StringVar(&conf.conf, "c", "", "")
	flag.StringVar(&conf.logLevel, "l", "info", "")
	flag.StringVar(&conf.auth, "auth", "", "")
	flag.BoolVar(&conf.jsonLog, "json-log", false, "")
	flag.BoolVar(&conf.localTime, "localtime", false, "")
	flag.Parse()
	if vers {
		fmt.Println(versline())
		os.Exit(0)
	}
	if conf.conf != "" {
		if err := loadConfigFile(&conf); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			os.Exit(1)
		}
	}
	return conf
}

// loadConfigFile fills unset fields from a JSON file. Flags explicitly
// passed on the command line keep their values.
func loadConfigFile(conf *config) error {
	data, err := os.ReadFile(conf.conf)
	if err != nil {
		return err
	}
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid config file: %s", conf.conf)
	}
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if v := gjson.GetBytes(data, "addr"); v.Exists() && !set["a"] {
		conf.addr = v.String()
	}
	if v := gjson.GetBytes(data, "loglevel"); v.Exists() && !set["l"] {
		conf.logLevel = v.String()
	}
	if v := gjson.GetBytes(data, "auth"); v.Exists() && !set["auth"] {
		conf.auth = v.String()
	}
	for _, e := range gjson.GetBytes(data, "gens").Array() {
		conf.gens = append(conf.gens, genEntry{
			name: e.Get("name").String(),
			algo: e.Get("algo").String(),
			seed: e.Get("seed").Uint(),
		})
	}
	return nil
}

// clockCheck reports how far the local clock drifts from internet time.
// Generator output never depends on the clock, but ULID timestamps do,
// so a badly skewed host is worth a warning.
func clockCheck() {
	t := rtime.Now()
	if t.IsZero() {
		logger.Warn("internet clock unavailable")
		return
	}
	offset := time.Since(t)
	if offset < 0 {
		offset = -offset
	}
	if offset > 500*time.Millisecond {
		logger.Warn("offset", offset, "local clock is skewed")
	} else {
		logger.Debug("offset", offset, "clock ok")
	}
}

func main() {
	conf := parseFlags()
	if conf.jsonLog {
		logger.SetJSONWriter()
	}
	if !logger.SetLevel(conf.logLevel) {
		fmt.Fprintf(os.Stderr, "invalid -l: %s\n", conf.logLevel)
		os.Exit(1)
	}
	logger.Info(versline())

	srv := newServer(conf.auth)
	srv.shutdown = func() { os.Exit(0) }
	for _, e := range conf.gens {
		sess, err := openSession(e.name, e.algo, e.seed)
		if err != nil {
			logger.Fatal(err, "name", e.name)
		}
		srv.sessions.Set(sess.name, sess)
		logger.Info("name", sess.name, "algo", sess.algo, "seed", sess.seed,
			"session opened")
	}

	if !conf.localTime {
		go clockCheck()
	}

	ln, err := net.Listen("tcp", conf.addr)
	if err != nil {
		logger.Fatal(err)
	}
	logger.Info("addr", ln.Addr().String(), "serving")
	if err := srv.serve(ln); err != nil {
		logger.Fatal(err)
	}
}
