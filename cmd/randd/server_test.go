package main

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gomodule/redigo/redis"
	"github.com/stretchr/testify/require"

	"github.com/moontrade/rand"
)

func startServer(t *testing.T, auth string) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := newServer(auth)
	go srv.serve(ln)
	t.Cleanup(func() { ln.Close() })
	return ln.Addr().String()
}

func dial(t *testing.T, addr string) redis.Conn {
	t.Helper()
	c, err := redis.Dial("tcp", addr)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestPingEcho(t *testing.T) {
	c := dial(t, startServer(t, ""))

	pong, err := redis.String(c.Do("PING"))
	require.NoError(t, err)
	require.Equal(t, "PONG", pong)

	msg, err := redis.String(c.Do("ECHO", "hello"))
	require.NoError(t, err)
	require.Equal(t, "hello", msg)

	_, err = c.Do("NOPE")
	require.ErrorContains(t, err, "unknown command")
}

func TestSessionLifecycle(t *testing.T) {
	c := dial(t, startServer(t, ""))

	ok, err := redis.String(c.Do("GEN.OPEN", "sim", "seiran128", 401))
	require.NoError(t, err)
	require.Equal(t, "OK", ok)

	_, err = c.Do("GEN.OPEN", "sim", "sfc64")
	require.ErrorContains(t, err, "already open")

	n, err := redis.Int(c.Do("GEN.CLOSE", "sim"))
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = redis.Int(c.Do("GEN.CLOSE", "sim"))
	require.NoError(t, err)
	require.Equal(t, 0, n)

	_, err = c.Do("GEN.NEXT", "sim")
	require.ErrorContains(t, err, "no such session")

	_, err = c.Do("GEN.OPEN", "sim", "mersenne")
	require.ErrorContains(t, err, "unknown algorithm")
}

func TestNextMatchesLibrary(t *testing.T) {
	c := dial(t, startServer(t, ""))
	_, err := c.Do("GEN.OPEN", "sim", "seiran128", 401)
	require.NoError(t, err)

	want := rand.NewSeiran(401)
	got, err := redis.String(c.Do("GEN.NEXT", "sim"))
	require.NoError(t, err)
	require.Equal(t, strconv.FormatUint(want.Uint64(), 10), got)

	vals, err := redis.Strings(c.Do("GEN.NEXT", "sim", 3))
	require.NoError(t, err)
	require.Len(t, vals, 3)
	for _, v := range vals {
		require.Equal(t, strconv.FormatUint(want.Uint64(), 10), v)
	}
}

func TestBytesAndText(t *testing.T) {
	c := dial(t, startServer(t, ""))
	_, err := c.Do("GEN.OPEN", "b", "seiran128", 401)
	require.NoError(t, err)

	p, err := redis.Bytes(c.Do("GEN.BYTES", "b", 9))
	require.NoError(t, err)
	require.Equal(t, rand.NewSeiran(401).Bytes(9), p)

	_, err = c.Do("GEN.OPEN", "t", "sfc32", "0xbeef5eed")
	require.NoError(t, err)
	text, err := redis.String(c.Do("GEN.TEXT", "t", 12))
	require.NoError(t, err)
	require.Equal(t, rand.NewSFC32Gen(0xbeef5eed).Text(12), text)
}

func TestULIDAndFloat(t *testing.T) {
	c := dial(t, startServer(t, ""))
	_, err := c.Do("GEN.OPEN", "u", "sfc64", 7)
	require.NoError(t, err)

	id, err := redis.String(c.Do("GEN.ULID", "u"))
	require.NoError(t, err)
	require.Len(t, id, 26)

	f, err := redis.Float64(c.Do("GEN.FLOAT", "u"))
	require.NoError(t, err)
	require.GreaterOrEqual(t, f, 0.0)
	require.Less(t, f, 1.0)
}

func TestJump(t *testing.T) {
	c := dial(t, startServer(t, ""))
	_, err := c.Do("GEN.OPEN", "sim", "seiran128", 401)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		_, err = c.Do("GEN.NEXT", "sim")
		require.NoError(t, err)
	}
	_, err = c.Do("GEN.JUMP", "sim", "32")
	require.NoError(t, err)
	got, err := redis.String(c.Do("GEN.NEXT", "sim"))
	require.NoError(t, err)
	require.Equal(t, strconv.FormatUint(0x3F6239D7246826A9, 10), got)

	_, err = c.Do("GEN.OPEN", "s", "sfc64", 1)
	require.NoError(t, err)
	_, err = c.Do("GEN.JUMP", "s", "32")
	require.ErrorContains(t, err, "seiran128")

	_, err = c.Do("GEN.JUMP", "sim", "48")
	require.ErrorContains(t, err, "invalid jump distance")
}

func TestReseed(t *testing.T) {
	c := dial(t, startServer(t, ""))
	_, err := c.Do("GEN.OPEN", "sim", "seiran128", 401)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		_, err = c.Do("GEN.NEXT", "sim")
		require.NoError(t, err)
	}
	_, err = c.Do("GEN.SEED", "sim", 401)
	require.NoError(t, err)
	got, err := redis.String(c.Do("GEN.NEXT", "sim"))
	require.NoError(t, err)
	require.Equal(t, strconv.FormatUint(rand.NewSeiran(401).Uint64(), 10), got)
}

func TestListPattern(t *testing.T) {
	c := dial(t, startServer(t, ""))
	for _, name := range []string{"sim-a", "sim-b", "fuzz"} {
		_, err := c.Do("GEN.OPEN", name, "sfc64", 1)
		require.NoError(t, err)
	}
	entries, err := redis.Values(c.Do("GEN.LIST", "sim-*"))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	first, err := redis.Strings(entries[0], nil)
	require.NoError(t, err)
	require.Equal(t, []string{"sim-a", "sfc64"}, first)

	all, err := redis.Values(c.Do("GEN.LIST"))
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestAuth(t *testing.T) {
	c := dial(t, startServer(t, "sekret"))

	_, err := c.Do("PING")
	require.ErrorContains(t, err, "unauthorized")

	_, err = c.Do("AUTH", "wrong")
	require.ErrorContains(t, err, "unauthorized")

	ok, err := redis.String(c.Do("AUTH", "sekret"))
	require.NoError(t, err)
	require.Equal(t, "OK", ok)

	_, err = c.Do("PING")
	require.NoError(t, err)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "randd.json")
	data := `{
		"addr": "127.0.0.1:7777",
		"loglevel": "debug",
		"auth": "sekret",
		"gens": [
			{"name": "sim", "algo": "seiran128", "seed": 401},
			{"name": "fuzz", "algo": "sfc32", "seed": 3203423981}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	conf := config{conf: path}
	require.NoError(t, loadConfigFile(&conf))
	require.Equal(t, "127.0.0.1:7777", conf.addr)
	require.Equal(t, "debug", conf.logLevel)
	require.Equal(t, "sekret", conf.auth)
	require.Equal(t, []genEntry{
		{name: "sim", algo: "seiran128", seed: 401},
		{name: "fuzz", algo: "sfc32", seed: 3203423981},
	}, conf.gens)

	conf = config{conf: filepath.Join(t.TempDir(), "missing.json")}
	require.Error(t, loadConfigFile(&conf))
}
