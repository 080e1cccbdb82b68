package main

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"

	"github.com/tidwall/match"
	"github.com/tidwall/redcon"
	"github.com/tidwall/tinybtree"

	"github.com/moontrade/rand"
	"github.com/moontrade/rand/logger"
)

// ErrWrongNumArgs is returned when the arg count is wrong.
var ErrWrongNumArgs = errors.New("wrong number of arguments")

// ErrUnauthorized is returned when a client connection has not been
// authorized.
var ErrUnauthorized = errors.New("unauthorized")

// ErrUnknownCommand is returned when a command is not known.
var ErrUnknownCommand = errors.New("unknown command")

// ErrNoSession is returned when a command names a session that is not
// open.
var ErrNoSession = errors.New("no such session")

// ErrSessionExists is returned when GEN.OPEN names an open session.
var ErrSessionExists = errors.New("session already open")

// ErrNotSeiran is returned when GEN.JUMP targets a non-seiran session.
var ErrNotSeiran = errors.New("jump requires a seiran128 session")

// session is one named generator owned by the server. Engines are not
// safe for concurrent draws, so the server mutex covers every command
// that touches one.
type session struct {
	name   string
	algo   string
	seed   uint64
	gen    rand.Rand
	seiran *rand.Seiran128 // set when algo is seiran128, for jumps
}

func openSession(name, algo string, seed uint64) (*session, error) {
	sess := &session{name: name, algo: strings.ToLower(algo), seed: seed}
	if err := sess.reseed(seed); err != nil {
		return nil, err
	}
	return sess, nil
}

func (sess *session) reseed(seed uint64) error {
	sess.seed = seed
	if sess.algo == rand.Seiran128Name {
		eng := rand.NewSeiran128(seed)
		sess.seiran = eng
		sess.gen = rand.NewGen(eng)
		return nil
	}
	g, err := rand.New(sess.algo, seed)
	if err != nil {
		return err
	}
	sess.gen = g
	return nil
}

type client struct {
	authorized bool
}

type server struct {
	auth     string
	shutdown func() // nil disables the SHUTDOWN command

	mu       sync.Mutex
	sessions tinybtree.BTree // name -> *session
}

func newServer(auth string) *server {
	return &server{auth: auth}
}

func (s *server) serve(ln net.Listener) error {
	return redcon.Serve(ln, s.handler, s.accept, s.closed)
}

func (s *server) accept(conn redcon.Conn) bool {
	conn.SetContext(&client{})
	logger.Debug("addr", conn.RemoteAddr(), "client connected")
	return true
}

func (s *server) closed(conn redcon.Conn, err error) {
	logger.Debug("addr", conn.RemoteAddr(), "client disconnected")
}

func (s *server) handler(conn redcon.Conn, cmd redcon.Command) {
	args := make([]string, len(cmd.Args))
	args[0] = strings.ToLower(string(cmd.Args[0]))
	for i := 1; i < len(cmd.Args); i++ {
		args[i] = string(cmd.Args[i])
	}
	cl, _ := conn.Context().(*client)
	if cl == nil {
		cl = &client{}
		conn.SetContext(cl)
	}

	switch args[0] {
	case "quit":
		conn.WriteString("OK")
		conn.Close()
		return
	case "auth":
		if len(args) != 2 {
			conn.WriteAny(ErrWrongNumArgs)
		} else if args[1] != s.auth {
			cl.authorized = false
			conn.WriteAny(ErrUnauthorized)
		} else {
			cl.authorized = true
			conn.WriteString("OK")
		}
		return
	}
	if !cl.authorized {
		if s.auth != "" {
			conn.WriteAny(ErrUnauthorized)
			return
		}
		cl.authorized = true
	}

	switch args[0] {
	case "ping":
		switch len(args) {
		case 1:
			conn.WriteString("PONG")
		case 2:
			conn.WriteBulkString(args[1])
		default:
			conn.WriteAny(ErrWrongNumArgs)
		}
	case "echo":
		if len(args) != 2 {
			conn.WriteAny(ErrWrongNumArgs)
		} else {
			conn.WriteBulkString(args[1])
		}
	case "shutdown":
		if s.shutdown == nil {
			conn.WriteAny(errors.New("shutdown disabled"))
		} else {
			logger.Warn("shutting down")
			conn.WriteString("OK")
			s.shutdown()
		}
	case "gen.open":
		s.cmdOpen(conn, args)
	case "gen.seed":
		s.cmdSeed(conn, args)
	case "gen.close":
		s.cmdClose(conn, args)
	case "gen.list":
		s.cmdList(conn, args)
	case "gen.jump":
		s.cmdJump(conn, args)
	case "gen.next":
		s.cmdNext(conn, args)
	case "gen.bytes":
		s.cmdBytes(conn, args)
	case "gen.text":
		s.cmdText(conn, args)
	case "gen.ulid":
		s.cmdULID(conn, args)
	case "gen.float":
		s.cmdFloat(conn, args)
	default:
		conn.WriteAny(fmt.Errorf("%w '%s'", ErrUnknownCommand, args[0]))
	}
}

// get looks up an open session. Callers hold s.mu.
func (s *server) get(name string) (*session, error) {
	v, ok := s.sessions.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w '%s'", ErrNoSession, name)
	}
	return v.(*session), nil
}

func parseSeed(arg string) (uint64, error) {
	seed, err := strconv.ParseUint(arg, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid seed '%s'", arg)
	}
	return seed, nil
}

func parseCount(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid count '%s'", arg)
	}
	return n, nil
}

// GEN.OPEN name algo [seed]
func (s *server) cmdOpen(conn redcon.Conn, args []string) {
	if len(args) != 3 && len(args) != 4 {
		conn.WriteAny(ErrWrongNumArgs)
		return
	}
	var seed uint64
	if len(args) == 4 {
		var err error
		if seed, err = parseSeed(args[3]); err != nil {
			conn.WriteAny(err)
			return
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions.Get(args[1]); ok {
		conn.WriteAny(fmt.Errorf("%w: '%s'", ErrSessionExists, args[1]))
		return
	}
	sess, err := openSession(args[1], args[2], seed)
	if err != nil {
		conn.WriteAny(err)
		return
	}
	s.sessions.Set(sess.name, sess)
	logger.Info("name", sess.name, "algo", sess.algo, "seed", sess.seed,
		"session opened")
	conn.WriteString("OK")
}

// GEN.SEED name seed
func (s *server) cmdSeed(conn redcon.Conn, args []string) {
	if len(args) != 3 {
		conn.WriteAny(ErrWrongNumArgs)
		return
	}
	seed, err := parseSeed(args[2])
	if err != nil {
		conn.WriteAny(err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.get(args[1])
	if err != nil {
		conn.WriteAny(err)
		return
	}
	if err := sess.reseed(seed); err != nil {
		conn.WriteAny(err)
		return
	}
	conn.WriteString("OK")
}

// GEN.CLOSE name
func (s *server) cmdClose(conn redcon.Conn, args []string) {
	if len(args) != 2 {
		conn.WriteAny(ErrWrongNumArgs)
		return
	}
	s.mu.Lock()
	_, deleted := s.sessions.Delete(args[1])
	s.mu.Unlock()
	if deleted {
		conn.WriteInt(1)
	} else {
		conn.WriteInt(0)
	}
}

// GEN.LIST [pattern]
func (s *server) cmdList(conn redcon.Conn, args []string) {
	if len(args) > 2 {
		conn.WriteAny(ErrWrongNumArgs)
		return
	}
	pattern := "*"
	if len(args) == 2 {
		pattern = args[1]
	}
	s.mu.Lock()
	var names, algos []string
	s.sessions.Scan(func(key string, value interface{}) bool {
		if match.Match(key, pattern) {
			names = append(names, key)
			algos = append(algos, value.(*session).algo)
		}
		return true
	})
	s.mu.Unlock()
	conn.WriteArray(len(names))
	for i := range names {
		conn.WriteArray(2)
		conn.WriteBulkString(names[i])
		conn.WriteBulkString(algos[i])
	}
}

// GEN.JUMP name 32|64|96
func (s *server) cmdJump(conn redcon.Conn, args []string) {
	if len(args) != 3 {
		conn.WriteAny(ErrWrongNumArgs)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.get(args[1])
	if err != nil {
		conn.WriteAny(err)
		return
	}
	if sess.seiran == nil {
		conn.WriteAny(ErrNotSeiran)
		return
	}
	switch args[2] {
	case "32":
		sess.seiran.Jump32()
	case "64":
		sess.seiran.Jump64()
	case "96":
		sess.seiran.Jump96()
	default:
		conn.WriteAny(fmt.Errorf("invalid jump distance '%s'", args[2]))
		return
	}
	conn.WriteString("OK")
}

// GEN.NEXT name [count]
func (s *server) cmdNext(conn redcon.Conn, args []string) {
	if len(args) != 2 && len(args) != 3 {
		conn.WriteAny(ErrWrongNumArgs)
		return
	}
	count := -1
	if len(args) == 3 {
		var err error
		if count, err = parseCount(args[2]); err != nil {
			conn.WriteAny(err)
			return
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.get(args[1])
	if err != nil {
		conn.WriteAny(err)
		return
	}
	if count < 0 {
		conn.WriteBulkString(strconv.FormatUint(sess.gen.Uint64(), 10))
		return
	}
	words := make([]uint64, count)
	for i := range words {
		words[i] = sess.gen.Uint64()
	}
	conn.WriteArray(len(words))
	for _, w := range words {
		conn.WriteBulkString(strconv.FormatUint(w, 10))
	}
}

// GEN.BYTES name n
func (s *server) cmdBytes(conn redcon.Conn, args []string) {
	if len(args) != 3 {
		conn.WriteAny(ErrWrongNumArgs)
		return
	}
	n, err := parseCount(args[2])
	if err != nil {
		conn.WriteAny(err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.get(args[1])
	if err != nil {
		conn.WriteAny(err)
		return
	}
	conn.WriteBulk(sess.gen.Bytes(n))
}

// GEN.TEXT name n
func (s *server) cmdText(conn redcon.Conn, args []string) {
	if len(args) != 3 {
		conn.WriteAny(ErrWrongNumArgs)
		return
	}
	n, err := parseCount(args[2])
	if err != nil {
		conn.WriteAny(err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.get(args[1])
	if err != nil {
		conn.WriteAny(err)
		return
	}
	conn.WriteBulkString(sess.gen.Text(n))
}

// GEN.ULID name
func (s *server) cmdULID(conn redcon.Conn, args []string) {
	if len(args) != 2 {
		conn.WriteAny(ErrWrongNumArgs)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.get(args[1])
	if err != nil {
		conn.WriteAny(err)
		return
	}
	conn.WriteBulkString(sess.gen.ULID().String())
}

// GEN.FLOAT name
func (s *server) cmdFloat(conn redcon.Conn, args []string) {
	if len(args) != 2 {
		conn.WriteAny(ErrWrongNumArgs)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.get(args[1])
	if err != nil {
		conn.WriteAny(err)
		return
	}
	conn.WriteBulkString(strconv.FormatFloat(sess.gen.Float64(), 'g', -1, 64))
}
