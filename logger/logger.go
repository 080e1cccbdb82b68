// Package logger is a thin zerolog wrapper shared by the daemon and the
// CLI tools. Call sites pass alternating key/value pairs; a trailing key
// with no value becomes the message.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	SetConsoleWriter()
}

// Log returns the underlying zerolog logger for call sites that want the
// full builder API.
func Log() *zerolog.Logger {
	return &log
}

// SetWriter replaces the output with a bare JSON writer to w.
func SetWriter(w io.Writer) {
	log = zerolog.New(w).With().Timestamp().Logger()
}

// SetConsoleWriter switches to human-readable console output on stderr.
func SetConsoleWriter() {
	log = zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
		w.TimeFormat = "15:04:05.000"
	})).With().Timestamp().Logger()
}

// SetJSONWriter switches to machine-readable JSON output on stderr.
func SetJSONWriter() {
	SetWriter(os.Stderr)
}

// SetLevel applies a textual log level. Unknown names are reported back
// so the caller can refuse the flag.
func SetLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "verbose", "verb", "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case "notice", "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warning", "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "quiet", "silent":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		return false
	}
	return true
}

func emit(event *zerolog.Event, args []interface{}) {
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			if err, isErr := args[i].(error); isErr {
				event.Err(err)
				i--
				continue
			}
			event.Interface("arg", args[i])
			i--
			continue
		}
		if i+1 == len(args) {
			event.Msg(key)
			return
		}
		switch v := args[i+1].(type) {
		case string:
			event.Str(key, v)
		case int:
			event.Int(key, v)
		case int64:
			event.Int64(key, v)
		case uint32:
			event.Uint32(key, v)
		case uint64:
			event.Uint64(key, v)
		case bool:
			event.Bool(key, v)
		case float64:
			event.Float64(key, v)
		case time.Duration:
			event.Str(key, v.String())
		case error:
			event.AnErr(key, v)
		case []byte:
			event.Hex(key, v)
		default:
			event.Interface(key, v)
		}
	}
	event.Msg("")
}

// Trace logs at trace level.
func Trace(args ...interface{}) { emit(log.Trace(), args) }

// Debug logs at debug level.
func Debug(args ...interface{}) { emit(log.Debug(), args) }

// Info logs at info level.
func Info(args ...interface{}) { emit(log.Info(), args) }

// Warn logs at warn level.
func Warn(args ...interface{}) { emit(log.Warn(), args) }

// Error logs err plus any fields at error level.
func Error(err error, args ...interface{}) { emit(log.Error().Err(err), args) }

// Fatal logs err at fatal level and exits with status 1.
func Fatal(err error, args ...interface{}) { emit(log.Fatal().Err(err), args) }
