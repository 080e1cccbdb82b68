package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestFieldsAndMessage(t *testing.T) {
	var buf bytes.Buffer
	SetWriter(&buf)
	defer SetConsoleWriter()

	Info("seed", uint64(401), "algo", "seiran128", "session opened")
	line := buf.String()
	for _, want := range []string{
		`"seed":401`, `"algo":"seiran128"`, `"message":"session opened"`,
		`"level":"info"`,
	} {
		if !strings.Contains(line, want) {
			t.Fatalf("log line %q missing %q", line, want)
		}
	}
}

func TestSetLevel(t *testing.T) {
	defer SetLevel("info")
	for _, name := range []string{"debug", "verb", "info", "warn", "silent"} {
		if !SetLevel(name) {
			t.Fatalf("level %q rejected", name)
		}
	}
	if SetLevel("loud") {
		t.Fatal("bogus level accepted")
	}
}
