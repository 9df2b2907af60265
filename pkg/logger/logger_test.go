package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestInitThenGet(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	Init(Options{Level: "debug", Output: &buf})

	log := Get()
	log.Info().Msg("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("log output missing message: %q", buf.String())
	}
}

func TestInit_OnlyFirstCallWins(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	Init(Options{Output: &second})

	log := Get()
	log.Info().Msg("routed")
	if second.Len() != 0 {
		t.Fatalf("second Init reconfigured the logger")
	}
	if !strings.Contains(first.String(), "routed") {
		t.Fatalf("message missing from first writer: %q", first.String())
	}
}
