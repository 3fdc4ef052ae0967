package shell

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/quocvuong92/agentsh/internal/logging"
)

func TestHandleBlankLine(t *testing.T) {
	sh, out := newTestShell(t)

	sh.dispatcher.Handle("")
	sh.dispatcher.Handle("   ")

	if out.Len() != 0 {
		t.Errorf("blank input produced output: %q", out.String())
	}
}

func TestHandleTokenizationError(t *testing.T) {
	sh, out := newTestShell(t)

	sh.dispatcher.Handle(`load-agent "unterminated`)

	if !strings.Contains(out.String(), "Invalid input:") {
		t.Errorf("output = %q, want tokenization error", out.String())
	}
}

func TestHandleUnknownCommand(t *testing.T) {
	sh, out := newTestShell(t)

	sh.dispatcher.Handle("aciton foo")

	got := out.String()
	if !strings.Contains(got, "Unknown command: 'aciton'") {
		t.Errorf("output = %q, want unknown-command line", got)
	}
	if !strings.Contains(got, "Did you mean?") || !strings.Contains(got, "- action") {
		t.Errorf("output = %q, want suggestion for 'action'", got)
	}
	if !strings.Contains(got, "Use 'help' to see all available commands.") {
		t.Errorf("output = %q, want help hint", got)
	}
}

func TestHandleUnknownUppercased(t *testing.T) {
	sh, out := newTestShell(t)

	sh.dispatcher.Handle("FROBNICATE")

	if !strings.Contains(out.String(), "Unknown command: 'frobnicate'") {
		t.Errorf("output = %q, want lowercased token in message", out.String())
	}
}

func TestHandlerReceivesFullTokens(t *testing.T) {
	sh, _ := newTestShell(t)

	var got []string
	reg := NewRegistry()
	err := reg.Register(&Command{
		Name:    "capture",
		Aliases: []string{"cap"},
		Handler: func(ctx context.Context, s *Session, args []string) error {
			got = append([]string(nil), args...)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	d := NewDispatcher(reg, sh.session, sh.log)

	d.Handle(`capture one "two words" three`)
	want := []string{"capture", "one", "two words", "three"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("args = %v, want %v", got, want)
	}

	// Invoked through an alias the handler sees the token as typed
	d.Handle("cap x")
	want = []string{"cap", "x"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("args via alias = %v, want %v", got, want)
	}
}

func TestHandlerErrorLoggedNotFatal(t *testing.T) {
	sh, _ := newTestShell(t)

	reg := NewRegistry()
	if err := reg.Register(&Command{
		Name: "boom",
		Handler: func(ctx context.Context, s *Session, args []string) error {
			return errors.New("kaboom")
		},
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	var logBuf bytes.Buffer
	log := logging.New(logging.Options{Level: logging.LevelError, Output: &logBuf})
	d := NewDispatcher(reg, sh.session, log)

	d.Handle("boom")
	d.Handle("boom")

	if !strings.Contains(logBuf.String(), "command failed") || !strings.Contains(logBuf.String(), "kaboom") {
		t.Errorf("log = %q, want command failure entry", logBuf.String())
	}
}
