package shell

import (
	"context"
	"errors"
	"testing"
)

func nopHandler(ctx context.Context, s *Session, args []string) error {
	return nil
}

func TestResolveNameAndAliases(t *testing.T) {
	sh, _ := newTestShell(t)

	for _, cmd := range sh.registry.Commands() {
		byName, ok := sh.registry.Resolve(cmd.Name)
		if !ok {
			t.Fatalf("Resolve(%q) failed", cmd.Name)
		}
		if byName != cmd {
			t.Errorf("Resolve(%q) returned a different command", cmd.Name)
		}
		for _, alias := range cmd.Aliases {
			byAlias, ok := sh.registry.Resolve(alias)
			if !ok {
				t.Fatalf("Resolve(%q) failed for alias of %q", alias, cmd.Name)
			}
			if byAlias != cmd {
				t.Errorf("Resolve(%q) != Resolve(%q)", alias, cmd.Name)
			}
		}
	}
}

func TestResolveCaseInsensitive(t *testing.T) {
	sh, _ := newTestShell(t)

	upper, ok := sh.registry.Resolve("HELP")
	if !ok {
		t.Fatal("Resolve(\"HELP\") failed")
	}
	lower, _ := sh.registry.Resolve("help")
	if upper != lower {
		t.Error("Resolve is not case-insensitive")
	}
}

func TestRegisterCollision(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(&Command{Name: "foo", Handler: nopHandler, Aliases: []string{"f"}}); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	// Same canonical name
	if err := reg.Register(&Command{Name: "foo", Handler: nopHandler}); !errors.Is(err, ErrDuplicateCommand) {
		t.Errorf("duplicate name: got %v, want ErrDuplicateCommand", err)
	}
	// New name colliding with an existing alias
	if err := reg.Register(&Command{Name: "f", Handler: nopHandler}); !errors.Is(err, ErrDuplicateCommand) {
		t.Errorf("name vs alias: got %v, want ErrDuplicateCommand", err)
	}
	// Alias colliding with an existing name
	if err := reg.Register(&Command{Name: "bar", Handler: nopHandler, Aliases: []string{"foo"}}); !errors.Is(err, ErrDuplicateCommand) {
		t.Errorf("alias vs name: got %v, want ErrDuplicateCommand", err)
	}
	// Failed registration must not leave partial entries behind
	if _, ok := reg.Resolve("bar"); ok {
		t.Error("failed Register left a partial entry")
	}
}

func TestCommandsDistinct(t *testing.T) {
	sh, _ := newTestShell(t)

	cmds := sh.registry.Commands()
	if len(cmds) != 13 {
		t.Fatalf("Commands() returned %d commands, want 13", len(cmds))
	}
	seen := make(map[string]bool)
	for _, cmd := range cmds {
		if seen[cmd.Name] {
			t.Errorf("command %q appears more than once", cmd.Name)
		}
		seen[cmd.Name] = true
	}
}

func TestKeysIncludeAliases(t *testing.T) {
	sh, _ := newTestShell(t)

	keys := make(map[string]bool)
	for _, k := range sh.registry.Keys() {
		keys[k] = true
	}
	for _, want := range []string{"help", "h", "?", "agent-action", "action", "run", "exit", "q"} {
		if !keys[want] {
			t.Errorf("Keys() missing %q", want)
		}
	}
}
