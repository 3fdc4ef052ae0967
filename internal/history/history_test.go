package history

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	h := New(filepath.Join(t.TempDir(), "history.txt"))

	lines, err := h.Load()
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if lines != nil {
		t.Errorf("Load = %v, want nil", lines)
	}
}

func TestAppendAndLoad(t *testing.T) {
	h := New(filepath.Join(t.TempDir(), "history.txt"))

	for _, line := range []string{"help", "load-agent demo"} {
		if err := h.Append(line); err != nil {
			t.Fatalf("Append(%q): %v", line, err)
		}
	}

	lines, err := h.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"help", "load-agent demo"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Load = %v, want %v", lines, want)
	}

	// History is append-only across reopen
	h2 := New(h.Path())
	if err := h2.Append("exit"); err != nil {
		t.Fatalf("Append after reopen: %v", err)
	}
	lines, _ = h2.Load()
	if want := []string{"help", "load-agent demo", "exit"}; !reflect.DeepEqual(lines, want) {
		t.Errorf("Load after reopen = %v, want %v", lines, want)
	}
}

func TestAppendSkipsBlank(t *testing.T) {
	h := New(filepath.Join(t.TempDir(), "history.txt"))

	if err := h.Append("   "); err != nil {
		t.Fatalf("Append blank: %v", err)
	}
	lines, err := h.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("Load = %v, blank lines must not be stored", lines)
	}
}

func TestAppendCreatesDir(t *testing.T) {
	h := New(filepath.Join(t.TempDir(), "nested", "dir", "history.txt"))

	if err := h.Append("help"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	lines, err := h.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(lines) != 1 || lines[0] != "help" {
		t.Errorf("Load = %v, want the appended line", lines)
	}
}
