// Package history provides append-only line-history persistence for the
// interactive shell. Lines survive across sessions and seed the prompt's
// up-arrow history at startup.
package history

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Keeper defines the interface for line-history persistence.
// This interface enables dependency injection and easier testing.
type Keeper interface {
	// Load reads all stored lines, oldest first
	Load() ([]string, error)

	// Append adds one line to the end of the history
	Append(line string) error
}

// Ensure concrete type implements the interface
var _ Keeper = (*LineHistory)(nil)

// LineHistory stores one input line per line of a flat text file
type LineHistory struct {
	path string
}

// New creates a LineHistory backed by the given file path
func New(path string) *LineHistory {
	return &LineHistory{path: path}
}

// Path returns the backing file path
func (h *LineHistory) Path() string {
	return h.path
}

// Load reads all stored lines, oldest first. A missing file is not an
// error; it simply yields no history.
func (h *LineHistory) Load() ([]string, error) {
	f, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}
	return lines, nil
}

// Append adds one line to the end of the history file, creating the file
// and its directory on first use
func (h *LineHistory) Append(line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(h.path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, line); err != nil {
		return fmt.Errorf("failed to write history entry: %w", err)
	}
	return nil
}
