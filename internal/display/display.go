// Package display handles all decorated terminal output: the welcome
// banner, the separator bar, error messages, spinners, and optional
// markdown rendering of chat replies.
package display

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/glamour"
)

// HBarWidth is the width of the separator bar
const HBarWidth = 60

var renderer *glamour.TermRenderer

// InitRenderer sets up the markdown renderer. Call once at startup when
// rendering is enabled; ShowContentRendered falls back to plain output
// if this was never called or failed.
func InitRenderer() error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize markdown renderer: %w", err)
	}
	renderer = r
	return nil
}

// HBar prints the horizontal separator bar
func HBar(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("-", HBarWidth))
}

// Banner prints the welcome banner
func Banner(w io.Writer) {
	HBar(w)
	fmt.Fprintln(w, "Welcome to agentsh!")
	fmt.Fprintln(w, "Type 'help' for a list of commands.")
	HBar(w)
}

// ClearScreen clears the terminal and moves the cursor home
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[2J\033[H")
}

// ShowError prints an error message to stderr
func ShowError(msg string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
}

// ShowContent prints content as-is
func ShowContent(w io.Writer, content string) {
	fmt.Fprintln(w, content)
}

// ShowContentRendered prints content through the markdown renderer,
// falling back to plain output when no renderer is available
func ShowContentRendered(w io.Writer, content string) {
	if renderer == nil {
		ShowContent(w, content)
		return
	}
	out, err := renderer.Render(content)
	if err != nil {
		ShowContent(w, content)
		return
	}
	fmt.Fprint(w, out)
}

// Spinner wraps a terminal spinner shown during model calls
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner creates a spinner with the given message
func NewSpinner(message string) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	return &Spinner{s: s}
}

// Start begins the spinner animation
func (sp *Spinner) Start() {
	sp.s.Start()
}

// Stop ends the spinner animation
func (sp *Spinner) Stop() {
	sp.s.Stop()
}

// UpdateMessage changes the spinner message
func (sp *Spinner) UpdateMessage(message string) {
	sp.s.Suffix = " " + message
}
