package shell

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	shellwords "github.com/mattn/go-shellwords"

	"github.com/quocvuong92/agentsh/internal/logging"
)

// Dispatcher resolves raw input lines against the registry and invokes
// the bound handlers. Handler errors are logged and swallowed; nothing
// a command does can take the loop down.
type Dispatcher struct {
	registry *Registry
	session  *Session
	log      *logging.Logger
}

// NewDispatcher creates a Dispatcher over a registry and session
func NewDispatcher(reg *Registry, s *Session, log *logging.Logger) *Dispatcher {
	if log == nil {
		log = logging.DefaultLogger
	}
	return &Dispatcher{registry: reg, session: s, log: log}
}

// Handle tokenizes one input line, resolves the command, and invokes it.
// The handler runs under a context cancelled by SIGINT so long-running
// commands can be interrupted without killing the shell.
func (d *Dispatcher) Handle(line string) {
	args, err := shellwords.Parse(line)
	if err != nil {
		fmt.Fprintf(d.session.Out, "Invalid input: %v\n", err)
		return
	}
	if len(args) == 0 {
		return
	}

	cmd, ok := d.registry.Resolve(args[0])
	if !ok {
		d.reportUnknown(args[0])
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.Handler(ctx, d.session, args); err != nil {
		d.log.Error("command failed", err, logging.Fields{"command": cmd.Name})
	}
}

// reportUnknown prints the miss, ranked close matches, and a help hint
func (d *Dispatcher) reportUnknown(token string) {
	fmt.Fprintf(d.session.Out, "Unknown command: '%s'\n", strings.ToLower(token))

	suggestions := Suggest(token, d.registry.Keys(),
		DefaultMaxSuggestions, DefaultSimilarityThreshold)
	if len(suggestions) > 0 {
		fmt.Fprintln(d.session.Out, "Did you mean?")
		for _, s := range suggestions {
			fmt.Fprintf(d.session.Out, "  - %s\n", s)
		}
	}
	fmt.Fprintln(d.session.Out, "Use 'help' to see all available commands.")
}
