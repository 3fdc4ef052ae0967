package shell

import (
	"errors"
	"strings"

	prompt "github.com/elk-language/go-prompt"
	istrings "github.com/elk-language/go-prompt/strings"

	"github.com/quocvuong92/agentsh/internal/config"
	"github.com/quocvuong92/agentsh/internal/display"
	"github.com/quocvuong92/agentsh/internal/history"
	"github.com/quocvuong92/agentsh/internal/logging"
	"github.com/quocvuong92/agentsh/internal/store"
)

// Shell wires the registry, dispatcher, session and line history into
// an interactive REPL
type Shell struct {
	cfg        *config.Config
	session    *Session
	registry   *Registry
	dispatcher *Dispatcher
	hist       history.Keeper
	log        *logging.Logger

	// agentOverride, when set, is loaded at startup instead of the
	// persisted default-agent record
	agentOverride string
}

// New builds a Shell from validated config. A registry collision is a
// configuration error and fails startup.
func New(cfg *config.Config, agentOverride string) (*Shell, error) {
	st := store.New(cfg.AgentsDir)
	sh := &Shell{
		cfg:           cfg,
		session:       NewSession(cfg, st),
		registry:      NewRegistry(),
		hist:          history.New(cfg.HistoryFile),
		log:           logging.DefaultLogger,
		agentOverride: agentOverride,
	}
	if err := sh.registerBuiltins(); err != nil {
		return nil, err
	}
	sh.dispatcher = NewDispatcher(sh.registry, sh.session, sh.log)
	return sh, nil
}

// Session returns the shell's session context
func (sh *Shell) Session() *Session {
	return sh.session
}

// Run prints the banner, preloads the default agent, and blocks in the
// prompt loop until exit is requested. The return is always the normal
// exit path; the process status is success.
func (sh *Shell) Run() error {
	display.Banner(sh.session.Out)
	sh.loadStartupAgent()

	lines, err := sh.hist.Load()
	if err != nil {
		sh.log.Warn("could not load line history", logging.Fields{"err": err.Error()})
	}

	p := prompt.New(
		sh.execute,
		prompt.WithPrefixCallback(sh.session.PromptPrefix),
		prompt.WithTitle("agentsh"),
		prompt.WithPrefixTextColor(prompt.Cyan),
		prompt.WithHistory(lines),
		prompt.WithCompleter(sh.completer),
		prompt.WithMaxSuggestion(8),
		prompt.WithExitChecker(func(in string, breakline bool) bool {
			return sh.session.Exiting()
		}),
		// Ctrl+C at the prompt is swallowed; only 'exit' and Ctrl+D
		// leave the shell
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlC,
			Fn: func(p *prompt.Prompt) bool {
				return true
			},
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlD,
			Fn: func(p *prompt.Prompt) bool {
				if p.Buffer().Text() == "" {
					sh.dispatcher.Handle("exit")
				}
				return false
			},
		}),
	)

	p.Run()
	return nil
}

// execute handles one line from the prompt. Blank lines are ignored
// entirely: no dispatch, no separator.
func (sh *Shell) execute(line string) {
	if sh.session.Exiting() {
		return
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	if err := sh.hist.Append(line); err != nil {
		sh.log.Debug("could not append history", logging.Fields{"err": err.Error()})
	}

	sh.dispatcher.Handle(line)
	if !sh.session.Exiting() {
		display.HBar(sh.session.Out)
	}
}

// completer suggests command names and aliases for the first word of
// the line
func (sh *Shell) completer(d prompt.Document) ([]prompt.Suggest, istrings.RuneNumber, istrings.RuneNumber) {
	endIndex := d.CurrentRuneIndex()
	w := d.GetWordBeforeCursor()
	startIndex := endIndex - istrings.RuneCountInString(w)

	// Only complete the command token itself
	if strings.Contains(strings.TrimSpace(d.TextBeforeCursor()), " ") {
		return []prompt.Suggest{}, startIndex, endIndex
	}

	var suggestions []prompt.Suggest
	for _, cmd := range sh.registry.Commands() {
		suggestions = append(suggestions, prompt.Suggest{
			Text:        cmd.Name,
			Description: cmd.Description,
		})
	}
	return prompt.FilterHasPrefix(suggestions, w, true), startIndex, endIndex
}

// loadStartupAgent loads the --agent override or the persisted default
// agent. Failure is a warning, never fatal; the shell starts agentless.
func (sh *Shell) loadStartupAgent() {
	name := sh.agentOverride
	if name == "" {
		var err error
		name, err = sh.session.Store.DefaultAgent()
		if err != nil {
			if errors.Is(err, store.ErrNoDefaultSet) {
				sh.log.Warn("no default agent set")
			} else {
				sh.log.Warn("could not read default agent", logging.Fields{"err": err.Error()})
			}
			return
		}
	}

	if err := sh.session.LoadAgent(name); err != nil {
		sh.log.Warn("could not load default agent", logging.Fields{
			"agent": name,
			"err":   err.Error(),
		})
		return
	}
	sh.log.Info("loaded agent", logging.Fields{"agent": sh.session.Agent.Name})
}
