package shell

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/quocvuong92/agentsh/internal/display"
	"github.com/quocvuong92/agentsh/internal/logging"
)

// noAgentMessage is printed by every command that needs an active agent
// when none is loaded
const noAgentMessage = "No agent loaded. Use 'load-agent' first."

// registerBuiltins installs the command set. Collisions here are
// programmer error and surface as a fatal startup failure.
func (sh *Shell) registerBuiltins() error {
	commands := []*Command{
		{
			Name:        "help",
			Description: "List all commands, or describe one",
			Tips:        []string{"help", "help load-agent"},
			Handler:     sh.cmdHelp,
			Aliases:     []string{"h", "?"},
		},
		{
			Name:        "clear",
			Description: "Clear the screen",
			Tips:        []string{"clear"},
			Handler:     sh.cmdClear,
			Aliases:     []string{"cls"},
		},
		{
			Name:        "agent-action",
			Description: "Run an action on a connection via the active agent",
			Tips:        []string{"agent-action <connection> <action> [params...]"},
			Handler:     sh.cmdAgentAction,
			Aliases:     []string{"action", "run"},
		},
		{
			Name:        "agent-loop",
			Description: "Run the active agent's loop until interrupted",
			Tips:        []string{"agent-loop"},
			Handler:     sh.cmdAgentLoop,
			Aliases:     []string{"loop", "start"},
		},
		{
			Name:        "list-agents",
			Description: "List available agent definitions",
			Tips:        []string{"list-agents"},
			Handler:     sh.cmdListAgents,
			Aliases:     []string{"agents", "ls-agents"},
		},
		{
			Name:        "load-agent",
			Description: "Load an agent by name",
			Tips:        []string{"load-agent <agent_name>"},
			Handler:     sh.cmdLoadAgent,
			Aliases:     []string{"load"},
		},
		{
			Name:        "create-agent",
			Description: "Explain how to create a new agent",
			Tips:        []string{"create-agent"},
			Handler:     sh.cmdCreateAgent,
			Aliases:     []string{"new-agent", "create"},
		},
		{
			Name:        "set-default-agent",
			Description: "Persist the default agent name",
			Tips:        []string{"set-default-agent <agent_name>"},
			Handler:     sh.cmdSetDefaultAgent,
			Aliases:     []string{"default"},
		},
		{
			Name:        "chat",
			Description: "Chat with the active agent",
			Tips:        []string{"chat"},
			Handler:     sh.cmdChat,
			Aliases:     []string{"talk"},
		},
		{
			Name:        "list-actions",
			Description: "List actions available on a connection",
			Tips:        []string{"list-actions <connection>"},
			Handler:     sh.cmdListActions,
			Aliases:     []string{"actions", "ls-actions"},
		},
		{
			Name:        "configure-connection",
			Description: "Configure a connection on the active agent",
			Tips:        []string{"configure-connection <connection>"},
			Handler:     sh.cmdConfigureConnection,
			Aliases:     []string{"config", "setup"},
		},
		{
			Name:        "list-connections",
			Description: "List the active agent's connections",
			Tips:        []string{"list-connections"},
			Handler:     sh.cmdListConnections,
			Aliases:     []string{"connections", "ls-connections"},
		},
		{
			Name:        "exit",
			Description: "Exit the shell",
			Tips:        []string{"exit"},
			Handler:     sh.cmdExit,
			Aliases:     []string{"quit", "q"},
		},
	}

	for _, cmd := range commands {
		if err := sh.registry.Register(cmd); err != nil {
			return err
		}
	}
	return nil
}

func (sh *Shell) cmdHelp(ctx context.Context, s *Session, args []string) error {
	if len(args) > 1 {
		cmd, ok := sh.registry.Resolve(args[1])
		if !ok {
			fmt.Fprintf(s.Out, "Command not found: %s\n", args[1])
			return nil
		}
		fmt.Fprintf(s.Out, "%s - %s\n", cmd.Name, cmd.Description)
		if len(cmd.Aliases) > 0 {
			fmt.Fprintf(s.Out, "Aliases: %s\n", strings.Join(cmd.Aliases, ", "))
		}
		for _, tip := range cmd.Tips {
			fmt.Fprintf(s.Out, "  - %s\n", tip)
		}
		return nil
	}

	fmt.Fprintln(s.Out, "Available commands:")
	for _, cmd := range sh.registry.Commands() {
		fmt.Fprintf(s.Out, "  %-20s - %s\n", cmd.Name, cmd.Description)
	}
	return nil
}

func (sh *Shell) cmdClear(ctx context.Context, s *Session, args []string) error {
	display.ClearScreen(s.Out)
	display.Banner(s.Out)
	return nil
}

func (sh *Shell) cmdAgentAction(ctx context.Context, s *Session, args []string) error {
	if s.Agent == nil {
		fmt.Fprintln(s.Out, noAgentMessage)
		return nil
	}
	if len(args) < 3 {
		fmt.Fprintln(s.Out, "Usage: agent-action <connection> <action> [params...]")
		return nil
	}

	result, err := s.Agent.PerformAction(ctx, args[1], args[2], args[3:])
	if err != nil {
		return err
	}
	fmt.Fprintf(s.Out, "Result: %s\n", result)
	return nil
}

func (sh *Shell) cmdAgentLoop(ctx context.Context, s *Session, args []string) error {
	if s.Agent == nil {
		fmt.Fprintln(s.Out, noAgentMessage)
		return nil
	}

	fmt.Fprintln(s.Out, "Running agent loop... (Ctrl+C to stop)")
	if err := s.Agent.RunLoop(ctx); err != nil {
		return err
	}
	fmt.Fprintln(s.Out, "Stopped.")
	return nil
}

func (sh *Shell) cmdListAgents(ctx context.Context, s *Session, args []string) error {
	names, err := s.Store.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintf(s.Out, "No agents found in %s\n", s.Store.Dir())
		return nil
	}

	fmt.Fprintln(s.Out, "Available agents:")
	for _, name := range names {
		fmt.Fprintf(s.Out, "  - %s\n", name)
	}
	return nil
}

func (sh *Shell) cmdLoadAgent(ctx context.Context, s *Session, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(s.Out, "Usage: load-agent <agent_name>")
		return nil
	}

	if err := s.LoadAgent(args[1]); err != nil {
		return fmt.Errorf("could not load agent %q: %w", args[1], err)
	}
	fmt.Fprintf(s.Out, "Loaded agent: %s\n", s.Agent.Name)
	return nil
}

func (sh *Shell) cmdCreateAgent(ctx context.Context, s *Session, args []string) error {
	fmt.Fprintln(s.Out, "Agents are created manually:")
	fmt.Fprintf(s.Out, "  1. Add a <name>.json file to the %s directory.\n", s.Store.Dir())
	fmt.Fprintln(s.Out, `  2. Give it at least a "name" field; "bio", "model",`)
	fmt.Fprintln(s.Out, `     "loop_interval" and "connections" are optional.`)
	fmt.Fprintln(s.Out, "  3. Run 'load-agent <name>' to use it.")
	return nil
}

func (sh *Shell) cmdSetDefaultAgent(ctx context.Context, s *Session, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(s.Out, "Usage: set-default-agent <agent_name>")
		return nil
	}

	if err := s.Store.SetDefault(args[1]); err != nil {
		return err
	}
	fmt.Fprintf(s.Out, "Default agent set to: %s\n", args[1])
	return nil
}

func (sh *Shell) cmdChat(ctx context.Context, s *Session, args []string) error {
	if s.Agent == nil {
		fmt.Fprintln(s.Out, "Load an agent first.")
		return nil
	}

	if !s.Agent.ModelReady() {
		sp := display.NewSpinner("Setting up model provider...")
		sp.Start()
		err := s.Agent.EnsureModelReady()
		sp.Stop()
		if err != nil {
			return err
		}
	}

	sessionID := uuid.New().String()
	sh.log.Debug("chat session started", logging.Fields{
		"session_id": sessionID,
		"agent":      s.Agent.Name,
		"model":      s.Agent.Model(),
	})

	display.HBar(s.Out)
	fmt.Fprintf(s.Out, "Chatting with %s (type 'exit' to end)\n", s.Agent.Name)
	display.HBar(s.Out)

	scanner := bufio.NewScanner(s.In)
	for ctx.Err() == nil {
		fmt.Fprint(s.Out, "\nYou: ")
		if !scanner.Scan() {
			break
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}
		if strings.EqualFold(message, "exit") {
			break
		}

		sp := display.NewSpinner("Thinking...")
		sp.Start()
		reply, err := s.Agent.PromptModel(ctx, message)
		sp.Stop()
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			display.ShowError(err.Error())
			continue
		}

		if s.Config.Render {
			fmt.Fprintf(s.Out, "%s:\n", s.Agent.Name)
			display.ShowContentRendered(s.Out, reply)
		} else {
			fmt.Fprintf(s.Out, "%s: %s\n", s.Agent.Name, reply)
		}
		display.HBar(s.Out)
	}

	sh.log.Debug("chat session ended", logging.Fields{"session_id": sessionID})
	return nil
}

func (sh *Shell) cmdListActions(ctx context.Context, s *Session, args []string) error {
	if s.Agent == nil {
		fmt.Fprintln(s.Out, noAgentMessage)
		return nil
	}
	if len(args) < 2 {
		fmt.Fprintln(s.Out, "Usage: list-actions <connection>")
		return nil
	}

	actions, err := s.Agent.Connections().ListActions(args[1])
	if err != nil {
		return err
	}

	fmt.Fprintf(s.Out, "Available actions for connection '%s':\n", args[1])
	for _, a := range actions {
		fmt.Fprintf(s.Out, "  - %-10s %s\n", a.Name, a.Description)
	}
	return nil
}

func (sh *Shell) cmdConfigureConnection(ctx context.Context, s *Session, args []string) error {
	if s.Agent == nil {
		fmt.Fprintln(s.Out, noAgentMessage)
		return nil
	}
	if len(args) < 2 {
		fmt.Fprintln(s.Out, "Usage: configure-connection <connection>")
		return nil
	}

	if err := s.Agent.Connections().Configure(args[1]); err != nil {
		return err
	}
	fmt.Fprintf(s.Out, "Connection '%s' configured.\n", args[1])
	return nil
}

func (sh *Shell) cmdListConnections(ctx context.Context, s *Session, args []string) error {
	if s.Agent == nil {
		fmt.Fprintln(s.Out, noAgentMessage)
		return nil
	}

	fmt.Fprintln(s.Out, "Available connections:")
	for _, conn := range s.Agent.Connections().ListConnections() {
		status := "not configured"
		if conn.Configured {
			status = "configured"
		}
		fmt.Fprintf(s.Out, "  - %s (%s)\n", conn.Name, status)
	}
	return nil
}

func (sh *Shell) cmdExit(ctx context.Context, s *Session, args []string) error {
	fmt.Fprintln(s.Out, "Goodbye!")
	s.RequestExit()
	return nil
}
