// Package cmd implements the CLI entry point for agentsh.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/agentsh/internal/config"
	"github.com/quocvuong92/agentsh/internal/display"
	"github.com/quocvuong92/agentsh/internal/logging"
	"github.com/quocvuong92/agentsh/internal/shell"
)

// App holds the application state
type App struct {
	cfg     *config.Config
	verbose bool
	logJSON bool
	agent   string
}

// NewApp creates a new App instance with default configuration
func NewApp() *App {
	return &App{
		cfg: config.NewConfig(),
	}
}

// Execute runs the root command
func Execute() {
	app := NewApp()

	rootCmd := &cobra.Command{
		Use:   "agentsh",
		Short: "An interactive shell for driving agents",
		Long: `agentsh is an interactive command shell for loading agents,
running their actions and loops, and chatting with them.

Agent definitions are JSON files in the agents directory. The shell
loads the persisted default agent at startup and drops you at a
prompt; type 'help' there to see the command set.

Examples:
  agentsh                        # start with the default agent
  agentsh --agent demo           # start with a specific agent
  agentsh --agents-dir ./bots    # use another agents directory
  agentsh -v                     # debug logging`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			app.run(cmd, args)
		},
	}

	rootCmd.Flags().BoolVarP(&app.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&app.logJSON, "log-json", false, "Log in JSON format")
	rootCmd.Flags().BoolVarP(&app.cfg.Render, "render", "r", false, "Render chat replies as markdown")
	rootCmd.Flags().StringVarP(&app.agent, "agent", "a", "", "Agent to load at startup (overrides the default record)")
	rootCmd.Flags().StringVar(&app.cfg.AgentsDir, "agents-dir", "", "Directory holding agent definition files")

	rootCmd.AddCommand(NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func (app *App) run(cmd *cobra.Command, args []string) {
	if err := app.cfg.Validate(); err != nil {
		display.ShowError(err.Error())
		os.Exit(1)
	}

	// Flags beat config/env for logging
	logging.SetLevel(logging.ParseLevel(app.cfg.LogLevel))
	if app.verbose {
		logging.SetLevel(logging.LevelDebug)
	}
	if app.logJSON || logging.ParseFormat(app.cfg.LogFormat) == logging.FormatJSON {
		logging.SetFormat(logging.FormatJSON)
	}

	if app.cfg.Render {
		if err := display.InitRenderer(); err != nil {
			logging.Warn("could not initialize markdown renderer", logging.Fields{"err": err.Error()})
		}
	}

	sh, err := shell.New(app.cfg, app.agent)
	if err != nil {
		display.ShowError(err.Error())
		os.Exit(1)
	}

	if err := sh.Run(); err != nil {
		display.ShowError(err.Error())
		os.Exit(1)
	}
}
