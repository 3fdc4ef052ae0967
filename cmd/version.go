package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags
var Version = "dev"

// NewVersionCmd creates the version subcommand
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the agentsh version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("agentsh %s\n", Version)
		},
	}
}
