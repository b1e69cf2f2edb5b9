package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the agro command tree. Without a subcommand it
// serves the API.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "agro",
		Short:         "Rural producer registry",
		Long:          "Registry of rural producers, their properties and planted crops, with dashboard rollups.",
		SilenceUsage: true,
		RunE:         runServe,
	}

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewSeedCommand())
	cmd.AddCommand(NewExportCommand())
	return cmd
}
