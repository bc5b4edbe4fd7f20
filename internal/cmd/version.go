package cmd

import (
	"encoding/json"

	"github.com/dendrascience/dutree/version"
	"github.com/spf13/cobra"
)

// NewVersionCmd creates and returns the version subcommand for the dutree CLI.
func NewVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(info)
			}
			info.Print(cmd.OutOrStdout(), "dutree")
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output version information as JSON")

	return cmd
}
