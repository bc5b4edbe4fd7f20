package cmd

import (
	"github.com/dendrascience/dutree/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the dutree CLI.
// It sets up all subcommands, command groups, and global flags.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dutree",
		Short: "dutree - disk usage from a recorded cd/ls terminal session",
		Long: `dutree rebuilds a directory tree from the transcript of a terminal session
that explored a filesystem with cd and ls, then answers disk-usage questions
about it the way du would.

Use subcommands to perform different operations:
  - report: Sum small directories and pick a directory to delete
  - tree: Print the reconstructed tree with sizes
  - count: Count directories and files
  - validate: Check a transcript for malformed lines
  - seed: Generate a random transcript for testing
  - mount: Mount the reconstructed tree read-only via FUSE
  - version: Show version information`,
		Version: version.Get().String(),
	}

	groupAnalysis := "analysis"
	groupFilesystem := "filesystem"
	groupUtilities := "utilities"

	// Add command groups for better organization
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupAnalysis,
		Title: "Analysis Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupFilesystem,
		Title: "Filesystem Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	rootCmd.PersistentFlags().String("config", "", "Path to a TOML configuration file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("log-format", "console", "Log format: console or json")

	reportCmd := NewReportCmd()
	treeCmd := NewTreeCmd()
	countCmd := NewCountCmd()
	validateCmd := NewValidateCmd()
	seedCmd := NewSeedCmd()
	mountCmd := NewMountCmd()
	versionCmd := NewVersionCmd()

	reportCmd.GroupID = groupAnalysis
	treeCmd.GroupID = groupAnalysis
	countCmd.GroupID = groupAnalysis
	mountCmd.GroupID = groupFilesystem
	validateCmd.GroupID = groupUtilities
	seedCmd.GroupID = groupUtilities
	versionCmd.GroupID = groupUtilities

	// Add subcommands
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(mountCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}
