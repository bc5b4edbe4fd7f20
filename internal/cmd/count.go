package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCountCmd creates and returns the count subcommand for the dutree CLI.
// It counts the directories and files a transcript describes.
func NewCountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count [FILE]",
		Short: "Count directories and files in a transcript",
		Long: `Count the directories and files in the tree rebuilt from a transcript.

A directory is any node with at least one child, the root included. Every
other node counts as a file, so a directory that was listed but never
entered is counted as a file of size zero.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCount,
	}
	addStrictFlag(cmd)

	return cmd
}

func runCount(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	fsys, err := s.build(cmd, args)
	if err != nil {
		return err
	}
	stats := fsys.Stats()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Directories: %d\n", stats.Directories)
	fmt.Fprintf(out, "Files: %d\n", stats.Files)
	fmt.Fprintf(out, "Total size: %d\n", fsys.Size())
	return nil
}
