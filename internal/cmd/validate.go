package cmd

import (
	"errors"
	"fmt"

	"github.com/dendrascience/dutree/fstree"
	"github.com/spf13/cobra"
)

// NewValidateCmd creates and returns the validate subcommand for the dutree CLI.
// It checks a transcript for lines a strict build would reject.
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [FILE]",
		Short: "Check a transcript for malformed lines",
		Long: `Replay a transcript and report every line that could not be applied.

Unlike --strict on the other commands, validate does not stop at the first
problem: it lists them all and exits non-zero if any were found. Changing
into a directory that was never listed is not a problem, since the
directory is created on the fly; with --verbose those lines are shown too.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runValidate,
	}

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	// collect everything in one pass
	s.cfg.Build.Strict = false
	fsys, err := s.build(cmd, args)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	out := cmd.OutOrStdout()

	var problems []error
	var notes int
	for _, w := range fsys.Warnings() {
		if errors.Is(w.Err, fstree.ErrImplicitDirectory) {
			notes++
			if verbose {
				fmt.Fprintf(out, "note: %s\n", w)
			}
			continue
		}
		fmt.Fprintf(out, "error: %s\n", w)
		problems = append(problems, fmt.Errorf("line %d: %w", w.Line, w.Err))
	}

	stats := fsys.Stats()
	fmt.Fprintf(out, "Checked %d nodes (%d directories, %d files): %d problems, %d implicit directories\n",
		fsys.Tree().Len(), stats.Directories, stats.Files, len(problems), notes)

	if len(problems) > 0 {
		return fmt.Errorf("transcript has %d problems: %w", len(problems), errors.Join(problems...))
	}
	return nil
}
