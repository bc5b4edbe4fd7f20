package cmd

import (
	"fmt"

	"github.com/dendrascience/dutree/fstree"
	"github.com/spf13/cobra"
	"github.com/taigrr/colorhash"
)

// NewTreeCmd creates and returns the tree subcommand for the dutree CLI.
// It prints the reconstructed tree with the size of every node.
func NewTreeCmd() *cobra.Command {
	var (
		dirsOnly bool
		color    bool
	)

	cmd := &cobra.Command{
		Use:   "tree [FILE]",
		Short: "Print the reconstructed tree with sizes",
		Long: `Print the tree rebuilt from a transcript, one node per line, children in
name order. Directories show the total size of everything below them.

With --color, each directory name is painted with a color derived from its
name, so the same directory keeps the same color across runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			fsys, err := s.build(cmd, args)
			if err != nil {
				return err
			}
			opts := fstree.RenderOptions{DirsOnly: dirsOnly}
			if color {
				opts.Decorate = colorize
			}
			return fsys.Render(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().BoolVarP(&dirsOnly, "dirs-only", "d", false, "Only print directories")
	cmd.Flags().BoolVar(&color, "color", false, "Color directory names")
	addStrictFlag(cmd)

	return cmd
}

// colorize wraps directory names in a 256-color escape picked from the
// 6x6x6 cube (codes 16 to 231).
func colorize(name string, dir bool) string {
	if !dir {
		return name
	}
	code := colorhash.HashString(name) % 216
	if code < 0 {
		code = -code
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", 16+code, name)
}
