package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dendrascience/dutree/fstree"
	"github.com/dendrascience/dutree/internal/config"
	"github.com/spf13/cobra"
)

// NewReportCmd creates and returns the report subcommand for the dutree CLI.
// It runs both size queries against a transcript.
func NewReportCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "report [FILE]",
		Short: "Report directory sizes for a transcript",
		Long: `Rebuild the tree described by a transcript and answer two questions:

  - the total size of all directories smaller than --threshold
  - the smallest directory that, once deleted, leaves --target bytes free
    on a disk of --capacity bytes

Directories are counted every time they appear, so nested small directories
contribute to the sum more than once, just as they would if each were
measured with du on its own.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()
			return runReport(cmd, s, args, asJSON)
		},
	}

	cmd.Flags().Int64P("threshold", "t", config.DefaultThreshold, "Sum directories strictly smaller than this size")
	cmd.Flags().Int64P("capacity", "c", config.DefaultCapacity, "Total capacity of the disk")
	cmd.Flags().Int64P("target", "g", config.DefaultTarget, "Free space required after deleting one directory")
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Output the report as JSON")
	addStrictFlag(cmd)

	return cmd
}

type jsonReport struct {
	fstree.Report
	Warnings []fstree.Warning `json:"warnings"`
}

func runReport(cmd *cobra.Command, s *session, args []string, asJSON bool) error {
	fsys, err := s.build(cmd, args)
	if err != nil {
		return err
	}
	q := s.cfg.Query
	report, err := fsys.Report(q.Threshold, q.Capacity, q.Target)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		warnings := fsys.Warnings()
		if warnings == nil {
			warnings = []fstree.Warning{}
		}
		return enc.Encode(jsonReport{Report: report, Warnings: warnings})
	}
	printReport(out, report, len(fsys.Warnings()))
	return nil
}

func printReport(w io.Writer, r fstree.Report, warnings int) {
	fmt.Fprintf(w, "Total size:          %d\n", r.RootSize)
	fmt.Fprintf(w, "Directories:         %d\n", r.Directories)
	fmt.Fprintf(w, "Files:               %d\n", r.Files)
	fmt.Fprintf(w, "Sum below %-10d %d\n", r.Threshold, r.SumBelow)
	fmt.Fprintf(w, "Unused space:        %d of %d\n", r.Unused, r.Capacity)
	fmt.Fprintf(w, "Space to free:       %d (target %d)\n", max(r.Deficit, 0), r.Target)
	fmt.Fprintf(w, "Smallest to delete:  %s (%d)\n", r.FreePath, r.FreeSize)
	if warnings > 0 {
		fmt.Fprintf(w, "Warnings:            %d (run validate for details)\n", warnings)
	}
}
