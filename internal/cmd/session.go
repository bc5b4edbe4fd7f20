package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/dendrascience/dutree/fstree"
	"github.com/dendrascience/dutree/internal/config"
	"github.com/dendrascience/dutree/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// session holds what every command needs once flags are parsed: the merged
// configuration and a logger built from it.
type session struct {
	cfg config.Config
	log *zap.Logger
}

// newSession loads the configuration file named by --config and lays any
// explicitly set flags over it.
func newSession(cmd *cobra.Command) (*session, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if verbose, _ := flags.GetBool("verbose"); verbose {
		cfg.Log.Level = "debug"
	}
	if flags.Changed("log-format") {
		cfg.Log.Format, _ = flags.GetString("log-format")
	}
	if flags.Changed("strict") {
		cfg.Build.Strict, _ = flags.GetBool("strict")
	}
	if flags.Changed("threshold") {
		cfg.Query.Threshold, _ = flags.GetInt64("threshold")
	}
	if flags.Changed("capacity") {
		cfg.Query.Capacity, _ = flags.GetInt64("capacity")
	}
	if flags.Changed("target") {
		cfg.Query.Target, _ = flags.GetInt64("target")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, log: log}, nil
}

func (s *session) close() {
	// stderr cannot always be synced; nothing useful to do about it
	_ = s.log.Sync()
}

// build reads the transcript named by args (stdin when absent or "-") and
// replays it with the configured policy.
func (s *session) build(cmd *cobra.Command, args []string) (*fstree.Filesystem, error) {
	r, name, err := openTranscript(cmd, args)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	s.log.Debug("building tree",
		zap.String("transcript", name),
		zap.String("policy", s.cfg.Policy().String()),
	)
	fsys, err := fstree.BuildReader(r,
		fstree.WithPolicy(s.cfg.Policy()),
		fstree.WithLogger(s.log.With(zap.String("transcript", name))),
	)
	if err != nil {
		return nil, fmt.Errorf("building tree from %s: %w", name, err)
	}
	return fsys, nil
}

func openTranscript(cmd *cobra.Command, args []string) (io.ReadCloser, string, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), "stdin", nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("failed to open transcript: %w", err)
	}
	return f, args[0], nil
}

// addStrictFlag registers --strict on commands that build a tree.
func addStrictFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("strict", false, "Fail on the first malformed transcript line instead of skipping it")
}
