package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dendrascience/dutree/dufs"
	"github.com/dendrascience/dutree/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewMountCmd creates and returns the mount subcommand for the dutree CLI.
// It serves the reconstructed tree as a read-only FUSE filesystem.
func NewMountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mount FILE MOUNTPOINT",
		Short: "Mount the reconstructed tree read-only",
		Long: `Mount the tree rebuilt from a transcript at the specified mountpoint.

FILE is the transcript ("-" reads standard input).
MOUNTPOINT is an existing directory where the tree will appear.

Files read back as zeros of their listed size, so du, find and ls work on
the mount as they would have on the original filesystem. Interrupt the
command to unmount.`,
		Args: cobra.ExactArgs(2),
		RunE: runMount,
	}
	addStrictFlag(cmd)

	return cmd
}

func runMount(cmd *cobra.Command, args []string) error {
	mountpoint := args[1]
	info, err := os.Stat(mountpoint)
	if err != nil {
		return fmt.Errorf("invalid mountpoint: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("invalid mountpoint: %s is not a directory", mountpoint)
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	fsys, err := s.build(cmd, args[:1])
	if err != nil {
		return err
	}

	s.log.Info("dutree starting",
		zap.String("version", version.Get().Version),
		zap.String("mountpoint", mountpoint),
		zap.Int("nodes", fsys.Tree().Len()),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return dufs.Mount(ctx, fsys, mountpoint, s.log)
}
