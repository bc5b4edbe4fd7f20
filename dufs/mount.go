package dufs

import (
	"context"
	"fmt"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/dendrascience/dutree/fstree"
	"go.uber.org/zap"
)

// Mount serves fsys read-only at mountpoint until ctx is cancelled or the
// kernel drops the connection.
func Mount(ctx context.Context, fsys *fstree.Filesystem, mountpoint string, log *zap.Logger) error {
	c, err := fuse.Mount(
		mountpoint,
		fuse.FSName("dutree"),
		fuse.Subtype("dutree"),
		fuse.ReadOnly(),
	)
	if err != nil {
		return fmt.Errorf("mounting %s: %w", mountpoint, err)
	}
	defer c.Close()

	done := make(chan error, 1)
	go func() {
		done <- fs.Serve(c, NewFS(fsys))
	}()
	log.Info("tree mounted",
		zap.String("mountpoint", mountpoint),
		zap.Int64("size", fsys.Size()),
		zap.Int("nodes", fsys.Tree().Len()),
	)

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		log.Info("received shutdown signal, unmounting", zap.String("mountpoint", mountpoint))
		if err := fuse.Unmount(mountpoint); err != nil {
			return fmt.Errorf("unmounting %s: %w", mountpoint, err)
		}
		return <-done
	}
}
