// Package dufs exposes a reconstructed transcript tree as a read-only FUSE
// filesystem.
//
// Every directory of the tree becomes a directory of the mount and every
// listed file becomes a regular file whose size is the size from the
// transcript. File contents read back as zeros. Directories report no size of
// their own, so running du on the mount gives the same totals as the size
// queries of package fstree:
//
//	$ du -sb /mnt/transcript
//	48381165	/mnt/transcript
//
// Inode numbers come from fstree.Inode and are stable for the lifetime of the
// mount. The main entry point is Mount, which serves until its context is
// cancelled.
package dufs
