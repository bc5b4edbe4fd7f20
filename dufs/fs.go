package dufs

import (
	"context"
	"os"
	"syscall"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/dendrascience/dutree/fstree"
)

// blockSize is the unit st_blocks is counted in.
const blockSize = 512

// FS implements a read-only FUSE filesystem over a reconstructed tree
type FS struct {
	fsys    *fstree.Filesystem
	mounted time.Time // reported as every node's timestamp
}

// NewFS creates a filesystem serving the given tree
func NewFS(fsys *fstree.Filesystem) *FS {
	return &FS{
		fsys:    fsys,
		mounted: time.Now(),
	}
}

// Root returns the root directory node
func (f *FS) Root() (fs.Node, error) {
	return &Dir{fs: f, id: fstree.RootID}, nil
}

// node returns the FUSE node for a tree node: a Dir if the transcript
// presented it as a directory, a File otherwise.
func (f *FS) node(id fstree.NodeID) fs.Node {
	if f.fsys.Tree().PresentAsDir(id) {
		return &Dir{fs: f, id: id}
	}
	return &File{fs: f, id: id}
}

// Dir implements both Node and Handle for directories
type Dir struct {
	fs *FS
	id fstree.NodeID
}

var (
	_ fs.Node               = (*Dir)(nil)
	_ fs.NodeStringLookuper = (*Dir)(nil)
	_ fs.HandleReadDirAller = (*Dir)(nil)
)

// Attr returns directory attributes. Directories have no size of their own,
// so du over the mount adds up to the size of the tree.
func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	tree := d.fs.fsys.Tree()
	a.Inode = fstree.Inode(d.id)
	a.Mode = os.ModeDir | 0o555
	a.Nlink = 2
	for _, name := range tree.Children(d.id) {
		if child, ok := tree.Child(d.id, name); ok && tree.PresentAsDir(child) {
			a.Nlink++
		}
	}
	a.Mtime = d.fs.mounted
	a.Ctime = d.fs.mounted
	a.Atime = d.fs.mounted
	return nil
}

// Lookup resolves a child name to a node
func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	child, ok := d.fs.fsys.Tree().Child(d.id, name)
	if !ok {
		return nil, syscall.ENOENT
	}
	return d.fs.node(child), nil
}

// ReadDirAll lists directory contents in name order
func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	tree := d.fs.fsys.Tree()
	names := tree.Children(d.id)
	dirents := make([]fuse.Dirent, 0, len(names))
	for _, name := range names {
		child, _ := tree.Child(d.id, name)
		typ := fuse.DT_File
		if tree.PresentAsDir(child) {
			typ = fuse.DT_Dir
		}
		dirents = append(dirents, fuse.Dirent{
			Inode: fstree.Inode(child),
			Name:  name,
			Type:  typ,
		})
	}
	return dirents, nil
}

// File is a listed file. Its content reads back as zeros, which is all the
// transcript tells us about it.
type File struct {
	fs *FS
	id fstree.NodeID
}

var (
	_ fs.Node         = (*File)(nil)
	_ fs.HandleReader = (*File)(nil)
)

// Attr returns file attributes
func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	size := uint64(f.fs.fsys.Tree().Size(f.id))
	a.Inode = fstree.Inode(f.id)
	a.Mode = 0o444
	a.Nlink = 1
	a.Size = size
	a.Blocks = (size + blockSize - 1) / blockSize
	a.Mtime = f.fs.mounted
	a.Ctime = f.fs.mounted
	a.Atime = f.fs.mounted
	return nil
}

// Read serves zeros for the requested range, clipped to the file size
func (f *File) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	size := f.fs.fsys.Tree().Size(f.id)
	if req.Offset < 0 {
		return syscall.EINVAL
	}
	if req.Offset >= size {
		resp.Data = resp.Data[:0]
		return nil
	}
	n := min(int64(req.Size), size-req.Offset)
	resp.Data = make([]byte, n)
	return nil
}
