package fstree

import (
	"fmt"
	"io"
	"strings"
)

// RenderOptions controls Render.
type RenderOptions struct {
	// DirsOnly hides every node that is not presented as a directory.
	DirsOnly bool
	// Decorate, if set, rewrites each name before it is printed.
	Decorate func(name string, dir bool) string
}

// Render prints the tree as an indented listing:
//
//	- / (dir, size=48381165)
//	  - a (dir, size=94853)
//	    - e (dir, size=584)
//	      - i (file, size=584)
func (f *Filesystem) Render(w io.Writer, opts RenderOptions) error {
	return f.tree.Walk(RootID, func(id NodeID, depth int) error {
		dir := f.tree.PresentAsDir(id)
		if opts.DirsOnly && !dir {
			return nil
		}
		name := f.tree.Name(id)
		if opts.Decorate != nil {
			name = opts.Decorate(name, dir)
		}
		kind := "file"
		if dir {
			kind = "dir"
		}
		_, err := fmt.Fprintf(w, "%s- %s (%s, size=%d)\n", strings.Repeat("  ", depth), name, kind, f.tree.Size(id))
		return err
	})
}
