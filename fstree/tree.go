package fstree

import (
	"fmt"
	"slices"
	"strings"
)

// NodeID addresses a node inside a Tree. IDs are stable for the lifetime of
// the tree and are never reused.
type NodeID int

// RootID is the ID of the root directory of every Tree.
const RootID NodeID = 0

const noParent NodeID = -1

// Kind records what the transcript declared a node to be.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindDir
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindDir:
		return "dir"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

type (
	node struct {
		name     string
		size     int64 // authoritative only while the node has no children
		kind     Kind
		parent   NodeID
		children map[string]NodeID
	}
	// Tree is an arena of nodes. The parent of a node is stored as an index,
	// so the only ownership edges are the arena itself.
	Tree struct {
		nodes []node
	}
	// Entry is a read-only snapshot of a single node.
	Entry struct {
		ID       NodeID
		Name     string
		Kind     Kind
		Size     int64
		Parent   NodeID
		Children int
	}
	// Dir is a snapshot of a directory produced by FindDirs.
	Dir struct {
		ID   NodeID `json:"-"`
		Path string `json:"path"`
		Size int64  `json:"size"`
	}
)

// NewTree returns a tree holding only the root directory.
func NewTree() *Tree {
	return &Tree{
		nodes: []node{{
			name:   "/",
			kind:   KindDir,
			parent: noParent,
		}},
	}
}

func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Len returns the number of nodes in the tree, including the root.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Get returns a snapshot of the node with the given ID.
func (t *Tree) Get(id NodeID) (Entry, error) {
	if !t.valid(id) {
		return Entry{}, fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	n := t.nodes[id]
	return Entry{
		ID:       id,
		Name:     n.name,
		Kind:     n.kind,
		Size:     t.Size(id),
		Parent:   n.parent,
		Children: len(n.children),
	}, nil
}

// Size returns the size of a node. A node with children reports the sum of
// its children's sizes, recomputed on every call; a node without children
// reports its stored size. An empty directory therefore reports zero.
func (t *Tree) Size(id NodeID) int64 {
	if !t.valid(id) {
		return 0
	}
	n := &t.nodes[id]
	if len(n.children) == 0 {
		return n.size
	}
	var total int64
	for _, child := range n.children {
		total += t.Size(child)
	}
	return total
}

// IsDir reports whether the node has at least one child. This is the only
// notion of "directory" the size queries use.
func (t *Tree) IsDir(id NodeID) bool {
	return t.valid(id) && len(t.nodes[id].children) > 0
}

// PresentAsDir reports whether the node should be shown as a directory: it
// either has children or the transcript declared it one.
func (t *Tree) PresentAsDir(id NodeID) bool {
	return t.IsDir(id) || t.Kind(id) == KindDir
}

// Kind returns what the transcript declared the node to be.
func (t *Tree) Kind(id NodeID) Kind {
	if !t.valid(id) {
		return KindUnknown
	}
	return t.nodes[id].kind
}

// Name returns the node's own name. The root is named "/".
func (t *Tree) Name(id NodeID) string {
	if !t.valid(id) {
		return ""
	}
	return t.nodes[id].name
}

// Parent returns the parent of a node. It returns false for the root.
func (t *Tree) Parent(id NodeID) (NodeID, bool) {
	if !t.valid(id) || t.nodes[id].parent == noParent {
		return noParent, false
	}
	return t.nodes[id].parent, true
}

// Child looks up a direct child by name.
func (t *Tree) Child(id NodeID, name string) (NodeID, bool) {
	if !t.valid(id) {
		return noParent, false
	}
	child, ok := t.nodes[id].children[name]
	return child, ok
}

// Children returns the names of a node's children in sorted order.
func (t *Tree) Children(id NodeID) []string {
	if !t.valid(id) {
		return nil
	}
	names := make([]string, 0, len(t.nodes[id].children))
	for name := range t.nodes[id].children {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Path returns the absolute slash-separated path of a node.
func (t *Tree) Path(id NodeID) string {
	if !t.valid(id) {
		return ""
	}
	var parts []string
	for cur := id; cur != RootID; cur = t.nodes[cur].parent {
		parts = append(parts, t.nodes[cur].name)
	}
	slices.Reverse(parts)
	return "/" + strings.Join(parts, "/")
}

// FindDirs returns the node, if it has at least one child, followed by every
// directory beneath it. Nodes without children are treated as files and never
// appear. Directories are visited in pre-order with children in name order,
// but callers should not rely on the order.
func (t *Tree) FindDirs(id NodeID) []Dir {
	var dirs []Dir
	t.findDirs(id, &dirs)
	return dirs
}

func (t *Tree) findDirs(id NodeID, dirs *[]Dir) {
	if !t.IsDir(id) {
		return
	}
	*dirs = append(*dirs, Dir{ID: id, Path: t.Path(id), Size: t.Size(id)})
	n := &t.nodes[id]
	for _, name := range t.Children(id) {
		t.findDirs(n.children[name], dirs)
	}
}

// Walk calls fn for the node and every descendant in pre-order, children in
// name order. depth is 0 for id itself. Returning an error stops the walk.
func (t *Tree) Walk(id NodeID, fn func(id NodeID, depth int) error) error {
	if !t.valid(id) {
		return fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	return t.walk(id, 0, fn)
}

func (t *Tree) walk(id NodeID, depth int, fn func(NodeID, int) error) error {
	if err := fn(id, depth); err != nil {
		return err
	}
	n := &t.nodes[id]
	for _, name := range t.Children(id) {
		if err := t.walk(n.children[name], depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// ensureChild returns the child of parent called name, creating an empty node
// if there is none. created reports whether a node was added.
func (t *Tree) ensureChild(parent NodeID, name string) (id NodeID, created bool) {
	p := &t.nodes[parent]
	if child, ok := p.children[name]; ok {
		t.nodes[child].parent = parent
		return child, false
	}
	id = NodeID(len(t.nodes))
	if p.children == nil {
		p.children = make(map[string]NodeID)
	}
	p.children[name] = id
	// p is invalid after this append
	t.nodes = append(t.nodes, node{name: name, parent: parent})
	return id, true
}
