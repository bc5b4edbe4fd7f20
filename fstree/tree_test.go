package fstree

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewTree_RootOnly(t *testing.T) {
	tree := NewTree()

	if tree.Len() != 1 {
		t.Fatalf("expected 1 node, got %d", tree.Len())
	}
	if _, ok := tree.Parent(RootID); ok {
		t.Error("root should not have a parent")
	}
	if tree.Name(RootID) != "/" {
		t.Errorf("root name = %q, want /", tree.Name(RootID))
	}
	if tree.Size(RootID) != 0 {
		t.Errorf("empty root size = %d, want 0", tree.Size(RootID))
	}
	if dirs := tree.FindDirs(RootID); len(dirs) != 0 {
		t.Errorf("empty root should not be listed as a directory, got %v", dirs)
	}
}

func TestTree_SizeAggregatesChildren(t *testing.T) {
	tree := NewTree()
	a, _ := tree.ensureChild(RootID, "a")
	f, _ := tree.ensureChild(a, "f")
	g, _ := tree.ensureChild(a, "g")
	tree.nodes[f].size = 100
	tree.nodes[g].size = 23

	if got := tree.Size(a); got != 123 {
		t.Errorf("Size(a) = %d, want 123", got)
	}
	if got := tree.Size(RootID); got != 123 {
		t.Errorf("Size(root) = %d, want 123", got)
	}

	// a child added later is picked up without any invalidation
	h, _ := tree.ensureChild(RootID, "h")
	tree.nodes[h].size = 7
	if got := tree.Size(RootID); got != 130 {
		t.Errorf("Size(root) after adding h = %d, want 130", got)
	}
}

func TestTree_StoredSizeIgnoredOnceChildrenExist(t *testing.T) {
	tree := NewTree()
	a, _ := tree.ensureChild(RootID, "a")
	tree.nodes[a].size = 999
	b, _ := tree.ensureChild(a, "b")
	tree.nodes[b].size = 1

	if got := tree.Size(a); got != 1 {
		t.Errorf("Size(a) = %d, want 1", got)
	}
}

func TestTree_EnsureChildReusesExisting(t *testing.T) {
	tree := NewTree()
	first, created := tree.ensureChild(RootID, "a")
	if !created {
		t.Error("first ensureChild should create")
	}
	second, created := tree.ensureChild(RootID, "a")
	if created {
		t.Error("second ensureChild should reuse")
	}
	if first != second {
		t.Errorf("ensureChild returned %d then %d", first, second)
	}
	if tree.Len() != 2 {
		t.Errorf("expected 2 nodes, got %d", tree.Len())
	}
}

func TestTree_Path(t *testing.T) {
	fsys := mustBuild(t, sampleLines())
	tree := fsys.Tree()

	tests := []struct {
		path []string
		want string
	}{
		{nil, "/"},
		{[]string{"a"}, "/a"},
		{[]string{"a", "e"}, "/a/e"},
		{[]string{"a", "e", "i"}, "/a/e/i"},
		{[]string{"d", "d.log"}, "/d/d.log"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			id := mustLookup(t, tree, tt.path...)
			if got := tree.Path(id); got != tt.want {
				t.Errorf("Path = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTree_ParentChainEndsAtRoot(t *testing.T) {
	fsys := mustBuild(t, sampleLines())
	tree := fsys.Tree()

	for id := range tree.Len() {
		seen := map[NodeID]bool{}
		cur := NodeID(id)
		for {
			if seen[cur] {
				t.Fatalf("cycle through node %d", cur)
			}
			seen[cur] = true
			parent, ok := tree.Parent(cur)
			if !ok {
				break
			}
			cur = parent
		}
		if cur != RootID {
			t.Errorf("node %d ends at %d, not the root", id, cur)
		}
	}
}

func TestTree_FindDirs(t *testing.T) {
	fsys := mustBuild(t, sampleLines())
	tree := fsys.Tree()

	got := tree.FindDirs(RootID)
	want := []Dir{
		{ID: RootID, Path: "/", Size: 48381165},
		{ID: mustLookup(t, tree, "a"), Path: "/a", Size: 94853},
		{ID: mustLookup(t, tree, "a", "e"), Path: "/a/e", Size: 584},
		{ID: mustLookup(t, tree, "d"), Path: "/d", Size: 24933642},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FindDirs mismatch (-want +got):\n%s", diff)
	}

	for _, d := range got {
		if !tree.IsDir(d.ID) {
			t.Errorf("%s has no children but was listed", d.Path)
		}
		var sum int64
		for _, name := range tree.Children(d.ID) {
			child, _ := tree.Child(d.ID, name)
			sum += tree.Size(child)
		}
		if sum != d.Size {
			t.Errorf("%s size %d, children sum to %d", d.Path, d.Size, sum)
		}
	}
}

func TestTree_FindDirsIdempotent(t *testing.T) {
	fsys := mustBuild(t, sampleLines())
	tree := fsys.Tree()

	first := tree.FindDirs(RootID)
	firstSize := tree.Size(RootID)
	for range 3 {
		if diff := cmp.Diff(first, tree.FindDirs(RootID)); diff != "" {
			t.Fatalf("FindDirs changed between calls:\n%s", diff)
		}
		if got := tree.Size(RootID); got != firstSize {
			t.Fatalf("Size changed between calls: %d then %d", firstSize, got)
		}
	}
}

func TestTree_GetUnknownNode(t *testing.T) {
	tree := NewTree()
	for _, id := range []NodeID{-1, 1, 42} {
		if _, err := tree.Get(id); !errors.Is(err, ErrNodeNotFound) {
			t.Errorf("Get(%d) error = %v, want ErrNodeNotFound", id, err)
		}
	}
	if err := tree.Walk(7, func(NodeID, int) error { return nil }); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("Walk(7) error = %v, want ErrNodeNotFound", err)
	}
}

func TestTree_Get(t *testing.T) {
	fsys := mustBuild(t, sampleLines())
	tree := fsys.Tree()
	a := mustLookup(t, tree, "a")

	got, err := tree.Get(a)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	want := Entry{ID: a, Name: "a", Kind: KindDir, Size: 94853, Parent: RootID, Children: 4}
	if got != want {
		t.Errorf("Get(a) = %+v, want %+v", got, want)
	}
}

func TestTree_WalkOrder(t *testing.T) {
	fsys := mustBuild(t, []string{"$ ls", "dir b", "1 a", "$ cd b", "2 c"})
	tree := fsys.Tree()

	var visited []string
	err := tree.Walk(RootID, func(id NodeID, depth int) error {
		visited = append(visited, tree.Path(id))
		return nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	want := []string{"/", "/a", "/b", "/b/c"}
	if diff := cmp.Diff(want, visited); diff != "" {
		t.Errorf("Walk order mismatch (-want +got):\n%s", diff)
	}
}

func TestInode_RoundTrip(t *testing.T) {
	if Inode(RootID) != 1 {
		t.Errorf("root inode = %d, want 1", Inode(RootID))
	}
	for _, id := range []NodeID{0, 1, 2, 1000} {
		if got := NodeFromInode(Inode(id)); got != id {
			t.Errorf("NodeFromInode(Inode(%d)) = %d", id, got)
		}
	}
	if NodeFromInode(0) != noParent {
		t.Error("inode 0 should not map to a node")
	}
}
