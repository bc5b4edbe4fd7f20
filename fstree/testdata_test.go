package fstree

import (
	"strings"
	"testing"
)

const sampleTranscript = `$ cd /
$ ls
dir a
14848514 b.txt
8504156 c.dat
dir d
$ cd a
$ ls
dir e
29116 f
2557 g
62596 h.lst
$ cd e
$ ls
584 i
$ cd ..
$ cd ..
$ cd d
$ ls
4060174 j
8033020 d.log
5626152 d.ext
7214296 k`

func sampleLines() []string {
	return strings.Split(sampleTranscript, "\n")
}

func mustBuild(t *testing.T, lines []string, opts ...Option) *Filesystem {
	t.Helper()
	fsys, err := Build(lines, opts...)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return fsys
}

func mustLookup(t *testing.T, tree *Tree, path ...string) NodeID {
	t.Helper()
	id := RootID
	for _, name := range path {
		child, ok := tree.Child(id, name)
		if !ok {
			t.Fatalf("no child %q under %s", name, tree.Path(id))
		}
		id = child
	}
	return id
}
