// Package fstree reconstructs a directory tree from a terminal transcript and
// answers disk-usage questions about it.
//
// A transcript is the output of a shell session that walks a filesystem with
// cd and ls:
//
//	$ cd /
//	$ ls
//	dir a
//	14848514 b.txt
//	$ cd a
//	$ ls
//	29116 f
//
// Build replays such a transcript line by line against a cursor, creating
// nodes on demand, and returns a read-only Filesystem.
//
// Key Components:
//
// Tree:
//   - Arena of nodes addressed by NodeID; parents are plain indices
//   - Directory sizes are recomputed from their children on every call
//   - FindDirs enumerates every node that has at least one child
//
// Builder:
//   - ParseLine classifies a single line into a Command
//   - Permissive policy logs problems through zap and keeps going
//   - Strict policy aborts on the first malformed line
//
// Queries:
//   - SumBelow sums every directory smaller than a threshold
//   - SmallestAtLeast finds the smallest directory reaching a threshold
//   - FreeSize picks the directory whose removal frees enough space
//
// A Filesystem is never mutated after Build returns, so its queries are safe
// to call from multiple goroutines.
package fstree
