package fstree

import (
	"cmp"
	"fmt"
	"slices"
)

// Filesystem is the result of a successful Build. It owns the tree and is
// never mutated afterwards.
type Filesystem struct {
	tree     *Tree
	warnings []Warning
}

// Stats counts the entries of a Filesystem.
type Stats struct {
	Directories int `json:"directories"`
	Files       int `json:"files"`
}

// Report bundles the answers the CLI prints for a transcript.
type Report struct {
	RootSize    int64  `json:"root_size"`
	Directories int    `json:"directories"`
	Files       int    `json:"files"`
	Threshold   int64  `json:"threshold"`
	SumBelow    int64  `json:"sum_below"`
	Capacity    int64  `json:"capacity"`
	Target      int64  `json:"target"`
	Unused      int64  `json:"unused"`
	Deficit     int64  `json:"deficit"`
	FreeSize    int64  `json:"free_size"`
	FreePath    string `json:"free_path"`
}

// Tree returns the underlying tree for read-only inspection.
func (f *Filesystem) Tree() *Tree {
	return f.tree
}

// Root returns the ID of the root directory.
func (f *Filesystem) Root() NodeID {
	return RootID
}

// Size returns the total size of everything in the filesystem.
func (f *Filesystem) Size() int64 {
	return f.tree.Size(RootID)
}

// Warnings returns the problems a permissive build recovered from.
func (f *Filesystem) Warnings() []Warning {
	return slices.Clone(f.warnings)
}

// Dirs returns every directory, starting with the root if it has children.
func (f *Filesystem) Dirs() []Dir {
	return f.tree.FindDirs(RootID)
}

// Stats counts directories (nodes with children) and files (every other node
// except the root).
func (f *Filesystem) Stats() Stats {
	var s Stats
	for id := range f.tree.Len() {
		switch {
		case f.tree.IsDir(NodeID(id)):
			s.Directories++
		case NodeID(id) != RootID:
			s.Files++
		}
	}
	return s
}

// SumBelow returns the total size of all directories strictly smaller than
// threshold. It returns 0 when no directory qualifies.
func (f *Filesystem) SumBelow(threshold int64) int64 {
	var total int64
	for _, d := range f.Dirs() {
		if d.Size < threshold {
			total += d.Size
		}
	}
	return total
}

// SmallestDirAtLeast returns the smallest directory whose size is at least
// threshold. A non-positive threshold is treated as zero, so the smallest
// directory always qualifies. It fails with ErrNoCandidate if nothing does.
func (f *Filesystem) SmallestDirAtLeast(threshold int64) (Dir, error) {
	threshold = max(threshold, 0)
	dirs := f.Dirs()
	slices.SortStableFunc(dirs, func(a, b Dir) int {
		return cmp.Compare(a.Size, b.Size)
	})
	for _, d := range dirs {
		if d.Size >= threshold {
			return d, nil
		}
	}
	return Dir{}, fmt.Errorf("%w: need at least %d, %d directories considered", ErrNoCandidate, threshold, len(dirs))
}

// SmallestAtLeast is SmallestDirAtLeast returning only the size.
func (f *Filesystem) SmallestAtLeast(threshold int64) (int64, error) {
	d, err := f.SmallestDirAtLeast(threshold)
	if err != nil {
		return 0, err
	}
	return d.Size, nil
}

// Deficit returns how much more space must be freed so that a disk of the
// given capacity has at least target bytes unused. It may be zero or negative
// when enough space is already free.
func (f *Filesystem) Deficit(capacity, target int64) (int64, error) {
	if capacity < 0 || target < 0 {
		return 0, fmt.Errorf("%w: capacity=%d target=%d", ErrInvalidCapacity, capacity, target)
	}
	unused := capacity - f.Size()
	return target - unused, nil
}

// FreeDir returns the smallest directory whose deletion would leave at least
// target bytes free on a disk of the given capacity.
func (f *Filesystem) FreeDir(capacity, target int64) (Dir, error) {
	deficit, err := f.Deficit(capacity, target)
	if err != nil {
		return Dir{}, err
	}
	return f.SmallestDirAtLeast(deficit)
}

// FreeSize is FreeDir returning only the size.
func (f *Filesystem) FreeSize(capacity, target int64) (int64, error) {
	d, err := f.FreeDir(capacity, target)
	if err != nil {
		return 0, err
	}
	return d.Size, nil
}

// Report answers both queries in one go.
func (f *Filesystem) Report(threshold, capacity, target int64) (Report, error) {
	deficit, err := f.Deficit(capacity, target)
	if err != nil {
		return Report{}, err
	}
	free, err := f.SmallestDirAtLeast(deficit)
	if err != nil {
		return Report{}, err
	}
	stats := f.Stats()
	size := f.Size()
	return Report{
		RootSize:    size,
		Directories: stats.Directories,
		Files:       stats.Files,
		Threshold:   threshold,
		SumBelow:    f.SumBelow(threshold),
		Capacity:    capacity,
		Target:      target,
		Unused:      capacity - size,
		Deficit:     deficit,
		FreeSize:    free.Size,
		FreePath:    free.Path,
	}, nil
}
