package fstree

// Inode maps a node to an inode number. The root gets inode 1, which is what
// FUSE expects, and every other node keeps a stable number derived from its
// arena index.
func Inode(id NodeID) uint64 {
	return uint64(id) + 1
}

// NodeFromInode is the inverse of Inode.
func NodeFromInode(inode uint64) NodeID {
	if inode == 0 {
		return noParent
	}
	return NodeID(inode - 1)
}
