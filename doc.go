// Package main provides the dutree command-line interface.
//
// dutree rebuilds a directory tree from the transcript of a terminal session
// that explored a filesystem with cd and ls, and answers disk-usage
// questions about it: how much space the small directories take up, and
// which single directory to delete to make room.
//
// The main binary supports multiple subcommands:
//   - report: Sum small directories and pick a directory to delete
//   - tree: Print the reconstructed tree with sizes
//   - count: Count directories and files
//   - validate: Check a transcript for malformed lines
//   - seed: Generate a random transcript for testing
//   - mount: Mount the reconstructed tree read-only via FUSE
package main
