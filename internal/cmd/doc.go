// Package cmd provides the command-line interface implementation for dutree.
//
// This package contains all the subcommand implementations for the dutree CLI
// tool. It uses the Cobra library for command structure and Fang for styled
// help and error output.
//
// The package is organized into the following commands:
//   - root: Main command coordinator, global flags and configuration
//   - report: Size queries over a transcript
//   - tree: Indented rendering of the reconstructed tree
//   - count: Directory and file counts
//   - validate: Listing every problem in a transcript
//   - seed: Synthetic transcript generation
//   - mount: Read-only FUSE view of a transcript
//   - version: Build information
//
// Each command is implemented as a separate file with its own constructor
// function that returns a *cobra.Command. Commands that read a transcript take
// an optional FILE argument and read stdin when it is missing or "-".
package cmd
