// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for uberjar.
//
// This package implements the Cobra command hierarchy: the root
// command, the build command that runs the merge-and-bundle pipeline,
// and the config inspection commands.
package cmd
