// SPDX-License-Identifier: MPL-2.0

// Package jartool drives the external `jar` archiver as a subprocess.
//
// The archive format itself is never touched here: extraction, creation
// and updating are delegated to the tool, and its exit status is the
// only contract surface. Every invocation runs with the working
// directory set to the directory being packed or unpacked, matching how
// `jar xf` and `jar cfe` resolve relative entries.
package jartool

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// DefaultCommand is the archiver used when no override is configured.
const DefaultCommand = "jar"

// Tool invokes the external archiver.
type Tool struct {
	// Command is the archiver executable, either a bare name resolved
	// via PATH or an absolute path (e.g. a specific JDK's bin/jar).
	Command string
	// Stdout and Stderr receive the subprocess output. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Tool for the given archiver command. An empty command
// falls back to DefaultCommand.
func New(command string) *Tool {
	if command == "" {
		command = DefaultCommand
	}
	return &Tool{Command: command}
}

// ExtractAll unpacks every entry of the archive into dir, which must
// already exist.
func (t *Tool) ExtractAll(ctx context.Context, archive, dir string) error {
	return t.run(ctx, dir, "xf", archive)
}

// Create builds an archive at path from the full contents of dir,
// recording mainClass as the entry point in the generated manifest.
func (t *Tool) Create(ctx context.Context, path, mainClass, dir string) error {
	return t.run(ctx, dir, "cfe", path, mainClass, ".")
}

// Update layers the full contents of dir on top of an existing archive
// at path, overwriting entries that already exist.
func (t *Tool) Update(ctx context.Context, path, dir string) error {
	return t.run(ctx, dir, "uf", path, ".")
}

func (t *Tool) run(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, t.Command, args...)
	cmd.Dir = dir
	cmd.Stdout = t.Stdout
	cmd.Stderr = t.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s (in %s): %w", t.Command, strings.Join(args, " "), dir, err)
	}
	return nil
}
