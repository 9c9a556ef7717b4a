// SPDX-License-Identifier: MPL-2.0

// Package assemble turns a merged plugin tree into final executable
// jars and, optionally, self-executing launcher scripts.
package assemble

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"uberjar-cli/internal/merge"
)

// Archiver creates and updates jar archives. *jartool.Tool is the
// production implementation.
type Archiver interface {
	Create(ctx context.Context, path, mainClass, dir string) error
	Update(ctx context.Context, path, dir string) error
}

// Options configures jar assembly.
type Options struct {
	// TargetDir receives the final jars.
	TargetDir string
	// Name is the base name of the generated jar (without extension).
	Name string
	// MainClass is recorded as the entry point of the generated jar.
	MainClass string
	// MergedDir is the merged plugin tree to pack.
	MergedDir string
	// Archiver creates and updates the jars. Required.
	Archiver Archiver
	// Platforms maps platform tags to SWT fragment directories, as
	// produced by the merge engine.
	Platforms map[merge.Platform]string
	// SplitPlatforms layers each platform fragment onto a copy of the
	// base jar and discards the fragment-less base. When false the
	// fragments are ignored and a single jar is produced.
	SplitPlatforms bool
	// Logger receives progress lines; nil uses log.Default.
	Logger *log.Logger
}

// Artifacts names the jars produced by Bundle. Exactly one of Base and
// PerPlatform is populated.
type Artifacts struct {
	// Base is the single jar path when no platform split happened.
	Base string
	// PerPlatform maps each platform tag to its jar in split mode.
	PerPlatform map[merge.Platform]string
}

// ForPlatform returns the jar to distribute for the given platform:
// the platform-specific jar in split mode, the base jar otherwise.
// It returns "" when split mode produced no jar for that platform.
func (a *Artifacts) ForPlatform(p merge.Platform) string {
	if a.Base != "" {
		return a.Base
	}
	return a.PerPlatform[p]
}

// Bundle creates the final jar(s) from the merged tree.
func Bundle(ctx context.Context, opts Options) (*Artifacts, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if err := os.MkdirAll(opts.TargetDir, 0o755); err != nil {
		return nil, fmt.Errorf("create target directory: %w", err)
	}

	base := filepath.Join(opts.TargetDir, opts.Name+".jar")
	logger.Info("creating jar", "jar", filepath.Base(base))
	if err := opts.Archiver.Create(ctx, base, opts.MainClass, opts.MergedDir); err != nil {
		return nil, fmt.Errorf("create %s: %w", base, err)
	}

	if !opts.SplitPlatforms || len(opts.Platforms) == 0 {
		return &Artifacts{Base: base}, nil
	}

	artifacts := &Artifacts{PerPlatform: make(map[merge.Platform]string)}
	for _, platform := range merge.Platforms() {
		fragmentDir, ok := opts.Platforms[platform]
		if !ok {
			continue
		}
		jar := filepath.Join(opts.TargetDir, fmt.Sprintf("%s.%s.jar", opts.Name, platform))
		logger.Info("creating jar", "jar", filepath.Base(jar), "platform", platform)
		if err := copyFile(base, jar); err != nil {
			return nil, fmt.Errorf("copy base jar for %s: %w", platform, err)
		}
		if err := opts.Archiver.Update(ctx, jar, fragmentDir); err != nil {
			return nil, fmt.Errorf("layer %s fragment onto %s: %w", platform, jar, err)
		}
		artifacts.PerPlatform[platform] = jar
	}

	// The fragment-less base jar is not distributable in split mode.
	logger.Info("removing jar", "jar", filepath.Base(base))
	if err := os.Remove(base); err != nil {
		return nil, fmt.Errorf("remove base jar: %w", err)
	}
	return artifacts, nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
