// SPDX-License-Identifier: MPL-2.0

// Package merge implements the extraction and merge engine that folds a
// directory of plugin jars into a single output tree.
//
// Processing is a worklist consumed to exhaustion: the sorted source
// directory listing seeds it, and jars discovered on bundle classpaths
// are appended as they are found. Each jar is extracted into its own
// scratch directory and its files are classified and folded into the
// shared merged tree, applying per-pattern collision policies (append,
// keep-first, or conflict). Same-path collisions that no policy covers
// are accumulated on the Result instead of aborting, so the caller
// decides whether they are fatal.
package merge

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	// jarExt is the only archive extension processed; anything else in
	// the source directory is skipped with a log line.
	jarExt = ".jar"

	// KlighdJarPrefix marks an update site that bundles KLighD. Its
	// presence activates the special Eclipse UI and SWT handling.
	KlighdJarPrefix = "de.cau.cs.kieler.klighd"

	// swtJarPrefix identifies platform-specific SWT fragments, which
	// are bucketed per platform instead of being merged.
	swtJarPrefix = "org.eclipse.swt."
)

// Extractor unpacks an archive into a directory. *jartool.Tool is the
// production implementation.
type Extractor interface {
	ExtractAll(ctx context.Context, archive, dir string) error
}

// Conflict records a same-path collision that no merge policy covered.
type Conflict struct {
	// Jar is the archive whose file could not be merged.
	Jar string
	// Path is the colliding path, relative to the merged tree.
	Path string
}

// ProcessedJar records a successfully merged archive.
type ProcessedJar struct {
	// Family is the plugin family key: the jar name up to the first "_".
	Family string
	// Name is the jar file name.
	Name string
}

// Options configures a merge run.
type Options struct {
	// SourceDir holds the input jars (the update site). Nested jars
	// discovered during processing are moved here.
	SourceDir string
	// ExtractDir receives one scratch subdirectory per jar.
	ExtractDir string
	// MergedDir is the shared output tree.
	MergedDir string
	// Extractor unpacks jars. Required.
	Extractor Extractor
	// Rules are the classification lists; nil uses DefaultRules.
	Rules *Rules
	// Logger receives progress and warnings; nil uses log.Default.
	Logger *log.Logger
}

// Result reports the outcome of a merge run.
type Result struct {
	// Processed lists merged jars in processing order.
	Processed []ProcessedJar
	// Conflicts lists unresolved same-path collisions. Empty means the
	// merged tree is complete.
	Conflicts []Conflict
	// Platforms maps each platform tag to the pruned scratch directory
	// of its SWT fragment. Empty unless UIHandling is set.
	Platforms map[Platform]string
	// UIHandling reports whether the KLighD marker was detected.
	UIHandling bool
}

type engine struct {
	opts   Options
	rules  *Rules
	logger *log.Logger

	worklist []string
	families map[string]string // family key -> first processed jar
	result   *Result
}

// Run merges every jar in opts.SourceDir (plus transitively discovered
// nested jars) into opts.MergedDir. It returns an error only for fatal
// conditions: extraction failure, filesystem failure, or an SWT
// fragment with an unrecognized platform token. Merge conflicts are
// not errors; they are reported on the Result.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Extractor == nil {
		return nil, fmt.Errorf("merge: no extractor configured")
	}
	e := &engine{
		opts:     opts,
		rules:    opts.Rules,
		logger:   opts.Logger,
		families: make(map[string]string),
		result: &Result{
			Platforms: make(map[Platform]string),
		},
	}
	if e.rules == nil {
		e.rules = DefaultRules()
	}
	if e.logger == nil {
		e.logger = log.Default()
	}

	entries, err := os.ReadDir(opts.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("list source directory: %w", err)
	}
	for _, entry := range entries {
		e.worklist = append(e.worklist, entry.Name())
	}

	e.result.UIHandling = slices.ContainsFunc(e.worklist, func(name string) bool {
		return strings.HasPrefix(name, KlighdJarPrefix)
	})
	if e.result.UIHandling {
		e.logger.Info("detected KLighD, activating special handling of Eclipse UI and SWT dependencies")
	}

	// The worklist grows while iterating: nested jars are appended at
	// the position they are discovered.
	for i := 0; i < len(e.worklist); i++ {
		if err := e.processJar(ctx, e.worklist[i]); err != nil {
			return nil, err
		}
	}
	return e.result, nil
}

func (e *engine) processJar(ctx context.Context, name string) error {
	switch {
	case !strings.HasSuffix(name, jarExt):
		e.logger.Info("skipping non-archive file", "file", name)
		return nil
	case e.rules.IgnoredJars.Match(name):
		e.logger.Info("skipping ignored jar", "jar", name)
		return nil
	case e.result.UIHandling && e.rules.UISkipJars.Match(name) && !e.rules.UIKeepJars.Match(name):
		e.logger.Info("skipping jar (Eclipse UI handling)", "jar", name)
		return nil
	}

	family := familyKey(name)
	if first, ok := e.families[family]; ok {
		// No shading: the first-seen version wins, later ones would
		// cause runtime errors if a plugin needs the newer API.
		e.logger.Warn("multiple versions of the same plugin detected, keeping first",
			"plugin", family, "kept", first, "skipped", name)
		return nil
	}

	e.logger.Info("extracting jar", "jar", name)
	scratch := filepath.Join(e.opts.ExtractDir, strings.TrimSuffix(name, jarExt))
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		return fmt.Errorf("create scratch directory: %w", err)
	}
	if err := e.opts.Extractor.ExtractAll(ctx, filepath.Join(e.opts.SourceDir, name), scratch); err != nil {
		return fmt.Errorf("extract %s: %w", name, err)
	}

	if e.result.UIHandling && strings.HasPrefix(name, swtJarPrefix) {
		return e.captureFragment(name, scratch)
	}

	if !e.rules.KeepNestedPacked.Match(name) {
		discovered, err := resolveNestedJars(scratch, e.opts.SourceDir, e.logger)
		if err != nil {
			return err
		}
		for _, d := range discovered {
			if !slices.Contains(e.worklist, d) {
				e.worklist = append(e.worklist, d)
			}
		}
	}

	if err := e.mergeTree(name, scratch); err != nil {
		return err
	}

	e.families[family] = name
	e.result.Processed = append(e.result.Processed, ProcessedJar{Family: family, Name: name})
	return nil
}

// captureFragment records an SWT fragment's scratch directory as a
// platform bucket after pruning excluded files from it. Fragment files
// never enter the shared merged tree.
func (e *engine) captureFragment(name, scratch string) error {
	platform, err := PlatformForFragment(name)
	if err != nil {
		return err
	}
	err = filepath.WalkDir(scratch, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(scratch, path)
		if err != nil {
			return err
		}
		if e.rules.IgnoredFiles.Match(rel) || e.rules.UIIgnoredFiles.Match(rel) {
			return os.Remove(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("prune SWT fragment %s: %w", name, err)
	}
	e.logger.Info("captured platform fragment", "jar", name, "platform", platform)
	e.result.Platforms[platform] = scratch
	return nil
}

// mergeTree folds every file under scratch into the merged tree,
// applying the per-pattern collision policies.
func (e *engine) mergeTree(jarName, scratch string) error {
	return filepath.WalkDir(scratch, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(scratch, path)
		if err != nil {
			return err
		}
		if e.rules.IgnoredFiles.Match(rel) {
			return nil
		}
		if e.result.UIHandling && e.rules.UIIgnoredFiles.Match(rel) {
			return nil
		}

		dest := filepath.Join(e.opts.MergedDir, rel)
		if _, err := os.Stat(dest); err != nil {
			if !os.IsNotExist(err) {
				return err
			}
			// First writer: move the file into the merged tree.
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return err
			}
			return os.Rename(path, dest)
		}

		switch {
		case e.rules.AppendMerge.Match(rel):
			return appendFile(dest, path)
		case e.rules.IgnoreMerge.Match(rel):
			// Keep the first writer's bytes; duplicates are assumed identical.
			e.logger.Debug("ignoring duplicate file", "jar", jarName, "path", rel)
			return nil
		default:
			e.logger.Error("could not merge, conflicting file", "jar", jarName, "path", rel)
			e.result.Conflicts = append(e.result.Conflicts, Conflict{Jar: jarName, Path: filepath.ToSlash(rel)})
			return nil
		}
	})
}

// appendFile concatenates a newline and src's bytes onto dest.
func appendFile(dest, src string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(append([]byte("\n"), data...)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// familyKey returns the plugin family key: the jar name up to the
// first underscore, which by Eclipse naming convention separates the
// symbolic name from the version.
func familyKey(jarName string) string {
	if i := strings.Index(jarName, "_"); i >= 0 {
		return jarName[:i]
	}
	return jarName
}
