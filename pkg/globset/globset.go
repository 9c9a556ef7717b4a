// SPDX-License-Identifier: MPL-2.0

// Package globset provides ordered glob pattern lists for classifying
// relative file paths and archive names.
//
// Patterns are doublestar-compatible globs (e.g. "META-INF/maven/**",
// "**/*.html"). Matching is case-sensitive, always slash-separated
// regardless of host OS, and never interprets patterns as regular
// expressions. A set matches a path when any of its patterns matches;
// there is no precedence between patterns within a set.
package globset

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// GlobSet is an immutable, ordered list of glob patterns.
// The zero value matches nothing.
type GlobSet struct {
	patterns []string
}

// New compiles a pattern list into a GlobSet. It returns an error if
// any pattern is not a valid doublestar glob.
func New(patterns ...string) (*GlobSet, error) {
	for _, pat := range patterns {
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pat, doublestar.ErrBadPattern)
		}
	}
	return &GlobSet{patterns: slices.Clone(patterns)}, nil
}

// MustCompile is like New but panics on an invalid pattern.
// It is intended for package-level defaults.
func MustCompile(patterns ...string) *GlobSet {
	s, err := New(patterns...)
	if err != nil {
		panic(err)
	}
	return s
}

// Match reports whether any pattern in the set matches the given
// relative path. The path is normalized to forward slashes first, so
// callers may pass host-native paths from filepath.Walk.
func (s *GlobSet) Match(relpath string) bool {
	if s == nil {
		return false
	}
	normalized := filepath.ToSlash(relpath)
	for _, pat := range s.patterns {
		if matched, err := doublestar.Match(pat, normalized); err == nil && matched {
			return true
		}
	}
	return false
}

// Extend returns a new GlobSet with the extra patterns appended after
// the receiver's patterns. The receiver is not modified.
func (s *GlobSet) Extend(patterns ...string) (*GlobSet, error) {
	base := s.Patterns()
	return New(append(base, patterns...)...)
}

// Patterns returns a copy of the pattern list in order.
func (s *GlobSet) Patterns() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.patterns)
}

// Len returns the number of patterns in the set.
func (s *GlobSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.patterns)
}
