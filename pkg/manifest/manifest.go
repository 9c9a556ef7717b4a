// SPDX-License-Identifier: MPL-2.0

// Package manifest reads the main section of a JAR manifest
// (META-INF/MANIFEST.MF).
//
// Only the pieces of the format this tool depends on are implemented:
// main-attribute headers of the form "Name: value", 72-byte line
// wrapping where continuation lines begin with a single space, and the
// blank line that terminates the main section. Per-entry sections are
// ignored.
package manifest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Path is the fixed location of the manifest inside an extracted archive.
const Path = "META-INF/MANIFEST.MF"

// bundleClassPathAttr declares jars nested inside an OSGi bundle.
const bundleClassPathAttr = "Bundle-ClassPath"

// Manifest holds the main-section attributes of a JAR manifest.
type Manifest struct {
	attrs map[string]string
}

// Parse reads manifest main attributes from r. Continuation lines
// (leading single space) are folded into the preceding attribute value;
// the main section ends at the first blank line.
func Parse(r io.Reader) (*Manifest, error) {
	m := &Manifest{attrs: make(map[string]string)}

	scanner := bufio.NewScanner(r)
	// Manifests wrap at 72 bytes, but be generous with malformed ones.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	current := ""
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			break // end of main section
		}
		if strings.HasPrefix(line, " ") {
			if current == "" {
				return nil, fmt.Errorf("manifest continuation line without a preceding attribute: %q", line)
			}
			m.attrs[current] += line[1:]
			continue
		}
		name, value, found := strings.Cut(line, ":")
		if !found {
			return nil, fmt.Errorf("malformed manifest line: %q", line)
		}
		current = name
		m.attrs[current] = strings.TrimPrefix(value, " ")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return m, nil
}

// ParseFile parses the manifest at the given path.
func ParseFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Load parses the manifest of an extracted archive rooted at dir. A
// missing manifest is not an error: the second return value reports
// whether one was found.
func Load(dir string) (*Manifest, bool, error) {
	path := filepath.Join(dir, filepath.FromSlash(Path))
	m, err := ParseFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return m, true, nil
}

// Attr returns the value of a main attribute and whether it is present.
func (m *Manifest) Attr(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.attrs[name]
	return v, ok
}

// BundleClassPath returns the entries of the Bundle-ClassPath attribute
// in declaration order, with surrounding whitespace removed and empty
// entries dropped. A missing attribute yields nil.
func (m *Manifest) BundleClassPath() []string {
	value, ok := m.Attr(bundleClassPathAttr)
	if !ok {
		return nil
	}
	var entries []string
	for _, entry := range strings.Split(value, ",") {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}
