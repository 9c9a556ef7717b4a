// SPDX-License-Identifier: MPL-2.0

package merge

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"uberjar-cli/pkg/manifest"
)

// resolveNestedJars inspects an extracted bundle for jars declared on
// its Bundle-ClassPath and promotes them to top-level inputs by moving
// them into sourceDir. It returns the file names of the jars it moved,
// in declaration order.
//
// A missing manifest yields no discoveries. A classpath entry that
// points at a missing file is logged as a warning and skipped. An
// entry whose name already exists in sourceDir is skipped silently,
// assuming an identical jar was already promoted.
func resolveNestedJars(extractedDir, sourceDir string, logger *log.Logger) ([]string, error) {
	m, found, err := manifest.Load(extractedDir)
	if err != nil {
		return nil, fmt.Errorf("read bundle manifest in %s: %w", extractedDir, err)
	}
	if !found {
		return nil, nil
	}

	var discovered []string
	for _, entry := range m.BundleClassPath() {
		if entry == "." || !strings.HasSuffix(entry, jarExt) {
			continue
		}
		nested := filepath.Join(extractedDir, filepath.FromSlash(entry))
		if _, err := os.Stat(nested); err != nil {
			logger.Warn("nested jar on bundle classpath not found", "entry", entry)
			continue
		}

		name := filepath.Base(nested)
		dest := filepath.Join(sourceDir, name)
		if _, err := os.Stat(dest); err == nil {
			// Already promoted by an earlier bundle; assume identical.
			continue
		}
		if err := os.Rename(nested, dest); err != nil {
			return nil, fmt.Errorf("promote nested jar %s: %w", entry, err)
		}
		logger.Info("found nested jar on bundle classpath", "entry", entry)
		discovered = append(discovered, name)
	}
	return discovered, nil
}
