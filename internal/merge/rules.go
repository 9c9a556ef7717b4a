// SPDX-License-Identifier: MPL-2.0

package merge

import (
	"fmt"

	"uberjar-cli/pkg/globset"
)

// Rules bundles the glob classification lists consulted while merging.
// All lists are evaluated case-sensitively against slash-separated
// paths relative to the extracted archive root (file lists) or against
// bare archive file names (jar lists).
type Rules struct {
	// IgnoredJars are archives skipped entirely.
	IgnoredJars *globset.GlobSet
	// KeepNestedPacked are archives whose Bundle-ClassPath jars are
	// left packed instead of being promoted to top-level inputs.
	KeepNestedPacked *globset.GlobSet
	// IgnoredFiles never reach the merged tree.
	IgnoredFiles *globset.GlobSet
	// AppendMerge files are concatenated on collision, in processing order.
	AppendMerge *globset.GlobSet
	// IgnoreMerge files keep the first writer's bytes on collision.
	IgnoreMerge *globset.GlobSet

	// UISkipJars are skipped when KLighD handling is active, unless
	// they also match UIKeepJars.
	UISkipJars *globset.GlobSet
	// UIKeepJars overrides UISkipJars.
	UIKeepJars *globset.GlobSet
	// UIIgnoredFiles are excluded in addition to IgnoredFiles when
	// KLighD handling is active.
	UIIgnoredFiles *globset.GlobSet
}

var (
	defaultIgnoredJars = []string{
		"org.apache.ant*",
	}

	defaultKeepNestedPacked = []string{}

	defaultIgnoredFiles = []string{
		"org/**/*.java",
		"com/**/*.java",
		"de/**/*.java",
		"module-info.class",
		"**/*._trace",
		"**/*.g",
		"**/*.mwe2",
		"**/*.xtext",
		"**/*.genmodel",
		"**/*.ecore",
		"**/*.ecorediag",
		"**/*.html",
		"**/*.profile",
		".api_description",
		".options",
		"log4j.properties",
		"about.*",
		"about_*",
		"about_files/**",
		"cheatsheets/**",
		"META-INF/*.DSA",
		"META-INF/*.RSA",
		"META-INF/*.SF",
		"META-INF/changelog.txt",
		"META-INF/DEPENDENCIES",
		"META-INF/eclipse.inf",
		"META-INF/INDEX.LIST",
		// Bundle manifests never survive the merge; the final jar gets
		// a fresh manifest from the archiver's entry-point mode.
		"META-INF/MANIFEST.MF",
		"META-INF/maven/**",
		"META-INF/NOTICE.txt",
		"META-INF/NOTICE",
		"META-INF/p2.inf",
		"OSGI-INF/l10n/bundle.properties",
		"docs/**",
		"**/*readme.txt",
		"plugin.xml",
		"schema/**",
		"profile.list",
		"systembundle.properties",
		"version.txt",
		"xtend-gen/**",
	}

	defaultAppendMerge = []string{
		"plugin.properties",
		"META-INF/services/*",
		"META-INF/LICENSE.txt",
		"META-INF/LICENSE",
	}

	defaultIgnoreMerge = []string{
		"eclipse32.png",
		"modeling32.png",
		// Icons with the same name are assumed identical across bundles.
		"icons/*.png",
		"icons/*.gif",
		"epl-v10.html",
		// Known duplicate between org.eclipse.osgi and org.eclipse.osgi.services.
		"org/osgi/service/log/**",
		"META-INF/AL*",
		"META-INF/LGPL*",
		"META-INF/GPL*",
	}

	defaultUISkipJars = []string{
		"org.eclipse.ui*",
		"org.eclipse.e4*",
		"org.eclipse.*.ui*",
	}

	defaultUIKeepJars = []string{
		"org.eclipse.ui.workbench_*",
		// IStorageEditorInput is required at runtime.
		"org.eclipse.ui.ide_*",
	}

	defaultUIIgnoredFiles = []string{
		// Keep only the top-level org.eclipse.ui interfaces.
		"org/eclipse/ui/[!I]*",
		"org/eclipse/ui/*/**",
		"org.eclipse.ui.ide*/icons/**",
		"fragment.properties",
	}
)

// DefaultRules returns the built-in classification lists.
func DefaultRules() *Rules {
	return &Rules{
		IgnoredJars:      globset.MustCompile(defaultIgnoredJars...),
		KeepNestedPacked: globset.MustCompile(defaultKeepNestedPacked...),
		IgnoredFiles:     globset.MustCompile(defaultIgnoredFiles...),
		AppendMerge:      globset.MustCompile(defaultAppendMerge...),
		IgnoreMerge:      globset.MustCompile(defaultIgnoreMerge...),
		UISkipJars:       globset.MustCompile(defaultUISkipJars...),
		UIKeepJars:       globset.MustCompile(defaultUIKeepJars...),
		UIIgnoredFiles:   globset.MustCompile(defaultUIIgnoredFiles...),
	}
}

// ExtraPatterns holds user-configured additions to the default lists.
// Extensions are additive only; the built-in lists cannot be removed.
type ExtraPatterns struct {
	IgnoredJars  []string
	IgnoredFiles []string
	AppendMerge  []string
	IgnoreMerge  []string
}

// Extend returns a copy of the rules with the extra patterns appended
// to the corresponding lists.
func (r *Rules) Extend(extra ExtraPatterns) (*Rules, error) {
	out := *r
	var err error
	if out.IgnoredJars, err = r.IgnoredJars.Extend(extra.IgnoredJars...); err != nil {
		return nil, fmt.Errorf("ignored_jars: %w", err)
	}
	if out.IgnoredFiles, err = r.IgnoredFiles.Extend(extra.IgnoredFiles...); err != nil {
		return nil, fmt.Errorf("ignored_files: %w", err)
	}
	if out.AppendMerge, err = r.AppendMerge.Extend(extra.AppendMerge...); err != nil {
		return nil, fmt.Errorf("append_merge: %w", err)
	}
	if out.IgnoreMerge, err = r.IgnoreMerge.Extend(extra.IgnoreMerge...); err != nil {
		return nil, fmt.Errorf("ignore_merge: %w", err)
	}
	return &out, nil
}
