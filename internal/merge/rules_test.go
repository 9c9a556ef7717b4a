// SPDX-License-Identifier: MPL-2.0

package merge

import "testing"

func TestDefaultRulesClassification(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name    string
		match   func(string) bool
		path    string
		matches bool
	}{
		{"java sources excluded", rules.IgnoredFiles.Match, "org/example/deep/Thing.java", true},
		{"class files kept", rules.IgnoredFiles.Match, "org/example/Thing.class", false},
		{"signature files excluded", rules.IgnoredFiles.Match, "META-INF/ECLIPSE_.SF", true},
		{"manifest excluded", rules.IgnoredFiles.Match, "META-INF/MANIFEST.MF", true},
		{"maven metadata subtree excluded", rules.IgnoredFiles.Match, "META-INF/maven/org.example/artifact/pom.xml", true},
		{"about files subtree excluded", rules.IgnoredFiles.Match, "about_files/LICENSE-2.0.txt", true},
		{"html excluded at any depth", rules.IgnoredFiles.Match, "reference/api/index.html", true},
		{"plugin xml excluded at root only", rules.IgnoredFiles.Match, "plugin.xml", true},
		{"nested plugin xml kept", rules.IgnoredFiles.Match, "sub/plugin.xml", false},
		{"service registrations append", rules.AppendMerge.Match, "META-INF/services/org.example.Provider", true},
		{"plugin properties append", rules.AppendMerge.Match, "plugin.properties", true},
		{"icons ignore duplicates", rules.IgnoreMerge.Match, "icons/view.gif", true},
		{"osgi log service ignore duplicates", rules.IgnoreMerge.Match, "org/osgi/service/log/LogService.class", true},
		{"regular class not ignored", rules.IgnoreMerge.Match, "org/example/Thing.class", false},
		{"ant jar ignored", rules.IgnoredJars.Match, "org.apache.ant_1.10.12.jar", true},
		{"ui jar blacklisted", rules.UISkipJars.Match, "org.eclipse.ui_3.200.0.jar", true},
		{"e4 jar blacklisted", rules.UISkipJars.Match, "org.eclipse.e4.core_1.0.0.jar", true},
		{"jface ui jar blacklisted", rules.UISkipJars.Match, "org.eclipse.jface.ui.text_1.0.0.jar", true},
		{"workbench whitelisted", rules.UIKeepJars.Match, "org.eclipse.ui.workbench_3.130.0.jar", true},
		{"ide whitelisted", rules.UIKeepJars.Match, "org.eclipse.ui.ide_3.19.0.jar", true},
		{"ui interfaces kept", rules.UIIgnoredFiles.Match, "org/eclipse/ui/IStorageEditorInput.class", false},
		{"ui implementations dropped", rules.UIIgnoredFiles.Match, "org/eclipse/ui/PlatformUI.class", true},
		{"nested ui packages dropped", rules.UIIgnoredFiles.Match, "org/eclipse/ui/internal/Workbench.class", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.match(tt.path); got != tt.matches {
				t.Errorf("match(%q) = %v, want %v", tt.path, got, tt.matches)
			}
		})
	}
}

func TestRulesExtend(t *testing.T) {
	base := DefaultRules()
	extended, err := base.Extend(ExtraPatterns{
		IgnoredFiles: []string{"**/*.orig"},
		AppendMerge:  []string{"conf/merged.list"},
	})
	if err != nil {
		t.Fatalf("Extend() error: %v", err)
	}
	if !extended.IgnoredFiles.Match("a/b.orig") {
		t.Error("extended ignored files should match the extra pattern")
	}
	if !extended.AppendMerge.Match("conf/merged.list") {
		t.Error("extended append list should match the extra pattern")
	}
	// Built-in patterns survive the extension.
	if !extended.IgnoredFiles.Match("plugin.xml") {
		t.Error("extension must be additive")
	}
	// The base rules are untouched.
	if base.IgnoredFiles.Match("a/b.orig") {
		t.Error("Extend() must not mutate the receiver")
	}

	if _, err := base.Extend(ExtraPatterns{IgnoreMerge: []string{"[bad"}}); err == nil {
		t.Error("Extend() should reject malformed patterns")
	}
}
