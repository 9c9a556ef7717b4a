// SPDX-License-Identifier: MPL-2.0

package cmd

import "testing"

func TestGetVersionString(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, BuildDate
	t.Cleanup(func() {
		Version, Commit, BuildDate = origVersion, origCommit, origDate
	})

	Version = "dev"
	if got := getVersionString(); got != "dev (built from source)" {
		t.Errorf("dev version string = %q", got)
	}

	Version, Commit, BuildDate = "1.2.3", "abc1234", "2026-08-24"
	want := "1.2.3 (commit: abc1234, built: 2026-08-24)"
	if got := getVersionString(); got != want {
		t.Errorf("release version string = %q, want %q", got, want)
	}
}

func TestRootCmdRegistersSubcommands(t *testing.T) {
	for _, name := range []string{"build", "config"} {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}
