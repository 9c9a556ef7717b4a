// SPDX-License-Identifier: MPL-2.0

package merge

import (
	"fmt"
	"strings"
)

// Platform tags the target operating system of an SWT fragment and of
// the per-platform jars derived from it.
type Platform string

const (
	// PlatformLinux is the gtk/linux/x86_64 target.
	PlatformLinux Platform = "linux"
	// PlatformWindows is the win32/x86_64 target.
	PlatformWindows Platform = "win"
	// PlatformMacOS is the cocoa/macosx/x86_64 target.
	PlatformMacOS Platform = "osx"
)

// swtFragmentTokens maps the windowing-system token embedded in an SWT
// fragment name to its platform tag. The mapping is deliberately an
// explicit closed table: a fragment that matches none of the tokens is
// an error, never a silent fallthrough.
var swtFragmentTokens = []struct {
	token    string
	platform Platform
}{
	{"gtk.linux.x86_64", PlatformLinux},
	{"win32.win32.x86_64", PlatformWindows},
	{"cocoa.macosx.x86_64", PlatformMacOS},
}

// Platforms returns all recognized platform tags in stable order.
func Platforms() []Platform {
	return []Platform{PlatformLinux, PlatformWindows, PlatformMacOS}
}

// PlatformForFragment resolves the platform tag of an SWT fragment jar
// by its file name.
func PlatformForFragment(jarName string) (Platform, error) {
	for _, entry := range swtFragmentTokens {
		if strings.Contains(jarName, entry.token) {
			return entry.platform, nil
		}
	}
	return "", fmt.Errorf("unknown platform-specific SWT fragment: %s", jarName)
}
