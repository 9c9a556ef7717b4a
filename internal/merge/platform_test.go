// SPDX-License-Identifier: MPL-2.0

package merge

import "testing"

func TestPlatformForFragment(t *testing.T) {
	tests := []struct {
		name     string
		jar      string
		expected Platform
		wantErr  bool
	}{
		{
			name:     "linux gtk fragment",
			jar:      "org.eclipse.swt.gtk.linux.x86_64_3.118.0.v20211123-0851.jar",
			expected: PlatformLinux,
		},
		{
			name:     "windows fragment",
			jar:      "org.eclipse.swt.win32.win32.x86_64_3.118.0.jar",
			expected: PlatformWindows,
		},
		{
			name:     "macos cocoa fragment",
			jar:      "org.eclipse.swt.cocoa.macosx.x86_64_3.118.0.jar",
			expected: PlatformMacOS,
		},
		{
			name:    "unrecognized windowing system",
			jar:     "org.eclipse.swt.motif.aix.ppc_3.0.0.jar",
			wantErr: true,
		},
		{
			name:    "arm fragment is not in the closed table",
			jar:     "org.eclipse.swt.gtk.linux.aarch64_3.118.0.jar",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PlatformForFragment(tt.jar)
			if tt.wantErr {
				if err == nil {
					t.Errorf("PlatformForFragment(%q) should fail", tt.jar)
				}
				return
			}
			if err != nil {
				t.Fatalf("PlatformForFragment(%q) error: %v", tt.jar, err)
			}
			if got != tt.expected {
				t.Errorf("PlatformForFragment(%q) = %q, want %q", tt.jar, got, tt.expected)
			}
		})
	}
}

func TestPlatformsOrder(t *testing.T) {
	got := Platforms()
	want := []Platform{PlatformLinux, PlatformWindows, PlatformMacOS}
	if len(got) != len(want) {
		t.Fatalf("Platforms() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Platforms()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
