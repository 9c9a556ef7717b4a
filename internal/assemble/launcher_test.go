// SPDX-License-Identifier: MPL-2.0

package assemble

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"uberjar-cli/internal/merge"
)

const (
	testLoader = "org.example.cli.Loader"
	testHeap   = "512m"
)

func writeTestJar(t *testing.T, dir string) (string, []byte) {
	t.Helper()
	code := []byte("PK\x03\x04 pretend jar bytes \x00\x01\x02")
	path := filepath.Join(dir, "mytool.jar")
	if err := os.WriteFile(path, code, 0o644); err != nil {
		t.Fatal(err)
	}
	return path, code
}

func TestHeaderText(t *testing.T) {
	tests := []struct {
		name     string
		platform merge.Platform
		options  string
		expected string
	}{
		{
			name:     "linux modern runtime",
			platform: merge.PlatformLinux,
			options:  Java9Options,
			expected: "#!/usr/bin/env bash\nexec java -Djava.system.class.loader=org.example.cli.Loader -Xmx512m" +
				" --add-opens java.base/java.lang=ALL-UNNAMED --add-opens java.base/jdk.internal.loader=ALL-UNNAMED" +
				" -jar $0 \"$@\"\n",
		},
		{
			name:     "linux legacy runtime",
			platform: merge.PlatformLinux,
			options:  "",
			expected: "#!/usr/bin/env bash\nexec java -Djava.system.class.loader=org.example.cli.Loader -Xmx512m -jar $0 \"$@\"\n",
		},
		{
			name:     "windows batch header",
			platform: merge.PlatformWindows,
			options:  "",
			expected: "java -Djava.system.class.loader=org.example.cli.Loader -Xmx512m -jar %0 %*\r\nexit /b %errorlevel%\r\n",
		},
		{
			name:     "macos starts on first thread",
			platform: merge.PlatformMacOS,
			options:  "",
			expected: "#!/usr/bin/env bash\nexec java -Djava.system.class.loader=org.example.cli.Loader -XstartOnFirstThread -Xmx512m -jar $0 \"$@\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Header(tt.platform, testLoader, testHeap, tt.options); got != tt.expected {
				t.Errorf("Header() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestWriteScriptsEmitsHeaderPlusJarBytes(t *testing.T) {
	target := t.TempDir()
	jar, code := writeTestJar(t, target)

	artifacts := &Artifacts{Base: jar}
	err := WriteScripts(artifacts, ScriptOptions{
		TargetDir:   target,
		Name:        "mytool",
		LoaderClass: testLoader,
		HeapSize:    testHeap,
		Logger:      quietLogger(),
	})
	if err != nil {
		t.Fatalf("WriteScripts() error: %v", err)
	}

	tests := []struct {
		file     string
		platform merge.Platform
	}{
		{"mytool-linux", merge.PlatformLinux},
		{"mytool-win.bat", merge.PlatformWindows},
		{"mytool-osx", merge.PlatformMacOS},
	}
	for _, tt := range tests {
		path := filepath.Join(target, tt.file)
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", tt.file, err)
		}
		header := Header(tt.platform, testLoader, testHeap, Java9Options)
		if !strings.HasPrefix(string(data), header) {
			t.Errorf("%s must begin with the exact platform header", tt.file)
		}
		if got := string(data[len(header):]); got != string(code) {
			t.Errorf("%s trailing bytes differ from the jar bytes", tt.file)
		}

		if runtime.GOOS != "windows" {
			info, err := os.Stat(path)
			if err != nil {
				t.Fatal(err)
			}
			if info.Mode()&0o111 == 0 {
				t.Errorf("%s should have the executable bits set", tt.file)
			}
		}
	}
}

func TestWriteScriptsJava8Variants(t *testing.T) {
	target := t.TempDir()
	jar, code := writeTestJar(t, target)

	err := WriteScripts(&Artifacts{Base: jar}, ScriptOptions{
		TargetDir:   target,
		Name:        "mytool",
		LoaderClass: testLoader,
		HeapSize:    testHeap,
		Java8:       true,
		Logger:      quietLogger(),
	})
	if err != nil {
		t.Fatalf("WriteScripts() error: %v", err)
	}

	tests := []struct {
		file     string
		platform merge.Platform
	}{
		{"mytool-linuxJava8", merge.PlatformLinux},
		{"mytool-winJava8.bat", merge.PlatformWindows},
		{"mytool-osxJava8", merge.PlatformMacOS},
	}
	for _, tt := range tests {
		data, err := os.ReadFile(filepath.Join(target, tt.file))
		if err != nil {
			t.Fatalf("read %s: %v", tt.file, err)
		}
		header := Header(tt.platform, testLoader, testHeap, "")
		if !strings.HasPrefix(string(data), header) {
			t.Errorf("%s must use the legacy header without module flags", tt.file)
		}
		if strings.Contains(string(data[:len(header)]), "--add-opens") {
			t.Errorf("%s legacy header must not carry Java 9 options", tt.file)
		}
		if got := string(data[len(header):]); got != string(code) {
			t.Errorf("%s trailing bytes differ from the jar bytes", tt.file)
		}
	}
}

func TestWriteScriptsSplitModeUsesPlatformJars(t *testing.T) {
	target := t.TempDir()

	perPlatform := make(map[merge.Platform]string)
	codes := make(map[merge.Platform][]byte)
	for _, p := range merge.Platforms() {
		code := []byte("jar-for-" + string(p))
		path := filepath.Join(target, "mytool."+string(p)+".jar")
		if err := os.WriteFile(path, code, 0o644); err != nil {
			t.Fatal(err)
		}
		perPlatform[p] = path
		codes[p] = code
	}

	err := WriteScripts(&Artifacts{PerPlatform: perPlatform}, ScriptOptions{
		TargetDir:   target,
		Name:        "mytool",
		LoaderClass: testLoader,
		HeapSize:    testHeap,
		Logger:      quietLogger(),
	})
	if err != nil {
		t.Fatalf("WriteScripts() error: %v", err)
	}

	files := map[merge.Platform]string{
		merge.PlatformLinux:   "mytool-linux",
		merge.PlatformWindows: "mytool-win.bat",
		merge.PlatformMacOS:   "mytool-osx",
	}
	for p, file := range files {
		data, err := os.ReadFile(filepath.Join(target, file))
		if err != nil {
			t.Fatalf("read %s: %v", file, err)
		}
		if !strings.HasSuffix(string(data), string(codes[p])) {
			t.Errorf("%s must embed its own platform's jar bytes", file)
		}
	}
}
