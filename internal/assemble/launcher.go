// SPDX-License-Identifier: MPL-2.0

package assemble

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"uberjar-cli/internal/merge"
)

// Java9Options are the runtime flags required on Java 9 and later to
// open the module internals the custom class loader needs. Legacy
// (Java 8) launchers omit them.
const Java9Options = " --add-opens java.base/java.lang=ALL-UNNAMED --add-opens java.base/jdk.internal.loader=ALL-UNNAMED"

// ScriptOptions configures launcher script generation.
type ScriptOptions struct {
	// TargetDir receives the launcher files.
	TargetDir string
	// Name is the launcher base name; platform suffixes are appended.
	Name string
	// LoaderClass is set as java.system.class.loader in the header.
	LoaderClass string
	// HeapSize is passed as the -Xmx value (e.g. "512m").
	HeapSize string
	// Java8 additionally emits legacy launchers without the module
	// flags, suffixed "Java8".
	Java8 bool
	// Logger receives progress lines; nil uses log.Default.
	Logger *log.Logger
}

// WriteScripts emits one self-executing launcher per platform: the
// platform's header text followed by the raw bytes of the jar, with
// the executable bits set. With opts.Java8 a second, legacy launcher
// is written per platform.
func WriteScripts(artifacts *Artifacts, opts ScriptOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	for _, platform := range merge.Platforms() {
		jar := artifacts.ForPlatform(platform)
		if jar == "" {
			continue
		}
		code, err := os.ReadFile(jar)
		if err != nil {
			return fmt.Errorf("read jar for %s launcher: %w", platform, err)
		}

		path := filepath.Join(opts.TargetDir, scriptFileName(opts.Name, platform, false))
		logger.Info("creating script", "script", filepath.Base(path))
		if err := writeScript(path, Header(platform, opts.LoaderClass, opts.HeapSize, Java9Options), code); err != nil {
			return err
		}

		if opts.Java8 {
			path := filepath.Join(opts.TargetDir, scriptFileName(opts.Name, platform, true))
			logger.Info("creating script", "script", filepath.Base(path))
			if err := writeScript(path, Header(platform, opts.LoaderClass, opts.HeapSize, ""), code); err != nil {
				return err
			}
		}
	}
	return nil
}

// Header returns the interpreter-invocation preamble for a platform.
// runtimeOptions is Java9Options or "" for legacy launchers.
func Header(platform merge.Platform, loaderClass, heapSize, runtimeOptions string) string {
	switch platform {
	case merge.PlatformWindows:
		return fmt.Sprintf("java -Djava.system.class.loader=%s -Xmx%s%s -jar %%0 %%*\r\nexit /b %%errorlevel%%\r\n",
			loaderClass, heapSize, runtimeOptions)
	case merge.PlatformMacOS:
		// SWT on Cocoa requires the main thread.
		return fmt.Sprintf("#!/usr/bin/env bash\nexec java -Djava.system.class.loader=%s -XstartOnFirstThread -Xmx%s%s -jar $0 \"$@\"\n",
			loaderClass, heapSize, runtimeOptions)
	default:
		return fmt.Sprintf("#!/usr/bin/env bash\nexec java -Djava.system.class.loader=%s -Xmx%s%s -jar $0 \"$@\"\n",
			loaderClass, heapSize, runtimeOptions)
	}
}

// scriptFileName builds the launcher file name for a platform.
// Windows launchers carry a .bat extension so the header runs as a
// batch file.
func scriptFileName(name string, platform merge.Platform, java8 bool) string {
	suffix := ""
	if java8 {
		suffix = "Java8"
	}
	if platform == merge.PlatformWindows {
		return fmt.Sprintf("%s-%s%s.bat", name, platform, suffix)
	}
	return fmt.Sprintf("%s-%s%s", name, platform, suffix)
}

// writeScript concatenates the header and the jar bytes and marks the
// result executable for user, group and others.
func writeScript(path, header string, code []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(header); err != nil {
		f.Close()
		return err
	}
	if _, err := f.Write(code); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.Chmod(path, info.Mode()|0o111)
}
