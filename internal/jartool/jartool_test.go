// SPDX-License-Identifier: MPL-2.0

package jartool

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewDefaultsCommand(t *testing.T) {
	if got := New("").Command; got != DefaultCommand {
		t.Errorf("New(\"\").Command = %q, want %q", got, DefaultCommand)
	}
	if got := New("/opt/jdk/bin/jar").Command; got != "/opt/jdk/bin/jar" {
		t.Errorf("New() should keep the explicit command, got %q", got)
	}
}

func TestRunReportsMissingTool(t *testing.T) {
	dir := t.TempDir()
	tool := New(filepath.Join(dir, "no-such-archiver"))

	err := tool.ExtractAll(context.Background(), filepath.Join(dir, "a.jar"), dir)
	if err == nil {
		t.Fatal("ExtractAll() with a missing archiver should fail")
	}
	if !strings.Contains(err.Error(), "no-such-archiver") {
		t.Errorf("error should name the archiver command: %v", err)
	}
	if !strings.Contains(err.Error(), "xf") {
		t.Errorf("error should include the invocation arguments: %v", err)
	}
}

func TestRunHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	tool := New(filepath.Join(dir, "no-such-archiver"))
	if err := tool.Update(ctx, filepath.Join(dir, "a.jar"), dir); err == nil {
		t.Fatal("Update() with canceled context should fail")
	}
}
