package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/muurk/vibetagger/internal/version"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "config.yaml"), "version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	got := strings.TrimSpace(out.String())
	if want := "vibetagger " + version.Full(); got != want {
		t.Errorf("version output = %q, want %q", got, want)
	}
}

func TestFileSize(t *testing.T) {
	if got := fileSize(filepath.Join(t.TempDir(), "missing.png")); got != "unknown" {
		t.Errorf("fileSize(missing) = %q", got)
	}
}
