package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFull(t *testing.T) {
	got := Full()
	if !strings.HasPrefix(got, Version) {
		t.Errorf("Full() = %q, want prefix %q", got, Version)
	}
	if !strings.Contains(got, "commit: "+Commit) {
		t.Errorf("Full() = %q, want commit %q", got, Commit)
	}
}

func TestUserAgent(t *testing.T) {
	if got, want := UserAgent(), "vibetagger/"+Version; got != want {
		t.Errorf("UserAgent() = %q, want %q", got, want)
	}
}

func TestApplyBuildSettings(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	Version, Commit = "", ""
	applyBuildSettings([]debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.modified", Value: "true"},
		{Key: "vcs.time", Value: "2025-03-04T10:00:00Z"},
	})

	if Commit != "0123456-dirty" {
		t.Errorf("Commit = %q", Commit)
	}
	if Version != "dev-20250304" {
		t.Errorf("Version = %q", Version)
	}
}
