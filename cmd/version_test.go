package cmd

import (
	"strings"
	"testing"
)

func TestVersionString(t *testing.T) {
	origVersion, origCommit, origBuild := Version, GitCommit, BuildTime
	defer func() { Version, GitCommit, BuildTime = origVersion, origCommit, origBuild }()

	Version, GitCommit, BuildTime = "1.4.0", "abc1234", "2026-08-25T10:00:00Z"
	got := versionString()
	for _, want := range []string{"clawdeye-installer 1.4.0", "abc1234", "2026-08-25T10:00:00Z"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}

	// without link-time injection only the version line is printed
	Version, GitCommit, BuildTime = "dev", "", ""
	if got := versionString(); got != "clawdeye-installer dev" {
		t.Errorf("bare build: got %q", got)
	}
}
