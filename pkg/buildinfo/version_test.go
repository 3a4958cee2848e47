package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFillFrom(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	defer func() { Version, Commit, Date = oldV, oldC, oldD }()

	Version, Commit, Date = "dev", "none", "unknown"
	fillFrom(&debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2024-05-01T10:00:00Z"},
		},
	})

	if Version != "v0.3.0" {
		t.Errorf("Version = %q", Version)
	}
	if Commit != "0123456" {
		t.Errorf("Commit = %q", Commit)
	}
	if Date != "2024-05-01T10:00:00Z" {
		t.Errorf("Date = %q", Date)
	}
}

func TestFillFromKeepsLdflags(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Date
	defer func() { Version, Commit, Date = oldV, oldC, oldD }()

	Version, Commit, Date = "v1.0.0", "abc1234", "today"
	fillFrom(&debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "fffffffffff"}},
	})

	if Version != "v1.0.0" || Commit != "abc1234" || Date != "today" {
		t.Errorf("ldflags values overwritten: %s %s %s", Version, Commit, Date)
	}
}

func TestTemplate(t *testing.T) {
	if !strings.HasPrefix(Template(), "{{.Name}} version ") {
		t.Errorf("Template() = %q", Template())
	}
	if !strings.Contains(String(), "go: go") {
		t.Errorf("String() = %q", String())
	}
}
