package compileinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFromBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		GoVersion: "go1.23.0",
		Path:      "github.com/carbocation/qtl2prep/cmd/qtl2prep",
		Main:      debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2024-05-01T10:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	c := FromBuildInfo(bi)
	if c.Commit != "0123456789abcdef0123" || !c.Modified || c.GoVersion != "go1.23.0" {
		t.Fatalf("unexpected info %+v", c)
	}

	if c.Short() != "devel-0123456789ab" {
		t.Errorf("got short version %s", c.Short())
	}

	if s := c.String(); !strings.Contains(s, "modified") || !strings.Contains(s, "qtl2prep") {
		t.Errorf("unexpected description %q", s)
	}
}

func TestShort(t *testing.T) {
	cases := []struct {
		Info     CompileInfo
		Expected string
	}{
		{CompileInfo{Version: "v1.2.0"}, "v1.2.0"},
		{CompileInfo{Version: "(devel)", Commit: "abc"}, "devel"},
		{CompileInfo{}, "devel"},
	}

	for _, c := range cases {
		if got := c.Info.Short(); got != c.Expected {
			t.Errorf("%+v: got %s, expected %s", c.Info, got, c.Expected)
		}
	}
}
