// Package compileinfo reports how the running qtl2prep binary was built.
package compileinfo

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

type CompileInfo struct {
	Package    string
	Version    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	mod := ""
	if c.Modified {
		mod = " Files in the repo were modified after that commit."
	}

	return fmt.Sprintf("This %s %s binary was built with %s at commit %v at time %v.%s", c.Package, c.Short(), c.GoVersion, c.Commit, c.CommitTime, mod)
}

// Short is the module version, falling back to a commit prefix.
func (c CompileInfo) Short() string {
	if c.Version != "" && c.Version != "(devel)" {
		return c.Version
	}

	if len(c.Commit) >= 12 {
		return "devel-" + c.Commit[:12]
	}

	return "devel"
}

func Get() CompileInfo {
	z, ok := debug.ReadBuildInfo()
	if !ok {
		return CompileInfo{}
	}

	return FromBuildInfo(z)
}

func FromBuildInfo(z *debug.BuildInfo) CompileInfo {
	out := CompileInfo{
		Package:   z.Path,
		Version:   z.Main.Version,
		GoVersion: z.GoVersion,
	}

	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

func Fprint(w io.Writer) {
	fmt.Fprintf(w, "%s\n", Get())
}

func PrintToStdErr() {
	Fprint(os.Stderr)
}
