// Package version reports build information for urllang binaries.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	Version   string // Set via ldflags.
	Branch    string
	BuildUser string
	BuildDate string

	Revision  = getRevision()
	GoVersion = runtime.Version()
	GoOS      = runtime.GOOS
	GoArch    = runtime.GOARCH
)

// GetVersion returns [Version], falling back to the VCS revision.
func GetVersion() string {
	if Version != "" {
		return Version
	}

	return Revision
}

// Info renders a one-line build summary, e.g.
// "v0.3.0 (revision: 1a2b3c4, go1.25.0 linux/amd64)".
func Info() string {
	details := []string{"revision: " + Revision}
	if Branch != "" {
		details = append(details, "branch: "+Branch)
	}
	if BuildUser != "" {
		details = append(details, "user: "+BuildUser)
	}
	if BuildDate != "" {
		details = append(details, "date: "+BuildDate)
	}

	details = append(details, fmt.Sprintf("%s %s/%s", GoVersion, GoOS, GoArch))

	return fmt.Sprintf("%s (%s)", GetVersion(), strings.Join(details, ", "))
}

func getRevision() string {
	rev := "unknown"

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return rev
	}

	modified := false

	for _, v := range buildInfo.Settings {
		switch v.Key {
		case "vcs.revision":
			if len(v.Value) > 7 {
				rev = v.Value[:7]
			} else {
				rev = v.Value
			}

		case "vcs.modified":
			if v.Value == "true" {
				modified = true
			}
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}
