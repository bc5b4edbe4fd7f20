package version

import (
	"fmt"
	"io"
	"runtime/debug"
)

var (
	// These will be set by build flags or default to development values
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info contains version information
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// Get resolves version information. Values injected with -ldflags win; the
// module and VCS data embedded by the Go toolchain fill in the rest.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		if info.Version == "dev" {
			info.Version = "development"
		}
		return info
	}
	info.GoVersion = bi.GoVersion
	if info.Version == "dev" || info.Version == "" {
		info.Version = "development"
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			info.Version = v
		}
	}
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			if info.Commit == "unknown" || info.Commit == "" {
				info.Commit = setting.Value
			}
		case "vcs.time":
			if info.Date == "unknown" || info.Date == "" {
				info.Date = setting.Value
			}
		}
	}
	return info
}

// String formats the version with a short commit and the build date when
// they are known, e.g. "v1.2.0 (abc1234, built 2024-01-01T00:00:00Z)".
func (i Info) String() string {
	if i.Commit == "unknown" || len(i.Commit) <= 7 {
		return i.Version
	}
	if i.Date == "unknown" {
		return fmt.Sprintf("%s (%s)", i.Version, i.Commit[:7])
	}
	return fmt.Sprintf("%s (%s, built %s)", i.Version, i.Commit[:7], i.Date)
}

// Print writes a multi-line version report for appName to w.
func (i Info) Print(w io.Writer, appName string) {
	fmt.Fprintf(w, "%s version %s\n", appName, i)
	fmt.Fprintf(w, "Commit: %s\n", i.Commit)
	fmt.Fprintf(w, "Build Date: %s\n", i.Date)
	if i.GoVersion != "" {
		fmt.Fprintf(w, "Go: %s\n", i.GoVersion)
	}
}
