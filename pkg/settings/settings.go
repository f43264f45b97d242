// Package settings provides build metadata, per-run configuration, and
// context helpers shared by the jv CLI and its packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "jv"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build, including the commit hash,
// build version, and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds configuration settings for a single execution of the viewer.
type Run struct {
	MinLogLevel int8
	InputPath   string
	ConfigPath  string
	ThemeName   string
	LogFile     string
	NoColor     bool
	Snapshot    bool
}

// NewCliParams returns the defaults used when jv is launched from the command line.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		ThemeName:   "dark",
	}
}
