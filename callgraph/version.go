package callgraph

// Version information for the call-edge recording runtime.
const (
	// Version is the current version of the recording runtime.
	Version = "0.1.0"

	// VersionMajor is the major version number.
	VersionMajor = 0

	// VersionMinor is the minor version number.
	VersionMinor = 1

	// VersionPatch is the patch version number.
	VersionPatch = 0
)

// Info provides runtime information about the edge recorder.
type Info struct {
	// Version is the runtime version string.
	Version string

	// Enabled indicates whether edge recording is active.
	Enabled bool

	// LogPath is the destination of the edge log.
	LogPath string
}

// GetInfo returns information about the recording runtime.
//
// Example:
//
//	info := callgraph.GetInfo()
//	fmt.Printf("callgraph %s, enabled=%v, log=%s\n", info.Version, info.Enabled, info.LogPath)
func GetInfo() Info {
	return Info{
		Version: Version,
		Enabled: Enabled(),
		LogPath: LogPath(),
	}
}
