// Package callgraph provides the public API for the call-edge recording runtime.
//
// See doc.go for detailed documentation and examples.
package callgraph

import (
	"github.com/kolkov/callgraph/internal/callgraph/config"
	"github.com/kolkov/callgraph/internal/callgraph/hook"
)

// RecordCall records one caller→callee invocation, identified by raw code
// addresses.
//
// This is the hook inserted at every instrumented call site. It is safe for
// concurrent use from any number of threads, never panics across the call
// boundary, and is a pure no-op when recording is disabled.
//
// The first call to observe a new edge pays for symbolization and one
// durable log write; every other call is answered from caches.
func RecordCall(caller, callee uintptr) {
	hook.RecordCall(caller, callee)
}

// Enabled reports whether edge recording is active for this process,
// i.e. whether the EXPORT_CALLS environment variable was present at first
// access. The value never changes during the process lifetime.
func Enabled() bool {
	return config.Get().Enabled
}

// LogPath returns the fixed path of the edge log. The file exists only
// after the first recorded edge of an enabled run.
func LogPath() string {
	return config.Get().LogPath
}
