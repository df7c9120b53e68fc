// Package config provides the process-wide configuration for the call-edge
// recording runtime.
//
// Configuration is derived from the environment exactly once, on first access,
// and is immutable for the lifetime of the process. This mirrors how the
// runtime itself behaves: enablement is decided before the first instrumented
// call is recorded and never changes afterwards.
//
// The runtime is enabled by the presence of the EXPORT_CALLS environment
// variable (any value, including empty). When the variable is absent the hook
// is a pure no-op: no file is created, no caches grow.
//
// The log destination is a fixed path, not configurable. The instrumentation
// pass that inserts hook calls and the downstream consumers of the log both
// assume this location, so it is part of the wire protocol rather than a
// user-facing knob.
package config

import (
	"os"
	"sync"
)

// EnableEnvVar is the environment variable whose presence enables edge
// logging. The value is ignored; only presence matters.
const EnableEnvVar = "EXPORT_CALLS"

// DefaultLogPath is the fixed destination for the edge log.
const DefaultLogPath = "/tmp/callgraph.log"

// Config holds the immutable process-wide settings for the runtime.
//
// A Config is a plain value; copying it is cheap and safe. The process-wide
// instance is created once by Get and never mutated.
type Config struct {
	// Enabled reports whether edge logging should occur at all.
	Enabled bool

	// LogPath is the destination file for recorded edges. The file is
	// created (truncating any prior contents) on the first claimed edge,
	// not at configuration time.
	LogPath string
}

var (
	once sync.Once
	cfg  Config
)

// Load computes a Config from the current environment.
//
// Load has no side effects beyond reading the environment and does not touch
// the process-wide singleton, which makes it directly testable with
// t.Setenv. Production code should use Get instead.
func Load() Config {
	_, enabled := os.LookupEnv(EnableEnvVar)
	return Config{
		Enabled: enabled,
		LogPath: DefaultLogPath,
	}
}

// Get returns the process-wide configuration, computing it on first use.
//
// The computation runs exactly once even under concurrent first access from
// multiple goroutines; all callers observe the same immutable value.
// Environment changes after the first call have no effect.
func Get() Config {
	once.Do(func() {
		cfg = Load()
	})
	return cfg
}
