// Package sink - error values for the edge log writer.
//
// The runtime converts every sink error into a diagnostic at the hook
// boundary; nothing here ever propagates to the host program. Sentinel
// values let callers distinguish "the log never came up" from transient
// write failures without string matching.
package sink

import "errors"

// ErrNotInitialized reports a write attempted against a sink whose log file
// does not exist: creation failed earlier, or the sink was closed. The
// condition is permanent for the process lifetime; callers should not retry.
var ErrNotInitialized = errors.New("edge log not initialized")
