// Copyright 2025 The callgraph Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Goroutine ID extraction.
//
// The hook needs a per-goroutine key to find its thread state (the
// recursion flag and cached OS thread ID). Go offers no thread-local
// storage, so the goroutine ID stands in for the thread identity.
//
// The ID is parsed out of runtime.Stack output. This costs on the order of
// a microsecond per call, which is acceptable for a hook that additionally
// performs map lookups and, on cold paths, symbol walks and synchronous
// I/O. An assembly getg() fast path in the style of the runtime's own goid
// access would cut this to nanoseconds; the stack parse is the portable
// baseline that works on every architecture and Go version.

package hook

import "runtime"

// currentGID returns the current goroutine's ID.
//
// Format of the parsed trace: "goroutine 123 [running]:\n...". Returns 0 if
// the trace does not match, which in practice does not happen.
func currentGID() int64 {
	// Only the first line is needed; 64 bytes always covers it.
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	return parseGID(buf[:n])
}

// parseGID extracts the numeric goroutine ID from stack trace bytes.
//
// Direct byte parsing, no regex, no allocations: this runs on every hook
// invocation.
func parseGID(buf []byte) int64 {
	const prefix = "goroutine "

	if len(buf) < len(prefix) || string(buf[:len(prefix)]) != prefix {
		return 0
	}

	var gid int64
	for i := len(prefix); i < len(buf); i++ {
		c := buf[i]
		if c < '0' || c > '9' {
			break // space before "[running]" terminates the ID
		}
		gid = gid*10 + int64(c-'0')
	}
	return gid
}
