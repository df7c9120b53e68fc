// Copyright 2025 The callgraph Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux

// OS thread identifier, portable fallback.
//
// Platforms without a cheap thread-ID syscall wrapper fall back to the
// goroutine ID. The log field only needs to be a stable decimal label for
// the recording thread of execution; goroutine IDs satisfy that on every
// platform.

package hook

// osThreadID returns the goroutine ID as the thread identifier.
func osThreadID() int64 {
	return currentGID()
}
