// Copyright 2025 The callgraph Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

// OS thread identifier, linux fast path.
//
// The edge log's first field is the kernel thread ID of the recorder, which
// downstream tooling uses to separate call streams. On linux this is
// gettid(2), queried once per goroutine and then cached in the thread
// state.
//
// A goroutine can migrate between OS threads after the lookup, so the
// cached value is a snapshot of where the goroutine first recorded an edge,
// not a live binding. Consumers treat the field as a stream label, which a
// snapshot serves fine.

package hook

import "golang.org/x/sys/unix"

// osThreadID returns the calling thread's kernel thread ID.
func osThreadID() int64 {
	return int64(unix.Gettid())
}
