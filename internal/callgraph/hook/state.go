// Copyright 2025 The callgraph Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Per-goroutine thread state: the recursion flag and the cached thread ID.

package hook

// threadState is the hook's per-goroutine state.
//
// Each state is owned exclusively by one goroutine: it is created on that
// goroutine's first recorded call, found again via the runtime's state map,
// and never touched by anyone else. No field needs synchronization.
type threadState struct {
	// busy is the reentrancy flag. Set while the hook is running on this
	// goroutine; a nested invocation that finds it set must do no work.
	// Symbol walks and log writes can themselves pass through
	// instrumented code, and without this flag such a path would
	// re-enter the hook without bound.
	busy bool

	// tid is the cached OS thread identifier, 0 until first use.
	tid int64
}

// acquire takes the reentrancy lock for this goroutine.
//
// Returns false if the hook is already running on this goroutine (the
// caller must back out without doing any work). On success the caller owns
// the lock and must release it on every exit path.
func (st *threadState) acquire() bool {
	if st.busy {
		return false
	}
	st.busy = true
	return true
}

// release returns the state to Free. Safe to call from a defer on any exit
// path; releasing an already-free state is harmless.
func (st *threadState) release() {
	st.busy = false
}

// threadID returns the OS thread identifier, computing it on first use and
// caching it for the life of the goroutine.
func (st *threadState) threadID() int64 {
	if st.tid == 0 {
		st.tid = osThreadID()
	}
	return st.tid
}
