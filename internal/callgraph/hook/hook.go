// Copyright 2025 The callgraph Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hook implements the call-recording entry point invoked at every
// instrumented call site.
//
// This package is the runtime's hot path. The entry point is called with
// the raw addresses of a caller and callee, concurrently from however many
// threads the host program runs, and must return quickly: repeat edges (the
// overwhelming majority of calls) cost one goroutine-ID lookup, one state
// map hit, two symbol-cache hits and one edge-set hit. Only a never-seen
// edge pays for a log write.
//
// # Failure containment
//
// Nothing escapes the hook. Every error — I/O failure, missing log file,
// recursion — is converted into a diagnostic on standard error and
// swallowed at the entry point boundary. Panics from any step are recovered
// there too. The host program must never be terminated, slowed meaningfully
// or destabilized by its own instrumentation.
//
// A write failure permanently forfeits that edge: the edge set is marked
// before the write is attempted, so a later identical call finds the edge
// already claimed and does not retry. Lost edges on I/O failure are
// accepted; duplicate edges are not.
//
// # Runtime context
//
// All process-wide state (configuration, symbol cache, edge set, log sink,
// per-goroutine states) hangs off a Runtime, constructed explicitly. The
// process singleton is built lazily by Default under a once-guard;
// tests construct their own Runtime with an injected resolver and a
// temporary log path.
package hook

import (
	"fmt"
	"os"
	"sync"

	"github.com/kolkov/callgraph/internal/callgraph/config"
	"github.com/kolkov/callgraph/internal/callgraph/edgeset"
	"github.com/kolkov/callgraph/internal/callgraph/sink"
	"github.com/kolkov/callgraph/internal/callgraph/symbolize"
)

// Resolver maps a code address to a function name; "" means unresolved.
// Satisfied by *symbolize.Resolver. The indirection exists so tests can
// record calls through addresses with known fake names.
type Resolver interface {
	Resolve(addr uintptr) string
}

// Runtime is the call-recording context: configuration plus all shared
// mutable state. One Runtime serves the whole process; its containers are
// append-only and safe for concurrent use.
type Runtime struct {
	cfg      config.Config
	resolver Resolver
	edges    edgeset.Set
	sink     *sink.Sink

	// states maps goroutine ID → *threadState. Read-mostly: a goroutine
	// writes once on its first recorded call, then only loads.
	states sync.Map
}

// New returns a Runtime using the real symbol resolver and the configured
// log path.
func New(cfg config.Config) *Runtime {
	return newRuntime(cfg, symbolize.NewResolver())
}

func newRuntime(cfg config.Config, r Resolver) *Runtime {
	return &Runtime{
		cfg:      cfg,
		resolver: r,
		sink:     sink.New(cfg.LogPath),
	}
}

var (
	defaultOnce    sync.Once
	defaultRuntime *Runtime
)

// Default returns the process-wide Runtime, constructing it on first use
// from the process configuration. Safe under concurrent first access.
func Default() *Runtime {
	defaultOnce.Do(func() {
		defaultRuntime = New(config.Get())
	})
	return defaultRuntime
}

// RecordCall records one instrumented call through the process runtime.
// This is the function behind the public facade and the exported C symbol.
func RecordCall(caller, callee uintptr) {
	Default().RecordCall(caller, callee)
}

// RecordCall records a single caller→callee invocation.
//
// Flow:
//  1. Disabled configuration: return with no observable effect.
//  2. Acquire the per-goroutine recursion guard; on failure emit a
//     diagnostic and return without work.
//  3. Resolve the thread ID (cached per goroutine after first lookup).
//  4. Symbolize callee and caller; if either has no name, return silently.
//  5. Claim the edge; if some call already claimed it, return.
//  6. First claim: write the log line, flushed to stable storage.
//
// The guard is released on every exit path, and any panic from the steps
// above is recovered here. Nothing propagates to the caller.
func (r *Runtime) RecordCall(caller, callee uintptr) {
	if !r.cfg.Enabled {
		return
	}

	st := r.state()
	if !st.acquire() {
		diagf("recursion detected in RecordCall, dropping call")
		return
	}
	defer func() {
		st.release()
		if p := recover(); p != nil {
			diagf("panic while recording call: %v", p)
		}
	}()

	if err := r.record(caller, callee, st); err != nil {
		diagf("error recording call: %v", err)
	}
}

// record performs the symbolize → claim → write pipeline. Runs with the
// recursion guard held.
func (r *Runtime) record(caller, callee uintptr, st *threadState) error {
	tid := st.threadID()

	calleeName := r.resolver.Resolve(callee)
	callerName := r.resolver.Resolve(caller)
	if calleeName == "" || callerName == "" {
		return nil // unresolved or filtered endpoint, not an error
	}

	edge := edgeset.Edge{Callee: calleeName, Caller: callerName}
	if !r.edges.TryClaim(edge) {
		return nil // some call already logged this edge
	}

	// First claim wins the write. The log file is created here, lazily,
	// on the process's first claimed edge.
	return r.sink.WriteEdge(tid, calleeName, callerName)
}

// state returns this goroutine's thread state, creating it on first use.
func (r *Runtime) state() *threadState {
	gid := currentGID()

	if v, ok := r.states.Load(gid); ok {
		return v.(*threadState)
	}
	actual, _ := r.states.LoadOrStore(gid, &threadState{})
	return actual.(*threadState)
}

// EdgeCount reports the number of distinct edges claimed so far.
func (r *Runtime) EdgeCount() int {
	return r.edges.Len()
}

// CloseLog releases the log file handle. The process runtime never needs
// this; it exists for tests and embedders with deterministic shutdown.
func (r *Runtime) CloseLog() error {
	return r.sink.Close()
}

// diagf emits a diagnostic to the process's standard error stream. The
// rare-path counterpart of the silent hot path; never called for repeat
// edges.
func diagf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "callgraph: "+format+"\n", args...)
}
