// Package callgraph provides the public API of the call-edge recording
// runtime linked into instrumented binaries.
//
// At every instrumented call site, the inserted hook invokes [RecordCall]
// with the raw addresses of the caller and the callee. The runtime resolves
// both addresses to function names, and the first call to observe a given
// caller→callee pair appends one line to the edge log:
//
//	<threadId>|<calleeName>|<callerName>
//
// Every later occurrence of the same pair, from any thread, is a cheap
// no-op. The finished log is a call graph of the functions the program
// actually executed, consumed by seed-generation and coverage tooling.
//
// # Enabling
//
// Recording is off by default. It is enabled by the presence of the
// EXPORT_CALLS environment variable (any value):
//
//	$ EXPORT_CALLS=1 ./instrumented-binary
//	$ cat /tmp/callgraph.log
//
// With the variable absent, RecordCall returns immediately: no file is
// created and no internal state grows.
//
// # Manual instrumentation
//
// Instrumentation normally inserts the calls; for manual use, pass function
// entry addresses:
//
//	func work() { ... }
//
//	func main() {
//		caller := reflect.ValueOf(main).Pointer()
//		callee := reflect.ValueOf(work).Pointer()
//		callgraph.RecordCall(caller, callee)
//		work()
//	}
//
// # Guarantees
//
//   - Each distinct edge appears in the log at most once per process run,
//     and only when both endpoints resolved to names.
//   - Each logged line is flushed to stable storage before the writer lock
//     is released.
//   - RecordCall never panics into the host program; every internal failure
//     becomes a diagnostic on standard error and is swallowed.
//   - RecordCall is safe to invoke concurrently from any number of threads,
//     including reentrantly: a nested invocation on the same thread is
//     detected and dropped.
//
// Functions whose source lives under a system prefix (the GOROOT tree,
// /usr) are filtered out of the graph; calls touching them are silently
// ignored.
//
// # Memory
//
// The symbol cache and the seen-edges set grow monotonically for the life
// of the process and are never evicted. Growth is bounded by the number of
// distinct instrumented call sites and distinct edges, not by call volume.
package callgraph
