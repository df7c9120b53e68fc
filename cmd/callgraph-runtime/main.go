// Command callgraph-runtime builds the C-linkage archive that
// instrumentation passes link into target binaries.
//
// Build it as a static archive and link it into the instrumented program:
//
//	go build -buildmode=c-archive -o libcallgraph.a ./cmd/callgraph-runtime
//	clang target.o libcallgraph.a -o target
//
// The instrumentation pass inserts a call to __callgraph_record_call at
// every call site, passing the caller and callee code addresses. The
// exported function takes two address-sized integers, returns nothing, and
// never lets a failure cross back into the host program.
package main

/*
#include <stdint.h>
*/
import "C"

import "github.com/kolkov/callgraph/callgraph"

// __callgraph_record_call is the hook symbol referenced by instrumented
// call sites.
//
//export __callgraph_record_call
func __callgraph_record_call(caller, callee C.uintptr_t) {
	callgraph.RecordCall(uintptr(caller), uintptr(callee))
}

// main is required by -buildmode=c-archive; it never runs.
func main() {}
