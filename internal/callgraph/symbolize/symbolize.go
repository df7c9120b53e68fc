// Package symbolize translates raw code addresses into function names.
//
// The resolver sits on the hook's hot path: every instrumented call needs
// both its caller and callee addresses turned into symbolic names before an
// edge can be recorded. Symbol-table walks are expensive (microseconds), so
// results are cached per address and never recomputed, including failures.
//
// # Cache semantics
//
// The cache maps address → name, where the empty string records a failed or
// filtered resolution. Entries are never evicted or invalidated: code does
// not move during the life of the process, so a resolution is valid forever.
// Memory therefore grows with the number of distinct instrumented call-site
// addresses, which is bounded by the size of the text segment in practice.
//
// # The +1 address adjustment
//
// runtime.CallersFrames assumes its inputs are return addresses and backs up
// by one byte to land inside the call instruction that produced them. The
// addresses handed to this runtime are call-target addresses, not return
// addresses, so the resolver adds one before the walk to cancel that
// adjustment. This offset is a fixed protocol detail shared with the
// instrumentation pass; it is deliberately not configurable.
//
// # Filtering
//
// Frames whose source file lives under a recognized system prefix (the GOROOT
// source tree, /usr) are treated as unresolved. Standard-library and
// system-runtime frames are noise in a call graph meant to guide seed
// generation, and filtering them here keeps every downstream consumer clean.
package symbolize

import (
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Resolver maps code addresses to function names, caching every result.
//
// The zero value is not ready to use; construct with NewResolver. A single
// Resolver is safe for concurrent use by any number of goroutines.
type Resolver struct {
	// cache maps uintptr (the original, unadjusted address) to string.
	// An empty string is a cached failure: the address could not be
	// resolved or was filtered as a system frame. Entries are append-only.
	cache sync.Map

	// group collapses concurrent walks for the same unseen address into a
	// single symbol-table traversal. Duplicate walks would be harmless
	// (the cache write is idempotent) but they are also pure waste.
	group singleflight.Group

	// systemPrefixes marks source trees whose symbols are filtered out.
	// Immutable after construction.
	systemPrefixes []string

	// walks counts actual symbol-table traversals, excluding cache hits.
	// Exposed for tests and stats; this is how the "no second walk"
	// property is observed.
	walks atomic.Uint64
}

// NewResolver returns a Resolver with the default system-prefix filter:
// the GOROOT source tree and /usr.
func NewResolver() *Resolver {
	prefixes := []string{"/usr"}
	if goroot := runtime.GOROOT(); goroot != "" {
		prefixes = append(prefixes, goroot)
	}
	return NewResolverWithPrefixes(prefixes)
}

// NewResolverWithPrefixes returns a Resolver that filters out symbols whose
// source file path starts with any of the given prefixes.
func NewResolverWithPrefixes(prefixes []string) *Resolver {
	return &Resolver{
		systemPrefixes: append([]string(nil), prefixes...),
	}
}

// Resolve returns the function name for addr, or "" if the address does not
// resolve to a symbol or resolves into a filtered system source tree.
//
// The first resolution of an address performs a symbol-table walk; every
// subsequent call for the same address, from any goroutine, is answered from
// the cache — including cached failures. Concurrent first resolutions of the
// same address are collapsed into one walk.
func (r *Resolver) Resolve(addr uintptr) string {
	// Fast path: answered from cache, no walk.
	if v, ok := r.cache.Load(addr); ok {
		return v.(string)
	}

	// Slow path: one walk per address, shared among racing callers.
	// The singleflight key only needs to be unique per address.
	key := strconv.FormatUint(uint64(addr), 16)
	v, _, _ := r.group.Do(key, func() (any, error) {
		name := r.walk(addr)
		r.cache.Store(addr, name)
		return name, nil
	})
	return v.(string)
}

// WalkCount reports how many symbol-table walks the resolver has performed.
// Cache hits do not count.
func (r *Resolver) WalkCount() uint64 {
	return r.walks.Load()
}

// walk performs the actual symbol-table traversal for addr.
//
// The walk queries the frame at addr+1 (see the package comment for why),
// applies the system-prefix filter, and returns the fully qualified function
// name. Go symbols are stored unmangled, so Frame.Function is already the
// human-readable form.
func (r *Resolver) walk(addr uintptr) string {
	r.walks.Add(1)

	frames := runtime.CallersFrames([]uintptr{addr + 1})
	frame, _ := frames.Next()

	if frame.Function == "" {
		return "" // no debug info for this address
	}
	for _, prefix := range r.systemPrefixes {
		if strings.HasPrefix(frame.File, prefix) {
			return "" // system frame, deliberately dropped
		}
	}
	return frame.Function
}
