package symbolize

import (
	"reflect"
	"runtime"
	"sort"
	"strings"
	"sync"
	"testing"
)

// sampleTarget exists so tests have a function whose entry address and
// expected symbol name are known. The side effect prevents the compiler from
// discarding it.
var sampleSink int

func sampleTarget() {
	sampleSink++
}

// entryPC returns the entry address of fn, the same kind of call-target
// address the instrumentation pass hands to the hook.
func entryPC(t *testing.T, fn any) uintptr {
	t.Helper()
	pc := reflect.ValueOf(fn).Pointer()
	if pc == 0 {
		t.Fatal("entryPC: nil function")
	}
	return pc
}

// TestResolveKnownFunction verifies that a real function entry address
// resolves to its fully qualified name.
func TestResolveKnownFunction(t *testing.T) {
	r := NewResolverWithPrefixes(nil)

	name := r.Resolve(entryPC(t, sampleTarget))
	if !strings.HasSuffix(name, "symbolize.sampleTarget") {
		t.Errorf("Resolve(sampleTarget) = %q, want suffix %q", name, "symbolize.sampleTarget")
	}
}

// TestResolveCachesResult verifies that a second resolution of the same
// address returns an identical result without a second symbol-table walk.
func TestResolveCachesResult(t *testing.T) {
	r := NewResolverWithPrefixes(nil)
	addr := entryPC(t, sampleTarget)

	first := r.Resolve(addr)
	if got := r.WalkCount(); got != 1 {
		t.Fatalf("WalkCount() after first Resolve = %d, want 1", got)
	}

	second := r.Resolve(addr)
	if second != first {
		t.Errorf("second Resolve = %q, first = %q, want identical", second, first)
	}
	if got := r.WalkCount(); got != 1 {
		t.Errorf("WalkCount() after second Resolve = %d, want 1 (cache hit must not walk)", got)
	}
}

// TestResolveUnknownAddress verifies that an address with no debug info
// resolves to "" and that the failure itself is cached.
func TestResolveUnknownAddress(t *testing.T) {
	r := NewResolverWithPrefixes(nil)

	// Address 1 is never a mapped text address.
	const bogus = uintptr(1)

	if name := r.Resolve(bogus); name != "" {
		t.Errorf("Resolve(0x1) = %q, want \"\"", name)
	}
	walks := r.WalkCount()

	if name := r.Resolve(bogus); name != "" {
		t.Errorf("second Resolve(0x1) = %q, want \"\"", name)
	}
	if got := r.WalkCount(); got != walks {
		t.Errorf("WalkCount() = %d after cached failure, want %d (failures are cached too)", got, walks)
	}
}

// TestResolveFiltersSystemPrefix verifies that a symbol whose source file
// lives under a recognized system prefix is treated as unresolved.
func TestResolveFiltersSystemPrefix(t *testing.T) {
	addr := entryPC(t, sort.Strings)

	// Determine where this standard-library function actually lives in
	// this build, then filter exactly that tree.
	fn := runtime.FuncForPC(addr)
	if fn == nil {
		t.Fatal("FuncForPC(sort.Strings) = nil")
	}
	file, _ := fn.FileLine(addr)
	prefix := file[:strings.LastIndex(file, "/")+1]

	unfiltered := NewResolverWithPrefixes(nil)
	if name := unfiltered.Resolve(addr); name == "" {
		t.Fatalf("Resolve(sort.Strings) = \"\" without filter, expected a name")
	}

	filtered := NewResolverWithPrefixes([]string{prefix})
	if name := filtered.Resolve(addr); name != "" {
		t.Errorf("Resolve(sort.Strings) = %q with prefix %q filtered, want \"\"", name, prefix)
	}
}

// TestResolveConcurrent verifies that racing resolutions of one address all
// converge on the same cached value.
func TestResolveConcurrent(t *testing.T) {
	const goroutines = 16

	r := NewResolverWithPrefixes(nil)
	addr := entryPC(t, sampleTarget)

	var wg sync.WaitGroup
	results := make([]string, goroutines)
	start := make(chan struct{})

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			<-start
			results[idx] = r.Resolve(addr)
		}(i)
	}
	close(start)
	wg.Wait()

	want := results[0]
	for i, got := range results {
		if got != want {
			t.Errorf("Resolve result %d = %q, want %q", i, got, want)
		}
	}

	// Once the dust settles, further resolutions must be pure cache hits.
	walks := r.WalkCount()
	r.Resolve(addr)
	if got := r.WalkCount(); got != walks {
		t.Errorf("WalkCount() = %d after settled cache, want %d", got, walks)
	}
}

// BenchmarkResolveHit measures the cache-hit path, the common case once the
// program's working set of call sites has been seen.
func BenchmarkResolveHit(b *testing.B) {
	r := NewResolverWithPrefixes(nil)
	addr := reflect.ValueOf(sampleTarget).Pointer()
	r.Resolve(addr)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Resolve(addr)
	}
}
