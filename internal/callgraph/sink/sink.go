// Package sink implements the durable log writer for claimed call edges.
//
// The sink owns a single append-mode file handle, created lazily on the
// first claimed edge and held open until process exit. Creation truncates
// any prior contents: each process run produces a fresh log.
//
// Writes favor durability over throughput. Every line is followed by an
// explicit flush to stable storage before the writer lock is released, so a
// crash of the host program loses at most the edge being written. This is
// affordable because the deduplicator upstream guarantees one write per
// unique edge, not per call.
//
// # Line format
//
// One UTF-8 line per edge, three fields separated by '|':
//
//	<threadId decimal>|<calleeName>|<callerName>\n
//
// The format is shared with the edgelog parser and with external consumers;
// it must not change shape.
package sink

import (
	"fmt"
	"os"
	"sync"
)

// Sink writes claimed edges to the configured log file.
//
// A Sink starts closed. The file is opened by the first WriteEdge (or an
// explicit EnsureOpen); the open happens exactly once even under concurrent
// first writes. If the open fails, the failure is sticky: every subsequent
// write observes the original error and no re-open is attempted.
type Sink struct {
	path string

	// openOnce guards file creation. Concurrent first writers race into
	// it; only one performs the open, the rest wait and share its result.
	openOnce sync.Once
	openErr  error

	// mu serializes writers: one line plus its flush at a time.
	mu   sync.Mutex
	file *os.File
}

// New returns a Sink that will log to path. The file is not touched until
// the first write.
func New(path string) *Sink {
	return &Sink{path: path}
}

// EnsureOpen creates the log file if it has not been created yet.
//
// The first call truncates the file at path; later calls are no-ops
// returning the sticky result of the first attempt. WriteEdge calls this
// implicitly; exposing it separately lets the hook surface creation failures
// at initialization time rather than on the first edge.
func (s *Sink) EnsureOpen() error {
	s.openOnce.Do(func() {
		f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			s.openErr = fmt.Errorf("creating edge log %s: %w", s.path, err)
			return
		}
		s.mu.Lock()
		s.file = f
		s.mu.Unlock()
	})
	return s.openErr
}

// WriteEdge appends one edge line and flushes it to stable storage.
//
// The write and flush happen under the writer lock, so lines from concurrent
// callers never interleave. A nil return means the line has reached the
// operating system's stable storage, not merely a buffer.
func (s *Sink) WriteEdge(tid int64, callee, caller string) error {
	if err := s.EnsureOpen(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		// A prior open failed after openOnce completed, or Close ran.
		return ErrNotInitialized
	}

	if _, err := fmt.Fprintf(s.file, "%d|%s|%s\n", tid, callee, caller); err != nil {
		return fmt.Errorf("writing edge: %w", err)
	}
	if err := s.file.Sync(); err != nil {
		return fmt.Errorf("flushing edge log: %w", err)
	}
	return nil
}

// Close releases the underlying file handle.
//
// The runtime never calls Close — the log lives until process termination —
// but tests and the inspection tooling need deterministic cleanup.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
