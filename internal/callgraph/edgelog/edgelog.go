// Package edgelog reads and writes the edge log format produced by the
// recording runtime.
//
// The log is UTF-8 text, one edge per line, three fields separated by '|':
//
//	<threadId decimal>|<calleeName>|<callerName>
//
// This package is the counterpart to the runtime's sink: the sink only ever
// appends; everything that consumes a finished log (the inspection CLI,
// seed-generation pipelines, coverage tooling) parses it through here.
package edgelog

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Entry is one parsed log line.
type Entry struct {
	// TID is the recording thread's identifier.
	TID int64

	// Callee is the function that was called.
	Callee string

	// Caller is the function that made the call.
	Caller string
}

// Edge returns the entry's dedup key, "callee|caller". Two entries with the
// same key describe the same call edge regardless of recording thread.
func (e Entry) Edge() string {
	return e.Callee + "|" + e.Caller
}

// String renders the entry in log-line form (without the newline).
func (e Entry) String() string {
	return fmt.Sprintf("%d|%s|%s", e.TID, e.Callee, e.Caller)
}

// ParseLine parses a single log line.
//
// The callee field may not contain '|'; the caller field is everything after
// the second separator, so names containing '|' (which Go symbols never do,
// but C++ operator symbols can) survive a round trip.
func ParseLine(line string) (Entry, error) {
	parts := strings.SplitN(line, "|", 3)
	if len(parts) != 3 {
		return Entry{}, fmt.Errorf("malformed edge line %q: want 3 '|'-separated fields", line)
	}

	tid, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("malformed thread id in %q: %w", line, err)
	}
	if parts[1] == "" || parts[2] == "" {
		return Entry{}, fmt.Errorf("malformed edge line %q: empty function name", line)
	}

	return Entry{TID: tid, Callee: parts[1], Caller: parts[2]}, nil
}

// Read parses a whole log.
//
// Blank lines are skipped (a crash mid-write can leave one at the end); any
// other malformed line aborts with an error naming its 1-based line number.
func Read(r io.Reader) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	// Symbol names can be long (deeply nested generics); allow lines well
	// past bufio's 64KiB default.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading edge log: %w", err)
	}
	return entries, nil
}

// WriteEntry writes one entry in log-line form.
func WriteEntry(w io.Writer, e Entry) error {
	_, err := fmt.Fprintf(w, "%d|%s|%s\n", e.TID, e.Callee, e.Caller)
	return err
}

// Dedup returns entries with repeated edges removed, keeping the first
// occurrence of each edge. This is the same dedup key the runtime uses, so
// deduping the concatenation of several run logs yields a log the runtime
// could have produced itself.
func Dedup(entries []Entry) []Entry {
	seen := make(map[string]bool, len(entries))
	out := entries[:0:0]
	for _, e := range entries {
		key := e.Edge()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}
