package edgelog

import (
	"strings"
	"testing"
)

// TestParseLine covers well-formed and malformed lines.
func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Entry
		wantErr bool
	}{
		{
			name: "typical",
			line: "42|pkg.Callee|pkg.Caller",
			want: Entry{TID: 42, Callee: "pkg.Callee", Caller: "pkg.Caller"},
		},
		{
			name: "qualified generic names",
			line: "7|example.com/m/inner.Do[go.shape.int]|example.com/m.Run",
			want: Entry{TID: 7, Callee: "example.com/m/inner.Do[go.shape.int]", Caller: "example.com/m.Run"},
		},
		{
			name: "separator inside caller survives",
			line: "1|callee|operator|weird",
			want: Entry{TID: 1, Callee: "callee", Caller: "operator|weird"},
		},
		{name: "too few fields", line: "42|onlycallee", wantErr: true},
		{name: "non-numeric tid", line: "x|a|b", wantErr: true},
		{name: "empty callee", line: "1||caller", wantErr: true},
		{name: "empty caller", line: "1|callee|", wantErr: true},
		{name: "empty line", line: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLine(tt.line)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseLine(%q) = %+v, want error", tt.line, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLine(%q): %v", tt.line, err)
			}
			if got != tt.want {
				t.Errorf("ParseLine(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

// TestReadSkipsBlankLines verifies whole-log parsing with interior and
// trailing blank lines.
func TestReadSkipsBlankLines(t *testing.T) {
	log := "1|a|b\n\n2|c|d\n\n"

	entries, err := Read(strings.NewReader(log))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := []Entry{
		{TID: 1, Callee: "a", Caller: "b"},
		{TID: 2, Callee: "c", Caller: "d"},
	}
	if len(entries) != len(want) {
		t.Fatalf("Read returned %d entries, want %d", len(entries), len(want))
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

// TestReadReportsLineNumber verifies that a malformed line is reported with
// its position.
func TestReadReportsLineNumber(t *testing.T) {
	log := "1|a|b\ngarbage\n2|c|d\n"

	_, err := Read(strings.NewReader(log))
	if err == nil {
		t.Fatal("Read of malformed log succeeded, want error")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error = %q, want mention of line 2", err)
	}
}

// TestDedup verifies first-occurrence-wins deduplication over the runtime's
// edge key.
func TestDedup(t *testing.T) {
	entries := []Entry{
		{TID: 1, Callee: "a", Caller: "b"},
		{TID: 2, Callee: "a", Caller: "b"}, // same edge, different thread
		{TID: 1, Callee: "b", Caller: "a"}, // reversed, distinct edge
		{TID: 3, Callee: "a", Caller: "b"},
	}

	got := Dedup(entries)
	if len(got) != 2 {
		t.Fatalf("Dedup returned %d entries, want 2: %+v", len(got), got)
	}
	if got[0].TID != 1 || got[0].Edge() != "a|b" {
		t.Errorf("first entry = %+v, want first occurrence of a|b from TID 1", got[0])
	}
	if got[1].Edge() != "b|a" {
		t.Errorf("second entry = %+v, want edge b|a", got[1])
	}
}

// TestRoundTrip verifies WriteEntry output parses back to the same entry.
func TestRoundTrip(t *testing.T) {
	e := Entry{TID: 99, Callee: "m.f", Caller: "m.g"}

	var sb strings.Builder
	if err := WriteEntry(&sb, e); err != nil {
		t.Fatalf("WriteEntry: %v", err)
	}
	entries, err := Read(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(entries) != 1 || entries[0] != e {
		t.Errorf("round trip = %+v, want [%+v]", entries, e)
	}
}
