package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kolkov/callgraph/internal/callgraph/edgelog"
)

// runDump validates the log and reprints it in the requested format.
func runDump(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to read --format flag: %w", err)
	}

	entries, err := readLog(args[0])
	if err != nil {
		return err
	}

	switch format {
	case "text":
		return dumpText(cmd.OutOrStdout(), entries)
	case "dot":
		return dumpDot(cmd.OutOrStdout(), entries)
	default:
		return fmt.Errorf("unsupported format %q (supported: text, dot)", format)
	}
}

func readLog(path string) ([]edgelog.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening edge log: %w", err)
	}
	defer f.Close()

	entries, err := edgelog.Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// dumpText reprints the log in its native line format.
func dumpText(w io.Writer, entries []edgelog.Entry) error {
	for _, e := range entries {
		if err := edgelog.WriteEntry(w, e); err != nil {
			return err
		}
	}
	return nil
}

// dumpDot renders the edges as a Graphviz digraph. Caller points at callee,
// matching how the graph is read: "caller invokes callee".
func dumpDot(w io.Writer, entries []edgelog.Entry) error {
	if _, err := fmt.Fprintln(w, "digraph callgraph {"); err != nil {
		return err
	}
	for _, e := range edgelog.Dedup(entries) {
		if _, err := fmt.Fprintf(w, "\t%q -> %q;\n", e.Caller, e.Callee); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}
