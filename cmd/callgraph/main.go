// Command callgraph inspects and combines edge logs produced by the
// recording runtime.
//
// The runtime writes one log per process run. This tool is the offline
// side: validate and reprint a log, convert it to Graphviz form, or merge
// the logs of several runs into one deduplicated edge list that downstream
// pipelines can consume as if it came from a single run.
//
// Usage:
//
//	callgraph dump /tmp/callgraph.log
//	callgraph dump --format dot /tmp/callgraph.log > graph.dot
//	callgraph merge run1.log run2.log run3.log -o merged.log
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "callgraph",
		Short:   "Inspect and merge call-edge logs",
		Version: version,
		Long: `Callgraph works with the edge logs written by the recording runtime:
one line per distinct caller→callee pair, in the form

    <threadId>|<calleeName>|<callerName>

It can validate and reprint a log, render it as a Graphviz digraph, or
merge the logs of several runs keeping each edge once.`,
		SilenceUsage: true,
	}

	dumpCmd := &cobra.Command{
		Use:   "dump <log>",
		Short: "Validate a log and print its edges",
		Args:  cobra.ExactArgs(1),
		RunE:  runDump,
	}
	dumpCmd.Flags().String("format", "text", "Output format: text|dot")

	mergeCmd := &cobra.Command{
		Use:   "merge <log>...",
		Short: "Merge several run logs, keeping each edge once",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runMerge,
	}
	mergeCmd.Flags().StringP("output", "o", "", "Destination file (default: stdout)")

	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(mergeCmd)
	return rootCmd
}
