package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kolkov/callgraph/internal/callgraph/edgelog"
)

// runMerge concatenates the given logs and keeps the first occurrence of
// each edge, the same dedup the runtime applies within a single run.
func runMerge(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to read --output flag: %w", err)
	}

	var all []edgelog.Entry
	for _, path := range args {
		entries, err := readLog(path)
		if err != nil {
			return err
		}
		all = append(all, entries...)
	}
	merged := edgelog.Dedup(all)

	var w io.Writer = cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}

	for _, e := range merged {
		if err := edgelog.WriteEntry(w, e); err != nil {
			return fmt.Errorf("writing merged log: %w", err)
		}
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "merged %d logs: %d entries in, %d distinct edges out\n",
		len(args), len(all), len(merged))
	return nil
}
