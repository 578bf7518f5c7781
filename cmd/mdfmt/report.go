package main

import (
	"fmt"
	"io"
	"time"
)

// printResults writes per-file output for the selected mode and returns the
// batch summary. Failures always go to stderr.
func printResults(results []FormatResult, mode modeFlags, common commonFlags, env *Environment) ResultSummary {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.Path, r.Err)
			continue
		}

		switch {
		case mode.list, mode.check:
			if r.Changed && !(mode.check && common.quiet) {
				fmt.Fprintln(env.Stdout, r.Path)
			}
		case mode.diff:
			_, _ = env.Stdout.Write(unifiedDiff(r.Path, r.Original, r.Formatted))
		case mode.stdout:
			_, _ = io.WriteString(env.Stdout, r.Formatted)
		default:
			printWriteResult(r, common, env)
		}
	}

	if mode.writes() && !common.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d formatted, %d unchanged, %d failed\n",
			summary.Changed, summary.Unchanged, summary.Failed)
	}

	return summary
}

// printWriteResult reports a file rewritten in place.
func printWriteResult(r FormatResult, common commonFlags, env *Environment) {
	if common.quiet {
		return
	}
	switch {
	case common.verbose && r.Changed:
		fmt.Fprintf(env.Stdout, "Formatted %s (%v)\n", r.Path, r.Duration.Round(time.Millisecond))
	case common.verbose:
		fmt.Fprintf(env.Stdout, "Unchanged %s (%v)\n", r.Path, r.Duration.Round(time.Millisecond))
	case r.Changed:
		fmt.Fprintf(env.Stdout, "Formatted %s\n", r.Path)
	}
}
