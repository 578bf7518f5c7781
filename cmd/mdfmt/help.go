package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdfmt [flags] [path ...]")
	fmt.Fprintln(w, "       mdfmt <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Format Markdown documents mixing Chinese and Latin text.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  format     Format files (the default command)")
	fmt.Fprintln(w, "  doctor     Check which code formatters are available")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdfmt help format' for formatting flags.")
}

// printFormatUsage prints usage for formatting files.
func printFormatUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdfmt [flags] [path ...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Format markdown files in place. Paths are files, directories or globs")
	fmt.Fprintln(w, "(docs/**/*.md). Without paths, or with \"-\", stdin is formatted to stdout.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -l, --list                List files whose formatting differs")
	fmt.Fprintln(w, "      --check               Like --list, exit with code 4 if any file differs")
	fmt.Fprintln(w, "  -d, --diff                Print diffs instead of rewriting files")
	fmt.Fprintln(w, "      --stdout              Print formatted documents instead of rewriting")
	fmt.Fprintln(w, "      --verify              Fail if headings or code blocks change")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input:")
	fmt.Fprintln(w, "      --exclude <glob>      Skip matching paths (repeatable)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rules:")
	fmt.Fprintln(w, "      --no-code             Keep code blocks unchanged")
	fmt.Fprintln(w, "      --no-math             Keep block math unchanged")
	fmt.Fprintln(w, "      --no-zh-en            No space between Chinese and Latin letters")
	fmt.Fprintln(w, "      --no-zh-num           No space between Chinese and digits")
	fmt.Fprintln(w, "      --no-code-space       No space between inline code and text")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Execution:")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per code block formatter timeout (default 10s, 0 = none)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show per-block and per-file details")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDFMT_CONFIG, MDFMT_WORKERS, MDFMT_TIMEOUT, MDFMT_FORMAT_CODE, MDFMT_FORMAT_MATH")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 ok, 1 error, 2 usage or config, 3 I/O, 4 unformatted (--check, --diff)")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdfmt doctor [--json] [-c config]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that the configured code formatters are on PATH.")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdfmt config [-c config]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration after applying the config file and MDFMT_* variables.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "format":
		printFormatUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdfmt version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdfmt help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
