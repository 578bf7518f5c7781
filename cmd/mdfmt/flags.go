package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// modeFlags select what happens with formatted output. At most one is set.
type modeFlags struct {
	list   bool // print files that would change
	check  bool // like list, exit code 4 when any file would change
	diff   bool // print unified diffs
	stdout bool // print formatted content instead of writing
}

// toggleFlags turn individual rules off on top of the config file.
type toggleFlags struct {
	noCode      bool
	noMath      bool
	noZhEn      bool
	noZhNum     bool
	noCodeSpace bool
}

// formatFlags holds all flags for the format command.
type formatFlags struct {
	common  commonFlags
	mode    modeFlags
	toggles toggleFlags
	workers int
	timeout string
	exclude []string
	verify  bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-block and per-file details")
}

// addModeFlags adds output mode flags to a FlagSet.
func addModeFlags(fs *flag.FlagSet, f *modeFlags) {
	fs.BoolVarP(&f.list, "list", "l", false, "list files whose formatting differs")
	fs.BoolVar(&f.check, "check", false, "like --list, exit with code 4 if any file differs")
	fs.BoolVarP(&f.diff, "diff", "d", false, "print diffs instead of rewriting files")
	fs.BoolVar(&f.stdout, "stdout", false, "print formatted documents instead of rewriting files")
}

// addToggleFlags adds rule toggles to a FlagSet.
func addToggleFlags(fs *flag.FlagSet, f *toggleFlags) {
	fs.BoolVar(&f.noCode, "no-code", false, "keep code blocks unchanged")
	fs.BoolVar(&f.noMath, "no-math", false, "keep block math unchanged")
	fs.BoolVar(&f.noZhEn, "no-zh-en", false, "no space between Chinese and Latin letters")
	fs.BoolVar(&f.noZhNum, "no-zh-num", false, "no space between Chinese and digits")
	fs.BoolVar(&f.noCodeSpace, "no-code-space", false, "no space between inline code and text")
}

// parseFormatFlags parses format command flags and returns positional args.
func parseFormatFlags(args []string, usage io.Writer) (*formatFlags, []string, error) {
	fs := flag.NewFlagSet("mdfmt", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &formatFlags{}

	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per code block formatter timeout (e.g., 5s, 1m)")
	fs.StringArrayVar(&f.exclude, "exclude", nil, "skip paths matching a glob (repeatable)")
	fs.BoolVar(&f.verify, "verify", false, "fail when formatting changes the document structure")

	addCommonFlags(fs, &f.common)
	addModeFlags(fs, &f.mode)
	addToggleFlags(fs, &f.toggles)

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			printFormatUsage(usage)
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}

	if err := f.mode.validate(); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// validate rejects combinations of output modes.
func (m modeFlags) validate() error {
	n := 0
	for _, set := range []bool{m.list, m.check, m.diff, m.stdout} {
		if set {
			n++
		}
	}
	if n > 1 {
		return fmt.Errorf("%w: use only one of --list, --check, --diff, --stdout", ErrConflictingModes)
	}
	return nil
}

// writes reports whether the mode rewrites files in place.
func (m modeFlags) writes() bool {
	return !m.list && !m.check && !m.diff && !m.stdout
}
