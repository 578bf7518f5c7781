package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Configure GOMAXPROCS with conditional logging
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if wantsVerbose(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// wantsVerbose reports whether -v/--verbose appears before flag parsing.
func wantsVerbose(args []string) bool {
	return slices.Contains(args, "-v") || slices.Contains(args, "--verbose")
}

// runMain dispatches to a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) > 1 {
		switch args[1] {
		case "version":
			fmt.Fprintf(env.Stdout, "mdfmt %s\n", Version)
			return ExitSuccess
		case "help":
			return runHelp(args[2:], env)
		case "doctor":
			return runDoctorCmd(args[2:], env)
		case "config":
			return report(runConfigCmd(args[2:], env), env)
		}
	}

	formatArgs := args[1:]
	if len(formatArgs) > 0 && formatArgs[0] == "format" {
		formatArgs = formatArgs[1:]
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	return report(runFormat(ctx, formatArgs, env), env)
}

// report prints err, if any, and maps it to an exit code.
func report(err error, env *Environment) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	fmt.Fprintln(env.Stderr, err)
	return exitCodeFor(err)
}
