package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	mdfmt "github.com/alnah/go-mdfmt"
	"github.com/alnah/go-mdfmt/internal/config"
	"github.com/alnah/go-mdfmt/internal/fileutil"
	"github.com/alnah/go-mdfmt/internal/hints"
	"github.com/alnah/go-mdfmt/internal/verify"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input: pass files, directories or globs, or pipe a document to stdin")
	ErrInvalidFlags     = errors.New("invalid flags")
	ErrConflictingModes = errors.New("conflicting output modes")
	ErrInvalidTimeout   = errors.New("invalid timeout")
)

const (
	// defaultTimeout bounds each external formatter run unless --timeout or
	// MDFMT_TIMEOUT say otherwise.
	defaultTimeout = 10 * time.Second

	stdinName = "<stdin>"
)

// runFormat orchestrates formatting of files or stdin.
func runFormat(ctx context.Context, args []string, env *Environment) error {
	flags, paths, err := parseFormatFlags(args, env.Stdout)
	if err != nil {
		return err
	}

	issues := &formatterIssues{}
	logger := newLogger(env, flags.common.quiet, flags.common.verbose, issues)
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	envCfg := loadEnvConfig()
	cfg, err := resolveConfig(flags.common.config, envCfg, env)
	if err != nil {
		return err
	}
	mergeFlags(flags, cfg)

	workers, err := resolveWorkers(flags.workers, envCfg)
	if err != nil {
		return err
	}
	timeout, err := resolveTimeout(flags.timeout, envCfg)
	if err != nil {
		return err
	}
	poolSize := mdfmt.ResolvePoolSize(workers)

	fromStdin := len(paths) == 0 || (len(paths) == 1 && paths[0] == "-")
	var files []string
	if !fromStdin {
		files, err = discoverFiles(paths, flags.exclude)
		if err != nil {
			return fmt.Errorf("discovering files: %w", err)
		}
		if len(files) == 0 {
			return fmt.Errorf("%w in %s", ErrNoMarkdownFiles, strings.Join(paths, ", "))
		}
	} else if env.stdinIsTerminal() {
		return ErrNoInput
	}

	// Files share the pool; a lone document gets it all for its code blocks.
	blockWorkers := max(1, poolSize/max(1, len(files)))
	logger.Debug("worker pool", "files", len(files), "size", poolSize, "block_workers", blockWorkers, "timeout", timeout)

	formatter, err := mdfmt.New(
		mdfmt.WithConfig(cfg),
		mdfmt.WithWorkers(blockWorkers),
		mdfmt.WithTimeout(timeout),
		mdfmt.WithLogger(logger),
		mdfmt.WithRunner(env.Runner),
	)
	if err != nil {
		return err
	}

	if fromStdin {
		err = formatStdin(ctx, formatter, flags, env)
	} else {
		err = formatFiles(ctx, formatter, files, poolSize, flags, env, logger)
	}

	if h := issues.hints(); h != "" && !flags.common.quiet {
		fmt.Fprintln(env.Stderr, strings.TrimPrefix(h, "\n"))
	}
	return err
}

// formatFiles formats discovered files in parallel and reports the results.
func formatFiles(ctx context.Context, f DocumentFormatter, files []string, workers int, flags *formatFlags, env *Environment, logger *slog.Logger) error {
	results := formatBatch(ctx, f, files, batchOptions{
		write:   flags.mode.writes(),
		verify:  flags.verify,
		workers: workers,
	})
	for _, r := range results {
		logger.Debug("file done", "path", r.Path, "changed", r.Changed, "duration", r.Duration)
	}
	summary := printResults(results, flags.mode, flags.common, env)
	return batchError(ctx, summary, len(results), flags.mode)
}

// formatStdin formats a single document from stdin. Without a mode flag the
// result goes to stdout.
func formatStdin(ctx context.Context, f DocumentFormatter, flags *formatFlags, env *Environment) error {
	data, err := io.ReadAll(env.stdin())
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrReadMarkdown, stdinName, err)
	}

	in := string(data)
	out, err := f.Format(ctx, in)
	if err != nil {
		return err
	}
	if flags.verify {
		if err := verify.Compare(in, out); err != nil {
			return err
		}
	}

	mode := flags.mode
	if mode.writes() {
		mode.stdout = true
	}
	r := FormatResult{Path: stdinName, Original: in, Formatted: out, Changed: out != in}
	summary := printResults([]FormatResult{r}, mode, flags.common, env)
	return batchError(ctx, summary, 1, mode)
}

// batchError turns a summary into the command error.
func batchError(ctx context.Context, summary ResultSummary, total int, mode modeFlags) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%w: %d of %d failed", ErrFormatFailed, summary.Failed, total)
	}
	if summary.Changed > 0 && (mode.check || mode.diff) {
		return fmt.Errorf("%w: %d of %d would change%s", ErrUnformatted, summary.Changed, total, hints.ForUnformatted())
	}
	return nil
}

// resolveConfig loads the config named by flag or MDFMT_CONFIG over the
// environment's base config, then applies MDFMT_* toggles.
func resolveConfig(name string, envCfg *envConfig, env *Environment) (*config.Config, error) {
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := env.baseConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// mergeFlags applies rule toggles. CLI wins over env and file.
func mergeFlags(flags *formatFlags, cfg *config.Config) {
	t := flags.toggles
	if t.noCode {
		cfg.FormatCodeBlock = false
	}
	if t.noMath {
		cfg.FormatMath = false
	}
	if t.noZhEn {
		cfg.SpaceBetweenZhAndEn = false
	}
	if t.noZhNum {
		cfg.SpaceBetweenZhAndNum = false
	}
	if t.noCodeSpace {
		cfg.SpaceBetweenCodeAndText = false
	}
}

// resolveWorkers picks the worker count: flag > MDFMT_WORKERS > auto (0).
func resolveWorkers(flagWorkers int, envCfg *envConfig) (int, error) {
	if err := validateWorkers(flagWorkers); err != nil {
		return 0, err
	}
	if flagWorkers > 0 {
		return flagWorkers, nil
	}
	if err := validateWorkers(envCfg.Workers); err != nil {
		return 0, fmt.Errorf("MDFMT_WORKERS: %w", err)
	}
	return envCfg.Workers, nil
}

// resolveTimeout picks the per-block timeout: flag > MDFMT_TIMEOUT > default.
// "0" disables the limit.
func resolveTimeout(flagTimeout string, envCfg *envConfig) (time.Duration, error) {
	if flagTimeout != "" {
		d, err := time.ParseDuration(flagTimeout)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagTimeout, err)
		}
		if d < 0 {
			return 0, fmt.Errorf("%w: %q must not be negative", ErrInvalidTimeout, flagTimeout)
		}
		return d, nil
	}
	if envCfg.Timeout > 0 {
		return envCfg.Timeout, nil
	}
	return defaultTimeout, nil
}
