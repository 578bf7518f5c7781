package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	mdfmt "github.com/alnah/go-mdfmt"
	"github.com/alnah/go-mdfmt/internal/fileutil"
	"github.com/alnah/go-mdfmt/internal/verify"
)

// Sentinel errors for batch operations.
var (
	ErrReadMarkdown  = errors.New("failed to read markdown file")
	ErrWriteMarkdown = errors.New("failed to write markdown file")
	ErrFormatFailed  = errors.New("some files could not be formatted")
	ErrUnformatted   = errors.New("files are not formatted")
)

// DocumentFormatter is the interface for the formatting service.
type DocumentFormatter interface {
	Format(ctx context.Context, input string) (string, error)
}

// Compile-time interface implementation check.
var _ DocumentFormatter = (*mdfmt.Formatter)(nil)

// FormatResult holds the outcome of formatting a single file.
type FormatResult struct {
	Path      string
	Original  string
	Formatted string
	Changed   bool
	Err       error
	Duration  time.Duration
}

// batchOptions groups parameters shared across the files of a batch.
type batchOptions struct {
	write   bool // rewrite changed files in place
	verify  bool // compare document structure before writing
	workers int
}

// formatBatch processes files concurrently. Results keep the order of files.
func formatBatch(ctx context.Context, f DocumentFormatter, files []string, opts batchOptions) []FormatResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(max(opts.workers, 1), len(files))

	results := make([]FormatResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = FormatResult{Path: files[idx], Err: ctx.Err()}
					continue
				}
				results[idx] = formatFile(ctx, f, files[idx], opts)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// formatFile formats one file and, when requested, writes it back.
func formatFile(ctx context.Context, f DocumentFormatter, path string, opts batchOptions) FormatResult {
	start := time.Now()
	result := FormatResult{Path: path}
	done := func(err error) FormatResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(path) // #nosec G304 -- discovered path
	if err != nil {
		return done(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}
	result.Original = string(content)

	out, err := f.Format(ctx, result.Original)
	if err != nil {
		return done(err)
	}
	result.Formatted = out
	result.Changed = out != result.Original

	if opts.verify {
		if err := verify.Compare(result.Original, out); err != nil {
			return done(err)
		}
	}

	if result.Changed && opts.write {
		if err := fileutil.WriteFileAtomic(path, []byte(out)); err != nil {
			return done(fmt.Errorf("%w: %v", ErrWriteMarkdown, err))
		}
	}

	return done(nil)
}

// ResultSummary holds the count of changed, unchanged and failed files.
type ResultSummary struct {
	Changed   int
	Unchanged int
	Failed    int
}

// countResults tallies the batch outcome.
func countResults(results []FormatResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		switch {
		case r.Err != nil:
			summary.Failed++
		case r.Changed:
			summary.Changed++
		default:
			summary.Unchanged++
		}
	}
	return summary
}
