package main

import (
	"errors"
	"os"

	mdfmt "github.com/alnah/go-mdfmt"
	"github.com/alnah/go-mdfmt/internal/config"
)

// Exit codes for the mdfmt CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess     = 0 // Every file formatted or already formatted
	ExitGeneral     = 1 // General/unexpected error, or some files failed
	ExitUsage       = 2 // Invalid flags, config, or validation
	ExitIO          = 3 // File not found, permission denied
	ExitUnformatted = 4 // --check or --diff found files that would change
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, ErrUnformatted) {
		return ExitUnformatted
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteMarkdown) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoMarkdownFiles) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidFormatterMapping) ||
		errors.Is(err, config.ErrInputTooLarge) ||
		errors.Is(err, mdfmt.ErrNilConfig) ||
		errors.Is(err, mdfmt.ErrInvalidWorkers) ||
		errors.Is(err, mdfmt.ErrInvalidTimeout) ||
		errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrConflictingModes) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidPattern) {
		return ExitUsage
	}

	return ExitGeneral
}
