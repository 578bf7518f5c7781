package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	mdfmt "github.com/alnah/go-mdfmt"
	"github.com/alnah/go-mdfmt/internal/config"
	"github.com/alnah/go-mdfmt/internal/verify"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		{"unformatted", ErrUnformatted, ExitUnformatted},
		{"wrapped unformatted", fmt.Errorf("%w: 2 of 3", ErrUnformatted), ExitUnformatted},

		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read markdown", ErrReadMarkdown, ExitIO},
		{"write markdown", ErrWriteMarkdown, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"no markdown files", ErrNoMarkdownFiles, ExitIO},
		{"wrapped file not exist", fmt.Errorf("discovering: %w", os.ErrNotExist), ExitIO},

		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"empty config name", config.ErrEmptyConfigName, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid mapping", config.ErrInvalidFormatterMapping, ExitUsage},
		{"config too large", config.ErrInputTooLarge, ExitUsage},
		{"nil config", mdfmt.ErrNilConfig, ExitUsage},
		{"library workers", mdfmt.ErrInvalidWorkers, ExitUsage},
		{"library timeout", mdfmt.ErrInvalidTimeout, ExitUsage},
		{"invalid flags", ErrInvalidFlags, ExitUsage},
		{"conflicting modes", ErrConflictingModes, ExitUsage},
		{"worker count", ErrInvalidWorkerCount, ExitUsage},
		{"timeout", ErrInvalidTimeout, ExitUsage},
		{"extension", ErrInvalidExtension, ExitUsage},
		{"pattern", ErrInvalidPattern, ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading config: %w", config.ErrConfigParse), ExitUsage},

		{"format failed", ErrFormatFailed, ExitGeneral},
		{"structure changed", verify.ErrStructureChanged, ExitGeneral},
		{"unknown", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes_Values(t *testing.T) {
	t.Parallel()

	codes := []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO, ExitUnformatted}
	seen := make(map[int]bool)
	for _, c := range codes {
		if c < 0 || c >= 126 {
			t.Errorf("exit code %d outside 0-125", c)
		}
		if seen[c] {
			t.Errorf("duplicate exit code %d", c)
		}
		seen[c] = true
	}
}
