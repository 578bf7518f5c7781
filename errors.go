package mdfmt

import (
	"errors"

	"github.com/alnah/go-mdfmt/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrNilConfig      = errors.New("config cannot be nil")
	ErrInvalidWorkers = errors.New("invalid worker count")
	ErrInvalidTimeout = errors.New("invalid formatter timeout")
	ErrInvalidProfile = errors.New("invalid formatter profile")

	// Formatter run errors. A CommandRunner classifies its failures with
	// these; Format never returns them since failed blocks keep their content.
	ErrToolNotFound  = pipeline.ErrToolNotFound
	ErrToolFailed    = pipeline.ErrToolFailed
	ErrToolIO        = pipeline.ErrToolIO
	ErrToolTimeout   = pipeline.ErrToolTimeout
	ErrInvalidOutput = pipeline.ErrInvalidOutput
)
