package mdfmt

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alnah/go-mdfmt/internal/pipeline"
)

// Compile-time interface implementation checks.
var _ CommandRunner = (*ExecRunner)(nil)

// Formatter formats mixed-script Markdown documents.
// Create with New(), then call Format() from any number of goroutines.
type Formatter struct {
	cfg      formatterConfig
	pipeline *pipeline.Pipeline
}

// New creates a Formatter. Without options it uses DefaultConfig, one
// concurrent formatter per available CPU and no per-block timeout.
func New(opts ...Option) (*Formatter, error) {
	f := &Formatter{
		cfg: formatterConfig{config: DefaultConfig()},
	}
	for _, opt := range opts {
		opt(&f.cfg)
	}

	if err := f.validate(); err != nil {
		return nil, err
	}

	// Owned copy: callers may keep mutating the value they passed in.
	f.cfg.config = f.cfg.config.Clone()
	f.cfg.config.Normalize()

	registry := pipeline.DefaultRegistry()
	for _, p := range f.cfg.profiles {
		registry.Register(p.tool, pipeline.Fixed(p.executable, p.args...))
	}

	logger := f.cfg.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	f.pipeline = pipeline.New(pipeline.Options{
		Config:   f.cfg.config,
		Workers:  ResolvePoolSize(f.cfg.workers),
		Timeout:  f.cfg.timeout,
		Logger:   logger,
		Runner:   f.cfg.runner,
		Registry: registry,
	})
	return f, nil
}

func (f *Formatter) validate() error {
	if f.cfg.config == nil {
		return ErrNilConfig
	}
	if err := f.cfg.config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if f.cfg.workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, f.cfg.workers)
	}
	if f.cfg.timeout < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidTimeout, f.cfg.timeout)
	}
	for _, p := range f.cfg.profiles {
		if strings.TrimSpace(p.tool) == "" || strings.TrimSpace(p.executable) == "" {
			return fmt.Errorf("%w: tool %q, executable %q", ErrInvalidProfile, p.tool, p.executable)
		}
	}
	return nil
}

// Config returns a copy of the configuration in use.
func (f *Formatter) Config() *Config {
	return f.cfg.config.Clone()
}

// Format formats a whole document. Code blocks whose formatter is missing or
// fails keep their original content, so the only errors are ctx errors and
// recovered internal panics.
func (f *Formatter) Format(ctx context.Context, input string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	return f.pipeline.Format(ctx, input)
}

// FormatString formats input with the default configuration.
func FormatString(input string) (string, error) {
	f, err := New()
	if err != nil {
		return "", err
	}
	return f.Format(context.Background(), input)
}
