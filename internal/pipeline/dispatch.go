package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/alnah/go-mdfmt/internal/config"
	"github.com/alnah/go-mdfmt/internal/hints"
)

// Messages of the warnings logged when a block keeps its content.
const (
	MsgToolNotFound = "code formatter not found"
	MsgToolTimeout  = "code formatter timed out"
	MsgToolFailed   = "code formatter failed"
)

// nestedFormatter formats an md code block as a document of its own.
type nestedFormatter func(ctx context.Context, input string, depth int) (string, error)

// Dispatcher formats the content of one fenced code block. It never fails:
// any problem is logged and the original content is returned.
type Dispatcher struct {
	cfg      *config.Config
	registry *Registry
	runner   CommandRunner
	logger   *slog.Logger
	timeout  time.Duration
	nested   nestedFormatter
}

// FormatBlock returns the formatted content of a block tagged with the
// normalized language, or content unchanged when formatting is disabled,
// unmapped or failed. depth is the nesting level of the enclosing document.
func (d *Dispatcher) FormatBlock(ctx context.Context, language, content string, depth int) string {
	if !d.cfg.FormatCodeBlock {
		return content
	}

	switch language {
	case langTeX:
		return FormatLaTeX(content)
	case langMarkdown:
		return d.formatNested(ctx, content, depth)
	}

	tool, lang, ok := ResolveFormatter(d.cfg, language)
	if !ok {
		return content
	}
	profile, ok := d.registry.Lookup(tool, lang)
	if !ok {
		d.logger.Debug("no formatter profile", "tool", tool, "lang", lang)
		return content
	}

	d.logger.Debug("running code formatter", "cmd", profile.String(), "lang", lang)
	out, err := d.run(ctx, profile, content)
	if err != nil {
		d.warn(err, tool, lang)
		return content
	}
	return out
}

func (d *Dispatcher) run(ctx context.Context, p Profile, content string) (string, error) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	stdout, _, err := d.runner.Run(ctx, content, p.Executable, p.Args...)
	if err != nil {
		return "", err
	}
	if !utf8.ValidString(stdout) {
		return "", fmt.Errorf("%w: %s", ErrInvalidOutput, p.Executable)
	}
	return stdout, nil
}

func (d *Dispatcher) warn(err error, tool, lang string) {
	switch {
	case errors.Is(err, ErrToolNotFound):
		d.logger.Warn(MsgToolNotFound, "tool", tool, "lang", lang, "hint", hints.InstallHint(tool))
	case errors.Is(err, ErrToolTimeout):
		d.logger.Warn(MsgToolTimeout, "tool", tool, "lang", lang, "timeout", d.timeout)
	case errors.Is(err, context.Canceled):
		d.logger.Debug("code formatter canceled", "tool", tool, "lang", lang)
	default:
		d.logger.Warn(MsgToolFailed, "tool", tool, "lang", lang, "err", err)
	}
}

func (d *Dispatcher) formatNested(ctx context.Context, content string, depth int) string {
	if d.nested == nil || depth+1 > MaxNestingDepth {
		d.logger.Debug("markdown block nesting too deep", "depth", depth)
		return content
	}
	out, err := d.nested(ctx, content, depth+1)
	if err != nil {
		return content
	}
	return out
}
