package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-mdfmt/internal/config"
	"github.com/alnah/go-mdfmt/internal/lexer"
)

// MaxNestingDepth bounds the recursion through md code blocks. Deeper blocks
// are kept unformatted.
const MaxNestingDepth = 8

// Options configures a Pipeline. Zero values select defaults.
type Options struct {
	Config   *config.Config // nil selects config.DefaultConfig()
	Workers  int            // concurrent code block formatters, < 1 means 1
	Timeout  time.Duration  // per block, 0 disables
	Logger   *slog.Logger   // nil discards
	Runner   CommandRunner  // nil selects ExecRunner
	Registry *Registry      // nil selects DefaultRegistry()
}

// Pipeline tokenizes, dispatches and renders documents. It is safe for
// concurrent use: the Config is only read.
type Pipeline struct {
	cfg        *config.Config
	workers    int
	logger     *slog.Logger
	dispatcher *Dispatcher
}

// New creates a Pipeline.
func New(opts Options) *Pipeline {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	runner := opts.Runner
	if runner == nil {
		runner = &ExecRunner{}
	}
	registry := opts.Registry
	if registry == nil {
		registry = DefaultRegistry()
	}

	p := &Pipeline{
		cfg:     cfg,
		workers: max(opts.Workers, 1),
		logger:  logger,
	}
	p.dispatcher = &Dispatcher{
		cfg:      cfg,
		registry: registry,
		runner:   runner,
		logger:   logger,
		timeout:  opts.Timeout,
		nested:   p.format,
	}
	return p
}

// Format formats a whole document. It only fails when ctx is done.
func (p *Pipeline) Format(ctx context.Context, input string) (string, error) {
	return p.format(ctx, input, 0)
}

func (p *Pipeline) format(ctx context.Context, input string, depth int) (string, error) {
	src := normalizeLineEndings(input)
	tokens, blocks := lexer.Tokenize(src)

	formatted, err := p.formatBlocks(ctx, src, blocks, depth)
	if err != nil {
		return "", err
	}

	out := Render(src, tokens, blocks, formatted, p.cfg)
	return trimTrailingNewlines(out), nil
}

// formatBlocks runs the dispatcher on every block with at most p.workers in
// flight. Each result lands in the slot of its block index. A panic in a
// worker is returned as an error.
func (p *Pipeline) formatBlocks(ctx context.Context, src string, blocks []lexer.CodeBlock, depth int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	results := make([]string, len(blocks))
	if len(blocks) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, block := range blocks {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("code block %d: internal error: %v", i, r)
				}
			}()
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.dispatcher.FormatBlock(gctx, block.Language, block.Content(src), depth)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.logger.Debug("formatted code blocks", "count", len(blocks), "depth", depth)
	return results, nil
}
