package main

import (
	"context"
	"log/slog"
	"sync"

	"github.com/alnah/go-mdfmt/internal/hints"
	"github.com/alnah/go-mdfmt/internal/pipeline"
)

// newLogger builds the stderr logger. Timestamps are dropped: the CLI is
// interactive and runs are short.
func newLogger(env *Environment, quiet, verbose bool, issues *formatterIssues) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}
	h := slog.NewTextHandler(env.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
	return slog.New(&issueHandler{Handler: h, issues: issues})
}

// formatterIssues records which formatter warnings a run logged.
type formatterIssues struct {
	mu       sync.Mutex
	missing  bool
	timedOut bool
}

// hints returns one hint per kind of issue seen, or "".
func (f *formatterIssues) hints() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out string
	if f.missing {
		out += hints.ForDoctor()
	}
	if f.timedOut {
		out += hints.ForTimeout()
	}
	return out
}

// issueHandler passes records through and notes formatter warnings.
type issueHandler struct {
	slog.Handler
	issues *formatterIssues
}

func (h *issueHandler) Handle(ctx context.Context, r slog.Record) error {
	switch r.Message {
	case pipeline.MsgToolNotFound:
		h.issues.mu.Lock()
		h.issues.missing = true
		h.issues.mu.Unlock()
	case pipeline.MsgToolTimeout:
		h.issues.mu.Lock()
		h.issues.timedOut = true
		h.issues.mu.Unlock()
	}
	return h.Handler.Handle(ctx, r)
}

func (h *issueHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &issueHandler{Handler: h.Handler.WithAttrs(attrs), issues: h.issues}
}

func (h *issueHandler) WithGroup(name string) slog.Handler {
	return &issueHandler{Handler: h.Handler.WithGroup(name), issues: h.issues}
}
