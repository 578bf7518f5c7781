// Package mdfmt formats Markdown documents that mix Chinese, Latin and
// numeric text.
//
// # Quick Start
//
//	f, err := mdfmt.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := f.Format(ctx, "用Go写的formatter，支持100种语言")
//	// out: "用 Go 写的 formatter，支持 100 种语言"
//
// # Formatting Rules
//
// A document is tokenized once, then rendered in a single pass:
//
//  1. A space is inserted between Chinese and Latin or numeric runs, and
//     around inline math and inline code
//  2. Headings, block math and fenced code blocks are surrounded by exactly
//     one blank line; runs of blank lines collapse to one
//  3. Block math is re-indented with a built-in LaTeX layout
//  4. Fenced code blocks are piped through the formatter configured for
//     their language (rustfmt, gofmt, prettier, ...)
//
// Code blocks are formatted concurrently. A block whose formatter is missing,
// fails or times out keeps its original content and a warning is logged.
//
// # Configuration
//
// Use functional options to customize the formatter:
//
//	cfg := mdfmt.DefaultConfig()
//	cfg.SpaceBetweenZhAndNum = false
//	cfg.CodeFormatters["py"] = "black"
//
//	f, err := mdfmt.New(
//	    mdfmt.WithConfig(cfg),
//	    mdfmt.WithTimeout(10 * time.Second),
//	    mdfmt.WithLogger(slog.Default()),
//	)
//
// Configuration files are JSON or YAML and can be loaded with LoadConfig.
// Keys missing from a file keep their default value.
package mdfmt
