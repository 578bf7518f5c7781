// Package pipeline implements the formatting pipeline.
//
// A document goes through three stages:
//   - tokenizing (internal/lexer), which extracts fenced code blocks
//   - dispatching every code block to its external formatter, concurrently
//   - rendering the tokens back to text with the spacing and blank line rules
//
// Formatter failures never abort a document: the affected block keeps its
// original content and a warning is logged. Markdown code blocks are
// formatted by running the pipeline on their content, up to MaxNestingDepth.
package pipeline
