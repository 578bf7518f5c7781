package pipeline

import (
	"bytes"
	"strings"

	"github.com/alnah/go-mdfmt/internal/config"
	"github.com/alnah/go-mdfmt/internal/lexer"
)

// Render reassembles tokens into text. formatted holds the dispatcher
// result of each code block by index; a missing entry falls back to the raw
// block content. Render is a single sequential pass: spacing only looks at
// the previous token.
func Render(src string, tokens []lexer.Token, blocks []lexer.CodeBlock, formatted []string, cfg *config.Config) string {
	r := &renderer{src: src, blocks: blocks, formatted: formatted, cfg: cfg}
	r.buf.Grow(len(src) + len(src)/8)
	r.render(tokens)
	return r.buf.String()
}

type renderer struct {
	src       string
	blocks    []lexer.CodeBlock
	formatted []string
	cfg       *config.Config
	buf       bytes.Buffer
}

func (r *renderer) render(tokens []lexer.Token) {
	var prev lexer.Kind
	hasPrev := false

	for _, tok := range tokens {
		if hasPrev && r.spaceBetween(prev, tok.Kind) {
			r.buf.WriteByte(' ')
		}

		switch tok.Kind {
		case lexer.InlineMath:
			r.delimited(tok, "$")
		case lexer.InlineCode:
			r.delimited(tok, "`")
		case lexer.BlockMath:
			r.blockMath(tok)
		case lexer.CodeBlockRef:
			r.codeBlock(tok)
		case lexer.Title:
			r.title(tok)
		case lexer.NewLine:
			if !bytes.HasSuffix(r.buf.Bytes(), []byte("\n\n")) {
				r.buf.WriteByte('\n')
			}
		default:
			r.buf.WriteString(tok.Text(r.src))
		}

		prev, hasPrev = tok.Kind, true
	}
}

// spaceBetween reports whether a single space separates a token of kind cur
// from the token of kind prev emitted just before it.
func (r *renderer) spaceBetween(prev, cur lexer.Kind) bool {
	inline := prev == lexer.InlineMath || prev == lexer.InlineCode
	word := prev == lexer.Chinese || prev == lexer.English || prev == lexer.Number

	switch cur {
	case lexer.Chinese:
		return inline ||
			(prev == lexer.English && r.cfg.SpaceBetweenZhAndEn) ||
			(prev == lexer.Number && r.cfg.SpaceBetweenZhAndNum)
	case lexer.English:
		return inline || (prev == lexer.Chinese && r.cfg.SpaceBetweenZhAndEn)
	case lexer.Number:
		return inline || (prev == lexer.Chinese && r.cfg.SpaceBetweenZhAndNum)
	case lexer.InlineMath:
		return word
	case lexer.InlineCode:
		return word && r.cfg.SpaceBetweenCodeAndText
	}
	return false
}

func (r *renderer) delimited(tok lexer.Token, delim string) {
	r.buf.WriteString(delim)
	r.buf.WriteString(tok.Text(r.src))
	if !tok.Unclosed {
		r.buf.WriteString(delim)
	}
}

func (r *renderer) blockMath(tok lexer.Token) {
	body := strings.TrimSpace(tok.Text(r.src))
	if r.cfg.FormatMath {
		body = FormatLaTeX(body)
	}

	r.ensureBlankLine()
	r.buf.WriteString("$$\n")
	if body != "" {
		r.buf.WriteString(body)
		r.buf.WriteByte('\n')
	}
	r.buf.WriteString("$$")
	r.ensureBlankLine()
}

func (r *renderer) codeBlock(tok lexer.Token) {
	block := r.blocks[tok.Block]
	body := block.Content(r.src)
	if tok.Block < len(r.formatted) {
		body = r.formatted[tok.Block]
	}

	r.ensureBlankLine()
	r.buf.WriteString("```")
	r.buf.WriteString(block.Language)
	r.buf.WriteByte('\n')
	r.buf.WriteString(body)
	if body != "" && !strings.HasSuffix(body, "\n") {
		r.buf.WriteByte('\n')
	}
	r.buf.WriteString("```")
	r.ensureBlankLine()
}

// title renders the heading text with a fresh buffer so that spacing never
// looks across the heading boundary.
func (r *renderer) title(tok lexer.Token) {
	sub := &renderer{src: r.src, cfg: r.cfg}
	sub.render(tok.Children)

	r.ensureBlankLine()
	r.buf.WriteString(strings.Repeat("#", tok.Level))
	if sub.buf.Len() > 0 {
		r.buf.WriteByte(' ')
		r.buf.Write(sub.buf.Bytes())
	}
	r.ensureBlankLine()
}

// ensureBlankLine makes the buffer end with exactly one blank line, unless
// it is empty.
func (r *renderer) ensureBlankLine() {
	if r.buf.Len() == 0 {
		return
	}
	b := r.buf.Bytes()
	n := len(b)
	for n > 0 && b[n-1] == '\n' {
		n--
	}
	r.buf.Truncate(n)
	r.buf.WriteString("\n\n")
}
