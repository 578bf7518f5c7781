package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Delimiters recognized by the lexer.
const (
	fence      = "```"
	mathFence  = "$$"
	noTextOpen = -1
)

// Tokenize splits src into tokens and extracts fenced code blocks.
// The k-th CodeBlockRef token in the result refers to blocks[k].
// Tokenize never fails: unterminated constructs consume the rest of the input.
func Tokenize(src string) (tokens []Token, blocks []CodeBlock) {
	l := newLexer(src, 0, len(src), false)
	l.run()
	return l.tokens, l.blocks
}

type lexer struct {
	src string
	pos int
	end int

	// inline disables block constructs. Set for heading text.
	inline bool
	// inQuote is set by a '>' opening a line and cleared at the next newline.
	inQuote bool
	// lineBlank is true while only spaces and tabs have been seen since the
	// last newline.
	lineBlank bool
	// textStart is the offset of the pending Text run, or noTextOpen.
	textStart int

	tokens []Token
	blocks []CodeBlock
}

func newLexer(src string, start, end int, inline bool) *lexer {
	return &lexer{
		src:       src,
		pos:       start,
		end:       end,
		inline:    inline,
		lineBlank: true,
		textStart: noTextOpen,
	}
}

func (l *lexer) run() {
	for l.pos < l.end {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:l.end])
		switch {
		case r == '\n':
			l.flushText()
			l.emit(Token{Kind: NewLine, Start: l.pos, End: l.pos + 1})
			l.pos++
			l.inQuote = false
			l.lineBlank = true
		case r == '\\':
			l.lexEscape()
		case r == '>' && l.lineBlank:
			l.inQuote = true
			l.lineBlank = false
			l.addText(size)
		case r == '$':
			l.lexDollar()
		case r == '`':
			l.lexBacktick()
		case r == '#' && l.lineBlank && !l.inline:
			l.lexHeading()
		case isASCIILetter(r):
			l.lexRun(English, isASCIILetter)
		case isASCIIDigit(r):
			l.lexRun(Number, isNumberRune)
		case isChinese(r):
			l.lexRun(Chinese, isChinese)
		default:
			if r != ' ' && r != '\t' {
				l.lineBlank = false
			}
			l.addText(size)
		}
	}
	l.flushText()
}

// emit appends a token.
func (l *lexer) emit(t Token) {
	l.tokens = append(l.tokens, t)
}

// addText extends the pending Text run by n bytes.
func (l *lexer) addText(n int) {
	if l.textStart == noTextOpen {
		l.textStart = l.pos
	}
	l.pos += n
}

// flushText emits the pending Text run, if any.
func (l *lexer) flushText() {
	if l.textStart != noTextOpen && l.textStart < l.pos {
		l.emit(Token{Kind: Text, Start: l.textStart, End: l.pos})
	}
	l.textStart = noTextOpen
}

// beginBlock closes the pending text before a block construct. Indentation
// on an otherwise blank line is dropped since blocks are rendered flush left.
func (l *lexer) beginBlock() {
	if l.lineBlank {
		l.textStart = noTextOpen
		return
	}
	l.flushText()
}

// literal records n bytes at the cursor as text.
func (l *lexer) literal(n int) {
	l.lineBlank = false
	l.addText(n)
}

// lexRun emits a maximal run of runes accepted by accept.
func (l *lexer) lexRun(kind Kind, accept func(rune) bool) {
	l.flushText()
	l.lineBlank = false
	start := l.pos
	for l.pos < l.end {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:l.end])
		if !accept(r) {
			break
		}
		l.pos += size
	}
	l.emit(Token{Kind: kind, Start: start, End: l.pos})
}

// lexEscape keeps a backslash and the rune after it as literal text so that
// \$, \` and \# never open a construct.
func (l *lexer) lexEscape() {
	n := 1
	if l.pos+1 < l.end && l.src[l.pos+1] != '\n' {
		_, size := utf8.DecodeRuneInString(l.src[l.pos+1 : l.end])
		n += size
	}
	l.literal(n)
}

func (l *lexer) lexDollar() {
	if strings.HasPrefix(l.src[l.pos:l.end], mathFence) {
		if l.inline || l.inQuote {
			l.literal(len(mathFence))
			return
		}
		l.beginBlock()
		l.lineBlank = false
		l.emit(l.delimited(BlockMath, len(mathFence), mathFence))
		return
	}
	l.flushText()
	l.lineBlank = false
	l.emit(l.delimited(InlineMath, 1, "$"))
}

func (l *lexer) lexBacktick() {
	rest := l.src[l.pos:l.end]
	switch {
	case strings.HasPrefix(rest, fence):
		if l.inline || l.inQuote {
			l.literal(len(fence))
			return
		}
		l.beginBlock()
		l.lineBlank = false
		l.lexFencedBlock()
	case strings.HasPrefix(rest, "``"):
		l.literal(2)
	default:
		l.flushText()
		l.lineBlank = false
		l.emit(l.delimited(InlineCode, 1, "`"))
	}
}

// delimited consumes an opening delimiter of width open, then content up to
// the closing delimiter. Without a closing delimiter the content runs to the
// end of input.
func (l *lexer) delimited(kind Kind, open int, closing string) Token {
	start := l.pos + open
	tok := Token{Kind: kind, Start: start}
	if i := strings.Index(l.src[start:l.end], closing); i >= 0 {
		tok.End = start + i
		l.pos = tok.End + len(closing)
		return tok
	}
	tok.End = l.end
	tok.Unclosed = true
	l.pos = l.end
	return tok
}

// lexFencedBlock consumes a ``` block. The info string runs to the end of the
// opening line; the body runs to a line whose first non-blank characters are
// ``` followed only by blanks.
func (l *lexer) lexFencedBlock() {
	infoStart := l.pos + len(fence)
	infoEnd := l.lineEnd(infoStart)
	block := CodeBlock{Language: NormalizeLanguage(l.src[infoStart:infoEnd])}
	ref := Token{Kind: CodeBlockRef, Block: len(l.blocks)}

	if infoEnd == l.end {
		block.Start, block.End = l.end, l.end
		ref.Unclosed = true
		l.pos = l.end
	} else {
		block.Start = infoEnd + 1
		block.End, l.pos, ref.Unclosed = l.findClosingFence(block.Start)
	}

	ref.Start, ref.End = block.Start, block.End
	l.blocks = append(l.blocks, block)
	l.emit(ref)
}

// findClosingFence scans lines from start. It returns the end of the body,
// the position to resume lexing (the end of the closing fence line, before
// its newline), and whether the fence was left unclosed.
func (l *lexer) findClosingFence(start int) (bodyEnd, resume int, unclosed bool) {
	for line := start; line < l.end; {
		next := l.lineEnd(line)
		i := skipBlanks(l.src, line, next)
		if strings.HasPrefix(l.src[i:next], fence) && skipBlanks(l.src, i+len(fence), next) == next {
			return line, next, false
		}
		if next == l.end {
			break
		}
		line = next + 1
	}
	return l.end, l.end, true
}

// lexHeading recognizes a run of '#' followed by a space or tab as an ATX
// heading. The trimmed rest of the line is tokenized as its own inline
// document. Any other '#' run is literal text.
func (l *lexer) lexHeading() {
	i := l.pos
	for i < l.end && l.src[i] == '#' {
		i++
	}
	if i == l.end || (l.src[i] != ' ' && l.src[i] != '\t') {
		l.literal(i - l.pos)
		return
	}

	level := i - l.pos
	lineEnd := l.lineEnd(i)
	start, end := trimRange(l.src, i, lineEnd)

	sub := newLexer(l.src, start, end, true)
	sub.run()

	l.beginBlock()
	l.emit(Token{Kind: Title, Start: start, End: end, Level: level, Children: sub.tokens})
	l.pos = lineEnd
	l.lineBlank = false
}

// lineEnd returns the offset of the next '\n' at or after from, or l.end.
func (l *lexer) lineEnd(from int) int {
	if i := strings.IndexByte(l.src[from:l.end], '\n'); i >= 0 {
		return from + i
	}
	return l.end
}

// skipBlanks advances over spaces and tabs in src[from:to].
func skipBlanks(src string, from, to int) int {
	for from < to && (src[from] == ' ' || src[from] == '\t') {
		from++
	}
	return from
}

// trimRange narrows [start, end) to exclude leading and trailing white space.
func trimRange(src string, start, end int) (int, int) {
	for start < end {
		r, size := utf8.DecodeRuneInString(src[start:end])
		if !unicode.IsSpace(r) {
			break
		}
		start += size
	}
	for end > start {
		r, size := utf8.DecodeLastRuneInString(src[start:end])
		if !unicode.IsSpace(r) {
			break
		}
		end -= size
	}
	return start, end
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isNumberRune(r rune) bool {
	return isASCIIDigit(r) || r == '.'
}

func isChinese(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}
