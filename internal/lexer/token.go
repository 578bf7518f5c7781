// Package lexer splits mixed-script Markdown text into classified tokens.
//
// Tokens never copy the input. Each one records a byte range into the source
// string passed to Tokenize; Title is the only token that owns anything (its
// nested token sequence). Fenced code blocks are extracted into a parallel
// list and referenced from the token stream by CodeBlockRef placeholders, so
// their formatting can run out of band and be substituted during rendering.
package lexer

import "fmt"

// Kind identifies the variant of a Token.
type Kind uint8

const (
	Text         Kind = iota // opaque run: punctuation, whitespace, other scripts
	Chinese                  // run of CJK ideographs (U+4E00..U+9FFF)
	English                  // run of ASCII letters
	Number                   // run of ASCII digits and '.'
	InlineMath               // $...$, range covers the content only
	InlineCode               // `...`, range covers the content only
	BlockMath                // $$...$$, range covers the content only
	CodeBlockRef             // placeholder for the Block-th CodeBlock
	NewLine                  // a single '\n'
	Title                    // ATX heading with nested tokens
)

var kindNames = [...]string{
	Text:         "Text",
	Chinese:      "Chinese",
	English:      "English",
	Number:       "Number",
	InlineMath:   "InlineMath",
	InlineCode:   "InlineCode",
	BlockMath:    "BlockMath",
	CodeBlockRef: "CodeBlockRef",
	NewLine:      "NewLine",
	Title:        "Title",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// IsBlock reports whether tokens of this kind are block-level constructs,
// which the renderer separates from their surroundings with a blank line.
func (k Kind) IsBlock() bool {
	return k == Title || k == BlockMath || k == CodeBlockRef
}

// Token is one lexical unit. Start and End are byte offsets into the source
// that was tokenized.
type Token struct {
	Kind  Kind
	Start int
	End   int

	// Level is the number of '#' characters of a Title.
	Level int
	// Children holds the tokens of a Title's text.
	Children []Token
	// Block is the index into the code block list for a CodeBlockRef.
	Block int
	// Unclosed is set when the input ended before the closing delimiter.
	Unclosed bool
}

// Text returns the token's content as a substring of src.
func (t Token) Text(src string) string {
	return src[t.Start:t.End]
}

// CodeBlock is a fenced code block extracted from the input.
type CodeBlock struct {
	// Language is the normalized info string of the opening fence.
	Language string
	Start    int
	End      int
}

// Content returns the block body as a substring of src.
func (b CodeBlock) Content(src string) string {
	return src[b.Start:b.End]
}
