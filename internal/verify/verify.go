// Package verify checks that formatting kept the block structure of a
// document, as seen by a CommonMark parser.
package verify

import (
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ErrStructureChanged is returned when the formatted document parses to a
// different number of headings or fenced code blocks than the input.
var ErrStructureChanged = errors.New("document structure changed")

// Summary counts the structural nodes compared by Compare.
type Summary struct {
	Headings   int
	CodeBlocks int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d headings, %d code blocks", s.Headings, s.CodeBlocks)
}

var md = goldmark.New()

// Summarize parses src and counts its headings and fenced code blocks.
func Summarize(src []byte) Summary {
	var s Summary
	doc := md.Parser().Parse(text.NewReader(src))
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			s.Headings++
		case ast.KindFencedCodeBlock:
			s.CodeBlocks++
		}
		return ast.WalkContinue, nil
	})
	return s
}

// Compare returns ErrStructureChanged when before and after differ in
// structure.
func Compare(before, after string) error {
	b := Summarize([]byte(before))
	a := Summarize([]byte(after))
	if a != b {
		return fmt.Errorf("%w: %s before, %s after", ErrStructureChanged, b, a)
	}
	return nil
}
