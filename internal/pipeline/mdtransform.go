package pipeline

import (
	"regexp"
	"strings"
)

// Line ending normalization
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	if !strings.Contains(content, "\r") {
		return content
	}
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// trimTrailingNewlines reduces the newlines ending a document to one. Output
// that does not end with a newline is left as is.
func trimTrailingNewlines(content string) string {
	if !strings.HasSuffix(content, "\n") {
		return content
	}
	return strings.TrimRight(content, "\n") + "\n"
}
