package lexer

import "strings"

// languageAliases folds common synonyms onto the short tag used for
// formatter lookup.
var languageAliases = map[string]string{
	"javascript": "js",
	"typescript": "ts",
	"python":     "py",
	"c++":        "cpp",
	"cxx":        "cpp",
	"golang":     "go",
	"yaml":       "yml",
	"latex":      "tex",
	"markdown":   "md",
	"shell":      "sh",
	"bash":       "sh",
	"zsh":        "sh",
	"sass":       "scss",
}

// NormalizeLanguage trims and lowercases a fence info string and folds it
// through the alias table. Unknown tags are returned trimmed and lowercased.
func NormalizeLanguage(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if alias, ok := languageAliases[tag]; ok {
		return alias
	}
	return tag
}
