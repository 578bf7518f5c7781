package pipeline

import (
	"maps"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/alnah/go-mdfmt/internal/config"
	"github.com/alnah/go-mdfmt/internal/lexer"
)

// Languages handled without a subprocess.
const (
	langTeX      = "tex"
	langMarkdown = "md"
)

// Profile is the executable and fixed argument list used to run a formatter
// for one language.
type Profile struct {
	Executable string
	Args       []string
}

// String renders the profile as a command line, for logs.
func (p Profile) String() string {
	if len(p.Args) == 0 {
		return p.Executable
	}
	return p.Executable + " " + strings.Join(p.Args, " ")
}

// ProfileFunc builds the profile of a tool for a normalized language.
// It returns false when the tool does not support the language.
type ProfileFunc func(language string) (Profile, bool)

// Registry maps tool names to their argument builders. The language to tool
// mapping lives in config.Config; together they resolve a block to a Profile.
type Registry struct {
	tools map[string]ProfileFunc
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]ProfileFunc)}
}

// DefaultRegistry returns a registry with every built-in formatter profile.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("prettier", prettierProfile)
	r.Register("rustfmt", Fixed("rustfmt", "--edition", "2021"))
	r.Register("gofmt", Fixed("gofmt"))
	r.Register("black", Fixed("black", "-"))
	r.Register("clang-format", clangFormatProfile)
	r.Register("shfmt", Fixed("shfmt", "-i", "2"))
	r.Register("sqlfmt", Fixed("sqlfmt", "-"))
	r.Register("terraform", Fixed("terraform", "fmt", "-"))
	r.Register("stylua", Fixed("stylua", "-"))
	r.Register("dartfmt", Fixed("dart", "format"))
	r.Register("php-cs-fixer", Fixed("php-cs-fixer", "fix", "--using-cache=no", "-"))
	r.Register("isort", Fixed("isort", "-"))
	r.Register("autopep8", Fixed("autopep8", "-"))
	r.Register("yapf", Fixed("yapf", "-"))
	r.Register("scalafmt", Fixed("scalafmt", "--stdin"))
	r.Register("ktfmt", Fixed("ktfmt", "--stdin"))
	return r
}

// Register adds or replaces the builder for tool.
func (r *Registry) Register(tool string, fn ProfileFunc) {
	r.tools[tool] = fn
}

// Lookup resolves the profile of tool for language.
func (r *Registry) Lookup(tool, language string) (Profile, bool) {
	fn, ok := r.tools[tool]
	if !ok {
		return Profile{}, false
	}
	return fn(language)
}

// Tools returns the registered tool names, sorted.
func (r *Registry) Tools() []string {
	return slices.Sorted(maps.Keys(r.tools))
}

// Fixed returns a ProfileFunc that runs exe with args for every language.
func Fixed(exe string, args ...string) ProfileFunc {
	return func(string) (Profile, bool) {
		return Profile{Executable: exe, Args: args}, true
	}
}

// prettierParsers selects prettier's parser per language.
var prettierParsers = map[string]string{
	"js":      "babel",
	"ts":      "typescript",
	"css":     "css",
	"scss":    "scss",
	"less":    "less",
	"html":    "html",
	"json":    "json",
	"yml":     "yaml",
	"graphql": "graphql",
	"gql":     "graphql",
	"vue":     "vue",
	"angular": "angular",
}

func prettierProfile(language string) (Profile, bool) {
	parser, ok := prettierParsers[language]
	if !ok {
		return Profile{}, false
	}
	return Profile{Executable: "prettier", Args: []string{"--parser", parser}}, true
}

func clangFormatProfile(language string) (Profile, bool) {
	style := "--style=LLVM"
	switch language {
	case "c", "cpp", "java", "js":
		style = "--style=Google"
	}
	return Profile{Executable: "clang-format", Args: []string{style}}, true
}

// ResolveFormatter finds the tool configured for a normalized language. When
// the tag itself is unmapped, the aliases of the matching Chroma lexer are
// tried, so "rs", "py3" or "mjs" reach the entries for rust, py and js.
// The returned language is the mapping key that matched.
func ResolveFormatter(cfg *config.Config, language string) (tool, resolved string, ok bool) {
	if language == "" {
		return "", "", false
	}
	if tool, ok := cfg.FormatterFor(language); ok {
		return tool, language, true
	}

	l := lexers.Get(language)
	if l == nil {
		return "", "", false
	}
	lc := l.Config()
	candidates := append([]string{lc.Name}, lc.Aliases...)
	for _, c := range candidates {
		key := lexer.NormalizeLanguage(c)
		if tool, ok := cfg.FormatterFor(key); ok {
			return tool, key, true
		}
	}
	return "", "", false
}
