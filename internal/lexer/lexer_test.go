package lexer

import (
	"reflect"
	"strings"
	"testing"
)

// tok is a compact description of a token used to compare lexer output.
type tok struct {
	Kind Kind
	Text string
}

func describe(src string, tokens []Token) []tok {
	out := make([]tok, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, tok{Kind: t.Kind, Text: t.Text(src)})
	}
	return out
}

// ---------------------------------------------------------------------------
// TestTokenize - Classification
// ---------------------------------------------------------------------------

func TestTokenize_Classification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []tok
	}{
		{
			name:  "empty input",
			input: "",
			want:  []tok{},
		},
		{
			name:  "english then chinese",
			input: "Hello你好",
			want:  []tok{{English, "Hello"}, {Chinese, "你好"}},
		},
		{
			name:  "chinese then number with dot",
			input: "版本1.2.3",
			want:  []tok{{Chinese, "版本"}, {Number, "1.2.3"}},
		},
		{
			name:  "punctuation and spaces merge into one text run",
			input: "a, b",
			want:  []tok{{English, "a"}, {Text, ", "}, {English, "b"}},
		},
		{
			name:  "non-CJK scripts are text",
			input: "héllo",
			want:  []tok{{English, "h"}, {Text, "é"}, {English, "llo"}},
		},
		{
			name:  "chinese punctuation is text",
			input: "你好，世界",
			want:  []tok{{Chinese, "你好"}, {Text, "，"}, {Chinese, "世界"}},
		},
		{
			name:  "newlines are separate tokens",
			input: "a\n\nb",
			want:  []tok{{English, "a"}, {NewLine, "\n"}, {NewLine, "\n"}, {English, "b"}},
		},
		{
			name:  "inline math content excludes delimiters",
			input: "你好$x+y$",
			want:  []tok{{Chinese, "你好"}, {InlineMath, "x+y"}},
		},
		{
			name:  "inline code content excludes delimiters",
			input: "run `go test` now",
			want: []tok{
				{English, "run"}, {Text, " "}, {InlineCode, "go test"},
				{Text, " "}, {English, "now"},
			},
		},
		{
			name:  "block math",
			input: "$$\nE=mc^2\n$$",
			want:  []tok{{BlockMath, "\nE=mc^2\n"}},
		},
		{
			name:  "escaped dollar stays literal",
			input: `\$5`,
			want:  []tok{{Text, `\$`}, {Number, "5"}},
		},
		{
			name:  "double backtick is literal",
			input: "``x",
			want:  []tok{{Text, "``"}, {English, "x"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens, _ := Tokenize(tt.input)
			got := describe(tt.input, tokens)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q)\n got  %v\n want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestTokenize - Unterminated constructs
// ---------------------------------------------------------------------------

func TestTokenize_Unterminated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		kind    Kind
		content string
	}{
		{"inline math", "a $x+y", InlineMath, "x+y"},
		{"inline code", "a `code", InlineCode, "code"},
		{"block math", "$$\nx\ny", BlockMath, "\nx\ny"},
		{"fenced block", "```go\nfunc main() {}\n", CodeBlockRef, "func main() {}\n"},
		{"fence at end of input", "```go", CodeBlockRef, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens, _ := Tokenize(tt.input)
			last := tokens[len(tokens)-1]
			if last.Kind != tt.kind {
				t.Fatalf("last token kind = %v, want %v", last.Kind, tt.kind)
			}
			if got := last.Text(tt.input); got != tt.content {
				t.Errorf("content = %q, want %q", got, tt.content)
			}
			if !last.Unclosed {
				t.Error("expected Unclosed to be set")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestTokenize - Fenced code blocks
// ---------------------------------------------------------------------------

func TestTokenize_FencedBlock(t *testing.T) {
	t.Parallel()

	input := "intro\n```Rust\nfn main() {}\n```\nafter"
	tokens, blocks := Tokenize(input)

	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if blocks[0].Language != "rust" {
		t.Errorf("Language = %q, want %q", blocks[0].Language, "rust")
	}
	if got := blocks[0].Content(input); got != "fn main() {}\n" {
		t.Errorf("Content = %q, want %q", got, "fn main() {}\n")
	}

	got := describe(input, tokens)
	want := []tok{
		{English, "intro"}, {NewLine, "\n"},
		{CodeBlockRef, "fn main() {}\n"},
		{NewLine, "\n"}, {English, "after"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokens\n got  %v\n want %v", got, want)
	}
}

func TestTokenize_FencedBlockClosingRules(t *testing.T) {
	t.Parallel()

	t.Run("fence with info string inside body does not close", func(t *testing.T) {
		t.Parallel()

		input := "```md\n```go\nx\n```\n"
		_, blocks := Tokenize(input)
		if len(blocks) != 1 {
			t.Fatalf("got %d blocks, want 1", len(blocks))
		}
		if got := blocks[0].Content(input); got != "```go\nx\n" {
			t.Errorf("Content = %q", got)
		}
	})

	t.Run("indented closing fence closes", func(t *testing.T) {
		t.Parallel()

		input := "```\na\n   ```  \nb"
		tokens, blocks := Tokenize(input)
		if got := blocks[0].Content(input); got != "a\n" {
			t.Errorf("Content = %q, want %q", got, "a\n")
		}
		if tokens[len(tokens)-1].Text(input) != "b" {
			t.Errorf("expected lexing to resume after the closing fence line")
		}
	})

	t.Run("indentation before opening fence is dropped", func(t *testing.T) {
		t.Parallel()

		tokens, _ := Tokenize("  ```\nx\n```")
		if tokens[0].Kind != CodeBlockRef {
			t.Errorf("first token = %v, want CodeBlockRef", tokens[0].Kind)
		}
	})
}

// ---------------------------------------------------------------------------
// TestTokenize - Placeholder and block list correspondence
// ---------------------------------------------------------------------------

func TestTokenize_PlaceholdersMatchBlocks(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"no blocks here",
		"```a\n1\n```\n```b\n2\n```\n```c\n3\n```",
		"# t\n```go\nx\n```\n> ```rust\n$$x$$\n```\nunclosed",
		"```\n```\n```\n```",
	}

	for _, input := range inputs {
		tokens, blocks := Tokenize(input)

		k := 0
		for _, tk := range tokens {
			if tk.Kind != CodeBlockRef {
				continue
			}
			if tk.Block != k {
				t.Errorf("Tokenize(%q): placeholder %d refers to block %d", input, k, tk.Block)
			}
			if tk.Start != blocks[k].Start || tk.End != blocks[k].End {
				t.Errorf("Tokenize(%q): placeholder %d range differs from block", input, k)
			}
			k++
		}
		if k != len(blocks) {
			t.Errorf("Tokenize(%q): %d placeholders, %d blocks", input, k, len(blocks))
		}
	}
}

// ---------------------------------------------------------------------------
// TestTokenize - Block quotes
// ---------------------------------------------------------------------------

func TestTokenize_QuoteSuppressesFences(t *testing.T) {
	t.Parallel()

	input := "> ```rust\n> fn main() {}\n> ```"
	tokens, blocks := Tokenize(input)

	if len(blocks) != 0 {
		t.Fatalf("got %d code blocks inside a quote, want 0", len(blocks))
	}
	got := describe(input, tokens[:3])
	want := []tok{{Text, "> ```"}, {English, "rust"}, {NewLine, "\n"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokens\n got  %v\n want %v", got, want)
	}
}

func TestTokenize_QuoteSuppressesBlockMath(t *testing.T) {
	t.Parallel()

	input := "  > $$x$$"
	tokens, _ := Tokenize(input)
	for _, tk := range tokens {
		if tk.Kind == BlockMath || tk.Kind == InlineMath {
			t.Fatalf("unexpected %v token inside quote", tk.Kind)
		}
	}
}

func TestTokenize_QuoteEndsAtNewline(t *testing.T) {
	t.Parallel()

	input := "> quoted\n```go\nx\n```"
	_, blocks := Tokenize(input)
	if len(blocks) != 1 {
		t.Errorf("got %d blocks, want 1 after quote line ends", len(blocks))
	}
}

func TestTokenize_GreaterThanMidLineIsNotQuote(t *testing.T) {
	t.Parallel()

	input := "a > b\n"
	input += "```go\nx\n```"
	_, blocks := Tokenize("a > b ```go\nx\n```")
	if len(blocks) != 1 {
		t.Errorf("'>' after text must not open a quote: got %d blocks", len(blocks))
	}
	_, blocks = Tokenize(input)
	if len(blocks) != 1 {
		t.Errorf("got %d blocks, want 1", len(blocks))
	}
}

// ---------------------------------------------------------------------------
// TestTokenize - Headings
// ---------------------------------------------------------------------------

func TestTokenize_Heading(t *testing.T) {
	t.Parallel()

	input := "## Hello你好  \nbody"
	tokens, _ := Tokenize(input)

	title := tokens[0]
	if title.Kind != Title {
		t.Fatalf("first token = %v, want Title", title.Kind)
	}
	if title.Level != 2 {
		t.Errorf("Level = %d, want 2", title.Level)
	}
	if got := title.Text(input); got != "Hello你好" {
		t.Errorf("title text = %q, want trimmed %q", got, "Hello你好")
	}
	want := []tok{{English, "Hello"}, {Chinese, "你好"}}
	if got := describe(input, title.Children); !reflect.DeepEqual(got, want) {
		t.Errorf("children\n got  %v\n want %v", got, want)
	}
	if tokens[1].Kind != NewLine {
		t.Errorf("token after title = %v, want NewLine", tokens[1].Kind)
	}
}

func TestTokenize_HeadingDetection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantTitle bool
	}{
		{"heading at document start", "# Title", true},
		{"heading after newline", "text\n### Title", true},
		{"indented heading", "   # Title", true},
		{"tab after marker", "#\tTitle", true},
		{"no preceding line break", "a#b", false},
		{"no whitespace after marker", "#Title", false},
		{"text before marker", "see # Title", false},
		{"inside quote", "> # Title", false},
		{"hash at end of input", "#", false},
		{"escaped marker", `\# Title`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens, _ := Tokenize(tt.input)
			found := false
			for _, tk := range tokens {
				if tk.Kind == Title {
					found = true
				}
			}
			if found != tt.wantTitle {
				t.Errorf("Tokenize(%q) title = %v, want %v", tt.input, found, tt.wantTitle)
			}
		})
	}
}

func TestTokenize_FailedHeadingIsLiteral(t *testing.T) {
	t.Parallel()

	input := "a#b"
	tokens, _ := Tokenize(input)
	var sb strings.Builder
	for _, tk := range tokens {
		if tk.Kind == Title {
			t.Fatal("unexpected Title token")
		}
		sb.WriteString(tk.Text(input))
	}
	if sb.String() != input {
		t.Errorf("concatenated tokens = %q, want %q", sb.String(), input)
	}
}

func TestTokenize_HeadingTextHasNoBlocks(t *testing.T) {
	t.Parallel()

	input := "# a ```go $$x$$ # b"
	tokens, blocks := Tokenize(input)
	if len(blocks) != 0 {
		t.Errorf("heading text produced %d code blocks", len(blocks))
	}
	for _, child := range tokens[0].Children {
		if child.Kind.IsBlock() {
			t.Errorf("heading contains block token %v", child.Kind)
		}
	}
}

// ---------------------------------------------------------------------------
// TestNormalizeLanguage
// ---------------------------------------------------------------------------

func TestNormalizeLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"javascript", "js"},
		{"TypeScript", "ts"},
		{"python", "py"},
		{"c++", "cpp"},
		{"cxx", "cpp"},
		{"golang", "go"},
		{"yaml", "yml"},
		{"latex", "tex"},
		{"markdown", "md"},
		{"shell", "sh"},
		{"bash", "sh"},
		{"zsh", "sh"},
		{"sass", "scss"},
		{"  rust  ", "rust"},
		{"", ""},
		{"unknown", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := NormalizeLanguage(tt.input); got != tt.want {
				t.Errorf("NormalizeLanguage(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	if got := Title.String(); got != "Title" {
		t.Errorf("Title.String() = %q", got)
	}
	if got := Kind(200).String(); got != "Kind(200)" {
		t.Errorf("Kind(200).String() = %q", got)
	}
}
