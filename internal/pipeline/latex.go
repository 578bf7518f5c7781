package pipeline

import "strings"

// latexIndent is one indentation step of the LaTeX layout.
const latexIndent = "  "

// verbatimEnvs hold content that must not be re-indented.
var verbatimEnvs = []string{"verbatim", "Verbatim", "lstlisting", "minted", "comment"}

// FormatLaTeX lays out LaTeX source without running an external tool:
// lines are trimmed and re-indented by environment and brace depth, runs of
// blank lines collapse to one, and leading and trailing blank lines are
// dropped. Verbatim-like environments are copied unchanged. The result has
// no trailing newline.
func FormatLaTeX(src string) string {
	var out []string
	level := 0
	verbatim := ""
	blank := false

	for _, raw := range strings.Split(src, "\n") {
		if verbatim != "" {
			if strings.Contains(raw, `\end{`+verbatim+`}`) {
				verbatim = ""
				level = max(level-1, 0)
				out = append(out, strings.Repeat(latexIndent, level)+strings.TrimSpace(raw))
				continue
			}
			out = append(out, strings.TrimRight(raw, " \t"))
			continue
		}

		line := strings.TrimSpace(raw)
		if line == "" {
			blank = len(out) > 0
			continue
		}
		if blank {
			out = append(out, "")
			blank = false
		}

		code := stripComment(line)
		indent := max(level-leadingClosers(code), 0)
		out = append(out, strings.Repeat(latexIndent, indent)+line)

		level = max(level+strings.Count(code, `\begin{`)-strings.Count(code, `\end{`)+braceDelta(code), 0)
		if env := openedVerbatim(code); env != "" {
			verbatim = env
		}
	}
	return strings.Join(out, "\n")
}

// leadingClosers counts the dedent applied to the line itself: an \end at
// the start of the line, or the closing braces it starts with.
func leadingClosers(code string) int {
	if strings.HasPrefix(code, `\end{`) {
		return 1
	}
	n := 0
	for n < len(code) && code[n] == '}' {
		n++
	}
	return n
}

// braceDelta returns the number of unescaped '{' minus unescaped '}'.
func braceDelta(code string) int {
	d := 0
	for i := 0; i < len(code); i++ {
		switch code[i] {
		case '\\':
			i++
		case '{':
			d++
		case '}':
			d--
		}
	}
	return d
}

// stripComment drops an unescaped % and everything after it.
func stripComment(line string) string {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '%':
			return strings.TrimRight(line[:i], " \t")
		}
	}
	return line
}

// openedVerbatim returns the verbatim environment a line opens without
// closing, or "".
func openedVerbatim(code string) string {
	for _, env := range verbatimEnvs {
		if strings.Contains(code, `\begin{`+env+`}`) && !strings.Contains(code, `\end{`+env+`}`) {
			return env
		}
	}
	return ""
}
