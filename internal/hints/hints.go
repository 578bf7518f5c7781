// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"
)

// installHints maps formatter tools to a short install instruction.
var installHints = map[string]string{
	"rustfmt":      "rustup component add rustfmt",
	"gofmt":        "install Go from https://go.dev/dl",
	"prettier":     "npm install -g prettier",
	"black":        "pip install black",
	"isort":        "pip install isort",
	"autopep8":     "pip install autopep8",
	"yapf":         "pip install yapf",
	"clang-format": "install LLVM clang-format",
	"shfmt":        "go install mvdan.cc/sh/v3/cmd/shfmt@latest",
	"sqlfmt":       "pip install shandy-sqlfmt",
	"stylua":       "cargo install stylua",
	"terraform":    "install Terraform from https://developer.hashicorp.com/terraform",
	"php-cs-fixer": "composer global require friendsofphp/php-cs-fixer",
	"dartfmt":      "install the Dart SDK",
	"scalafmt":     "cs install scalafmt",
	"ktfmt":        "install ktfmt from https://github.com/facebook/ktfmt",
	"latexindent":  "install latexindent with your TeX distribution",
}

// InCI reports whether the process runs under a CI system.
var InCI = func() bool {
	return os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""
}

// ForToolNotFound returns hints for a formatter missing from PATH.
// In CI it also suggests turning code formatting off.
func ForToolNotFound(tool string) string {
	var hints []string
	if install, ok := installHints[tool]; ok {
		hints = append(hints, install)
	} else {
		hints = append(hints, "install "+tool+" or remove it from code_formatters")
	}
	if InCI() && os.Getenv("MDFMT_FORMAT_CODE") == "" {
		hints = append(hints, "set MDFMT_FORMAT_CODE=false to keep code blocks unchanged")
	}
	return formatHints(hints)
}

// InstallHint returns the bare install instruction for tool, or "".
func InstallHint(tool string) string {
	return installHints[tool]
}

// ForTimeout returns a hint about increasing timeout for slow formatters.
func ForTimeout() string {
	return format("for slow formatters, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	marker := string(filepath.Separator) + "go-mdfmt" + string(filepath.Separator)
	for _, p := range searchedPaths {
		if strings.Contains(p, marker) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForUnformatted returns the hint shown when --check finds changes.
func ForUnformatted() string {
	return format("run mdfmt without --check to rewrite the files")
}

// ForDoctor points at the doctor command after formatter failures.
func ForDoctor() string {
	return format("run 'mdfmt doctor' to check formatter availability")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
