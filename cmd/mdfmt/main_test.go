package main

import (
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunMain_Commands - version, help
// ---------------------------------------------------------------------------

func TestRunMain_Commands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
	}{
		{"version", []string{"mdfmt", "version"}, ExitSuccess, "mdfmt dev"},
		{"help", []string{"mdfmt", "help"}, ExitSuccess, "Commands:"},
		{"help format", []string{"mdfmt", "help", "format"}, ExitSuccess, "--no-zh-en"},
		{"help doctor", []string{"mdfmt", "help", "doctor"}, ExitSuccess, "--json"},
		{"help flag", []string{"mdfmt", "--help"}, ExitSuccess, "--exclude"},
		{"help unknown", []string{"mdfmt", "help", "nope"}, ExitUsage, ""},
		{"unknown flag", []string{"mdfmt", "--bogus"}, ExitUsage, ""},
		{"conflicting modes", []string{"mdfmt", "--list", "--diff", "x.md"}, ExitUsage, ""},
		{"bad timeout", []string{"mdfmt", "-t", "soon"}, ExitUsage, ""},
		{"missing file", []string{"mdfmt", filepath.Join(t.TempDir(), "nope.md")}, ExitIO, ""},
		{"missing config", []string{"mdfmt", "-c", filepath.Join(t.TempDir(), "x.yaml")}, ExitUsage, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv("")
			code := runMain(tt.args, env)
			if code != tt.wantCode {
				t.Fatalf("runMain(%v) = %d, want %d\nstderr: %s", tt.args, code, tt.wantCode, stderr.String())
			}
			if !strings.Contains(stdout.String(), tt.wantOut) {
				t.Errorf("stdout missing %q:\n%s", tt.wantOut, stdout.String())
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Stdin - Editor integration through stdin/stdout
// ---------------------------------------------------------------------------

func TestRunMain_Stdin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		input    string
		wantCode int
		wantOut  string
	}{
		{"format to stdout", []string{"mdfmt"}, "共有3个\n", ExitSuccess, "共有 3 个\n"},
		{"dash", []string{"mdfmt", "-"}, "中文English", ExitSuccess, "中文 English"},
		{"check unformatted", []string{"mdfmt", "--check"}, "共有3个\n", ExitUnformatted, "<stdin>\n"},
		{"check formatted", []string{"mdfmt", "--check"}, "共有 3 个\n", ExitSuccess, ""},
		{"diff", []string{"mdfmt", "-d"}, "共有3个\n", ExitUnformatted, "+共有 3 个"},
		{"rule disabled", []string{"mdfmt", "--no-zh-num"}, "共有3个\n", ExitSuccess, "共有3个\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(tt.input)
			code := runMain(tt.args, env)
			if code != tt.wantCode {
				t.Fatalf("runMain() = %d, want %d\nstderr: %s", code, tt.wantCode, stderr.String())
			}
			if tt.wantOut == "" {
				if stdout.Len() != 0 {
					t.Errorf("stdout = %q, want empty", stdout.String())
				}
				return
			}
			if !strings.Contains(stdout.String(), tt.wantOut) {
				t.Errorf("stdout = %q, want it to contain %q", stdout.String(), tt.wantOut)
			}
		})
	}
}

func TestRunMain_StdinTerminal(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv("")
	env.IsTerminal = func() bool { return true }

	if code := runMain([]string{"mdfmt"}, env); code != ExitIO {
		t.Errorf("runMain() = %d, want %d", code, ExitIO)
	}
	if !strings.Contains(stderr.String(), "no input") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Files - In-place formatting and check modes
// ---------------------------------------------------------------------------

func TestRunMain_WritesFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.md", "中文English\n")
	b := writeFile(t, dir, "sub/b.md", "already fine\n")

	env, stdout, stderr := testEnv("")
	if code := runMain([]string{"mdfmt", dir}, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d\nstderr: %s", code, stderr.String())
	}

	if got := readFile(t, a); got != "中文 English\n" {
		t.Errorf("a.md = %q", got)
	}
	if got := readFile(t, b); got != "already fine\n" {
		t.Errorf("b.md = %q", got)
	}
	if !strings.Contains(stdout.String(), "Formatted "+a) {
		t.Errorf("stdout = %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "1 formatted, 1 unchanged, 0 failed") {
		t.Errorf("stdout missing summary: %q", stdout.String())
	}
}

func TestRunMain_CheckDoesNotWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.md", "中文English\n")

	env, stdout, stderr := testEnv("")
	if code := runMain([]string{"mdfmt", "--check", a}, env); code != ExitUnformatted {
		t.Fatalf("runMain() = %d, want %d", code, ExitUnformatted)
	}
	if got := readFile(t, a); got != "中文English\n" {
		t.Errorf("file rewritten in check mode: %q", got)
	}
	if strings.TrimSpace(stdout.String()) != a {
		t.Errorf("stdout = %q, want %q", stdout.String(), a)
	}
	if !strings.Contains(stderr.String(), "hint:") {
		t.Errorf("stderr missing hint: %q", stderr.String())
	}
}

func TestRunMain_CodeBlocks(t *testing.T) {
	t.Parallel()

	const in = "```go\nx := 1\n```\n"

	t.Run("formatted through the runner", func(t *testing.T) {
		t.Parallel()

		runner := &echoRunner{upper: true}
		env, stdout, _ := testEnv(in)
		env.Runner = runner

		if code := runMain([]string{"mdfmt"}, env); code != ExitSuccess {
			t.Fatalf("runMain() = %d", code)
		}
		if stdout.String() != "```go\nX := 1\n```\n" {
			t.Errorf("stdout = %q", stdout.String())
		}
		if len(runner.calls) != 1 || runner.calls[0] != "gofmt" {
			t.Errorf("calls = %v, want [gofmt]", runner.calls)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		runner := &echoRunner{upper: true}
		env, stdout, _ := testEnv(in)
		env.Runner = runner

		if code := runMain([]string{"mdfmt", "--no-code"}, env); code != ExitSuccess {
			t.Fatalf("runMain() = %d", code)
		}
		if stdout.String() != in {
			t.Errorf("stdout = %q, want %q", stdout.String(), in)
		}
		if len(runner.calls) != 0 {
			t.Errorf("runner called: %v", runner.calls)
		}
	})
}

func TestRunMain_ConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "mdfmt.yaml", "space_between_zh_and_num: false\n")

	env, stdout, stderr := testEnv("共有3个和English")
	if code := runMain([]string{"mdfmt", "-c", cfgPath}, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d\nstderr: %s", code, stderr.String())
	}
	if stdout.String() != "共有3个和 English" {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRunMain_ConfigCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "mdfmt.yaml", "format_math: false\n")

	env, stdout, stderr := testEnv("")
	if code := runMain([]string{"mdfmt", "config", "-c", cfgPath}, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d\nstderr: %s", code, stderr.String())
	}
	for _, want := range []string{"format_math: false", "format_code_block: true", "rust: rustfmt"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("config output missing %q:\n%s", want, stdout.String())
		}
	}

	env, _, _ = testEnv("")
	if code := runMain([]string{"mdfmt", "config", "extra"}, env); code != ExitUsage {
		t.Errorf("runMain(config extra) = %d, want %d", code, ExitUsage)
	}
}

func TestWantsVerbose(t *testing.T) {
	t.Parallel()

	if !wantsVerbose([]string{"docs", "-v"}) || !wantsVerbose([]string{"--verbose"}) {
		t.Error("verbose flag not detected")
	}
	if wantsVerbose([]string{"-q", "docs"}) {
		t.Error("verbose detected without flag")
	}
}
