package main

import (
	"bytes"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestUsage - Usage texts mention every flag and command
// ---------------------------------------------------------------------------

func TestPrintFormatUsage_ListsFlags(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printFormatUsage(&buf)

	flags := []string{
		"--list", "--check", "--diff", "--stdout", "--verify", "--exclude", "--config",
		"--no-code", "--no-math", "--no-zh-en", "--no-zh-num", "--no-code-space",
		"--workers", "--timeout", "--quiet", "--verbose",
	}
	for _, f := range flags {
		if !strings.Contains(buf.String(), f) {
			t.Errorf("usage missing %s", f)
		}
	}
}

func TestPrintUsage_ListsCommands(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printUsage(&buf)

	for _, cmd := range []string{"format", "doctor", "config", "version", "help"} {
		if !strings.Contains(buf.String(), "  "+cmd+" ") {
			t.Errorf("usage missing command %s", cmd)
		}
	}
}

func TestRunHelp_Unknown(t *testing.T) {
	t.Parallel()

	env, stdout, stderr := testEnv("")
	if code := runHelp([]string{"bogus"}, env); code != ExitUsage {
		t.Errorf("runHelp() = %d, want %d", code, ExitUsage)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
	if !strings.Contains(stderr.String(), "Unknown command: bogus") {
		t.Errorf("stderr = %q", stderr.String())
	}
}
