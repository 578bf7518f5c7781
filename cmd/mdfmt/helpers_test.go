package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake runner and environment
// ---------------------------------------------------------------------------

// echoRunner returns stdin unchanged, or upper-cased when upper is set.
type echoRunner struct {
	upper bool

	mu    sync.Mutex
	calls []string
}

func (r *echoRunner) Run(_ context.Context, stdin, name string, args ...string) (string, string, error) {
	r.mu.Lock()
	r.calls = append(r.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	r.mu.Unlock()
	if r.upper {
		return strings.ToUpper(stdin), "", nil
	}
	return stdin, "", nil
}

// testEnv returns an Environment reading stdin from input, with captured
// output and a runner that never starts processes.
func testEnv(input string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Stdin:      strings.NewReader(input),
		Stdout:     &stdout,
		Stderr:     &stderr,
		IsTerminal: func() bool { return false },
		Runner:     &echoRunner{},
	}
	return env, &stdout, &stderr
}

// writeFile creates name under dir with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// readFile returns the content of path.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}
