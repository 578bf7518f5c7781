package main

import (
	"bytes"
	"io"
	"os"
	"os/exec"

	"golang.org/x/term"

	mdfmt "github.com/alnah/go-mdfmt"
	"github.com/alnah/go-mdfmt/internal/config"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, process execution, and the base configuration.
type Environment struct {
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
	IsTerminal func() bool                  // reports whether Stdin is interactive
	LookPath   func(string) (string, error) // locates formatter executables
	Runner     mdfmt.CommandRunner          // nil runs real processes
	Config     *config.Config               // base values before file, env and flags
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		IsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) // #nosec G115 -- fd fits in int
		},
		LookPath: exec.LookPath,
		Config:   config.DefaultConfig(),
	}
}

func (e *Environment) stdin() io.Reader {
	if e.Stdin == nil {
		return bytes.NewReader(nil)
	}
	return e.Stdin
}

func (e *Environment) stdinIsTerminal() bool {
	return e.IsTerminal != nil && e.IsTerminal()
}

func (e *Environment) lookPath(file string) (string, error) {
	if e.LookPath == nil {
		return exec.LookPath(file)
	}
	return e.LookPath(file)
}

func (e *Environment) baseConfig() *config.Config {
	if e.Config == nil {
		return config.DefaultConfig()
	}
	return e.Config.Clone()
}
