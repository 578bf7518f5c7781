package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-mdfmt/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring config files.
type envConfig struct {
	ConfigPath string        // MDFMT_CONFIG: config file name or path
	Workers    int           // MDFMT_WORKERS: parallel workers
	Timeout    time.Duration // MDFMT_TIMEOUT: per code block formatter timeout
	FormatCode *bool         // MDFMT_FORMAT_CODE: run external code formatters
	FormatMath *bool         // MDFMT_FORMAT_MATH: lay out block math
}

// knownEnvVars lists valid MDFMT_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDFMT_CONFIG":      true,
	"MDFMT_WORKERS":     true,
	"MDFMT_TIMEOUT":     true,
	"MDFMT_FORMAT_CODE": true,
	"MDFMT_FORMAT_MATH": true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable values are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MDFMT_CONFIG"),
		FormatCode: envBool("MDFMT_FORMAT_CODE"),
		FormatMath: envBool("MDFMT_FORMAT_MATH"),
	}

	if timeout := os.Getenv("MDFMT_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("MDFMT_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// envBool parses a boolean variable, nil when unset or invalid.
func envBool(name string) *bool {
	v, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return nil
	}
	return &b
}

// warnUnknownEnvVars logs warnings for unrecognized MDFMT_* variables.
// Helps catch typos like MDFMT_WORKER instead of MDFMT_WORKERS.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MDFMT_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment toggles over the loaded config.
// Order: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.FormatCode != nil {
		cfg.FormatCodeBlock = *env.FormatCode
	}
	if env.FormatMath != nil {
		cfg.FormatMath = *env.FormatMath
	}
}
