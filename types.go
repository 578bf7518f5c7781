package mdfmt

import (
	"log/slog"
	"time"

	"github.com/alnah/go-mdfmt/internal/config"
	"github.com/alnah/go-mdfmt/internal/pipeline"
)

// Config holds the formatting switches and the language to formatter-tool
// mapping. See DefaultConfig for the defaults.
type Config = config.Config

// DefaultConfig returns a configuration with every switch enabled and the
// built-in formatter mapping.
func DefaultConfig() *Config {
	return config.DefaultConfig()
}

// LoadConfig loads a JSON or YAML configuration by path or by name.
// A name is searched in the current directory, then in the go-mdfmt
// directory under the user config directory.
func LoadConfig(nameOrPath string) (*Config, error) {
	return config.LoadConfig(nameOrPath)
}

// CommandRunner runs an external formatter: it writes stdin to the process,
// closes it, and returns what the process printed.
type CommandRunner = pipeline.CommandRunner

// ExecRunner is the CommandRunner backed by os/exec.
type ExecRunner = pipeline.ExecRunner

// Option configures a Formatter.
type Option func(*formatterConfig)

// formatterConfig holds internal configuration for Formatter.
type formatterConfig struct {
	config   *Config
	workers  int
	timeout  time.Duration
	logger   *slog.Logger
	runner   CommandRunner
	profiles []profileOverride
}

type profileOverride struct {
	tool       string
	executable string
	args       []string
}

// WithConfig sets the formatting configuration. The value is copied, later
// changes by the caller do not affect the Formatter.
func WithConfig(cfg *Config) Option {
	return func(c *formatterConfig) {
		c.config = cfg
	}
}

// WithWorkers sets how many code blocks are formatted concurrently.
// 0 selects ResolvePoolSize(0).
func WithWorkers(n int) Option {
	return func(c *formatterConfig) {
		c.workers = n
	}
}

// WithTimeout bounds each external formatter run. An expired run is killed
// and its block keeps the original content. 0 disables the limit.
func WithTimeout(d time.Duration) Option {
	return func(c *formatterConfig) {
		c.timeout = d
	}
}

// WithLogger sets the logger receiving formatter warnings. By default they
// are discarded.
func WithLogger(l *slog.Logger) Option {
	return func(c *formatterConfig) {
		c.logger = l
	}
}

// WithRunner replaces the process runner, mainly for tests.
func WithRunner(r CommandRunner) Option {
	return func(c *formatterConfig) {
		c.runner = r
	}
}

// WithFormatterProfile registers the command used for tool, for every
// language mapped to it. It overrides a built-in profile of the same name.
func WithFormatterProfile(tool, executable string, args ...string) Option {
	return func(c *formatterConfig) {
		c.profiles = append(c.profiles, profileOverride{tool: tool, executable: executable, args: args})
	}
}
