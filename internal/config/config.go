// Package config defines the formatting configuration and loads it from
// JSON or YAML files.
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alnah/go-mdfmt/internal/fileutil"
	"github.com/alnah/go-mdfmt/internal/lexer"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound          = errors.New("config file not found")
	ErrEmptyConfigName         = errors.New("config name cannot be empty")
	ErrConfigParse             = errors.New("failed to parse config")
	ErrFieldTooLong            = errors.New("field exceeds maximum length")
	ErrInvalidFormatterMapping = errors.New("invalid code formatter mapping")
)

// Field length limits.
const (
	MaxLanguageLength = 64 // fence info strings are short tags
	MaxToolNameLength = 64 // "php-cs-fixer", "clang-format"
	MaxFormatterCount = 256
)

// AppDirName is the directory searched under os.UserConfigDir().
const AppDirName = "go-mdfmt"

// configExtensions lists the file extensions tried when resolving a config
// name, in order.
var configExtensions = []string{".json", ".yaml", ".yml"}

// Config holds the formatting switches and the language to formatter mapping.
// A Config is treated as immutable once handed to a formatter.
type Config struct {
	SpaceBetweenZhAndEn     bool              `yaml:"space_between_zh_and_en"`
	SpaceBetweenZhAndNum    bool              `yaml:"space_between_zh_and_num"`
	FormatCodeBlock         bool              `yaml:"format_code_block"`
	FormatMath              bool              `yaml:"format_math"`
	SpaceBetweenCodeAndText bool              `yaml:"space_between_code_and_text"`
	CodeFormatters          map[string]string `yaml:"code_formatters"` // language -> tool
}

// DefaultConfig returns a configuration with every switch enabled and the
// built-in formatter mapping.
func DefaultConfig() *Config {
	return &Config{
		SpaceBetweenZhAndEn:     true,
		SpaceBetweenZhAndNum:    true,
		FormatCodeBlock:         true,
		FormatMath:              true,
		SpaceBetweenCodeAndText: true,
		CodeFormatters: map[string]string{
			"rust":    "rustfmt",
			"go":      "gofmt",
			"js":      "prettier",
			"ts":      "prettier",
			"css":     "prettier",
			"scss":    "prettier",
			"less":    "prettier",
			"html":    "prettier",
			"json":    "prettier",
			"yml":     "prettier",
			"graphql": "prettier",
			"vue":     "prettier",
			"tex":     "latexindent",
		},
	}
}

// Clone returns a deep copy, so callers can apply overrides without
// touching a shared value.
func (c *Config) Clone() *Config {
	cp := *c
	cp.CodeFormatters = maps.Clone(c.CodeFormatters)
	return &cp
}

// FormatterFor returns the tool mapped to an already normalized language.
func (c *Config) FormatterFor(language string) (string, bool) {
	tool, ok := c.CodeFormatters[language]
	return tool, ok && tool != ""
}

// Normalize folds mapping keys through the language alias table so that
// "javascript" and "js" address the same entry. When both spellings are
// present, the canonical one wins.
func (c *Config) Normalize() {
	if len(c.CodeFormatters) == 0 {
		return
	}
	normalized := make(map[string]string, len(c.CodeFormatters))
	for _, key := range slices.Sorted(maps.Keys(c.CodeFormatters)) {
		lang := lexer.NormalizeLanguage(key)
		if _, exists := normalized[lang]; exists && key != lang {
			continue
		}
		normalized[lang] = strings.TrimSpace(c.CodeFormatters[key])
	}
	c.CodeFormatters = normalized
}

// Validate checks the formatter mapping. Called by LoadConfig, and available
// to library users who build a Config by hand.
func (c *Config) Validate() error {
	if len(c.CodeFormatters) > MaxFormatterCount {
		return fmt.Errorf("%w: %d entries (max %d)", ErrInvalidFormatterMapping, len(c.CodeFormatters), MaxFormatterCount)
	}
	for _, lang := range slices.Sorted(maps.Keys(c.CodeFormatters)) {
		tool := c.CodeFormatters[lang]
		field := fmt.Sprintf("code_formatters[%q]", lang)
		if strings.TrimSpace(lang) == "" {
			return fmt.Errorf("%w: empty language key", ErrInvalidFormatterMapping)
		}
		if strings.TrimSpace(tool) == "" {
			return fmt.Errorf("%w: %s: empty tool name", ErrInvalidFormatterMapping, field)
		}
		if strings.ContainsAny(tool, " \t\n/\\") {
			return fmt.Errorf("%w: %s: tool name %q must be a bare name", ErrInvalidFormatterMapping, field, tool)
		}
		if err := validateFieldLength("code_formatters key", lang, MaxLanguageLength); err != nil {
			return err
		}
		if err := validateFieldLength(field, tool, MaxToolNameLength); err != nil {
			return err
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator or has a config extension, it's
// treated as a file path. Otherwise it's searched in standard locations.
// Keys missing from the file keep their default values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) && !hasConfigExtension(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes a JSON or YAML document over the defaults, then normalizes
// and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := decodeOver(data, cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func hasConfigExtension(name string) bool {
	return slices.Contains(configExtensions, strings.ToLower(filepath.Ext(name)))
}

// SearchPaths lists the candidate files for a config name, in lookup order:
// current directory first, then the user config directory.
func SearchPaths(name string) []string {
	paths := make([]string, 0, len(configExtensions)*2)
	for _, ext := range configExtensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range configExtensions {
			paths = append(paths, filepath.Join(dir, AppDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing candidate from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
