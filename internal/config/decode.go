package config

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits config input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrEmptyInput    = errors.New("config: empty document")
	ErrInputTooLarge = errors.New("config: input exceeds maximum size")
)

// fileConfig mirrors Config with optional switches, so that keys absent from
// the document can be told apart from explicit false values.
type fileConfig struct {
	SpaceBetweenZhAndEn     *bool             `yaml:"space_between_zh_and_en"`
	SpaceBetweenZhAndNum    *bool             `yaml:"space_between_zh_and_num"`
	FormatCodeBlock         *bool             `yaml:"format_code_block"`
	FormatMath              *bool             `yaml:"format_math"`
	SpaceBetweenCodeAndText *bool             `yaml:"space_between_code_and_text"`
	CodeFormatters          map[string]string `yaml:"code_formatters"`
}

// decodeOver strictly decodes data and applies the keys it sets onto cfg.
// JSON documents are accepted since JSON is valid YAML. Unknown keys are
// rejected. A code_formatters mapping replaces the default one.
func decodeOver(data []byte, cfg *Config) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: %w", ErrConfigParse, ErrEmptyInput)
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}

	var fc fileConfig
	if err := yaml.UnmarshalWithOptions(data, &fc, yaml.Strict()); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	setBool(&cfg.SpaceBetweenZhAndEn, fc.SpaceBetweenZhAndEn)
	setBool(&cfg.SpaceBetweenZhAndNum, fc.SpaceBetweenZhAndNum)
	setBool(&cfg.FormatCodeBlock, fc.FormatCodeBlock)
	setBool(&cfg.FormatMath, fc.FormatMath)
	setBool(&cfg.SpaceBetweenCodeAndText, fc.SpaceBetweenCodeAndText)
	if fc.CodeFormatters != nil {
		cfg.CodeFormatters = fc.CodeFormatters
	}
	return nil
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// Marshal encodes cfg as YAML, used to print the effective configuration.
func Marshal(cfg *Config) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return out, nil
}
