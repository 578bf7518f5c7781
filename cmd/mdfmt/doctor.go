package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdfmt/internal/config"
	"github.com/alnah/go-mdfmt/internal/hints"
	"github.com/alnah/go-mdfmt/internal/pipeline"
)

// Doctor status values.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status     string          `json:"status"` // "ready", "warnings", "errors"
	Config     configInfo      `json:"config"`
	Formatters []formatterInfo `json:"formatters"`
	Env        envInfo         `json:"environment"`
	Warnings   []string        `json:"warnings,omitempty"`
	Errors     []string        `json:"errors,omitempty"`
}

// configInfo describes the effective configuration.
type configInfo struct {
	Source     string `json:"source"` // file name, or "defaults"
	FormatCode bool   `json:"format_code_block"`
	FormatMath bool   `json:"format_math"`
}

// formatterInfo holds the detection result for one configured tool.
type formatterInfo struct {
	Tool       string   `json:"tool"`
	Languages  []string `json:"languages"`
	Executable string   `json:"executable,omitempty"`
	Embedded   bool     `json:"embedded,omitempty"`
	Found      bool     `json:"found"`
	Path       string   `json:"path,omitempty"`
	Hint       string   `json:"hint,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS   string `json:"os"`
	Arch string `json:"arch"`
	CI   bool   `json:"ci"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	jsonOutput := fs.Bool("json", false, "print the report as JSON")
	configName := fs.StringP("config", "c", "", "config file name or path")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			printDoctorUsage(env.Stdout)
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "%v: %v\n", ErrInvalidFlags, err)
		return ExitUsage
	}

	result := runDoctor(*configName, env)

	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(configName string, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
			CI:   hints.InCI(),
		},
	}

	envCfg := loadEnvConfig()
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	cfg, err := resolveConfig(configName, envCfg, env)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		cfg = env.baseConfig()
		configName = ""
	}
	checkConfig(result, configName, cfg)
	if cfg.FormatCodeBlock {
		checkFormatters(result, cfg, pipeline.DefaultRegistry(), env)
	}

	switch {
	case len(result.Errors) > 0:
		result.Status = statusErrors
	case len(result.Warnings) > 0:
		result.Status = statusWarnings
	}

	return result
}

// checkConfig records the effective configuration.
func checkConfig(result *doctorResult, name string, cfg *config.Config) {
	result.Config = configInfo{
		Source:     name,
		FormatCode: cfg.FormatCodeBlock,
		FormatMath: cfg.FormatMath,
	}
	if name == "" {
		result.Config.Source = "defaults"
	}
}

// checkFormatters looks up the executable of every tool in the mapping.
// Missing tools are warnings: their blocks are left unchanged.
func checkFormatters(result *doctorResult, cfg *config.Config, registry *pipeline.Registry, env *Environment) {
	byTool := make(map[string][]string)
	for lang, tool := range cfg.CodeFormatters {
		byTool[tool] = append(byTool[tool], lang)
	}

	tools := make([]string, 0, len(byTool))
	for tool := range byTool {
		tools = append(tools, tool)
	}
	slices.Sort(tools)

	for _, tool := range tools {
		langs := byTool[tool]
		slices.Sort(langs)
		info := formatterInfo{Tool: tool, Languages: langs}

		if slices.Equal(langs, []string{"tex"}) {
			// tex blocks use the built-in LaTeX layout.
			info.Embedded = true
			info.Found = true
			result.Formatters = append(result.Formatters, info)
			continue
		}

		profile, ok := lookupProfile(registry, tool, langs)
		if !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("No profile for %s (languages: %s); its blocks are left unchanged",
					tool, strings.Join(langs, ", ")))
			result.Formatters = append(result.Formatters, info)
			continue
		}
		info.Executable = profile.Executable

		path, err := env.lookPath(profile.Executable)
		if err != nil {
			info.Hint = hints.InstallHint(tool)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s not found on PATH (languages: %s)%s",
					profile.Executable, strings.Join(langs, ", "), hints.ForToolNotFound(tool)))
		} else {
			info.Found = true
			info.Path = path
		}
		result.Formatters = append(result.Formatters, info)
	}
}

// lookupProfile returns the profile of tool for the first language it
// supports.
func lookupProfile(registry *pipeline.Registry, tool string, langs []string) (pipeline.Profile, bool) {
	for _, lang := range langs {
		if p, ok := registry.Lookup(tool, lang); ok {
			return p, true
		}
	}
	return pipeline.Profile{}, false
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "mdfmt doctor")
	fmt.Fprintln(w)

	// Config section
	fmt.Fprintln(w, "Config")
	fmt.Fprintf(w, "  [OK] Source: %s\n", r.Config.Source)
	if r.Config.FormatCode {
		fmt.Fprintln(w, "  [OK] Code formatting: enabled")
	} else {
		fmt.Fprintln(w, "  [OK] Code formatting: disabled")
	}
	if r.Config.FormatMath {
		fmt.Fprintln(w, "  [OK] Math layout: enabled")
	} else {
		fmt.Fprintln(w, "  [OK] Math layout: disabled")
	}
	fmt.Fprintln(w)

	// Formatters section
	if len(r.Formatters) > 0 {
		fmt.Fprintln(w, "Formatters")
		for _, f := range r.Formatters {
			langs := strings.Join(f.Languages, ", ")
			switch {
			case f.Embedded:
				fmt.Fprintf(w, "  [OK] %s: built-in (%s)\n", f.Tool, langs)
			case f.Found:
				fmt.Fprintf(w, "  [OK] %s: %s (%s)\n", f.Tool, f.Path, langs)
			default:
				fmt.Fprintf(w, "  [WARN] %s: not found (%s)\n", f.Tool, langs)
			}
		}
		fmt.Fprintln(w)
	}

	// Environment section
	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	// Warnings
	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	// Errors
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	// Final status
	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to format")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
