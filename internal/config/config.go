// =============================================================================
// INI to CSV Converter - Configuration Module
// =============================================================================
//
// This module loads the run configuration. Every setting has a default, so the
// configuration file is optional: the converter works with no file at all and
// command-line flags override whatever the file says.
//
// CONFIGURATION FILE (config.yaml):
//   input_file:   ./preprocess.ini
//   output_file:  ./output.csv
//   xlsx_file:    ./output.xlsx
//   sheet_name:   Sections
//   log_level:    info
//   no_color:     false
//   allow_empty:  false
//   show_preview: true
//
// PRECEDENCE:
//   command-line flags > config file > defaults
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/INI-to-CSV-conversion/internal/types"
	"github.com/ginjaninja78/INI-to-CSV-conversion/pkg/utils"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	DefaultConfigFile = "config.yaml"
	DefaultInputFile  = "preprocess.ini"
	DefaultOutputFile = "output.csv"
	DefaultSheetName  = "Sections"
	DefaultLogLevel   = "info"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the settings for a single conversion run.
type MainConfig struct {
	// =========================================================================
	// FILE SETTINGS
	// =========================================================================

	// InputFile is the INI file to convert.
	// Default: "preprocess.ini"
	InputFile string `yaml:"input_file"`

	// OutputFile is the CSV file to create or overwrite.
	// Default: "output.csv"
	OutputFile string `yaml:"output_file"`

	// XLSXFile is an optional spreadsheet written next to the CSV.
	// Empty means no spreadsheet.
	XLSXFile string `yaml:"xlsx_file"`

	// SheetName is the worksheet name used in the spreadsheet.
	// Default: "Sections"
	SheetName string `yaml:"sheet_name"`

	// =========================================================================
	// DIAGNOSTICS
	// =========================================================================

	// LogLevel controls the verbosity of diagnostics.
	// Valid values: "debug", "info", "warn", "error"
	LogLevel string `yaml:"log_level"`

	// NoColor disables coloured console output.
	NoColor bool `yaml:"no_color"`

	// ShowPreview prints a hex preview of the first input bytes.
	// Default: true
	ShowPreview *bool `yaml:"show_preview"`

	// =========================================================================
	// DECODING
	// =========================================================================

	// AllowEmpty accepts a cleanly parsed document with zero sections
	// instead of failing with an unreadable-config error.
	// Default: false
	AllowEmpty bool `yaml:"allow_empty"`
}

// Preview reports whether the hex preview is enabled.
func (c *MainConfig) Preview() bool {
	return c.ShowPreview == nil || *c.ShowPreview
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	cfg := &MainConfig{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the configuration file at path.
//
// PARAMETERS:
//   - path: The path to the YAML file.
//   - required: When false, a missing file yields the defaults.
//
// RETURNS:
//   - The configuration with defaults applied.
//   - A KindConfig error if the file cannot be read, parsed or validated.
func Load(path string, required bool) (*MainConfig, error) {
	if !required && !utils.FileExists(path) {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, types.NewError(types.KindConfig, path, fmt.Errorf("failed to read config file: %w", err))
	}

	return Parse(data, path)
}

// Parse decodes YAML configuration data. source is used in error messages.
func Parse(data []byte, source string) (*MainConfig, error) {
	var cfg MainConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, types.NewError(types.KindConfig, source, fmt.Errorf("failed to parse config file: %w", err))
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, types.NewError(types.KindConfig, source, err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *MainConfig) {
	if cfg.InputFile == "" {
		cfg.InputFile = DefaultInputFile
	}
	if cfg.OutputFile == "" {
		cfg.OutputFile = DefaultOutputFile
	}
	if cfg.SheetName == "" {
		cfg.SheetName = DefaultSheetName
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
}

// Validate checks the configuration for settings that cannot work.
func (c *MainConfig) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q (want debug, info, warn or error)", c.LogLevel)
	}

	if samePath(c.InputFile, c.OutputFile) {
		return fmt.Errorf("output_file must differ from input_file (%s)", c.InputFile)
	}
	if c.XLSXFile != "" && (samePath(c.XLSXFile, c.InputFile) || samePath(c.XLSXFile, c.OutputFile)) {
		return fmt.Errorf("xlsx_file must differ from input_file and output_file (%s)", c.XLSXFile)
	}

	// Excel rejects sheet names longer than 31 characters.
	if len([]rune(c.SheetName)) > 31 {
		return fmt.Errorf("sheet_name %q is longer than 31 characters", c.SheetName)
	}

	return nil
}

func samePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
