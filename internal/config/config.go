// =============================================================================
// Payroll Disbursement Converter - Configuration Module
// =============================================================================
//
// This module is responsible for loading the application configuration.
//
// CONFIGURATION FILE (payrollconv.yaml):
//   output_suffix: ".csv"
//   sheet: ""
//   date_layouts: ["2006-01-02", "2006-01-02 15:04:05"]
//   log_level: "info"
//   csv_input:
//     delimiter: ","
//     encoding: "utf-8"
//
// Every setting is optional. A missing file at the default location yields
// the defaults; a missing file that was asked for explicitly is an error.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/encoding/htmlindex"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when --config is not given.
const DefaultPath = "payrollconv.yaml"

// DefaultDateLayouts are tried, in order, on date cells stored as text.
// Numeric cells are always decoded as spreadsheet serial dates first.
var DefaultDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"02.01.2006",
}

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// OutputSuffix is appended to the input path to form the output path.
	// Default: ".csv"
	OutputSuffix string `yaml:"output_suffix" validate:"nonblank"`

	// Sheet is the worksheet to read. Empty selects the first sheet.
	Sheet string `yaml:"sheet"`

	// DateLayouts are Go time layouts tried on textual date cells.
	DateLayouts []string `yaml:"date_layouts" validate:"min=1,dive,nonblank"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level" validate:"loglevel"`

	// CSVInput applies when the input file is a CSV export instead of a workbook.
	CSVInput CSVSettings `yaml:"csv_input"`
}

// CSVSettings contains settings for reading CSV exports of the sheet.
type CSVSettings struct {
	// Delimiter separates fields. Accepts a single character or "tab".
	// Default: ","
	Delimiter string `yaml:"delimiter" validate:"delimiter"`

	// Encoding is the character encoding of the file, by WHATWG label
	// ("utf-8", "windows-1252", "shift_jis", ...).
	// Default: "utf-8"
	Encoding string `yaml:"encoding" validate:"encoding"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// =============================================================================
// CONFIGURATION LOADING
// =============================================================================

// Load reads the configuration from a YAML file.
//
// PARAMETERS:
//   - path: The path to the configuration file.
//   - mustExist: Whether a missing file is an error. When false, a missing
//     file yields the defaults.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be read, parsed or validated.
func Load(path string, mustExist bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !mustExist {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.OutputSuffix == "" {
		cfg.OutputSuffix = ".csv"
	}
	if len(cfg.DateLayouts) == 0 {
		cfg.DateLayouts = append([]string(nil), DefaultDateLayouts...)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.CSVInput.Delimiter == "" {
		cfg.CSVInput.Delimiter = ","
	}
	if cfg.CSVInput.Encoding == "" {
		cfg.CSVInput.Encoding = "utf-8"
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// validate checks Config struct tags. Errors name fields by their YAML key.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		_, err := zapcore.ParseLevel(fl.Field().String())
		return err == nil
	})
	v.RegisterValidation("delimiter", func(fl validator.FieldLevel) bool {
		_, err := CSVSettings{Delimiter: fl.Field().String()}.Comma()
		return err == nil
	})
	v.RegisterValidation("encoding", func(fl validator.FieldLevel) bool {
		_, err := htmlindex.Get(fl.Field().String())
		return err == nil
	})

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	return errors.New(formatFieldError(fieldErrs[0]))
}

// formatFieldError turns the first failed rule into a readable message.
func formatFieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	value := fmt.Sprintf("%v", fe.Value())

	switch fe.Tag() {
	case "nonblank":
		return fmt.Sprintf("%s must not be blank", field)
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, fe.Param())
	case "loglevel":
		return fmt.Sprintf("invalid log_level %q (use debug, info, warn or error)", value)
	case "delimiter":
		return fmt.Sprintf("%s must be a single character or tab/pipe/semicolon, got %q", field, value)
	case "encoding":
		return fmt.Sprintf("unknown %s %q", field, value)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// Level returns the configured log level.
func (c *Config) Level() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Comma returns the delimiter as a rune.
func (s CSVSettings) Comma() (rune, error) {
	switch s.Delimiter {
	case "\\t", "\t", "tab", "TAB":
		return '\t', nil
	case "pipe", "PIPE":
		return '|', nil
	case "semicolon":
		return ';', nil
	}
	runes := []rune(s.Delimiter)
	if len(runes) != 1 {
		return 0, fmt.Errorf("csv_input.delimiter must be a single character, got %q", s.Delimiter)
	}
	return runes[0], nil
}
