// =============================================================================
// Payroll Disbursement Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the conversion itself; it takes exactly one argument, the payroll file.
//
// COBRA CLI STRUCTURE:
//   rootCmd (payrollconv <input>)
//   └── versionCmd (payrollconv version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the configuration file
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ginjaninja78/payrollconv/internal/config"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// sheetName overrides the configured worksheet.
var sheetName string

// outputPath overrides the derived output path.
var outputPath string

// =============================================================================
// USAGE ERROR
// =============================================================================

// UsageError reports a malformed invocation. No processing has happened.
type UsageError struct {
	Got int
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("expected exactly one input file argument, got %d", e.Got)
}

// exactlyOneInput is the Args validator for the root command.
func exactlyOneInput(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return &UsageError{Got: len(args)}
	}
	return nil
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "payrollconv <input.xlsx>",
	Short: "Payroll Disbursement Converter - normalize EDR/SCR payroll sheets to CSV",
	Long: `payrollconv reads a payroll disbursement sheet holding employee records (EDR)
and a summary control record (SCR) and writes one normalized CSV next to it.

  - Dates become YYYY-MM-DD and amounts get two decimal places
  - The pay period is derived from the EDR pay spans and must be unique
  - The SCR month label must match that period
  - Nothing is written if any check fails

Example Usage:
  payrollconv march.xlsx                 # writes march.xlsx.csv
  payrollconv --sheet Payroll march.xlsx # read a named sheet
  payrollconv -v march.csv               # CSV export input, debug logging`,

	Args: exactlyOneInput,

	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd, args[0])
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var usageErr *UsageError
		if errors.As(err, &usageErr) {
			fmt.Fprintln(os.Stderr, rootCmd.UsageString())
		}

		stop()
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the flags.
func init() {
	// --config flag: Path to the YAML configuration file.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultPath,
		"Path to the configuration file",
	)

	// --verbose flag: Enables debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	rootCmd.Flags().StringVar(
		&sheetName,
		"sheet",
		"",
		"Worksheet to read (default: first sheet)",
	)

	rootCmd.Flags().StringVarP(
		&outputPath,
		"output",
		"o",
		"",
		"Output file (default: input path + output_suffix)",
	)
}

// =============================================================================
// CONFIGURATION AND LOGGING
// =============================================================================

// loadConfig reads the configuration file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	explicit := cmd.Flags().Changed("config")
	cfg, err := config.Load(cfgFile, explicit)
	if err != nil {
		return nil, err
	}
	if sheetName != "" {
		cfg.Sheet = sheetName
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// newLogger builds the stderr logger for the configured level.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewDevelopmentConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.DisableStacktrace = level > zapcore.DebugLevel
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}

	return zcfg.Build()
}
