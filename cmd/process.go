// =============================================================================
// Payroll Disbursement Converter - Process Command Logic
// =============================================================================
//
// This file holds the body of the root command: it wires the configuration,
// the logger and the converter together for one input file.
//
// PROCESSING PIPELINE:
//   1. Load configuration and apply flag overrides
//   2. Build the logger, tagged with a run ID
//   3. Check the input file exists
//   4. Run the converter
//   5. Print a summary
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/payrollconv/internal/converter"
	"github.com/ginjaninja78/payrollconv/pkg/utils"
)

// runProcess converts one payroll file.
//
// PARAMETERS:
//   - cmd: The executing command, for flags and context.
//   - inputPath: The payroll workbook or CSV export.
//
// RETURNS:
//   - An error if the conversion failed. Nothing has been written then.
func runProcess(cmd *cobra.Command, inputPath string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger = logger.Named("payrollconv").With(zap.String("run_id", uuid.New().String()))

	if !utils.FileExists(inputPath) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}

	conv := converter.New(inputPath, cfg, logger).WithOutput(outputPath)
	result := conv.Run(cmd.Context())
	if !result.Success {
		return result.Error
	}

	// =========================================================================
	// PRINT SUMMARY
	// =========================================================================

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== Conversion Complete ===")
	fmt.Fprintf(out, "Input:           %s\n", result.FilePath)
	fmt.Fprintf(out, "Output:          %s\n", result.OutputFile)
	fmt.Fprintf(out, "Pay period:      %s\n", result.Stats.Period.Label())
	fmt.Fprintf(out, "EDR rows:        %d\n", result.Stats.EDRRows)
	fmt.Fprintf(out, "SCR rows:        %d\n", result.Stats.SCRRows)
	fmt.Fprintf(out, "Dropped rows:    %d\n", result.Stats.DroppedRows)
	if result.Stats.Discrepancies > 0 {
		fmt.Fprintf(out, "Warnings:        %d control total mismatch(es), see log\n", result.Stats.Discrepancies)
	}
	fmt.Fprintf(out, "Time elapsed:    %s\n", result.Stats.ProcessingTime)

	return nil
}
