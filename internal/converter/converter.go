// =============================================================================
// Payroll Disbursement Converter - Converter Module
// =============================================================================
//
// This module contains the core conversion logic. It turns one payroll sheet
// holding interleaved EDR and SCR rows into the normalized CSV text.
//
// CONVERSION PIPELINE:
//   1. Read the sheet into an untyped table (XLSX or CSV export)
//   2. Partition rows by the tag in column 0
//   3. Parse EDR and SCR rows into typed rows
//   4. Compute the single pay period from the EDR rows
//   5. Validate the SCR month labels against that period
//   6. Reconcile SCR control totals (warnings only)
//   7. Render EDR (with header) and SCR (without) and combine them
//   8. Write the output file atomically
//
// Steps 2 to 7 are pure (Convert); Run adds the file handling and logging.
// Any failure aborts the run before the output file is touched.
//
// =============================================================================

package converter

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ginjaninja78/payrollconv/internal/config"
	"github.com/ginjaninja78/payrollconv/internal/csvparser"
	"github.com/ginjaninja78/payrollconv/internal/csvwriter"
	"github.com/ginjaninja78/payrollconv/internal/types"
	"github.com/ginjaninja78/payrollconv/internal/validation"
	"github.com/ginjaninja78/payrollconv/internal/xlsxparser"
	"github.com/ginjaninja78/payrollconv/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of converting a single file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// OutputFile is the path to the written CSV file.
	// This is empty if processing failed.
	OutputFile string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// RowsRead is the number of sheet rows read, including dropped ones.
	RowsRead int

	EDRRows int
	SCRRows int

	// DroppedRows is the number of rows tagged neither EDR nor SCR.
	DroppedRows int

	// Period is the pay period the file covers.
	Period types.PayPeriod

	// Discrepancies is the number of control total mismatches logged.
	Discrepancies int

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// PURE CONVERSION
// =============================================================================

// SourceRow is a sheet row together with its 1-based sheet row number.
type SourceRow struct {
	Number int
	Cells  types.Row
}

// Partitioned holds the rows of a table split by record tag.
type Partitioned struct {
	EDR     []SourceRow
	SCR     []SourceRow
	Dropped int
}

// Partition splits a table into EDR and SCR rows by exact match on column 0,
// preserving row order. Rows with any other tag are counted and dropped.
func Partition(table types.Table) Partitioned {
	var p Partitioned
	for i, cells := range table {
		row := SourceRow{Number: i + 1, Cells: cells}
		switch cells.Cell(0) {
		case types.TagEDR:
			p.EDR = append(p.EDR, row)
		case types.TagSCR:
			p.SCR = append(p.SCR, row)
		default:
			p.Dropped++
		}
	}
	return p
}

// Conversion is the outcome of Convert.
type Conversion struct {
	// Text is the complete output artifact.
	Text string

	Period        types.PayPeriod
	EDRRows       int
	SCRRows       int
	DroppedRows   int
	Discrepancies []validation.Discrepancy
}

// Convert runs the pure part of the pipeline over an in-memory table.
//
// PARAMETERS:
//   - table: The sheet, row 0 first, no header row.
//   - dateLayouts: Layouts tried on textual date cells.
//
// RETURNS:
//   - The combined output text and conversion facts.
//   - A *types.ParseError, *validation.PeriodMismatchError or
//     *validation.PeriodValidationError (possibly wrapped) on failure.
func Convert(table types.Table, dateLayouts []string) (*Conversion, error) {
	parts := Partition(table)

	edr, err := ParseEmployeeRows(parts.EDR, dateLayouts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse EDR rows: %w", err)
	}

	scr, err := ParseSummaryRows(parts.SCR, dateLayouts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SCR rows: %w", err)
	}

	period, err := validation.ComputePeriod(edr)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateSummaries(scr, period); err != nil {
		return nil, err
	}

	edrText, err := csvwriter.FormatEDR(edr)
	if err != nil {
		return nil, err
	}

	scrText, err := csvwriter.FormatSCR(scr, period)
	if err != nil {
		return nil, err
	}

	return &Conversion{
		Text:          csvwriter.Combine(edrText, scrText),
		Period:        period,
		EDRRows:       len(edr),
		SCRRows:       len(scr),
		DroppedRows:   parts.Dropped,
		Discrepancies: validation.Reconcile(edr, scr),
	}, nil
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter handles the conversion of a single payroll file.
type Converter struct {
	inputPath  string
	outputPath string
	cfg        *config.Config
	logger     *zap.Logger
}

// New creates a new Converter instance.
//
// PARAMETERS:
//   - inputPath: The path to the payroll workbook or CSV export.
//   - cfg: The application configuration.
//   - logger: Where progress and warnings go. nil discards them.
//
// The output path defaults to inputPath + cfg.OutputSuffix; see WithOutput.
func New(inputPath string, cfg *config.Config, logger *zap.Logger) *Converter {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		inputPath:  inputPath,
		outputPath: utils.OutputPath(inputPath, cfg.OutputSuffix),
		cfg:        cfg,
		logger:     logger,
	}
}

// WithOutput overrides the output path.
func (c *Converter) WithOutput(path string) *Converter {
	if path != "" {
		c.outputPath = path
	}
	return c
}

// OutputPath returns where Run writes its output.
func (c *Converter) OutputPath() string {
	return c.outputPath
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline for the file.
//
// RETURNS:
//   - A Result struct containing the outcome of the processing. On failure
//     Result.Error is set and no output file has been written.
func (c *Converter) Run(ctx context.Context) Result {
	startTime := time.Now()
	result := Result{FilePath: c.inputPath}

	c.logger.Info("processing file", zap.String("input", c.inputPath))

	// =========================================================================
	// STEP 1: READ SHEET
	// =========================================================================

	table, err := c.readTable()
	if err != nil {
		result.Error = fmt.Errorf("failed to read input: %w", err)
		return result
	}
	result.Stats.RowsRead = len(table)
	c.logger.Debug("read sheet", zap.Int("rows", len(table)))

	if err := ctx.Err(); err != nil {
		result.Error = err
		return result
	}

	// =========================================================================
	// STEP 2: CONVERT
	// =========================================================================

	conv, err := Convert(table, c.cfg.DateLayouts)
	if err != nil {
		result.Error = err
		return result
	}

	result.Stats.EDRRows = conv.EDRRows
	result.Stats.SCRRows = conv.SCRRows
	result.Stats.DroppedRows = conv.DroppedRows
	result.Stats.Period = conv.Period
	result.Stats.Discrepancies = len(conv.Discrepancies)

	if conv.DroppedRows > 0 {
		c.logger.Debug("dropped untagged rows", zap.Int("count", conv.DroppedRows))
	}
	for _, d := range conv.Discrepancies {
		c.logger.Warn("control total mismatch",
			zap.Int("row", d.Row),
			zap.String("field", d.Field),
			zap.String("reported", d.Reported),
			zap.String("computed", d.Computed),
		)
	}

	if err := ctx.Err(); err != nil {
		result.Error = err
		return result
	}

	// =========================================================================
	// STEP 3: WRITE OUTPUT
	// =========================================================================

	if err := utils.WriteFileAtomic(c.outputPath, []byte(conv.Text)); err != nil {
		result.Error = fmt.Errorf("failed to write output: %w", err)
		return result
	}

	result.OutputFile = c.outputPath
	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)

	c.logger.Info("wrote output",
		zap.String("output", c.outputPath),
		zap.Stringer("period", conv.Period),
		zap.Int("edr_rows", conv.EDRRows),
		zap.Int("scr_rows", conv.SCRRows),
		zap.Duration("elapsed", result.Stats.ProcessingTime),
	)

	return result
}

// readTable picks the reader by file extension.
func (c *Converter) readTable() (types.Table, error) {
	if utils.DetectInputKind(c.inputPath) == utils.KindCSV {
		return csvparser.ReadTable(c.inputPath, c.cfg.CSVInput)
	}
	return xlsxparser.ReadTable(c.inputPath, xlsxparser.Options{Sheet: c.cfg.Sheet})
}
