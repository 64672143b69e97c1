// =============================================================================
// Payroll Disbursement Converter - Main Entry Point
// =============================================================================
//
// USAGE:
//   payrollconv <input.xlsx>   - Convert one payroll sheet to <input.xlsx>.csv
//   payrollconv version        - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Reading, validation, conversion and rendering
//   - pkg/       : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/payrollconv/cmd"
)

func main() {
	cmd.Execute()
}
