// =============================================================================
// Payroll Disbursement Converter - File Manager Utility
// =============================================================================
//
// This module provides the file handling around a conversion:
//   - Output path derivation (input path + suffix)
//   - Atomic output writes (temp file + rename)
//   - Input kind detection by extension
//
// WRITE STRATEGY:
//   The output is written to a hidden temporary file next to the destination
//   and renamed over it only once fully written and synced. A failed run
//   never leaves a partial output file behind.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// =============================================================================
// FILE NAMING
// =============================================================================

// OutputPath returns the conventional destination for an input file: the
// input path with suffix appended ("march.xlsx" -> "march.xlsx.csv").
func OutputPath(inputPath, suffix string) string {
	return inputPath + suffix
}

// InputKind classifies an input file by extension.
type InputKind int

const (
	// KindWorkbook is an Office Open XML workbook.
	KindWorkbook InputKind = iota

	// KindCSV is a delimited text export of the sheet.
	KindCSV
)

// DetectInputKind returns KindCSV for .csv/.txt/.tsv files and KindWorkbook
// for everything else, leaving the workbook reader to reject non-workbooks.
func DetectInputKind(path string) InputKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt", ".tsv":
		return KindCSV
	default:
		return KindWorkbook
	}
}

// =============================================================================
// OUTPUT WRITING
// =============================================================================

// WriteFileAtomic writes data to path through a temporary file in the same
// directory, so readers see either the old file or the complete new one.
//
// PARAMETERS:
//   - path: The destination file.
//   - data: The complete file contents.
//
// RETURNS:
//   - An error if writing, syncing or renaming fails. The temporary file is
//     removed on every failure path.
func WriteFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.New().String()))

	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}

	return nil
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
