package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// extractXLSX flattens every sheet of a workbook. Each sheet's content is
// prefixed with a boundary marker so downstream recovery can attribute
// fields to a sheet.
func extractXLSX(data []byte) (string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", &ParseError{Format: FormatXLSX, Err: err}
	}
	defer func() {
		_ = file.Close()
	}()

	var parts []string
	for _, sheet := range file.GetSheetList() {
		rows, err := file.GetRows(sheet)
		if err != nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("=== Sheet: %s ===", sheet))
		for _, row := range rows {
			if line := strings.TrimSpace(strings.Join(row, " | ")); line != "" {
				parts = append(parts, line)
			}
		}
	}

	if len(parts) == 0 {
		return "", &ParseError{Format: FormatXLSX, Err: fmt.Errorf("no readable sheets")}
	}
	return strings.Join(parts, "\n"), nil
}
