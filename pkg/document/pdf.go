package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF concatenates per-page text, then appends every detected text row
// as a pipe-delimited line. Plain text extraction tends to drop or reorder
// tabular holdings data, so the flattened rows ride along for the downstream
// field extraction to pick over.
func extractPDF(data []byte) (text string, err error) {
	// The pdf package panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ParseError{Format: FormatPDF, Err: fmt.Errorf("malformed PDF: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ParseError{Format: FormatPDF, Err: err}
	}

	var parts []string
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		if pageText, err := page.GetPlainText(nil); err == nil {
			if trimmed := strings.TrimSpace(pageText); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			var cells []string
			for _, word := range row.Content {
				if s := strings.TrimSpace(word.S); s != "" {
					cells = append(cells, s)
				}
			}
			if len(cells) > 1 {
				parts = append(parts, strings.Join(cells, " | "))
			}
		}
	}

	if len(parts) == 0 {
		return "", &ParseError{Format: FormatPDF, Err: fmt.Errorf("no extractable text")}
	}
	return strings.Join(parts, "\n"), nil
}
