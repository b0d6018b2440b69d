// Package document converts raw brokerage documents (PDF, CSV, XLSX bytes)
// into plain text suitable for downstream field extraction. Each format has
// layered fallbacks so a structurally odd file still yields usable text
// whenever any text is recoverable.
package document

import (
	"fmt"
	"strings"
)

// Format identifies a supported document format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat maps a user-supplied file type to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatPDF:
		return FormatPDF, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported file type: %s", s)
	}
}

// ParseError reports unreadable document content. The import pipeline
// surfaces it as a degraded zero-confidence result, never as a request
// failure.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Extract converts document bytes of the given format into plain text. It
// performs no network access; the only failure mode is a *ParseError for
// content that cannot be read at all.
func Extract(data []byte, format Format) (string, error) {
	switch format {
	case FormatPDF:
		return extractPDF(data)
	case FormatCSV:
		return extractCSV(data)
	case FormatXLSX:
		return extractXLSX(data)
	default:
		return "", &ParseError{Format: format, Err: fmt.Errorf("unsupported file type")}
	}
}
