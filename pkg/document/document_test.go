package document

import (
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"pdf", FormatPDF, false},
		{"csv", FormatCSV, false},
		{"xlsx", FormatXLSX, false},
		{"PDF", FormatPDF, false},
		{" csv ", FormatCSV, false},
		{"docx", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			format, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if format != tt.expected {
				t.Errorf("ParseFormat(%q) = %q, expected %q", tt.input, format, tt.expected)
			}
		})
	}
}

func TestExtractCSVWellFormed(t *testing.T) {
	data := []byte("name,ticker,shares\nApple Inc.,AAPL,100\nVanguard S&P 500 ETF,VOO,25\n")
	text, err := Extract(data, FormatCSV)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	lines := strings.Split(text, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, expected 3: %q", len(lines), text)
	}
	if lines[0] != "name | ticker | shares" {
		t.Errorf("header = %q, expected pipe-delimited", lines[0])
	}
	if !strings.Contains(text, "Apple Inc. | AAPL | 100") {
		t.Errorf("missing flattened row in %q", text)
	}
}

func TestExtractCSVRaggedFallsBackToRawText(t *testing.T) {
	// Inconsistent column counts are a structural failure, not a decode
	// failure; the raw text must come back under the same encoding.
	data := []byte("name,shares\nApple,100,extra,columns\nshort\n")
	text, err := Extract(data, FormatCSV)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != string(data) {
		t.Errorf("expected raw text fallback, got %q", text)
	}
}

func TestExtractCSVLatin1(t *testing.T) {
	// "Crédit Agricole" with é encoded as Latin-1 0xE9; invalid UTF-8.
	data := []byte("name,shares\nCr\xe9dit Agricole,10\n")
	text, err := Extract(data, FormatCSV)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !strings.Contains(text, "Crédit Agricole | 10") {
		t.Errorf("Latin-1 content not decoded: %q", text)
	}
}

func TestExtractCSVNeverFails(t *testing.T) {
	// Arbitrary binary garbage still produces best-effort text.
	data := []byte{0x00, 0xff, 0xfe, 0x41, 0x42}
	text, err := Extract(data, FormatCSV)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text == "" {
		t.Error("expected non-empty best-effort text")
	}
}

func TestExtractCSVEmpty(t *testing.T) {
	text, err := Extract(nil, FormatCSV)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "" {
		t.Errorf("expected empty text for empty input, got %q", text)
	}
}

func TestExtractXLSX(t *testing.T) {
	workbook := excelize.NewFile()
	sheet := workbook.GetSheetName(0)
	_ = workbook.SetCellValue(sheet, "A1", "name")
	_ = workbook.SetCellValue(sheet, "B1", "shares")
	_ = workbook.SetCellValue(sheet, "A2", "Apple Inc.")
	_ = workbook.SetCellValue(sheet, "B2", 100)

	second, err := workbook.NewSheet("Bonds")
	if err != nil {
		t.Fatalf("NewSheet() error = %v", err)
	}
	_ = second
	_ = workbook.SetCellValue("Bonds", "A1", "US Treasury")

	buf, err := workbook.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer() error = %v", err)
	}

	text, extractErr := Extract(buf.Bytes(), FormatXLSX)
	if extractErr != nil {
		t.Fatalf("Extract() error = %v", extractErr)
	}

	if !strings.Contains(text, "=== Sheet: "+sheet+" ===") {
		t.Errorf("missing sheet marker for %q in %q", sheet, text)
	}
	if !strings.Contains(text, "=== Sheet: Bonds ===") {
		t.Errorf("missing sheet marker for Bonds in %q", text)
	}
	if !strings.Contains(text, "Apple Inc. | 100") {
		t.Errorf("missing flattened row in %q", text)
	}
	if strings.Index(text, "=== Sheet: Bonds ===") < strings.Index(text, "Apple Inc.") {
		t.Errorf("sheet content not attributed under its marker: %q", text)
	}
}

func TestExtractXLSXGarbage(t *testing.T) {
	_, err := Extract([]byte("not a zip archive"), FormatXLSX)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Extract() error = %v, expected *ParseError", err)
	}
	if parseErr.Format != FormatXLSX {
		t.Errorf("ParseError.Format = %q, expected xlsx", parseErr.Format)
	}
}

func TestExtractPDFGarbage(t *testing.T) {
	_, err := Extract([]byte("%PDF-1.7 truncated nonsense"), FormatPDF)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Extract() error = %v, expected *ParseError", err)
	}
}

func TestExtractUnsupportedFormat(t *testing.T) {
	_, err := Extract([]byte("data"), Format("docx"))
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Extract() error = %v, expected *ParseError", err)
	}
}
