package document

import (
	"encoding/csv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// candidateEncoding pairs an encoding name with its decoder; a nil decoder
// means the bytes are used as-is after UTF-8 validation.
type candidateEncoding struct {
	name    string
	decoder *encoding.Decoder
}

// candidateEncodings is the ordered list of encodings attempted for CSV
// content. Brokerage exports from older Windows tooling are the reason the
// two legacy charmaps are here.
func candidateEncodings() []candidateEncoding {
	return []candidateEncoding{
		{name: "utf-8", decoder: nil},
		{name: "iso-8859-1", decoder: charmap.ISO8859_1.NewDecoder()},
		{name: "windows-1252", decoder: charmap.Windows1252.NewDecoder()},
	}
}

// extractCSV attempts a structured tabular parse under each candidate
// encoding in order. A structural parse failure (ragged rows, stray quotes)
// under an encoding falls back to the raw decoded text under that same
// encoding; only a decode failure moves on to the next encoding. If nothing
// decodes, the bytes are decoded best-effort with invalid sequences replaced,
// so this never fails outright.
func extractCSV(data []byte) (string, error) {
	for _, enc := range candidateEncodings() {
		decoded, ok := decodeWith(data, enc)
		if !ok {
			continue
		}

		if table, ok := parseCSVTable(decoded); ok {
			return table, nil
		}
		return decoded, nil
	}

	return strings.ToValidUTF8(string(data), "�"), nil
}

func decodeWith(data []byte, enc candidateEncoding) (string, bool) {
	if enc.decoder == nil {
		if !utf8.Valid(data) {
			return "", false
		}
		return string(data), true
	}
	decoded, err := enc.decoder.Bytes(data)
	if err != nil {
		return "", false
	}
	return string(decoded), true
}

// parseCSVTable renders well-formed CSV as pipe-delimited rows. A structural
// failure returns ok=false so the caller can fall back to raw text.
func parseCSVTable(text string) (string, bool) {
	reader := csv.NewReader(strings.NewReader(text))
	records, err := reader.ReadAll()
	if err != nil || len(records) == 0 {
		return "", false
	}

	var builder strings.Builder
	for i, record := range records {
		if i > 0 {
			builder.WriteByte('\n')
		}
		builder.WriteString(strings.Join(record, " | "))
	}
	return builder.String(), true
}
