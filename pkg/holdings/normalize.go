package holdings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/avalle/asset-runway/pkg/constants"
	"github.com/avalle/asset-runway/pkg/mathutil"
	"github.com/avalle/asset-runway/pkg/validation"
)

// TruncationWarning is appended when the source document exceeded the
// character budget and was cut before extraction.
const TruncationWarning = "Document was truncated due to size. Some assets may be missing."

// EmptyDocumentWarning is the single warning attached when a document yields
// too little usable text to analyze.
const EmptyDocumentWarning = "Document appears to be empty or contains very little text"

// Normalize maps the raw recovered fields into a typed ExtractionResult.
// Candidates failing shape validation are dropped with a warning rather than
// failing the whole extraction; a missing or unknown type is never guessed.
// When truncated is set the fixed truncation warning is appended and the
// overall confidence is capped regardless of what the model reported.
func Normalize(raw map[string]any, truncated bool) ExtractionResult {
	result := ExtractionResult{
		Holdings:   []Holding{},
		Warnings:   []string{},
		Confidence: 0.8,
	}

	if conf, ok := floatField(raw, "confidence"); ok {
		result.Confidence = mathutil.Clamp(conf, 0, 1)
	}

	for _, w := range listField(raw, "warnings") {
		if s, ok := w.(string); ok && s != "" {
			result.Warnings = append(result.Warnings, s)
		}
	}

	if src, ok := raw["source_info"].(map[string]any); ok {
		result.SourceInfo = normalizeSource(src, &result.Warnings)
	}

	for i, candidate := range listField(raw, "assets") {
		fields, ok := candidate.(map[string]any)
		if !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Dropped asset #%d: not an object", i+1))
			continue
		}
		holding, err := normalizeHolding(fields)
		if err != nil {
			if name, _ := stringField(fields, "name"); name != "" {
				result.Warnings = append(result.Warnings, fmt.Sprintf("Dropped asset '%s': %v", name, err))
			} else {
				result.Warnings = append(result.Warnings, fmt.Sprintf("Dropped asset #%d: %v", i+1, err))
			}
			continue
		}
		result.Holdings = append(result.Holdings, holding)
	}

	if truncated {
		result.Warnings = append(result.Warnings, TruncationWarning)
		if result.Confidence > constants.TruncatedConfidenceCap {
			result.Confidence = constants.TruncatedConfidenceCap
		}
	}

	return result
}

// EmptyResult builds the degraded zero-holding result used when extraction
// cannot proceed at all.
func EmptyResult(warning string) ExtractionResult {
	return ExtractionResult{
		Holdings:   []Holding{},
		Warnings:   []string{warning},
		Confidence: 0.0,
	}
}

func normalizeHolding(fields map[string]any) (Holding, error) {
	var h Holding

	name, ok := stringField(fields, "name")
	if !ok || strings.TrimSpace(name) == "" {
		return h, fmt.Errorf("missing name")
	}
	h.Name = strings.TrimSpace(name)

	assetType, ok := stringField(fields, "type")
	if !ok {
		return h, fmt.Errorf("missing type")
	}
	assetType = strings.ToLower(strings.TrimSpace(assetType))
	if !ValidTypes[assetType] {
		return h, fmt.Errorf("unknown type %q", assetType)
	}
	h.Type = assetType

	if ticker, ok := stringField(fields, "ticker"); ok {
		h.Ticker = strings.ToUpper(strings.TrimSpace(ticker))
	}
	if market, ok := stringField(fields, "market"); ok {
		h.Market = strings.TrimSpace(market)
	}

	h.Currency = "USD"
	if currency, ok := stringField(fields, "currency"); ok && strings.TrimSpace(currency) != "" {
		h.Currency = strings.ToUpper(strings.TrimSpace(currency))
	}

	if price, ok := floatField(fields, "current_price"); ok {
		h.CurrentPrice = &price
	}
	if total, ok := floatField(fields, "total_value"); ok {
		h.TotalValue = &total
	}

	shares, hasShares := floatField(fields, "shares")
	switch {
	case hasShares:
		if shares < 0 {
			return h, fmt.Errorf("negative shares")
		}
		h.Shares = shares
	case h.TotalValue != nil && h.CurrentPrice != nil && *h.CurrentPrice > 0:
		// shares = total_value / price, computed in decimal so quotients like
		// 18550 / 185.5 come out exact.
		derived := decimal.NewFromFloat(*h.TotalValue).Div(decimal.NewFromFloat(*h.CurrentPrice))
		h.Shares = derived.InexactFloat64()
	default:
		return h, fmt.Errorf("missing shares and no total value/price to derive them")
	}

	h.Confidence = 1.0
	if conf, ok := floatField(fields, "confidence"); ok {
		h.Confidence = mathutil.Clamp(conf, 0, 1)
	}

	return h, nil
}

func normalizeSource(fields map[string]any, warnings *[]string) SourceInfo {
	var src SourceInfo
	if broker, ok := stringField(fields, "broker"); ok {
		src.Broker = strings.TrimSpace(broker)
	}
	if accountType, ok := stringField(fields, "account_type"); ok {
		src.AccountType = strings.TrimSpace(accountType)
	}
	if date, ok := stringField(fields, "statement_date"); ok && strings.TrimSpace(date) != "" {
		if iso, ok := validation.NormalizeISODate(date); ok {
			src.StatementDate = iso
		} else {
			*warnings = append(*warnings, fmt.Sprintf("Could not parse statement date %q", date))
		}
	}
	return src
}

func stringField(fields map[string]any, key string) (string, bool) {
	value, ok := fields[key]
	if !ok || value == nil {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

// floatField reads a numeric field, tolerating the string-wrapped numbers
// models occasionally emit.
func floatField(fields map[string]any, key string) (float64, bool) {
	value, ok := fields[key]
	if !ok || value == nil {
		return 0, false
	}
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func listField(fields map[string]any, key string) []any {
	value, ok := fields[key]
	if !ok {
		return nil
	}
	list, ok := value.([]any)
	if !ok {
		return nil
	}
	return list
}
