// Package importer orchestrates the document import pipeline: text
// extraction, size gating, model extraction, JSON recovery, and
// normalization. The pipeline never fails a request; every error on the way
// degrades to a well-formed zero-or-partial result with warnings.
package importer

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/avalle/asset-runway/internal/llm"
	"github.com/avalle/asset-runway/pkg/constants"
	"github.com/avalle/asset-runway/pkg/document"
	"github.com/avalle/asset-runway/pkg/holdings"
	"github.com/avalle/asset-runway/pkg/recovery"
)

// TextGenerator is the single-call surface the pipeline needs from a
// language model. internal/llm provides the production implementation;
// tests supply stubs.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Analyzer runs the import pipeline.
type Analyzer struct {
	generator TextGenerator
	logger    *zap.Logger
}

// NewAnalyzer constructs an Analyzer over the given generator.
func NewAnalyzer(generator TextGenerator, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{generator: generator, logger: logger}
}

// Analyze extracts asset holdings from one document. The returned result is
// always well-formed: unreadable documents, model failures, and unparseable
// responses all produce an empty result with a warning and confidence zero
// rather than an error.
func (a *Analyzer) Analyze(ctx context.Context, data []byte, format document.Format, filename string) holdings.ExtractionResult {
	text, err := document.Extract(data, format)
	if err != nil {
		a.logger.Warn("document text extraction failed",
			zap.String("op", "importer.Analyze"),
			zap.String("file_name", filename),
			zap.String("file_type", string(format)),
			zap.Error(err),
		)
		return holdings.EmptyResult(fmt.Sprintf("Could not read document: %v", err))
	}

	if len(strings.TrimSpace(text)) < constants.MinDocumentChars {
		a.logger.Info("document below minimum text threshold",
			zap.String("op", "importer.Analyze"),
			zap.String("file_name", filename),
			zap.Int("chars", len(text)),
		)
		return holdings.EmptyResult(holdings.EmptyDocumentWarning)
	}

	// The budget is in characters, not bytes; slicing by runes keeps
	// non-ASCII statements intact at the cut.
	truncated := false
	if utf8.RuneCountInString(text) > constants.MaxDocumentChars {
		runes := []rune(text)
		text = string(runes[:constants.MaxDocumentChars])
		truncated = true
	}

	response, err := a.generator.Generate(ctx, llm.ExtractionPrompt(text))
	if err != nil {
		a.logger.Warn("model extraction failed",
			zap.String("op", "importer.Analyze"),
			zap.String("file_name", filename),
			zap.Error(err),
		)
		return holdings.EmptyResult(fmt.Sprintf("Asset extraction failed: %v", err))
	}

	raw, err := recovery.Extract(response)
	if err != nil {
		a.logger.Warn("no structured data in model response",
			zap.String("op", "importer.Analyze"),
			zap.String("file_name", filename),
			zap.Error(err),
		)
		return holdings.EmptyResult("Could not parse extraction response; the document may be unsupported")
	}

	result := holdings.Normalize(raw, truncated)

	a.logger.Info("document analyzed",
		zap.String("op", "importer.Analyze"),
		zap.String("file_name", filename),
		zap.String("file_type", string(format)),
		zap.Int("holdings", len(result.Holdings)),
		zap.Int("warnings", len(result.Warnings)),
		zap.Float64("confidence", result.Confidence),
		zap.Bool("truncated", truncated),
	)

	return result
}
