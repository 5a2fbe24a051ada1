package enrich

import (
	"context"
	"fmt"
	"time"

	"archive-backend/internal/extract"
	"archive-backend/internal/shared/metrics"
	"archive-backend/internal/shared/telemetry"
)

// Result holds the enrichment signals persisted with a document. The
// entity fields are empty when no match was found.
type Result struct {
	ExtractedText string
	Summary       string
	AutoCategory  string
	Keywords      []string
	OwnerName     string
	Location      string
	LandType      string
}

// Pipeline turns a raw document payload into enrichment signals:
// extraction, classification, summarization, keyword extraction and
// entity extraction, in that order, over the same extracted text.
type Pipeline struct {
	Extractor *extract.Adapter
}

// Process runs the full pipeline. It never fails: any internal error
// degrades to a minimal result so document creation succeeds whenever
// storage succeeds.
func (p *Pipeline) Process(ctx context.Context, fileData, fileType, title string) (result Result) {
	metrics.IncEnrichmentStarted()
	started := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			metrics.IncEnrichmentDegraded()
			telemetry.Error("enrich.degraded", map[string]any{
				"title": title,
				"error": fmt.Sprint(rec),
			})
			result = Degraded(title)
			return
		}
		metrics.IncEnrichmentCompleted()
		metrics.ObserveEnrichmentDurationMs(float64(time.Since(started)) / float64(time.Millisecond))
	}()

	text := p.Extractor.Text(ctx, fileData, fileType, title)

	return Result{
		ExtractedText: text,
		AutoCategory:  Classify(text, title),
		Summary:       Summarize(text, title),
		Keywords:      Keywords(text),
		OwnerName:     OwnerName(text),
		Location:      Location(text),
		LandType:      LandType(text),
	}
}

// Degraded is the minimal fallback result used when the pipeline fails
// internally.
func Degraded(title string) Result {
	return Result{
		Summary:      "وثيقة " + title,
		AutoCategory: rules.FallbackCategory,
	}
}
