package enrich

import (
	"context"
	"encoding/base64"
	"strconv"
	"strings"
	"testing"

	"archive-backend/internal/extract"
	"archive-backend/internal/shared/metrics"
)

type stubRecognizer struct {
	text string
}

func (s stubRecognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	return s.text, nil
}

func TestProcessFullResult(t *testing.T) {
	text := "سند ملكية أرض. اسم المالك: علي حسين. الموقع: بغداد الكرخ. أرض زراعية خصبة"
	pipeline := &Pipeline{Extractor: &extract.Adapter{OCR: stubRecognizer{text: text}}}

	res := pipeline.Process(context.Background(), base64.StdEncoding.EncodeToString([]byte("img")), "image", "سند")

	if res.ExtractedText != text {
		t.Fatalf("unexpected extracted text %q", res.ExtractedText)
	}
	if res.AutoCategory != "سند ملكية" {
		t.Fatalf("unexpected category %q", res.AutoCategory)
	}
	if res.OwnerName != "علي حسين" {
		t.Fatalf("unexpected owner %q", res.OwnerName)
	}
	if res.Location != "بغداد الكرخ" {
		t.Fatalf("unexpected location %q", res.Location)
	}
	if res.LandType != "زراعية" {
		t.Fatalf("unexpected land type %q", res.LandType)
	}
	if len(res.Keywords) == 0 || res.Keywords[0] != "أرض" {
		t.Fatalf("unexpected keywords %v", res.Keywords)
	}
	if res.Summary == "" {
		t.Fatal("expected non-empty summary")
	}
}

func TestProcessDegradesInsteadOfFailing(t *testing.T) {
	// A nil extractor panics inside the pipeline; Process must absorb it.
	pipeline := &Pipeline{}

	res := pipeline.Process(context.Background(), "data", "image", "سند الدار")

	if res.ExtractedText != "" {
		t.Fatalf("expected empty extracted text, got %q", res.ExtractedText)
	}
	if res.Summary != "وثيقة سند الدار" {
		t.Fatalf("unexpected degraded summary %q", res.Summary)
	}
	if res.AutoCategory != "أخرى" {
		t.Fatalf("unexpected degraded category %q", res.AutoCategory)
	}
	if len(res.Keywords) != 0 {
		t.Fatalf("expected no keywords, got %v", res.Keywords)
	}
	if res.OwnerName != "" || res.Location != "" || res.LandType != "" {
		t.Fatal("expected no entities in degraded result")
	}
}

func counterValue(t *testing.T, rendered, name string) uint64 {
	t.Helper()
	for _, line := range strings.Split(rendered, "\n") {
		if rest, ok := strings.CutPrefix(line, name+" "); ok {
			value, err := strconv.ParseUint(rest, 10, 64)
			if err != nil {
				t.Fatalf("parse %s value %q: %v", name, rest, err)
			}
			return value
		}
	}
	t.Fatalf("counter %s not rendered", name)
	return 0
}

func TestProcessRecordsMetrics(t *testing.T) {
	before := metrics.Render()

	ok := &Pipeline{Extractor: &extract.Adapter{OCR: stubRecognizer{text: "سند ملكية أرض"}}}
	ok.Process(context.Background(), base64.StdEncoding.EncodeToString([]byte("img")), "image", "سند")

	// A nil extractor panics inside the pipeline and counts as degraded.
	failed := &Pipeline{}
	failed.Process(context.Background(), "data", "image", "سند")

	after := metrics.Render()
	if got, want := counterValue(t, after, "enrichment_started_total"), counterValue(t, before, "enrichment_started_total")+2; got != want {
		t.Fatalf("started counter: got %d, want %d", got, want)
	}
	if got, want := counterValue(t, after, "enrichment_completed_total"), counterValue(t, before, "enrichment_completed_total")+1; got != want {
		t.Fatalf("completed counter: got %d, want %d", got, want)
	}
	if got, want := counterValue(t, after, "enrichment_degraded_total"), counterValue(t, before, "enrichment_degraded_total")+1; got != want {
		t.Fatalf("degraded counter: got %d, want %d", got, want)
	}
	if got, want := counterValue(t, after, "enrichment_duration_ms_count"), counterValue(t, before, "enrichment_duration_ms_count")+1; got != want {
		t.Fatalf("duration count: got %d, want %d", got, want)
	}
}

func TestProcessPDFWithoutTextLayerUsesPlaceholder(t *testing.T) {
	pipeline := &Pipeline{Extractor: &extract.Adapter{}}

	res := pipeline.Process(context.Background(), base64.StdEncoding.EncodeToString([]byte("junk")), "pdf", "عقد الأرض")

	if res.ExtractedText != "وثيقة pdf بعنوان: عقد الأرض" {
		t.Fatalf("unexpected placeholder %q", res.ExtractedText)
	}
	// The placeholder still flows through the downstream stages.
	if res.AutoCategory == "" || res.Summary == "" {
		t.Fatal("expected classification and summary over the placeholder")
	}
}
