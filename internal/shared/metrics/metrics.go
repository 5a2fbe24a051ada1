package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	enrichmentStartedTotal   atomic.Uint64
	enrichmentCompletedTotal atomic.Uint64
	enrichmentDegradedTotal  atomic.Uint64

	enrichmentDuration = newHistogram([]float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000})
)

// IncEnrichmentStarted increments the started counter.
func IncEnrichmentStarted() {
	enrichmentStartedTotal.Add(1)
}

// IncEnrichmentCompleted increments the completed counter.
func IncEnrichmentCompleted() {
	enrichmentCompletedTotal.Add(1)
}

// IncEnrichmentDegraded increments the degraded counter.
func IncEnrichmentDegraded() {
	enrichmentDegradedTotal.Add(1)
}

// ObserveEnrichmentDurationMs records a pipeline run duration in milliseconds.
func ObserveEnrichmentDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	enrichmentDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "enrichment_started_total", "Total enrichment pipeline runs started", enrichmentStartedTotal.Load())
	writeCounter(&buf, "enrichment_completed_total", "Total enrichment pipeline runs completed", enrichmentCompletedTotal.Load())
	writeCounter(&buf, "enrichment_degraded_total", "Total enrichment pipeline runs degraded to the fallback result", enrichmentDegradedTotal.Load())
	writeHistogram(&buf, "enrichment_duration_ms", "Enrichment pipeline duration in milliseconds", enrichmentDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
