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
	assessmentsTotal        atomic.Uint64
	assessmentsAIBlended    atomic.Uint64
	assessmentsAIFallback   atomic.Uint64
	appealLettersAITotal    atomic.Uint64
	appealLettersTplTotal   atomic.Uint64
	leadsCapturedTotal      atomic.Uint64
	leadsCRMSyncFailedTotal atomic.Uint64

	assessmentDuration = newHistogram([]float64{5, 25, 100, 250, 500, 1000, 2000, 5000, 10000, 30000})
)

// IncAssessment increments the assessment counter.
func IncAssessment() {
	assessmentsTotal.Add(1)
}

// IncAssessmentAIBlended counts assessments that included AI insights.
func IncAssessmentAIBlended() {
	assessmentsAIBlended.Add(1)
}

// IncAssessmentAIFallback counts assessments where the AI call failed and the
// rule-based score was used unmodified.
func IncAssessmentAIFallback() {
	assessmentsAIFallback.Add(1)
}

// IncAppealLetter counts generated appeal letters by generation type.
func IncAppealLetter(letterType string) {
	if letterType == "ai-generated" {
		appealLettersAITotal.Add(1)
		return
	}
	appealLettersTplTotal.Add(1)
}

// IncLeadCaptured increments the captured-lead counter.
func IncLeadCaptured() {
	leadsCapturedTotal.Add(1)
}

// IncLeadCRMSyncFailed counts best-effort CRM syncs that failed.
func IncLeadCRMSyncFailed() {
	leadsCRMSyncFailedTotal.Add(1)
}

// ObserveAssessmentDurationMs records an assessment duration in milliseconds.
func ObserveAssessmentDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	assessmentDuration.Observe(value)
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
	writeCounter(&buf, "risk_assessments_total", "Total risk assessments computed", assessmentsTotal.Load())
	writeCounter(&buf, "risk_assessments_ai_blended_total", "Assessments that blended an AI-adjusted score", assessmentsAIBlended.Load())
	writeCounter(&buf, "risk_assessments_ai_fallback_total", "Assessments where AI augmentation failed and was skipped", assessmentsAIFallback.Load())
	writeCounter(&buf, "appeal_letters_ai_total", "Appeal letters drafted by the hosted model", appealLettersAITotal.Load())
	writeCounter(&buf, "appeal_letters_template_total", "Appeal letters filled from the static template", appealLettersTplTotal.Load())
	writeCounter(&buf, "leads_captured_total", "Marketing leads stored", leadsCapturedTotal.Load())
	writeCounter(&buf, "leads_crm_sync_failed_total", "Lead CRM syncs that failed", leadsCRMSyncFailedTotal.Load())
	writeHistogram(&buf, "risk_assessment_duration_ms", "Risk assessment duration in milliseconds", assessmentDuration.Snapshot())
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
