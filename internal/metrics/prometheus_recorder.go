package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg         *prom.Registry
	documents   *prom.CounterVec
	skips       *prom.CounterVec
	assets      *prom.CounterVec
	docDuration prom.Histogram
	runDuration prom.Histogram
	lastRun     prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg
// (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		documents: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "vault2hugo",
			Name:      "documents_total",
			Help:      "Documents processed by outcome",
		}, []string{"outcome"}),
		skips: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "vault2hugo",
			Name:      "documents_skipped_total",
			Help:      "Skipped documents by reason",
		}, []string{"reason"}),
		assets: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "vault2hugo",
			Name:      "assets_total",
			Help:      "Resolved resources by materialization outcome",
		}, []string{"outcome"}),
		docDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "vault2hugo",
			Name:      "document_duration_seconds",
			Help:      "Duration of a single document conversion",
			Buckets:   prom.ExponentialBuckets(0.0005, 4, 8),
		}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "vault2hugo",
			Name:      "run_duration_seconds",
			Help:      "Duration of a full vault conversion",
			Buckets:   prom.DefBuckets,
		}),
		lastRun: prom.NewGauge(prom.GaugeOpts{
			Namespace: "vault2hugo",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last vault conversion finished",
		}),
	}
	reg.MustRegister(pr.documents, pr.skips, pr.assets, pr.docDuration, pr.runDuration, pr.lastRun)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.reg
}

func (p *PrometheusRecorder) IncDocument(outcome DocumentOutcome) {
	if p == nil {
		return
	}
	p.documents.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncSkip(reason string) {
	if p == nil {
		return
	}
	p.skips.WithLabelValues(reason).Inc()
}

func (p *PrometheusRecorder) IncAsset(outcome string) {
	if p == nil {
		return
	}
	p.assets.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) ObserveDocumentDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.docDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
	p.lastRun.SetToCurrentTime()
}

// WriteTextfile writes the registry in the Prometheus text exposition format,
// suitable for the node_exporter textfile collector.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.reg)
}
