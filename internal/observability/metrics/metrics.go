package metrics

import "github.com/prometheus/client_golang/prometheus"

// PipelineMetrics exposes counters/histograms for utterance processing.
type PipelineMetrics struct {
	utterancesTotal *prometheus.CounterVec
	pipelineLatency *prometheus.HistogramVec
	itemsExtracted  prometheus.Histogram
	activeSessions  prometheus.Gauge
	sweptTotal      prometheus.Counter
}

func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	m := &PipelineMetrics{
		utterancesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "khana",
			Subsystem: "pipeline",
			Name:      "utterances_total",
			Help:      "Total processed utterances by outcome",
		}, []string{"outcome"}),
		pipelineLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "khana",
			Subsystem: "pipeline",
			Name:      "latency_seconds",
			Help:      "Latency of end-to-end utterance processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		itemsExtracted: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "khana",
			Subsystem: "pipeline",
			Name:      "items_extracted",
			Help:      "Food items extracted per utterance",
			Buckets:   []float64{0, 1, 2, 3, 5, 8},
		}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "khana",
			Subsystem: "session",
			Name:      "active_total",
			Help:      "Sessions currently tracked",
		}),
		sweptTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "khana",
			Subsystem: "session",
			Name:      "swept_total",
			Help:      "Sessions ended or evicted by the sweeper",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.utterancesTotal, m.pipelineLatency, m.itemsExtracted, m.activeSessions, m.sweptTotal)
	return m
}

func (m *PipelineMetrics) ObserveUtterance(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.utterancesTotal.WithLabelValues(outcome).Inc()
	m.pipelineLatency.WithLabelValues(outcome).Observe(seconds)
}

func (m *PipelineMetrics) ObserveItemsExtracted(count int) {
	if m == nil {
		return
	}
	m.itemsExtracted.Observe(float64(count))
}

func (m *PipelineMetrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.activeSessions.Set(float64(n))
}

func (m *PipelineMetrics) ObserveSwept(n int) {
	if m == nil {
		return
	}
	m.sweptTotal.Add(float64(n))
}
