package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestPipelineMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPipelineMetrics(reg)
	m.ObserveUtterance("meal_logged", 0.03)
	m.ObserveUtterance("clarification", 0.01)
	m.ObserveItemsExtracted(2)
	m.SetActiveSessions(4)
	m.ObserveSwept(1)
}

func TestPipelineMetricsNilSafe(t *testing.T) {
	var m *PipelineMetrics
	m.ObserveUtterance("meal_logged", 0.1)
	m.ObserveItemsExtracted(1)
	m.SetActiveSessions(0)
	m.ObserveSwept(0)
}
