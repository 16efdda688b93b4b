package jobmetrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, registry *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := registry.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	next:
		for _, metric := range family.GetMetric() {
			for _, pair := range metric.GetLabel() {
				if labels[pair.GetName()] != pair.GetValue() {
					continue next
				}
			}
			return metric.GetCounter().GetValue()
		}
	}
	return 0
}

func TestTrackerRecordsOutcome(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)

	require.NoError(t, m.Track("dashboard:snapshot").End(nil))
	err := errors.New("disk full")
	assert.Equal(t, err, m.Track("dashboard:snapshot").End(err))

	assert.Equal(t, 1.0, counterValue(t, registry, "wealthdash_jobs_total", map[string]string{"job": "dashboard:snapshot", "status": "success"}))
	assert.Equal(t, 1.0, counterValue(t, registry, "wealthdash_jobs_total", map[string]string{"job": "dashboard:snapshot", "status": "failure"}))
	assert.Equal(t, 1.0, counterValue(t, registry, "wealthdash_jobs_failures_total", map[string]string{"job": "dashboard:snapshot"}))

	m.AddSnapshotBytes("pdf", 2048)
	m.AddSnapshotBytes("pdf", 0)
	assert.Equal(t, 2048.0, counterValue(t, registry, "wealthdash_snapshot_bytes_total", map[string]string{"format": "pdf"}))
}

func TestNilMetricsTrackerPassesErrorThrough(t *testing.T) {
	var m *Metrics
	err := errors.New("boom")
	assert.Equal(t, err, m.Track("job").End(err))
	m.AddSnapshotBytes("html", 10)
}

func TestUnregisteredMetricsStillCount(t *testing.T) {
	m := NewMetrics(nil)
	require.NoError(t, m.Track("dashboard:snapshot").End(nil))
	m.AddSnapshotBytes("html", 5)
}
