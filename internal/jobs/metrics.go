// Package jobmetrics records outcomes of background jobs.
package jobmetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	statusSuccess = "success"
	statusFailure = "failure"
)

// Metrics holds the job collectors. A nil *Metrics records nothing.
type Metrics struct {
	runs     *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
	written  *prometheus.CounterVec
}

// NewMetrics creates the job collectors and registers them on reg. With a nil
// reg the collectors work but are never exported.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wealthdash_jobs_total",
			Help: "Job runs by job type and status.",
		}, []string{"job", "status"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wealthdash_jobs_failures_total",
			Help: "Failed job runs by job type.",
		}, []string{"job"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wealthdash_job_duration_seconds",
			Help:    "Job run duration by job type.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"job"}),
		written: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wealthdash_snapshot_bytes_total",
			Help: "Snapshot bytes written by format.",
		}, []string{"format"}),
	}
	if reg != nil {
		reg.MustRegister(m.runs, m.failures, m.duration, m.written)
	}
	return m
}

// Tracker times one job run.
type Tracker struct {
	m     *Metrics
	job   string
	start time.Time
}

// Track starts timing a run of job.
func (m *Metrics) Track(job string) *Tracker {
	return &Tracker{m: m, job: job, start: time.Now()}
}

// End records the run outcome and returns err unchanged, so it can sit in a
// deferred assignment.
func (t *Tracker) End(err error) error {
	if t == nil || t.m == nil {
		return err
	}
	status := statusSuccess
	if err != nil {
		status = statusFailure
		t.m.failures.WithLabelValues(t.job).Inc()
	}
	t.m.runs.WithLabelValues(t.job, status).Inc()
	t.m.duration.WithLabelValues(t.job).Observe(time.Since(t.start).Seconds())
	return err
}

// AddSnapshotBytes counts n bytes written in the given snapshot format.
func (m *Metrics) AddSnapshotBytes(format string, n int) {
	if m != nil && n > 0 {
		m.written.WithLabelValues(format).Add(float64(n))
	}
}
