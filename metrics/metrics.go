// Package metrics records s3count pipeline runs as Prometheus metrics.
package metrics

import (
	"errors"
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const defaultNamespace = "s3count"

// Options controls collector configuration.
type Options struct {
	Namespace       string
	DurationBuckets []float64
}

// Recorder holds the pipeline collectors. A nil *Recorder records nothing.
type Recorder struct {
	gatherer prom.Gatherer

	stageDurationSeconds *prom.HistogramVec
	runsTotal            *prom.CounterVec
	objectBytesTotal     prom.Counter
	rowsDecodedTotal     prom.Counter
	groupsTotal          prom.Counter
}

// New creates and registers the pipeline collectors on reg. A nil reg gets a
// fresh registry.
func New(reg *prom.Registry, opts Options) (*Recorder, error) {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	namespace := opts.Namespace
	if namespace == "" {
		namespace = defaultNamespace
	}
	buckets := opts.DurationBuckets
	if len(buckets) == 0 {
		buckets = prom.DefBuckets
	}

	durationVec := prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "stage_duration_seconds",
		Help:      "Pipeline stage duration in seconds.",
		Buckets:   buckets,
	}, []string{"stage"})
	runsVec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "runs_total",
		Help:      "Total number of pipeline runs by result.",
	}, []string{"result"})
	objectBytes := prom.NewCounter(prom.CounterOpts{
		Namespace: namespace,
		Name:      "object_bytes_total",
		Help:      "Total number of object bytes fetched.",
	})
	rows := prom.NewCounter(prom.CounterOpts{
		Namespace: namespace,
		Name:      "rows_decoded_total",
		Help:      "Total number of CSV data rows decoded.",
	})
	groups := prom.NewCounter(prom.CounterOpts{
		Namespace: namespace,
		Name:      "groups_total",
		Help:      "Total number of groups produced.",
	})

	var err error
	if durationVec, err = registerCollector(reg, durationVec); err != nil {
		return nil, err
	}
	if runsVec, err = registerCollector(reg, runsVec); err != nil {
		return nil, err
	}
	if objectBytes, err = registerCollector(reg, objectBytes); err != nil {
		return nil, err
	}
	if rows, err = registerCollector(reg, rows); err != nil {
		return nil, err
	}
	if groups, err = registerCollector(reg, groups); err != nil {
		return nil, err
	}

	return &Recorder{
		gatherer:             reg,
		stageDurationSeconds: durationVec,
		runsTotal:            runsVec,
		objectBytesTotal:     objectBytes,
		rowsDecodedTotal:     rows,
		groupsTotal:          groups,
	}, nil
}

// ObserveStage records how long a pipeline stage took.
func (r *Recorder) ObserveStage(stage string, d time.Duration) {
	if r == nil {
		return
	}
	r.stageDurationSeconds.WithLabelValues(normalizeLabel(stage, "unknown")).Observe(d.Seconds())
}

// AddObjectBytes counts fetched bytes.
func (r *Recorder) AddObjectBytes(n int) {
	if r == nil {
		return
	}
	r.objectBytesTotal.Add(float64(n))
}

// AddRows counts decoded rows.
func (r *Recorder) AddRows(n int) {
	if r == nil {
		return
	}
	r.rowsDecodedTotal.Add(float64(n))
}

// AddGroups counts produced groups.
func (r *Recorder) AddGroups(n int) {
	if r == nil {
		return
	}
	r.groupsTotal.Add(float64(n))
}

// RunDone counts a finished run as "ok" or "error".
func (r *Recorder) RunDone(err error) {
	if r == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.runsTotal.WithLabelValues(result).Inc()
}

// WriteTextfile writes every registered metric to path in the text
// exposition format, for collection by a node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prom.WriteToTextfile(path, r.gatherer); err != nil {
		return fmt.Errorf("failed to write metrics textfile %q: %w", path, err)
	}
	return nil
}

func normalizeLabel(v string, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func registerCollector[T prom.Collector](reg prom.Registerer, collector T) (T, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	var alreadyRegisteredErr prom.AlreadyRegisteredError
	if errors.As(err, &alreadyRegisteredErr) {
		existing, ok := alreadyRegisteredErr.ExistingCollector.(T)
		if !ok {
			return collector, fmt.Errorf("collector type mismatch for %T", collector)
		}
		return existing, nil
	}

	return collector, err
}
