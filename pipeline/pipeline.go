// Package pipeline runs the s3count job: fetch a CSV object, group its rows
// by one column, count the groups and print them sorted by count.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/baxromumarov/forkjoin"
	"github.com/baxromumarov/forkjoin/config"
	"github.com/baxromumarov/forkjoin/frame"
	"github.com/baxromumarov/forkjoin/metrics"
)

// Fetcher loads a whole object.
type Fetcher interface {
	Fetch(ctx context.Context, bucket, key string) ([]byte, error)
}

// Runner executes pipeline runs for one configuration.
type Runner struct {
	cfg      *config.Config
	fetcher  Fetcher
	recorder *metrics.Recorder
	out      io.Writer
	logger   *log.Entry
}

// Option configures a [Runner].
type Option func(*Runner)

// WithRecorder records run metrics on rec.
func WithRecorder(rec *metrics.Recorder) Option {
	return func(r *Runner) {
		r.recorder = rec
	}
}

// WithOutput sets where results are written. Default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

// WithLogger sets the base log entry.
func WithLogger(l *log.Entry) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// New returns a Runner. cfg must have been validated.
func New(cfg *config.Config, fetcher Fetcher, opts ...Option) *Runner {
	r := &Runner{
		cfg:     cfg,
		fetcher: fetcher,
		out:     os.Stdout,
		logger:  log.NewEntry(log.StandardLogger()),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// aggregation is the value computed on the pool.
type aggregation struct {
	counts *frame.Counts
	rows   int
	err    error
}

// Run performs one fetch, group, sort and render cycle. Failures are
// returned as [*StageError].
func (r *Runner) Run(ctx context.Context) (err error) {
	logger := r.logger.WithField("run-id", uuid.New().String())
	start := time.Now()
	defer func() {
		r.recorder.RunDone(err)
		if merr := r.recorder.WriteTextfile(r.cfg.Metrics.Textfile); merr != nil {
			err = errors.Join(err, &StageError{Stage: StageMetrics, Err: merr})
		}
		if err != nil {
			logger.WithError(err).WithField("stages", failedStages(err)).Error("run failed")
			return
		}
		logger.WithField("elapsed", time.Since(start)).Info("run finished")
	}()

	pool, err := forkjoin.NewBuilder().NumThreads(r.cfg.Pool.Threads).Build()
	if err != nil {
		return &StageError{Stage: StageAggregate, Err: err}
	}

	data, err := r.fetch(ctx, logger)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return &StageError{Stage: StageDecode, Err: err}
	}
	res := r.aggregate(pool, data)
	if res.err != nil {
		return res.err
	}
	logger.WithFields(log.Fields{
		"rows":   res.rows,
		"groups": res.counts.Len(),
		"column": r.cfg.Query.GroupBy,
	}).Debug("aggregated")

	if err := ctx.Err(); err != nil {
		return &StageError{Stage: StageRender, Err: err}
	}
	return r.render(res.counts)
}

func (r *Runner) fetch(ctx context.Context, logger *log.Entry) ([]byte, error) {
	s3cfg := r.cfg.S3
	defer r.timeStage(StageFetch, time.Now())

	data, err := r.fetcher.Fetch(ctx, s3cfg.Bucket, s3cfg.Key)
	if err != nil {
		return nil, &StageError{Stage: StageFetch, Err: err}
	}
	r.recorder.AddObjectBytes(len(data))
	logger.WithFields(log.Fields{
		"bucket": s3cfg.Bucket,
		"key":    s3cfg.Key,
		"bytes":  len(data),
	}).Debug("fetched object")
	return data, nil
}

// aggregate decodes and groups data on pool. A panic raised by the frame
// kernels unwinds through the pool and is converted here.
func (r *Runner) aggregate(pool *forkjoin.Pool, data []byte) (res aggregation) {
	stage := StageDecode
	defer func() {
		if v := recover(); v != nil {
			res = aggregation{err: &StageError{Stage: stage, Err: newPanicError(v)}}
		}
	}()

	q := r.cfg.Query
	return forkjoin.Install(pool, func() aggregation {
		start := time.Now()
		f, err := frame.ReadCSV(bytes.NewReader(data), frame.ReadOptions{NullValues: q.NullValues})
		if err != nil {
			return aggregation{err: &StageError{Stage: StageDecode, Err: err}}
		}
		r.timeStage(StageDecode, start)
		r.recorder.AddRows(f.Height())

		stage = StageAggregate
		start = time.Now()
		counts, err := frame.GroupCount(f, q.GroupBy, q.Alias)
		if err != nil {
			return aggregation{err: &StageError{Stage: StageAggregate, Err: err}}
		}
		counts.Sort(!q.Ascending).Head(q.Limit)
		r.timeStage(StageAggregate, start)
		r.recorder.AddGroups(counts.Len())

		return aggregation{counts: counts, rows: f.Height()}
	})
}

func (r *Runner) render(counts *frame.Counts) error {
	defer r.timeStage(StageRender, time.Now())

	var err error
	switch r.cfg.Output.Format {
	case config.FormatCSV:
		err = frame.WriteCSV(r.out, counts)
	case config.FormatJSON:
		err = frame.WriteJSON(r.out, counts)
	case config.FormatTable:
		err = frame.WriteTable(r.out, counts)
	default:
		err = fmt.Errorf("unknown output format %q", r.cfg.Output.Format)
	}
	if err != nil {
		return &StageError{Stage: StageRender, Err: err}
	}
	return nil
}

// failedStages lists the stage of every [*StageError] in err, in order. A
// run can fail twice when the metrics textfile also cannot be written.
func failedStages(err error) []string {
	var stages []string
	for _, se := range AllStageErrors(err) {
		stages = append(stages, string(se.Stage))
	}
	return stages
}

func (r *Runner) timeStage(stage Stage, start time.Time) {
	r.recorder.ObserveStage(string(stage), time.Since(start))
}
