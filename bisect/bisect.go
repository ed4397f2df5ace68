package bisect

import (
	"context"
	"errors"
	"time"

	"github.com/gogpu/gputrace"
)

// Package errors for bisect.
var (
	// ErrNilPipeline is returned when New is given a nil pipeline.
	ErrNilPipeline = errors.New("bisect: nil pipeline")

	// ErrNilCounter is returned when New is given a nil error counter.
	ErrNilCounter = errors.New("bisect: nil error counter")
)

// Result is the measurement for one pass.
type Result struct {
	// PassID identifies the pass.
	PassID string

	// ErrorsWhileDisabled is the error count observed over the window
	// during which the pass was disabled. Meaningful only when Measured.
	ErrorsWhileDisabled int

	// Measured is true once the pass completed a full observation
	// window. False for skipped passes and for the pass in flight when a
	// cycle is aborted.
	Measured bool

	// CandidateCulprit is true iff the pass was measured, the baseline
	// error count was positive, and no errors occurred while this pass
	// was disabled.
	CandidateCulprit bool

	// Skipped is true for a pass whose toggle is unsupported. Such a
	// pass is reported, never silently omitted.
	Skipped bool
}

// Report aggregates one bisection cycle.
type Report struct {
	// BaselineErrors is the error count over the baseline window, with
	// every pass enabled.
	BaselineErrors int

	// Results holds one entry per pass, in pipeline order.
	Results []Result
}

// Culprits returns the IDs of candidate-culprit passes, in pipeline order.
func (r *Report) Culprits() []string {
	var out []string
	for _, res := range r.Results {
		if res.CandidateCulprit {
			out = append(out, res.PassID)
		}
	}
	return out
}

// NoSingleCulprit reports the explicit "no single-pass culprit" outcome:
// errors occurred at baseline but the per-pass measurements pinned no
// unique pass. That covers both zero candidates (out-of-pipeline cause:
// no pass's absence stopped the errors) and several (interaction effect:
// disabling any one of them stopped the symptom, so none is individually
// responsible).
func (r *Report) NoSingleCulprit() bool {
	return r.BaselineErrors > 0 && len(r.Culprits()) != 1
}

// WaitFunc blocks for the duration or until the context is canceled, in
// which case it returns the context error. The default implementation
// sleeps; tests and single-threaded hosts inject one that pumps frames
// instead.
type WaitFunc func(ctx context.Context, d time.Duration) error

// Option configures a Bisector during creation.
type Option func(*options)

type options struct {
	observation time.Duration
	settle      time.Duration
	wait        WaitFunc
}

func defaultOptions() options {
	return options{
		observation: 500 * time.Millisecond,
		settle:      100 * time.Millisecond,
		wait:        sleepWait,
	}
}

// WithObservationWindow sets the window over which errors are counted,
// both for the baseline and for each disabled pass.
func WithObservationWindow(d time.Duration) Option {
	return func(o *options) {
		o.observation = d
	}
}

// WithSettleWindow sets the pause after re-enabling a pass, before the
// next pass is measured. It keeps residual state from a disabled pass
// from contaminating the next measurement.
func WithSettleWindow(d time.Duration) Option {
	return func(o *options) {
		o.settle = d
	}
}

// WithWaitFunc replaces the waiting primitive. Single-threaded hosts use
// this to render frames during the window instead of sleeping.
func WithWaitFunc(wait WaitFunc) Option {
	return func(o *options) {
		if wait != nil {
			o.wait = wait
		}
	}
}

// sleepWait is the default WaitFunc.
func sleepWait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Bisector runs bisection cycles over a pipeline.
type Bisector struct {
	pipeline Pipeline
	counter  ErrorCounter
	opts     options
}

// New creates a Bisector over the pipeline's passes, reading error counts
// from counter.
func New(p Pipeline, counter ErrorCounter, opts ...Option) (*Bisector, error) {
	if p == nil {
		return nil, ErrNilPipeline
	}
	if counter == nil {
		return nil, ErrNilCounter
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Bisector{pipeline: p, counter: counter, opts: o}, nil
}

// Run executes one bisection cycle: baseline measurement, then one
// disable/observe/re-enable step per pass, then summarization.
//
// A canceled context aborts the cycle; the pass being measured is
// re-enabled before Run returns, and the partial report accumulated so
// far is returned alongside the context error. A pass misbehaving while
// disabled is an observation, recorded in its Result, never an error
// from Run.
func (b *Bisector) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	// BASELINE_MEASURE: the pipeline runs unmodified.
	b.counter.Reset()
	if err := b.opts.wait(ctx, b.opts.observation); err != nil {
		return report, err
	}
	report.BaselineErrors = b.counter.Count()
	gputrace.Logger().Debug("bisect: baseline measured",
		"errors", report.BaselineErrors)

	for _, id := range b.pipeline.ListPasses() {
		res, err := b.measurePass(ctx, id)
		report.Results = append(report.Results, res)
		if err != nil {
			b.summarize(report)
			return report, err
		}
		if !res.Skipped {
			if err := b.opts.wait(ctx, b.opts.settle); err != nil {
				b.summarize(report)
				return report, err
			}
		}
	}

	// SUMMARIZE
	b.summarize(report)
	return report, nil
}

// measurePass runs one DISABLE -> OBSERVE -> ENABLE step. The deferred
// re-enable guarantees the pass is restored on every exit path, including
// cancellation mid-observation.
func (b *Bisector) measurePass(ctx context.Context, id string) (Result, error) {
	res := Result{PassID: id}

	if !b.pipeline.DisablePass(id) {
		res.Skipped = true
		gputrace.Logger().Debug("bisect: pass not toggleable", "pass", id)
		return res, nil
	}
	defer b.pipeline.EnablePass(id)

	gputrace.Logger().Debug("bisect: pass disabled", "pass", id)

	b.counter.Reset()
	if err := b.opts.wait(ctx, b.opts.observation); err != nil {
		return res, err
	}
	res.ErrorsWhileDisabled = b.counter.Count()
	res.Measured = true
	return res, nil
}

// summarize fills in the culprit classification.
func (b *Bisector) summarize(report *Report) {
	for i := range report.Results {
		res := &report.Results[i]
		res.CandidateCulprit = res.Measured &&
			report.BaselineErrors > 0 &&
			res.ErrorsWhileDisabled == 0
	}
}
