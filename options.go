package gputrace

import "time"

// Option configures a Tracer during creation.
// Use functional options to customize Tracer behavior.
//
// Example:
//
//	// Full trace into a private, unbounded sink
//	tracer, err := gputrace.Trace(glctx)
//
//	// Error-only trace into a bounded sink
//	sink := gputrace.NewSink(4096)
//	tracer, err := gputrace.Trace(glctx,
//	    gputrace.WithSink(sink),
//	    gputrace.WithErrorOnly(true))
type Option func(*tracerOptions)

// tracerOptions holds optional configuration for Tracer creation.
type tracerOptions struct {
	sink      *Sink
	errorOnly bool
	now       func() time.Time
}

// defaultTracerOptions returns the default tracer options.
func defaultTracerOptions() tracerOptions {
	return tracerOptions{
		sink:      nil, // Will be set to an unbounded Sink if nil
		errorOnly: false,
		now:       time.Now,
	}
}

// WithSink directs records into an externally owned sink.
// Use this to share one sink between several tracers or to bound its
// capacity via NewSink.
func WithSink(s *Sink) Option {
	return func(o *tracerOptions) {
		o.sink = s
	}
}

// WithErrorOnly selects error-only verbosity: only records whose sampled
// error flag is non-NONE are appended. Frame and call numbering still
// advance for suppressed records, so indices in an error-only trace line
// up with a full trace of the same run.
func WithErrorOnly(on bool) Option {
	return func(o *tracerOptions) {
		o.errorOnly = on
	}
}

// WithNow sets the clock used for record timestamps.
// Intended for tests that need deterministic timestamps.
func WithNow(now func() time.Time) Option {
	return func(o *tracerOptions) {
		if now != nil {
			o.now = now
		}
	}
}
