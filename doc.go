// Package gputrace provides a diagnostic instrumentation layer for
// multi-pass GPU rendering pipelines.
//
// # Overview
//
// gputrace wraps a low-level graphics context behind the Context interface
// and observes it without altering its behavior. Every state-mutating or
// draw-issuing call is intercepted, the pipeline's effective state at the
// moment of the call is reconstructed from a best-effort shadow, the
// context error flag is sampled immediately after each draw, and the
// resulting records are appended to an ordered, queryable trace.
//
// Together with the bisect subpackage, this localizes an observed graphics
// error to a call site, a pipeline pass, and a state snapshot. It does not
// attempt to fix errors, capture frames, or replay them.
//
// # Quick Start
//
//	import "github.com/gogpu/gputrace"
//
//	// Wrap the context the application renders through.
//	tracer, err := gputrace.Trace(glctx)
//	if err != nil {
//	    return err
//	}
//
//	// Render through the tracer exactly as before.
//	tracer.BindFramebuffer(sceneFBO)
//	tracer.DrawElements(gputrace.Triangles, n, gputrace.UnsignedShort, 0)
//
//	// Inspect what went wrong.
//	for _, rec := range tracer.Sink().Records(gputrace.Filter{ErrorsOnly: true}) {
//	    fmt.Println(rec)
//	}
//
// # Transparency Contract
//
// The tracer forwards every call to the underlying context unchanged and
// never lets an instrumentation failure propagate to the caller: a full
// sink or a failed symbolic-name lookup degrades to dropped records or raw
// values, logged through the package logger. The only behavior the tracer
// adds on top of the wrapped context is the availability of trace data.
//
// The error flag sampled after a draw is latched and handed back to the
// application on its next GetError call, so code that polls the flag
// itself observes the same values it would have seen uninstrumented.
//
// # Frames
//
// Records carry a (frame, call) pair that is strictly increasing in
// insertion order. Frame boundaries come either from BeginFrame or from a
// FrameSequencer wrapped around the host's frame scheduler.
//
// # Concurrency
//
// The instrumentation layer is single-threaded cooperative: it runs on the
// same execution context as the draw calls it observes and takes no locks
// on the interception path. SetLogger is the one exception and is safe to
// call from any goroutine.
package gputrace

// Version is the current version of the library.
const Version = "0.2.0"
