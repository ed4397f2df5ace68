package gputrace

import "time"

// FrameFunc is a per-frame callback, invoked by the host scheduler with
// the time elapsed since scheduling started.
type FrameFunc func(elapsed time.Duration)

// Scheduler is the host's frame-scheduling primitive: a
// requestAnimationFrame-style hook that invokes a callback once per
// display refresh. RequestFrame returns a handle accepted by CancelFrame.
type Scheduler interface {
	RequestFrame(fn FrameFunc) uint64
	CancelFrame(handle uint64)
}

// FrameSequencer wraps a Scheduler so that every scheduled callback is
// preceded by a frame boundary on the tracer: records within one callback
// invocation share a frame index and carry strictly increasing call
// indices.
//
// The sequencer composes transparently: callback arguments are forwarded
// unchanged, handles come from the underlying scheduler, and cancellation
// behavior is untouched. It observes the frame cadence; it never alters it.
type FrameSequencer struct {
	tracer *Tracer
	inner  Scheduler
}

// NewFrameSequencer wraps a scheduler for the given tracer.
func NewFrameSequencer(t *Tracer, inner Scheduler) (*FrameSequencer, error) {
	if t == nil {
		return nil, ErrNilTracer
	}
	if inner == nil {
		return nil, ErrNilScheduler
	}
	return &FrameSequencer{tracer: t, inner: inner}, nil
}

// RequestFrame implements Scheduler. The frame boundary is marked before
// the frame's work executes, so every record the callback produces lands
// in the new frame.
func (s *FrameSequencer) RequestFrame(fn FrameFunc) uint64 {
	return s.inner.RequestFrame(func(elapsed time.Duration) {
		s.tracer.BeginFrame()
		fn(elapsed)
	})
}

// CancelFrame implements Scheduler.
func (s *FrameSequencer) CancelFrame(handle uint64) {
	s.inner.CancelFrame(handle)
}
