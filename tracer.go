package gputrace

import "time"

// Tracer decorates a Context with call interception. It implements
// Context itself: applications swap it in wherever they held the real
// context and render unchanged.
//
// Per intercepted call the tracer, as one synchronous sequence, updates
// its shadow state, delegates to the real operation, samples the error
// flag (draw calls only, exactly once), and appends exactly one record.
// See the package documentation for the transparency contract.
//
// The Tracer is not safe for concurrent use; it shares the execution
// context of the draw calls it observes.
type Tracer struct {
	inner Context
	state *shadowState
	sink  *Sink

	errorOnly bool
	now       func() time.Time
	start     time.Time

	frame uint64
	call  uint64

	// pending holds an error the sampler consumed from the context flag,
	// to be handed to the application on its next GetError call.
	pending ErrorCode

	framesBegun uint64
	callsSeen   uint64
	errorsSeen  uint64
}

// Stats summarizes a tracer's activity.
type Stats struct {
	// Frames is the number of frame boundaries observed.
	Frames uint64

	// Calls is the number of intercepted calls, including calls whose
	// records were suppressed by error-only verbosity or dropped by a
	// full sink.
	Calls uint64

	// Errors is the number of non-NONE error flags sampled.
	Errors uint64

	// Dropped is the number of records lost to the sink's capacity bound.
	Dropped uint64
}

// Trace installs instrumentation around a context.
//
// Trace returns ErrNilContext for a nil context and ErrAlreadyInstrumented
// when inner is itself a *Tracer: double-wrapping would corrupt call
// numbering and split error attribution between two samplers.
func Trace(inner Context, opts ...Option) (*Tracer, error) {
	if inner == nil {
		return nil, ErrNilContext
	}
	if _, ok := inner.(*Tracer); ok {
		return nil, ErrAlreadyInstrumented
	}

	o := defaultTracerOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.sink == nil {
		o.sink = NewSink(0)
	}

	return &Tracer{
		inner:     inner,
		state:     newShadowState(),
		sink:      o.sink,
		errorOnly: o.errorOnly,
		now:       o.now,
		start:     o.now(),
	}, nil
}

// Sink returns the sink receiving this tracer's records.
func (t *Tracer) Sink() *Sink {
	return t.sink
}

// Stats returns a snapshot of the tracer's activity counters.
func (t *Tracer) Stats() Stats {
	return Stats{
		Frames:  t.framesBegun,
		Calls:   t.callsSeen,
		Errors:  t.errorsSeen,
		Dropped: t.sink.Dropped(),
	}
}

// BeginFrame marks a frame boundary: the frame index advances and the
// in-frame call counter resets. It is called by FrameSequencer at each
// scheduled frame; hosts without a schedulable frame hook may call it
// directly.
func (t *Tracer) BeginFrame() {
	t.frame++
	t.call = 0
	t.framesBegun++
	Logger().Debug("gputrace: frame boundary", "frame", t.frame)
}

// RegisterFramebuffer attaches host-supplied metadata to a framebuffer
// ID so snapshots and dumps reference it by label rather than raw handle.
// Registering the same ID again replaces the previous metadata.
func (t *Tracer) RegisterFramebuffer(fb FramebufferID, info FramebufferInfo) {
	t.state.register(fb, info)
}

// RecordExternal appends a record for an operation observed outside the
// Context surface, such as device lifecycle calls forwarded by
// integration adapters. The record is stamped and snapshotted like any
// intercepted call; the error flag is not sampled.
func (t *Tracer) RecordExternal(op Op, args ...Arg) {
	t.record(op, args)
}

// record builds and appends one record for a non-draw operation.
func (t *Tracer) record(op Op, args []Arg) {
	rec := CallRecord{
		Frame: t.frame,
		Call:  t.call,
		Op:    op,
		Args:  args,
		State: t.state.snapshot(),
		Time:  t.now().Sub(t.start),
	}
	t.call++
	t.callsSeen++

	if t.errorOnly {
		return
	}
	t.sink.append(rec)
}

// recordDraw builds and appends one record for a draw operation,
// sampling the error flag exactly once after the delegated call returned.
func (t *Tracer) recordDraw(op Op, args []Arg) {
	code := t.inner.GetError()

	rec := CallRecord{
		Frame:      t.frame,
		Call:       t.call,
		Op:         op,
		Args:       args,
		State:      t.state.snapshot(),
		Err:        code,
		ErrSampled: true,
		Time:       t.now().Sub(t.start),
	}
	t.call++
	t.callsSeen++

	if code != ErrorNone {
		t.errorsSeen++
		// Latch for the application's own GetError polling. First wins:
		// a sticky error flag holds its first unread code and discards
		// later ones, so an already-latched code is exactly what the
		// application would have read uninstrumented.
		if t.pending == ErrorNone {
			t.pending = code
		}
	}

	if t.errorOnly && code == ErrorNone {
		return
	}
	t.sink.append(rec)
}

// --------------------------------------------------------------------------
// Context implementation
// --------------------------------------------------------------------------

// BindFramebuffer implements Context.
func (t *Tracer) BindFramebuffer(fb FramebufferID) {
	t.state.bindFramebuffer(fb)
	t.inner.BindFramebuffer(fb)
	t.record(OpBindFramebuffer, []Arg{fbArg(fb, t.state)})
}

// DrawBuffers implements Context.
func (t *Tracer) DrawBuffers(bufs []DrawBuffer) {
	t.state.setDrawBuffers(bufs)
	t.inner.DrawBuffers(bufs)

	args := make([]Arg, len(bufs))
	for i, b := range bufs {
		args[i] = Arg{Label: b.label(), Value: int64(b)}
	}
	t.record(OpDrawBuffers, args)
}

// UseProgram implements Context.
func (t *Tracer) UseProgram(p ProgramID) {
	t.state.useProgram(p)
	t.inner.UseProgram(p)
	t.record(OpUseProgram, []Arg{Num(uint64(p))})
}

// Viewport implements Context.
func (t *Tracer) Viewport(x, y, width, height int) {
	t.inner.Viewport(x, y, width, height)
	t.record(OpViewport, []Arg{Num(x), Num(y), Num(width), Num(height)})
}

// Clear implements Context.
func (t *Tracer) Clear(mask ClearMask) {
	t.inner.Clear(mask)
	t.record(OpClear, []Arg{{Label: mask.label(), Value: int64(mask)}})
}

// DrawArrays implements Context.
func (t *Tracer) DrawArrays(mode PrimitiveMode, first, count int) {
	t.inner.DrawArrays(mode, first, count)
	t.recordDraw(OpDrawArrays, []Arg{
		{Label: mode.label(), Value: int64(mode)},
		Num(first),
		Num(count),
	})
}

// DrawElements implements Context.
func (t *Tracer) DrawElements(mode PrimitiveMode, count int, typ ElementType, offset int) {
	t.inner.DrawElements(mode, count, typ, offset)
	t.recordDraw(OpDrawElements, []Arg{
		{Label: mode.label(), Value: int64(mode)},
		Num(count),
		{Label: typ.label(), Value: int64(typ)},
		Num(offset),
	})
}

// GetError implements Context. An error the sampler consumed from the
// flag is handed back here first, so an application polling the flag
// observes the same values it would have seen uninstrumented.
func (t *Tracer) GetError() ErrorCode {
	if t.pending != ErrorNone {
		code := t.pending
		t.pending = ErrorNone
		return code
	}
	return t.inner.GetError()
}

// fbArg renders a framebuffer handle symbolically: the registered label
// when one exists, "DEFAULT" for the default surface, raw handle
// otherwise.
func fbArg(fb FramebufferID, s *shadowState) Arg {
	if info, ok := s.infos[fb]; ok && info.Label != "" {
		return Arg{Label: info.Label, Value: int64(fb)}
	}
	if fb == DefaultFramebuffer {
		return Arg{Label: "DEFAULT", Value: 0}
	}
	return Num(uint64(fb))
}
