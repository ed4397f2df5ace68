package gputrace

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// StateSnapshot is the shadow state of the context at the moment of a
// call: the bound framebuffer, the active draw-buffer list, and the active
// program. It is a value copy; later context activity never mutates it.
type StateSnapshot struct {
	// Framebuffer is the bound framebuffer, DefaultFramebuffer for the
	// default surface.
	Framebuffer FramebufferID

	// FramebufferLabel is the registered label for Framebuffer, or ""
	// when none was registered.
	FramebufferLabel string

	// DrawBuffers is the active draw-buffer list, in slot order.
	DrawBuffers []DrawBuffer

	// Program is the active program, zero when none is bound.
	Program ProgramID
}

// String renders the snapshot in a compact single-line form.
func (s StateSnapshot) String() string {
	fb := s.FramebufferLabel
	if fb == "" {
		if s.Framebuffer == DefaultFramebuffer {
			fb = "default"
		} else {
			fb = fmt.Sprintf("fb:%d", s.Framebuffer)
		}
	}
	bufs := make([]string, len(s.DrawBuffers))
	for i, b := range s.DrawBuffers {
		bufs[i] = b.String()
	}
	return fmt.Sprintf("%s [%s] prog:%d", fb, strings.Join(bufs, ","), s.Program)
}

// CallRecord is one intercepted operation.
//
// (Frame, Call) pairs are unique and strictly increasing in insertion
// order: the trace is a total order matching real execution order.
type CallRecord struct {
	// Frame is the frame index, assigned at each frame boundary and
	// monotonically non-decreasing across the trace.
	Frame uint64

	// Call is the in-frame call counter, reset to zero at each frame
	// boundary and incremented per intercepted call.
	Call uint64

	// Op identifies the intercepted operation.
	Op Op

	// Args are the call arguments, in call order.
	Args []Arg

	// State is the shadow state as of this call.
	State StateSnapshot

	// Err is the error flag sampled after the call. Meaningful only when
	// ErrSampled is true; draw operations are sampled, others are not.
	Err ErrorCode

	// ErrSampled reports whether the error flag was queried for this
	// call. False means "no query performed", not "no error".
	ErrSampled bool

	// Time is the time of the call, relative to trace start.
	Time time.Duration
}

// HasError reports whether the record captured a sampled, non-NONE error.
func (r CallRecord) HasError() bool {
	return r.ErrSampled && r.Err != ErrorNone
}

// String renders the record in a compact single-line form.
func (r CallRecord) String() string {
	args := make([]string, len(r.Args))
	for i, a := range r.Args {
		args[i] = a.String()
	}
	s := fmt.Sprintf("[%d:%d] %s(%s) @ %s", r.Frame, r.Call, r.Op, strings.Join(args, ", "), r.State)
	if r.ErrSampled {
		s += " -> " + r.Err.String()
	}
	return s
}

// Filter selects records from a trace. The zero value matches everything.
type Filter struct {
	// FrameMin and FrameMax bound the frame range: FrameMin is
	// inclusive, FrameMax exclusive. FrameMax of zero leaves the range
	// open above, so the zero value matches everything; FrameMax of 1
	// selects frame zero alone.
	FrameMin uint64
	FrameMax uint64

	// Ops, when non-empty, restricts matches to the listed operations.
	Ops []Op

	// ErrorsOnly restricts matches to records with a sampled, non-NONE
	// error flag.
	ErrorsOnly bool
}

// match reports whether the record passes the filter.
func (f Filter) match(r CallRecord) bool {
	if r.Frame < f.FrameMin {
		return false
	}
	if f.FrameMax != 0 && r.Frame >= f.FrameMax {
		return false
	}
	if len(f.Ops) > 0 && !slices.Contains(f.Ops, r.Op) {
		return false
	}
	if f.ErrorsOnly && !r.HasError() {
		return false
	}
	return true
}
