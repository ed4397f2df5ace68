package gputrace

import "strconv"

// Op identifies an intercepted context operation.
// Each value corresponds to one method of the Context interface, plus the
// externally observed operations recorded through RecordExternal.
type Op uint8

const (
	// State-mutating operations
	OpBindFramebuffer Op = iota // Bind a framebuffer as the draw target
	OpDrawBuffers               // Select the active draw-buffer list
	OpUseProgram                // Select the active program
	OpViewport                  // Set the viewport rectangle
	OpClear                     // Clear the bound framebuffer

	// Draw operations
	OpDrawArrays   // Rasterize a vertex range
	OpDrawElements // Rasterize an indexed vertex range

	// External operations (device lifecycle, see integration/ctxtrace)
	OpDevicePoll    // Poll the device for completed work
	OpDeviceDestroy // Destroy the device
)

// opNames maps Op values to their string representation.
var opNames = [...]string{
	OpBindFramebuffer: "BIND_FRAMEBUFFER",
	OpDrawBuffers:     "SET_DRAW_BUFFERS",
	OpUseProgram:      "SET_PROGRAM",
	OpViewport:        "SET_VIEWPORT",
	OpClear:           "CLEAR",
	OpDrawArrays:      "DRAW_ARRAYS",
	OpDrawElements:    "DRAW_ELEMENTS",
	OpDevicePoll:      "DEVICE_POLL",
	OpDeviceDestroy:   "DEVICE_DESTROY",
}

// String returns the string representation of an Op.
func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "UNKNOWN"
}

// IsDraw reports whether the operation issues a draw call.
// The error sampler queries the context error flag only after draws.
func (o Op) IsDraw() bool {
	return o == OpDrawArrays || o == OpDrawElements
}

// Arg is one argument of an intercepted call. Value always holds the raw
// numeric value; Label, when non-empty, holds the symbolic name of an
// enumerated constant (e.g. "TRIANGLES"). A failed symbolic-name lookup
// leaves Label empty so the record degrades to the raw value rather than
// losing the call.
type Arg struct {
	Label string
	Value int64
}

// String returns the symbolic label if present, otherwise the raw value.
func (a Arg) String() string {
	if a.Label != "" {
		return a.Label
	}
	return strconv.FormatInt(a.Value, 10)
}

// Num builds a plain numeric argument.
func Num[T ~int | ~int64 | ~uint64 | ~uint32 | ~int32](v T) Arg {
	return Arg{Value: int64(v)}
}

// Bool builds a boolean argument with TRUE/FALSE labels.
func Bool(v bool) Arg {
	if v {
		return Arg{Label: "TRUE", Value: 1}
	}
	return Arg{Label: "FALSE", Value: 0}
}
