package gputrace

import (
	"strconv"

	"github.com/gogpu/gputypes"
)

// Resource IDs
//
// These opaque IDs identify resources of the wrapped context. The tracer
// never dereferences them; it only copies them into snapshots. IDs are
// uint64 to accommodate various backend handle sizes.

// FramebufferID is an opaque handle to a framebuffer.
// DefaultFramebuffer identifies the default display surface.
type FramebufferID uint64

// DefaultFramebuffer is the zero value, identifying the default surface.
const DefaultFramebuffer FramebufferID = 0

// ProgramID is an opaque handle to a program. Zero means no program bound.
type ProgramID uint64

// DrawBuffer names one output slot of the active draw-buffer list.
type DrawBuffer uint8

// Draw-buffer slots.
const (
	// DrawBufferNone disables the corresponding output slot.
	DrawBufferNone DrawBuffer = iota

	// DrawBufferBack is the back buffer of the default surface.
	DrawBufferBack

	// DrawBufferColor0 through DrawBufferColor7 are framebuffer
	// color attachments. They are consecutive values.
	DrawBufferColor0
	DrawBufferColor1
	DrawBufferColor2
	DrawBufferColor3
	DrawBufferColor4
	DrawBufferColor5
	DrawBufferColor6
	DrawBufferColor7
)

// label returns the symbolic name, or "" if the value is out of range.
func (d DrawBuffer) label() string {
	switch {
	case d == DrawBufferNone:
		return "NONE"
	case d == DrawBufferBack:
		return "BACK"
	case d >= DrawBufferColor0 && d <= DrawBufferColor7:
		return "COLOR_ATTACHMENT" + strconv.Itoa(int(d-DrawBufferColor0))
	}
	return ""
}

// String returns the string representation of a DrawBuffer.
func (d DrawBuffer) String() string {
	if s := d.label(); s != "" {
		return s
	}
	return "DRAW_BUFFER(" + strconv.Itoa(int(d)) + ")"
}

// PrimitiveMode selects how vertices are assembled during a draw.
type PrimitiveMode uint8

// Primitive modes.
const (
	Points PrimitiveMode = iota
	Lines
	LineStrip
	Triangles
	TriangleStrip
	TriangleFan
)

var primitiveModeNames = [...]string{
	Points:        "POINTS",
	Lines:         "LINES",
	LineStrip:     "LINE_STRIP",
	Triangles:     "TRIANGLES",
	TriangleStrip: "TRIANGLE_STRIP",
	TriangleFan:   "TRIANGLE_FAN",
}

func (m PrimitiveMode) label() string {
	if int(m) < len(primitiveModeNames) {
		return primitiveModeNames[m]
	}
	return ""
}

// String returns the string representation of a PrimitiveMode.
func (m PrimitiveMode) String() string {
	if s := m.label(); s != "" {
		return s
	}
	return "PRIMITIVE_MODE(" + strconv.Itoa(int(m)) + ")"
}

// ElementType is the index element type of an indexed draw.
type ElementType uint8

// Element types.
const (
	UnsignedByte ElementType = iota
	UnsignedShort
	UnsignedInt
)

var elementTypeNames = [...]string{
	UnsignedByte:  "UNSIGNED_BYTE",
	UnsignedShort: "UNSIGNED_SHORT",
	UnsignedInt:   "UNSIGNED_INT",
}

func (t ElementType) label() string {
	if int(t) < len(elementTypeNames) {
		return elementTypeNames[t]
	}
	return ""
}

// String returns the string representation of an ElementType.
func (t ElementType) String() string {
	if s := t.label(); s != "" {
		return s
	}
	return "ELEMENT_TYPE(" + strconv.Itoa(int(t)) + ")"
}

// ClearMask is a bitmask selecting which buffers a Clear call affects.
type ClearMask uint8

// Clear mask bits.
const (
	ColorBufferBit ClearMask = 1 << iota
	DepthBufferBit
	StencilBufferBit
)

func (m ClearMask) label() string {
	var s string
	if m&ColorBufferBit != 0 {
		s = "COLOR_BUFFER_BIT"
	}
	if m&DepthBufferBit != 0 {
		if s != "" {
			s += "|"
		}
		s += "DEPTH_BUFFER_BIT"
	}
	if m&StencilBufferBit != 0 {
		if s != "" {
			s += "|"
		}
		s += "STENCIL_BUFFER_BIT"
	}
	return s
}

// String returns the string representation of a ClearMask.
func (m ClearMask) String() string {
	if s := m.label(); s != "" {
		return s
	}
	return "CLEAR_MASK(" + strconv.Itoa(int(m)) + ")"
}

// AttachmentInfo describes one registered color attachment of a
// framebuffer: a human-readable name and its texture format.
type AttachmentInfo struct {
	Name   string
	Format gputypes.TextureFormat
}

// FramebufferInfo is optional host-supplied metadata for a framebuffer ID,
// registered via Tracer.RegisterFramebuffer. It makes snapshots and dumps
// readable: records reference framebuffers by label instead of raw handle.
type FramebufferInfo struct {
	Label       string
	Attachments []AttachmentInfo
}
