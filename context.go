package gputrace

// Context is the surface of the graphics context this layer observes. It
// covers exactly the state-mutating and draw-issuing operations needed to
// attribute invalid-operation errors, plus the error flag query.
//
// The Tracer implements Context by decorating another implementation, so
// application code renders through the same interface whether or not
// instrumentation is installed. Implementations are expected to follow
// GL-style error semantics: the error flag is sticky and clears on read.
//
// # Implementation Contract
//
// Each implementation must:
//  1. Treat FramebufferID zero as the default display surface
//  2. Keep GetError synchronous and clear-on-read
//  3. Not retain the slice passed to DrawBuffers
type Context interface {
	// BindFramebuffer binds fb as the target of subsequent draws.
	BindFramebuffer(fb FramebufferID)

	// DrawBuffers selects the active draw-buffer list for the bound
	// framebuffer.
	DrawBuffers(bufs []DrawBuffer)

	// UseProgram makes p the active program. Zero unbinds.
	UseProgram(p ProgramID)

	// Viewport sets the viewport rectangle.
	Viewport(x, y, width, height int)

	// Clear clears the buffers selected by mask on the bound framebuffer.
	Clear(mask ClearMask)

	// DrawArrays rasterizes count vertices starting at first.
	DrawArrays(mode PrimitiveMode, first, count int)

	// DrawElements rasterizes count indexed vertices, reading indices of
	// the given element type starting at byte offset.
	DrawElements(mode PrimitiveMode, count int, typ ElementType, offset int)

	// GetError returns the pending error flag and clears it.
	GetError() ErrorCode
}
