package gputrace

// shadowState is the tracer's best-effort projection of context state:
// just enough to explain an invalid-operation error. It is owned by the
// Tracer and mutated exclusively on the interception path, before the
// corresponding record is built, so every snapshot reflects state as of
// that call.
type shadowState struct {
	framebuffer FramebufferID
	drawBuffers []DrawBuffer
	program     ProgramID

	// Draw-buffer state is per-framebuffer in GL-style contexts; the
	// shadow replicates that table so a rebind restores the list the
	// framebuffer was last configured with.
	bufsByFB map[FramebufferID][]DrawBuffer

	// Host-supplied metadata keyed by framebuffer ID.
	infos map[FramebufferID]FramebufferInfo
}

func newShadowState() *shadowState {
	return &shadowState{
		// The default surface starts with BACK as its single draw buffer.
		drawBuffers: []DrawBuffer{DrawBufferBack},
		bufsByFB:    make(map[FramebufferID][]DrawBuffer),
		infos:       make(map[FramebufferID]FramebufferInfo),
	}
}

// bindFramebuffer tracks a framebuffer bind, saving the outgoing
// framebuffer's draw-buffer list and restoring the incoming one. A
// framebuffer never bound before starts at its default list. The stored
// slices are never mutated in place, so saving without copying is safe.
func (s *shadowState) bindFramebuffer(fb FramebufferID) {
	s.bufsByFB[s.framebuffer] = s.drawBuffers
	s.framebuffer = fb
	if bufs, ok := s.bufsByFB[fb]; ok {
		s.drawBuffers = bufs
		return
	}
	if fb == DefaultFramebuffer {
		s.drawBuffers = []DrawBuffer{DrawBufferBack}
	} else {
		s.drawBuffers = []DrawBuffer{DrawBufferColor0}
	}
}

// setDrawBuffers tracks a draw-buffer list change. The slice is copied:
// the caller may reuse its argument.
func (s *shadowState) setDrawBuffers(bufs []DrawBuffer) {
	s.drawBuffers = make([]DrawBuffer, len(bufs))
	copy(s.drawBuffers, bufs)
}

func (s *shadowState) useProgram(p ProgramID) {
	s.program = p
}

func (s *shadowState) register(fb FramebufferID, info FramebufferInfo) {
	s.infos[fb] = info
}

// snapshot returns a value copy of the current shadow state. The
// draw-buffer list is cloned so later mutations never reach the record.
func (s *shadowState) snapshot() StateSnapshot {
	bufs := make([]DrawBuffer, len(s.drawBuffers))
	copy(bufs, s.drawBuffers)

	snap := StateSnapshot{
		Framebuffer: s.framebuffer,
		DrawBuffers: bufs,
		Program:     s.program,
	}
	if info, ok := s.infos[s.framebuffer]; ok {
		snap.FramebufferLabel = info.Label
	}
	return snap
}
