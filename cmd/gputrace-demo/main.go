// Command gputrace-demo traces and bisects a synthetic three-pass
// pipeline. One pass draws with a deliberately broken program; the demo
// prints the error-only trace and the bisection report that pins it down.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/gogpu/gputrace"
	"github.com/gogpu/gputrace/bisect"
)

func main() {
	var (
		frames = flag.Int("frames", 10, "frames to render before bisecting")
		faulty = flag.String("faulty", "bloom", "pass that draws with a broken program")
		window = flag.Int("window", 5, "frames per bisection observation window")
	)
	flag.Parse()

	fake := &fakeContext{}
	tracer, err := gputrace.Trace(fake)
	if err != nil {
		log.Fatalf("Failed to install tracer: %v", err)
	}
	tracer.RegisterFramebuffer(sceneFBO, gputrace.FramebufferInfo{Label: "scene"})
	tracer.RegisterFramebuffer(bloomFBO, gputrace.FramebufferInfo{Label: "bloom"})

	pipe := newPipeline(tracer)
	for _, p := range pipe.passes {
		if p.id == *faulty {
			fake.failProgram = p.program
		}
	}

	sched := &stepScheduler{}
	seq, err := gputrace.NewFrameSequencer(tracer, sched)
	if err != nil {
		log.Fatalf("Failed to wrap scheduler: %v", err)
	}

	// Render loop: each frame re-requests the next, rAF style.
	var tick func(time.Duration)
	tick = func(time.Duration) {
		pipe.renderFrame()
		seq.RequestFrame(tick)
	}
	seq.RequestFrame(tick)
	sched.run(*frames)

	stats := tracer.Stats()
	log.Printf("Traced %d frames, %d calls, %d errors", stats.Frames, stats.Calls, stats.Errors)
	for _, rec := range tracer.Sink().Records(gputrace.Filter{ErrorsOnly: true}) {
		log.Printf("  %s", rec)
	}

	// Bisect: observation windows render frames instead of sleeping,
	// since everything here shares one goroutine.
	counter, err := gputrace.NewSinkCounter(tracer.Sink())
	if err != nil {
		log.Fatalf("Failed to build counter: %v", err)
	}
	b, err := bisect.New(pipe, counter,
		bisect.WithWaitFunc(func(ctx context.Context, d time.Duration) error {
			for i := 0; i < *window; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				sched.run(1)
			}
			return nil
		}))
	if err != nil {
		log.Fatalf("Failed to build bisector: %v", err)
	}

	report, err := b.Run(context.Background())
	if err != nil {
		log.Fatalf("Bisection failed: %v", err)
	}

	log.Printf("Baseline errors: %d", report.BaselineErrors)
	for _, res := range report.Results {
		switch {
		case res.Skipped:
			log.Printf("  pass %-10s skipped (no toggle)", res.PassID)
		case res.CandidateCulprit:
			log.Printf("  pass %-10s CULPRIT (errors while disabled: %d)", res.PassID, res.ErrorsWhileDisabled)
		default:
			log.Printf("  pass %-10s ok      (errors while disabled: %d)", res.PassID, res.ErrorsWhileDisabled)
		}
	}
	if report.NoSingleCulprit() {
		log.Printf("No single-pass culprit: interaction effect or out-of-pipeline cause")
	}
}

// Framebuffer handles used by the demo pipeline.
const (
	sceneFBO gputrace.FramebufferID = 1
	bloomFBO gputrace.FramebufferID = 2
)

// fakeContext is a synthetic Context: drawing with failProgram bound
// raises INVALID_OPERATION, everything else succeeds.
type fakeContext struct {
	program     gputrace.ProgramID
	failProgram gputrace.ProgramID
	pending     gputrace.ErrorCode
}

func (c *fakeContext) BindFramebuffer(gputrace.FramebufferID) {}
func (c *fakeContext) DrawBuffers([]gputrace.DrawBuffer)      {}
func (c *fakeContext) UseProgram(p gputrace.ProgramID)        { c.program = p }
func (c *fakeContext) Viewport(x, y, w, h int)                {}
func (c *fakeContext) Clear(gputrace.ClearMask)               {}

func (c *fakeContext) DrawArrays(gputrace.PrimitiveMode, int, int) {
	c.draw()
}

func (c *fakeContext) DrawElements(gputrace.PrimitiveMode, int, gputrace.ElementType, int) {
	c.draw()
}

func (c *fakeContext) draw() {
	if c.failProgram != 0 && c.program == c.failProgram {
		c.pending = gputrace.ErrorInvalidOperation
	}
}

func (c *fakeContext) GetError() gputrace.ErrorCode {
	code := c.pending
	c.pending = gputrace.ErrorNone
	return code
}

// pass is one stage of the demo pipeline.
type pass struct {
	id      string
	fbo     gputrace.FramebufferID
	bufs    []gputrace.DrawBuffer
	program gputrace.ProgramID
	enabled bool
	toggle  bool
}

// pipeline renders scene -> bloom -> composite each frame. It implements
// bisect.Pipeline; the composite pass has no toggle.
type pipeline struct {
	ctx    gputrace.Context
	passes []*pass
}

func newPipeline(ctx gputrace.Context) *pipeline {
	return &pipeline{
		ctx: ctx,
		passes: []*pass{
			{id: "scene", fbo: sceneFBO, bufs: []gputrace.DrawBuffer{gputrace.DrawBufferColor0, gputrace.DrawBufferColor1}, program: 11, enabled: true, toggle: true},
			{id: "bloom", fbo: bloomFBO, bufs: []gputrace.DrawBuffer{gputrace.DrawBufferColor0}, program: 12, enabled: true, toggle: true},
			{id: "composite", fbo: gputrace.DefaultFramebuffer, bufs: []gputrace.DrawBuffer{gputrace.DrawBufferBack}, program: 13, enabled: true},
		},
	}
}

func (p *pipeline) renderFrame() {
	for _, ps := range p.passes {
		if !ps.enabled {
			continue
		}
		p.ctx.BindFramebuffer(ps.fbo)
		p.ctx.DrawBuffers(ps.bufs)
		p.ctx.UseProgram(ps.program)
		p.ctx.Clear(gputrace.ColorBufferBit | gputrace.DepthBufferBit)
		p.ctx.DrawElements(gputrace.Triangles, 36, gputrace.UnsignedShort, 0)
	}
}

func (p *pipeline) ListPasses() []string {
	ids := make([]string, len(p.passes))
	for i, ps := range p.passes {
		ids[i] = ps.id
	}
	return ids
}

func (p *pipeline) DisablePass(id string) bool {
	for _, ps := range p.passes {
		if ps.id == id {
			if !ps.toggle {
				return false
			}
			ps.enabled = false
			return true
		}
	}
	return false
}

func (p *pipeline) EnablePass(id string) {
	for _, ps := range p.passes {
		if ps.id == id {
			ps.enabled = true
		}
	}
}

// stepScheduler is a manually pumped frame scheduler: run(n) fires the
// pending callbacks n times, like n display refreshes.
type stepScheduler struct {
	next    uint64
	pending []scheduled
	start   time.Time
}

type scheduled struct {
	handle uint64
	fn     gputrace.FrameFunc
}

func (s *stepScheduler) RequestFrame(fn gputrace.FrameFunc) uint64 {
	s.next++
	s.pending = append(s.pending, scheduled{handle: s.next, fn: fn})
	return s.next
}

func (s *stepScheduler) CancelFrame(handle uint64) {
	for i, sc := range s.pending {
		if sc.handle == handle {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

func (s *stepScheduler) run(frames int) {
	if s.start.IsZero() {
		s.start = time.Now()
	}
	for i := 0; i < frames; i++ {
		batch := s.pending
		s.pending = nil
		for _, sc := range batch {
			sc.fn(time.Since(s.start))
		}
	}
}
