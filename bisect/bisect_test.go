package bisect

import (
	"context"
	"errors"
	"testing"
	"time"
)

// simPipeline is a synthetic pipeline whose error behavior is a function
// of the enabled set. The wait function passed to the bisector pumps
// simulated frames: each frame increments the counter when faultFn says
// the current enabled set produces an error.
type simPipeline struct {
	ids       []string
	enabled   map[string]bool
	noToggle  map[string]bool
	toggleLog []string
}

func newSimPipeline(ids ...string) *simPipeline {
	p := &simPipeline{ids: ids, enabled: make(map[string]bool), noToggle: make(map[string]bool)}
	for _, id := range ids {
		p.enabled[id] = true
	}
	return p
}

func (p *simPipeline) ListPasses() []string { return p.ids }

func (p *simPipeline) DisablePass(id string) bool {
	if p.noToggle[id] {
		return false
	}
	p.enabled[id] = false
	p.toggleLog = append(p.toggleLog, "-"+id)
	return true
}

func (p *simPipeline) EnablePass(id string) {
	p.enabled[id] = true
	p.toggleLog = append(p.toggleLog, "+"+id)
}

func (p *simPipeline) allEnabled() bool {
	for _, id := range p.ids {
		if !p.enabled[id] {
			return false
		}
	}
	return true
}

// simCounter is a plain resettable counter.
type simCounter struct{ n int }

func (c *simCounter) Reset()     { c.n = 0 }
func (c *simCounter) Count() int { return c.n }

const framesPerWindow = 5

// pumpWait builds a WaitFunc that simulates framesPerWindow frames per
// window, raising one error per frame whenever faultFn reports the
// current enabled set as faulty.
func pumpWait(p *simPipeline, c *simCounter, faultFn func(enabled map[string]bool) bool) WaitFunc {
	return func(ctx context.Context, d time.Duration) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i := 0; i < framesPerWindow; i++ {
			if faultFn(p.enabled) {
				c.n++
			}
		}
		return nil
	}
}

func TestNewValidation(t *testing.T) {
	p := newSimPipeline("a")
	c := &simCounter{}

	if _, err := New(nil, c); err != ErrNilPipeline {
		t.Errorf("New(nil, c) error = %v, want ErrNilPipeline", err)
	}
	if _, err := New(p, nil); err != ErrNilCounter {
		t.Errorf("New(p, nil) error = %v, want ErrNilCounter", err)
	}
	if _, err := New(p, c); err != nil {
		t.Errorf("New failed: %v", err)
	}
}

func TestSingleCulprit(t *testing.T) {
	p := newSimPipeline("a", "b", "c")
	c := &simCounter{}
	b, err := New(p, c, WithWaitFunc(pumpWait(p, c, func(enabled map[string]bool) bool {
		return enabled["b"]
	})))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	report, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.BaselineErrors != framesPerWindow {
		t.Errorf("BaselineErrors = %d, want %d", report.BaselineErrors, framesPerWindow)
	}
	if len(report.Results) != 3 {
		t.Fatalf("got %d results, want 3", len(report.Results))
	}

	for _, res := range report.Results {
		switch res.PassID {
		case "b":
			if res.ErrorsWhileDisabled != 0 {
				t.Errorf("pass b errors while disabled = %d, want 0", res.ErrorsWhileDisabled)
			}
			if !res.CandidateCulprit {
				t.Error("pass b not classified as culprit")
			}
		default:
			if res.ErrorsWhileDisabled != report.BaselineErrors {
				t.Errorf("pass %s errors while disabled = %d, want baseline %d",
					res.PassID, res.ErrorsWhileDisabled, report.BaselineErrors)
			}
			if res.CandidateCulprit {
				t.Errorf("pass %s wrongly classified as culprit", res.PassID)
			}
		}
	}

	if got := report.Culprits(); len(got) != 1 || got[0] != "b" {
		t.Errorf("Culprits() = %v, want [b]", got)
	}
	if report.NoSingleCulprit() {
		t.Error("NoSingleCulprit() = true with a unique culprit")
	}
	if !p.allEnabled() {
		t.Error("pipeline not restored to fully enabled")
	}
}

func TestJointFaultReportsNoSingleCulprit(t *testing.T) {
	// Two passes cause the error only in combination: disabling either
	// alone stops it, so both look necessary and neither is the culprit.
	p := newSimPipeline("a", "b", "c")
	c := &simCounter{}
	b, _ := New(p, c, WithWaitFunc(pumpWait(p, c, func(enabled map[string]bool) bool {
		return enabled["a"] && enabled["b"]
	})))

	report, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.BaselineErrors == 0 {
		t.Fatal("baseline errors = 0, want > 0")
	}
	if got := report.Culprits(); len(got) != 2 {
		t.Fatalf("Culprits() = %v, want two candidates", got)
	}
	if !report.NoSingleCulprit() {
		t.Error("NoSingleCulprit() = false for an interaction fault")
	}
}

func TestOutOfPipelineCauseReportsNoSingleCulprit(t *testing.T) {
	// Errors independent of any pass: disabling each pass changes nothing.
	p := newSimPipeline("a", "b")
	c := &simCounter{}
	b, _ := New(p, c, WithWaitFunc(pumpWait(p, c, func(map[string]bool) bool {
		return true
	})))

	report, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if got := report.Culprits(); len(got) != 0 {
		t.Errorf("Culprits() = %v, want none", got)
	}
	if !report.NoSingleCulprit() {
		t.Error("NoSingleCulprit() = false for an out-of-pipeline cause")
	}
}

func TestCleanBaseline(t *testing.T) {
	p := newSimPipeline("a", "b")
	c := &simCounter{}
	b, _ := New(p, c, WithWaitFunc(pumpWait(p, c, func(map[string]bool) bool {
		return false
	})))

	report, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.BaselineErrors != 0 {
		t.Errorf("BaselineErrors = %d, want 0", report.BaselineErrors)
	}
	if got := report.Culprits(); len(got) != 0 {
		t.Errorf("Culprits() = %v, want none: nothing to localize", got)
	}
	if report.NoSingleCulprit() {
		t.Error("NoSingleCulprit() = true with a clean baseline")
	}
}

func TestNonToggleablePassSkipped(t *testing.T) {
	p := newSimPipeline("a", "b", "c")
	p.noToggle["b"] = true
	c := &simCounter{}
	b, _ := New(p, c, WithWaitFunc(pumpWait(p, c, func(enabled map[string]bool) bool {
		return enabled["b"]
	})))

	report, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(report.Results) != 3 {
		t.Fatalf("got %d results, want 3: skipped pass must be reported", len(report.Results))
	}
	res := report.Results[1]
	if res.PassID != "b" || !res.Skipped {
		t.Errorf("pass b result = %+v, want Skipped", res)
	}
	if res.CandidateCulprit {
		t.Error("skipped pass classified as culprit")
	}
	if res.Measured {
		t.Error("skipped pass marked measured")
	}
}

func TestRestoreOnEveryAbortPoint(t *testing.T) {
	// Waits happen at: baseline, then per pass observe + settle. Fail the
	// k-th wait for every k and verify the enabled set is always restored.
	const passes = 3
	maxWaits := 1 + 2*passes

	abortErr := errors.New("abort")
	for k := 1; k <= maxWaits; k++ {
		p := newSimPipeline("a", "b", "c")
		c := &simCounter{}

		waits := 0
		b, _ := New(p, c, WithWaitFunc(func(ctx context.Context, d time.Duration) error {
			waits++
			if waits == k {
				return abortErr
			}
			return nil
		}))

		report, err := b.Run(context.Background())
		if err != abortErr {
			t.Fatalf("k=%d: Run error = %v, want abort", k, err)
		}
		if report == nil {
			t.Fatalf("k=%d: no partial report", k)
		}
		if !p.allEnabled() {
			t.Errorf("k=%d: pipeline not restored after abort: %v", k, p.enabled)
		}
	}
}

func TestAbortedPassNotClassified(t *testing.T) {
	// Abort during the first pass's observation window: its count never
	// completed, so it must not be classified as a culprit.
	p := newSimPipeline("a", "b")
	c := &simCounter{}

	waits := 0
	b, _ := New(p, c, WithWaitFunc(func(ctx context.Context, d time.Duration) error {
		waits++
		if waits == 1 {
			c.n = 4 // baseline errors
			return nil
		}
		return context.Canceled
	}))

	report, err := b.Run(context.Background())
	if err != context.Canceled {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if report.BaselineErrors != 4 {
		t.Errorf("BaselineErrors = %d, want 4", report.BaselineErrors)
	}
	if len(report.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(report.Results))
	}
	if report.Results[0].Measured {
		t.Error("aborted pass marked measured")
	}
	if report.Results[0].CandidateCulprit {
		t.Error("aborted pass classified as culprit")
	}
}

func TestCanceledContext(t *testing.T) {
	p := newSimPipeline("a", "b")
	c := &simCounter{}
	b, _ := New(p, c,
		WithObservationWindow(10*time.Millisecond),
		WithSettleWindow(time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
	if !p.allEnabled() {
		t.Error("pipeline not restored after cancellation")
	}
}

func TestDisableEnablePairing(t *testing.T) {
	p := newSimPipeline("a", "b")
	c := &simCounter{}
	b, _ := New(p, c, WithWaitFunc(func(context.Context, time.Duration) error { return nil }))

	if _, err := b.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := []string{"-a", "+a", "-b", "+b"}
	if len(p.toggleLog) != len(want) {
		t.Fatalf("toggle log = %v, want %v", p.toggleLog, want)
	}
	for i, w := range want {
		if p.toggleLog[i] != w {
			t.Errorf("toggle %d = %q, want %q", i, p.toggleLog[i], w)
		}
	}
}
