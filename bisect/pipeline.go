package bisect

// Pipeline is the pass-registry surface of the host rendering pipeline.
// The bisector references passes through it and never holds pass state of
// its own beyond one bisection cycle.
//
// # Implementation Contract
//
// Each implementation must:
//  1. Return passes from ListPasses in pipeline execution order
//  2. Return false from DisablePass for a pass with no toggle, without
//     changing any state
//  3. Make EnablePass idempotent: enabling an enabled pass is a no-op
type Pipeline interface {
	// ListPasses returns the pass identifiers in pipeline order.
	ListPasses() []string

	// DisablePass disables the pass, returning false if the pass does
	// not support toggling.
	DisablePass(id string) bool

	// EnablePass re-enables the pass.
	EnablePass(id string)
}

// ErrorCounter counts observed graphics errors over a window. Reset
// starts a new window; Count reports errors seen since the last Reset.
// gputrace.SinkCounter adapts a trace sink to this interface; hosts with
// an external error counter can implement it directly.
type ErrorCounter interface {
	Reset()
	Count() int
}
