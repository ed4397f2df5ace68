// Package bisect localizes an observed graphics error to a rendering pass.
//
// A Bisector drives a pipeline's pass-toggle interface: it measures a
// baseline error count with every pass enabled, then disables one pass at
// a time, counts errors over a fixed observation window, and re-enables
// the pass before moving on. A pass whose absence makes the errors stop is
// a candidate culprit.
//
// The classification is a necessary-but-not-sufficient heuristic, not a
// proof: errors caused by pass interactions or by causes outside the
// pipeline leave no single-pass culprit, and the Report says so
// explicitly rather than returning an empty list.
//
//	counter, _ := gputrace.NewSinkCounter(tracer.Sink())
//	b, err := bisect.New(pipeline, counter,
//	    bisect.WithObservationWindow(500*time.Millisecond))
//	if err != nil {
//	    return err
//	}
//	report, err := b.Run(ctx)
//
// Passes are always restored to their enabled state, including when the
// context is canceled mid-observation: each disable step is paired with a
// deferred re-enable.
package bisect
