// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package ctxtrace records gpucontext device activity into a gputrace
// trace.
//
// Wrap decorates a gpucontext.DeviceProvider so that device lifecycle
// calls (Poll, Destroy) appear in the same trace as the intercepted draw
// calls, stamped with the same frame and call numbering. Everything else
// (queue, adapter, surface format) forwards untouched.
//
//	traced, err := ctxtrace.Wrap(provider, tracer)
//	if err != nil {
//	    return err
//	}
//	// Hand traced to the code that previously held provider.
package ctxtrace
