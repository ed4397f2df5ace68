// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ctxtrace

import (
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gputrace"
)

// mockDevice implements gpucontext.Device for testing.
type mockDevice struct {
	polls     []bool
	destroyed bool
}

func (m *mockDevice) Poll(wait bool) { m.polls = append(m.polls, wait) }
func (m *mockDevice) Destroy()       { m.destroyed = true }

// mockQueue implements gpucontext.Queue for testing.
type mockQueue struct{}

// mockAdapter implements gpucontext.Adapter for testing.
type mockAdapter struct{}

// mockProvider implements gpucontext.DeviceProvider for testing.
type mockProvider struct {
	device  *mockDevice
	queue   gpucontext.Queue
	adapter gpucontext.Adapter
	format  gputypes.TextureFormat
}

func newMockProvider() *mockProvider {
	return &mockProvider{
		device:  &mockDevice{},
		queue:   &mockQueue{},
		adapter: &mockAdapter{},
		format:  gputypes.TextureFormatBGRA8Unorm,
	}
}

func (m *mockProvider) Device() gpucontext.Device             { return m.device }
func (m *mockProvider) Queue() gpucontext.Queue               { return m.queue }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return m.adapter }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return m.format }

// nopContext is a minimal gputrace.Context for building a tracer.
type nopContext struct{}

func (nopContext) BindFramebuffer(gputrace.FramebufferID)                              {}
func (nopContext) DrawBuffers([]gputrace.DrawBuffer)                                   {}
func (nopContext) UseProgram(gputrace.ProgramID)                                       {}
func (nopContext) Viewport(int, int, int, int)                                         {}
func (nopContext) Clear(gputrace.ClearMask)                                            {}
func (nopContext) DrawArrays(gputrace.PrimitiveMode, int, int)                         {}
func (nopContext) DrawElements(gputrace.PrimitiveMode, int, gputrace.ElementType, int) {}
func (nopContext) GetError() gputrace.ErrorCode                                        { return gputrace.ErrorNone }

func newTestTracer(t *testing.T) *gputrace.Tracer {
	t.Helper()
	tracer, err := gputrace.Trace(nopContext{})
	if err != nil {
		t.Fatalf("Trace failed: %v", err)
	}
	return tracer
}

func TestWrapValidation(t *testing.T) {
	tracer := newTestTracer(t)
	provider := newMockProvider()

	if _, err := Wrap(nil, tracer); err != ErrNilProvider {
		t.Errorf("Wrap(nil, tracer) error = %v, want ErrNilProvider", err)
	}
	if _, err := Wrap(provider, nil); err != ErrNilTracer {
		t.Errorf("Wrap(provider, nil) error = %v, want ErrNilTracer", err)
	}
	if _, err := Wrap(provider, tracer); err != nil {
		t.Errorf("Wrap failed: %v", err)
	}
}

func TestProviderForwards(t *testing.T) {
	tracer := newTestTracer(t)
	provider := newMockProvider()

	traced, err := Wrap(provider, tracer)
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}

	if traced.Queue() != provider.queue {
		t.Error("Queue not forwarded")
	}
	if traced.Adapter() != provider.adapter {
		t.Error("Adapter not forwarded")
	}
	if traced.SurfaceFormat() != provider.format {
		t.Errorf("SurfaceFormat = %v, want %v", traced.SurfaceFormat(), provider.format)
	}
}

func TestDevicePollRecorded(t *testing.T) {
	tracer := newTestTracer(t)
	provider := newMockProvider()
	traced, _ := Wrap(provider, tracer)

	traced.Device().Poll(true)
	traced.Device().Poll(false)

	if len(provider.device.polls) != 2 || !provider.device.polls[0] || provider.device.polls[1] {
		t.Errorf("delegated polls = %v, want [true false]", provider.device.polls)
	}

	recs := tracer.Sink().Records(gputrace.Filter{Ops: []gputrace.Op{gputrace.OpDevicePoll}})
	if len(recs) != 2 {
		t.Fatalf("got %d poll records, want 2", len(recs))
	}
	if got := recs[0].Args[0].String(); got != "TRUE" {
		t.Errorf("first poll arg = %q, want TRUE", got)
	}
	if got := recs[1].Args[0].String(); got != "FALSE" {
		t.Errorf("second poll arg = %q, want FALSE", got)
	}
}

func TestDeviceDestroyRecorded(t *testing.T) {
	tracer := newTestTracer(t)
	provider := newMockProvider()
	traced, _ := Wrap(provider, tracer)

	traced.Device().Destroy()

	if !provider.device.destroyed {
		t.Error("Destroy not delegated")
	}
	recs := tracer.Sink().Records(gputrace.Filter{Ops: []gputrace.Op{gputrace.OpDeviceDestroy}})
	if len(recs) != 1 {
		t.Fatalf("got %d destroy records, want 1", len(recs))
	}
}
