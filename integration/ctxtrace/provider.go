// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ctxtrace

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gputrace"
)

// Package errors for ctxtrace.
var (
	// ErrNilProvider is returned when Wrap is given a nil provider.
	ErrNilProvider = errors.New("ctxtrace: nil device provider")

	// ErrNilTracer is returned when Wrap is given a nil tracer.
	ErrNilTracer = errors.New("ctxtrace: nil tracer")
)

// Provider decorates a gpucontext.DeviceProvider: device lifecycle calls
// are recorded into the tracer, everything else forwards unchanged.
// It implements gpucontext.DeviceProvider.
type Provider struct {
	inner  gpucontext.DeviceProvider
	device *tracedDevice
}

// Wrap decorates the provider for the given tracer.
func Wrap(inner gpucontext.DeviceProvider, t *gputrace.Tracer) (*Provider, error) {
	if inner == nil {
		return nil, ErrNilProvider
	}
	if t == nil {
		return nil, ErrNilTracer
	}
	return &Provider{
		inner:  inner,
		device: &tracedDevice{inner: inner.Device(), tracer: t},
	}, nil
}

// Device returns the traced device.
func (p *Provider) Device() gpucontext.Device {
	return p.device
}

// Queue returns the underlying queue.
func (p *Provider) Queue() gpucontext.Queue {
	return p.inner.Queue()
}

// Adapter returns the underlying adapter.
func (p *Provider) Adapter() gpucontext.Adapter {
	return p.inner.Adapter()
}

// SurfaceFormat returns the underlying surface format.
func (p *Provider) SurfaceFormat() gputypes.TextureFormat {
	return p.inner.SurfaceFormat()
}

// tracedDevice records Poll and Destroy into the trace before
// delegating. It implements gpucontext.Device.
type tracedDevice struct {
	inner  gpucontext.Device
	tracer *gputrace.Tracer
}

func (d *tracedDevice) Poll(wait bool) {
	d.inner.Poll(wait)
	d.tracer.RecordExternal(gputrace.OpDevicePoll, gputrace.Bool(wait))
}

func (d *tracedDevice) Destroy() {
	d.inner.Destroy()
	d.tracer.RecordExternal(gputrace.OpDeviceDestroy)
}
