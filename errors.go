package gputrace

import (
	"errors"
	"strconv"
)

// Package errors for gputrace.
var (
	// ErrNilContext is returned when Trace is given a nil context.
	ErrNilContext = errors.New("gputrace: nil context")

	// ErrAlreadyInstrumented is returned when Trace is given a context
	// that is already wrapped by a Tracer. Double-wrapping would corrupt
	// call numbering and double-sample the error flag.
	ErrAlreadyInstrumented = errors.New("gputrace: context already instrumented")

	// ErrNilTracer is returned when a component requires a Tracer and
	// receives nil.
	ErrNilTracer = errors.New("gputrace: nil tracer")

	// ErrNilScheduler is returned when NewFrameSequencer is given a nil
	// underlying scheduler.
	ErrNilScheduler = errors.New("gputrace: nil scheduler")

	// ErrNilSink is returned when a sink-backed component receives nil.
	ErrNilSink = errors.New("gputrace: nil sink")
)

// ErrorCode is the value of the context's error flag, sampled once after
// each draw call. The taxonomy mirrors the flag values of GL-style
// contexts, whose invalid-operation family is what this layer exists to
// attribute.
type ErrorCode uint8

// Error flag values.
const (
	// ErrorNone means the flag was sampled and no error was pending.
	ErrorNone ErrorCode = iota

	ErrorInvalidEnum
	ErrorInvalidValue
	ErrorInvalidOperation
	ErrorInvalidFramebufferOperation
	ErrorOutOfMemory
)

var errorCodeNames = [...]string{
	ErrorNone:                        "NO_ERROR",
	ErrorInvalidEnum:                 "INVALID_ENUM",
	ErrorInvalidValue:                "INVALID_VALUE",
	ErrorInvalidOperation:            "INVALID_OPERATION",
	ErrorInvalidFramebufferOperation: "INVALID_FRAMEBUFFER_OPERATION",
	ErrorOutOfMemory:                 "OUT_OF_MEMORY",
}

// String returns the string representation of an ErrorCode.
func (e ErrorCode) String() string {
	if int(e) < len(errorCodeNames) {
		return errorCodeNames[e]
	}
	return "ERROR(" + strconv.Itoa(int(e)) + ")"
}
