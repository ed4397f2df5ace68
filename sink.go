package gputrace

// Sink is the ordered, append-only log of captured records. It lives for
// the lifetime of the instrumentation: it grows until explicitly cleared
// and is never mutated except by appending.
//
// There is no locking: the single-threaded cooperative model has exactly
// one writer, the tracer, running on the execution context of the draw
// calls themselves.
type Sink struct {
	records  []CallRecord
	capacity int

	// Monotonic counters. errorsSeen counts append attempts, so marks
	// stay meaningful even when the capacity bound drops records.
	errorsSeen uint64
	dropped    uint64

	warned bool
}

// Mark is a position in a sink's error stream, taken with Sink.Mark and
// consumed by Sink.ErrorsSince.
type Mark uint64

// NewSink creates a sink. A capacity of zero leaves it unbounded;
// otherwise appends beyond capacity are dropped and counted rather than
// evicting older records, keeping the retained prefix contiguous.
func NewSink(capacity int) *Sink {
	initial := 256
	if capacity > 0 && capacity < initial {
		initial = capacity
	}
	return &Sink{
		records:  make([]CallRecord, 0, initial),
		capacity: capacity,
	}
}

// append adds one record. Overflow is log-and-continue: the record is
// counted as dropped and the first drop is logged at Warn.
func (s *Sink) append(r CallRecord) {
	if r.HasError() {
		s.errorsSeen++
	}
	if s.capacity > 0 && len(s.records) >= s.capacity {
		s.dropped++
		if !s.warned {
			s.warned = true
			Logger().Warn("gputrace: sink full, dropping records",
				"capacity", s.capacity)
		}
		return
	}
	s.records = append(s.records, r)
}

// Len returns the number of retained records.
func (s *Sink) Len() int {
	return len(s.records)
}

// Dropped returns the number of records lost to the capacity bound.
func (s *Sink) Dropped() uint64 {
	return s.dropped
}

// Records returns the retained records matching the filter, in insertion
// order. The zero Filter returns the whole trace. The returned slice is a
// copy; callers may hold it across further tracing.
func (s *Sink) Records(f Filter) []CallRecord {
	var out []CallRecord
	for _, r := range s.records {
		if f.match(r) {
			out = append(out, r)
		}
	}
	return out
}

// ErrorCount returns the total number of error-flagged records observed,
// including any dropped by the capacity bound.
func (s *Sink) ErrorCount() int {
	return int(s.errorsSeen)
}

// Mark returns the current position in the error stream.
func (s *Sink) Mark() Mark {
	return Mark(s.errorsSeen)
}

// ErrorsSince returns the number of error-flagged records observed since
// the mark was taken.
func (s *Sink) ErrorsSince(m Mark) int {
	return int(s.errorsSeen - uint64(m))
}

// Clear discards all retained records and resets drop accounting. Marks
// taken before Clear remain valid: the error-stream counter is monotonic.
func (s *Sink) Clear() {
	s.records = s.records[:0]
	s.dropped = 0
	s.warned = false
}

// SinkCounter adapts a Sink to the bisect package's error-counter
// interface: Reset takes a mark, Count reports errors since the mark.
type SinkCounter struct {
	sink *Sink
	mark Mark
}

// NewSinkCounter creates a counter over the sink's error stream.
func NewSinkCounter(s *Sink) (*SinkCounter, error) {
	if s == nil {
		return nil, ErrNilSink
	}
	return &SinkCounter{sink: s, mark: s.Mark()}, nil
}

// Reset starts a fresh counting window.
func (c *SinkCounter) Reset() {
	c.mark = c.sink.Mark()
}

// Count returns the number of errors observed since the last Reset.
func (c *SinkCounter) Count() int {
	return c.sink.ErrorsSince(c.mark)
}
