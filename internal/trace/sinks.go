package trace

import (
	"errors"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

var seq atomic.Uint64

// gate holds the level shared by every tracer.
type gate struct{ level Level }

func (g gate) Level() Level  { return g.level }
func (g gate) Enabled() bool { return g.level > LevelOff }

type nopTracer struct{ gate }

func (nopTracer) Emit(*Event)  {}
func (nopTracer) Flush() error { return nil }
func (nopTracer) Close() error { return nil }

// Nop drops every event.
var Nop Tracer = nopTracer{}

// StreamTracer formats each event and writes it at once.
type StreamTracer struct {
	gate
	format Format
	mu     sync.Mutex
	w      io.Writer
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{gate: gate{level}, w: w, format: format}
}

func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	stored := *ev
	stored.Seq = seq.Add(1)
	data := FormatEvent(&stored, t.format)

	t.mu.Lock()
	defer t.mu.Unlock()
	// трассировка не должна ронять разбор
	_, _ = t.w.Write(data)
}

// Flush calls the writer's Flush when it has one.
func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes and closes the writer. Stdout and stderr stay open.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if t.w == io.Writer(os.Stdout) || t.w == io.Writer(os.Stderr) {
		return nil
	}
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// RingTracer keeps the last events in memory.
type RingTracer struct {
	gate
	mu     sync.Mutex
	events []Event
	next   uint64 // events stored so far
}

func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = DefaultRingSize
	}
	return &RingTracer{gate: gate{level}, events: make([]Event, capacity)}
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	stored := *ev
	stored.Seq = seq.Add(1)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.events[t.next%uint64(len(t.events))] = stored
	t.next++
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	size := uint64(len(t.events))
	if t.next <= size {
		return append([]Event(nil), t.events[:t.next]...)
	}
	start := t.next % size
	out := make([]Event, 0, size)
	out = append(out, t.events[start:]...)
	return append(out, t.events[:start]...)
}

// Dump writes the snapshot to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error { return nil }
func (t *RingTracer) Close() error { return nil }

// Fanout sends every event to several tracers.
type Fanout struct {
	gate
	tracers []Tracer
}

func NewFanout(level Level, tracers ...Tracer) *Fanout {
	return &Fanout{gate: gate{level}, tracers: tracers}
}

func (t *Fanout) Emit(ev *Event) {
	for _, tr := range t.tracers {
		tr.Emit(ev)
	}
}

func (t *Fanout) Flush() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Flush())
	}
	return errors.Join(errs...)
}

func (t *Fanout) Close() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Close())
	}
	return errors.Join(errs...)
}

// Dump dumps the first member that keeps events in memory.
func (t *Fanout) Dump(w io.Writer, format Format) error {
	for _, tr := range t.tracers {
		if d, ok := tr.(Dumper); ok {
			return d.Dump(w, format)
		}
	}
	return nil
}
