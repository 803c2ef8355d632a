package trace

import "errors"

// MultiTracer fans events out to several tracers (stream + ring).
type MultiTracer struct {
	tracers []Tracer
	level   Level
}

// NewMultiTracer skips nil and disabled tracers.
func NewMultiTracer(level Level, tracers ...Tracer) *MultiTracer {
	m := &MultiTracer{level: level}
	for _, tr := range tracers {
		if tr != nil && tr.Enabled() {
			m.tracers = append(m.tracers, tr)
		}
	}
	return m
}

// Emit gives each tracer its own copy so stored sequence numbers differ.
func (t *MultiTracer) Emit(ev *Event) {
	for _, tr := range t.tracers {
		cp := *ev
		tr.Emit(&cp)
	}
}

func (t *MultiTracer) Flush() error {
	errs := make([]error, 0, len(t.tracers))
	for _, tr := range t.tracers {
		errs = append(errs, tr.Flush())
	}
	return errors.Join(errs...)
}

func (t *MultiTracer) Close() error {
	errs := make([]error, 0, len(t.tracers))
	for _, tr := range t.tracers {
		errs = append(errs, tr.Close())
	}
	return errors.Join(errs...)
}

func (t *MultiTracer) Level() Level  { return t.level }
func (t *MultiTracer) Enabled() bool { return t.level > LevelOff && len(t.tracers) > 0 }
