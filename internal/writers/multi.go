package writers

import (
	"leo/internal/engine"
	"leo/internal/reporter"
)

// Multi fans progress events out to several streams. A stream that fails is
// dropped and reported through OnError; Multi itself fails only once every
// stream has failed.
type Multi struct {
	streams []engine.Progress
	OnError func(error)
}

// NewMulti skips nil streams.
func NewMulti(streams ...engine.Progress) *Multi {
	m := &Multi{}
	for _, s := range streams {
		if s != nil {
			m.streams = append(m.streams, s)
		}
	}
	return m
}

// Len reports how many streams are still live.
func (m *Multi) Len() int { return len(m.streams) }

func (m *Multi) each(fn func(engine.Progress) error) error {
	if len(m.streams) == 0 {
		return nil
	}
	live := m.streams[:0]
	var last error
	for _, s := range m.streams {
		if err := fn(s); err != nil {
			last = err
			if m.OnError != nil {
				m.OnError(err)
			}
			continue
		}
		live = append(live, s)
	}
	m.streams = live
	if len(live) == 0 {
		return last
	}
	return nil
}

func (m *Multi) Begin(p engine.Plan) error {
	return m.each(func(s engine.Progress) error { return s.Begin(p) })
}

func (m *Multi) Step(rec reporter.StepRecord) error {
	return m.each(func(s engine.Progress) error { return s.Step(rec) })
}

func (m *Multi) End(sum reporter.Summary) error {
	return m.each(func(s engine.Progress) error { return s.End(sum) })
}
