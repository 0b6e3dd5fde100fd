// SPDX-License-Identifier: EPL-2.0

package param

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"sync/atomic"

	"github.com/ik5/spatialparam/audio"
	"github.com/sirupsen/logrus"
)

// Slot is a single automatable scalar identified by name and channel index.
type Slot struct {
	name  string
	index int

	// plain value as float64 bits
	value atomic.Uint64

	mu       sync.Mutex
	timeline timeline
	inputs   []*input

	log logrus.FieldLogger
}

type input struct {
	src   audio.Source
	depth float64

	conformed audio.Source
}

// SlotOption configures a Slot.
type SlotOption func(*Slot)

// WithLogger sets the logger used when a modulation input is dropped.
func WithLogger(log logrus.FieldLogger) SlotOption {
	return func(s *Slot) {
		if log != nil {
			s.log = log
		}
	}
}

// WithDefault sets the initial plain value.
func WithDefault(v float64) SlotOption {
	return func(s *Slot) {
		s.value.Store(math.Float64bits(v))
	}
}

// NewSlot creates a slot with value 0.
func NewSlot(name string, index int, opts ...SlotOption) *Slot {
	s := &Slot{
		name:  name,
		index: index,
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

func (s *Slot) Name() string { return s.name }
func (s *Slot) Index() int   { return s.index }

// Value returns the plain value, ignoring automation and inputs.
func (s *Slot) Value() float64 {
	return math.Float64frombits(s.value.Load())
}

// SetValue sets the plain value. It is used before the first scheduled
// event, or always when nothing is scheduled.
func (s *Slot) SetValue(v float64) {
	s.value.Store(math.Float64bits(v))
}

// SetValueAtTime schedules a jump to v at time t (seconds).
func (s *Slot) SetValueAtTime(v, t float64) error {
	return s.schedule(event{kind: eventSet, value: v, time: t})
}

// LinearRampToValueAtTime schedules a linear ramp from the previous event
// (or the plain value at time 0) reaching v at time t.
func (s *Slot) LinearRampToValueAtTime(v, t float64) error {
	return s.schedule(event{kind: eventRamp, value: v, time: t})
}

// CancelScheduledValues removes every event at or after t.
func (s *Slot) CancelScheduledValues(t float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timeline.cancel(t)
}

// ValueAt evaluates the automated value at time t, without modulation inputs.
func (s *Slot) ValueAt(t float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.timeline.valueAt(t, s.Value())
}

func (s *Slot) schedule(e event) error {
	if math.IsNaN(e.value) || math.IsInf(e.value, 0) || math.IsNaN(e.time) || math.IsInf(e.time, 0) {
		return fmt.Errorf("%w: %s value=%v time=%v", ErrNonFinite, s.name, e.value, e.time)
	}
	if e.time < 0 {
		return fmt.Errorf("%w: %s time=%v", ErrNegativeTime, s.name, e.time)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if last, ok := s.timeline.last(); ok && e.time < last.time {
		return fmt.Errorf("%w: %s at %v, last event at %v", ErrEventOrder, s.name, e.time, last.time)
	}
	s.timeline.events = append(s.timeline.events, e)

	return nil
}

// Connect sums depth * src into the slot. The source stays owned by the
// caller and is never closed by the slot.
func (s *Slot) Connect(src audio.Source, depth float64) error {
	if src == nil {
		return ErrNilSource
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.inputs = append(s.inputs, &input{src: src, depth: depth})

	return nil
}

// Disconnect removes a source previously passed to Connect.
func (s *Slot) Disconnect(src audio.Source) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, in := range s.inputs {
		if in.src == src {
			s.inputs = append(s.inputs[:i], s.inputs[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrNotConnected, s.name)
}

// DisconnectAll drops every modulation input.
func (s *Slot) DisconnectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inputs = nil
}

// Inputs returns the number of connected modulation sources.
func (s *Slot) Inputs() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.inputs)
}

// BlockValue is the value of the slot for the block starting at t: the
// automated value plus the first frame of every input over the next frames
// frames at sampleRate. scratch must hold at least frames values.
func (s *Slot) BlockValue(t float64, sampleRate, frames int, scratch []float32) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.timeline.valueAt(t, s.Value())
	if len(s.inputs) == 0 {
		return v
	}

	buf := scratch[:frames]
	kept := s.inputs[:0]
	for _, in := range s.inputs {
		if in.conformed == nil {
			in.conformed = audio.Conform(in.src, sampleRate)
		}

		n, err := audio.ReadFull(in.conformed, buf)
		if n > 0 {
			v += in.depth * float64(buf[0])
		}

		switch {
		case err == nil:
			kept = append(kept, in)
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			s.log.WithFields(logrus.Fields{
				"function": "BlockValue",
				"slot":     s.name,
				"time":     t,
			}).Debug("Modulation input ended, disconnecting")
		default:
			s.log.WithFields(logrus.Fields{
				"function": "BlockValue",
				"slot":     s.name,
				"time":     t,
				"error":    err.Error(),
			}).Warn("Modulation input failed, disconnecting")
		}
	}
	for i := len(kept); i < len(s.inputs); i++ {
		s.inputs[i] = nil
	}
	s.inputs = kept

	return v
}
