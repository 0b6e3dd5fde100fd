// SPDX-License-Identifier: EPL-2.0

package bridge

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// invocation forwards the values of one or more groups to a native call.
type invocation struct {
	method string
	groups []string
	call   func(args []float64) error
}

// Sink applies changed groups to a native target through a fixed, ordered
// call table. Position always comes first.
type Sink struct {
	layout *Layout
	calls  []invocation
	args   []float64
	log    logrus.FieldLogger
}

// NewPannerSink maps position -> SetPosition and orientation ->
// SetOrientation on a panner layout.
func NewPannerSink(layout *Layout, target PannerTarget, log logrus.FieldLogger) (*Sink, error) {
	return newSink(layout, log, []invocation{
		{
			method: "SetPosition",
			groups: []string{GroupPosition},
			call: func(a []float64) error {
				return target.SetPosition(a[0], a[1], a[2])
			},
		},
		{
			method: "SetOrientation",
			groups: []string{GroupOrientation},
			call: func(a []float64) error {
				return target.SetOrientation(a[0], a[1], a[2])
			},
		},
	})
}

// NewListenerSink maps position -> SetPosition, and forward or up -> a single
// six argument SetOrientation carrying the current values of both.
func NewListenerSink(layout *Layout, target ListenerTarget, log logrus.FieldLogger) (*Sink, error) {
	return newSink(layout, log, []invocation{
		{
			method: "SetPosition",
			groups: []string{GroupPosition},
			call: func(a []float64) error {
				return target.SetPosition(a[0], a[1], a[2])
			},
		},
		{
			method: "SetOrientation",
			groups: []string{GroupForward, GroupUp},
			call: func(a []float64) error {
				return target.SetOrientation(a[0], a[1], a[2], a[3], a[4], a[5])
			},
		},
	})
}

func newSink(layout *Layout, log logrus.FieldLogger, calls []invocation) (*Sink, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	widest := 0
	for _, c := range calls {
		for _, g := range c.groups {
			if _, ok := layout.GroupIndex(g); !ok {
				return nil, fmt.Errorf("%w: %s needs group %q", ErrInvalidLayout, c.method, g)
			}
		}
		widest = max(widest, len(c.groups)*VectorWidth)
	}

	return &Sink{
		layout: layout,
		calls:  calls,
		args:   make([]float64, widest),
		log:    log,
	}, nil
}

// Apply issues one call per invocation touching a changed group, in table
// order, and commits the groups of each call to d once it succeeds. The
// first target error is returned unchanged; calls made before it stay
// committed.
func (s *Sink) Apply(values []float32, changed ChangeSet, d *Detector) error {
	for _, c := range s.calls {
		var set ChangeSet
		touched := false
		args := s.args[:0]

		for _, name := range c.groups {
			gi, _ := s.layout.GroupIndex(name)
			set = set.with(gi)
			if changed.Has(gi) {
				touched = true
			}

			from, to := s.layout.groups[gi].Channels()
			for _, v := range values[from:to] {
				args = append(args, float64(v))
			}
		}

		if !touched {
			continue
		}

		if err := c.call(args); err != nil {
			s.log.WithFields(logrus.Fields{
				"function": "Apply",
				"method":   c.method,
				"args":     append([]float64(nil), args...),
				"error":    err.Error(),
			}).Error("Native call failed")
			return err
		}

		s.log.WithFields(logrus.Fields{
			"function": "Apply",
			"method":   c.method,
			"args":     append([]float64(nil), args...),
		}).Debug("Native call issued")

		d.Commit(values, set)
	}

	return nil
}

// Chain is a detector feeding a sink.
type Chain struct {
	detector *Detector
	sink     *Sink
}

func NewChain(d *Detector, s *Sink) *Chain {
	return &Chain{detector: d, sink: s}
}

// Update applies the changed groups of values and returns which groups were
// found changed.
func (c *Chain) Update(values []float32) (ChangeSet, error) {
	changed := c.detector.Changed(values)
	if changed.Empty() {
		return changed, nil
	}

	return changed, c.sink.Apply(values, changed, c.detector)
}

// Detector exposes the chain's detector.
func (c *Chain) Detector() *Detector { return c.detector }
