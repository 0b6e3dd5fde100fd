// SPDX-License-Identifier: EPL-2.0

package bridge

import (
	"fmt"
	"sync"

	"github.com/ik5/spatialparam/param"
	"github.com/sirupsen/logrus"
)

// Listener bridges the single native listener of an audio context. Every
// coupled panner of the context offers it the listener channels of its own
// block sample; only the first offer for a given block time is applied.
type Listener struct {
	encoder *Encoder
	sampler *Sampler
	chain   *Chain

	mu      sync.Mutex
	last    float64
	updates int
	skipped int
	// set by Registry.Release; a released listener makes no more calls
	released bool

	log logrus.FieldLogger
}

func newListener(ctx AudioContext, cfg Config) (*Listener, error) {
	target := ctx.Listener()
	if target == nil {
		return nil, fmt.Errorf("%w: context has no listener", ErrNilTarget)
	}

	log := cfg.logger().WithField("bridge", "listener")
	layout := ListenerLayout()

	enc, err := NewEncoder(layout, ctx.SampleRate(), cfg.BlockSize, log)
	if err != nil {
		return nil, err
	}

	sink, err := NewListenerSink(layout, target, log)
	if err != nil {
		return nil, err
	}

	return &Listener{
		encoder: enc,
		sampler: NewSampler(enc),
		chain:   NewChain(NewDetector(layout, cfg.Tolerance), sink),
		last:    -1,
		log:     log,
	}, nil
}

// Param returns one of positionX..upZ.
func (l *Listener) Param(name string) (*param.Slot, error) {
	return l.encoder.Slot(name)
}

// ParamNames lists the listener parameters in channel order.
func (l *Listener) ParamNames() []string { return l.encoder.Layout().Names() }

// Encoder is the listener's nine channel signal, merged into coupled panners.
func (l *Listener) Encoder() *Encoder { return l.encoder }

// LastProcessed is the time of the last block applied, -1 before the first.
func (l *Listener) LastProcessed() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.last
}

// Stats returns how many blocks were applied and how many offers were
// skipped as not newer.
func (l *Listener) Stats() (updates, skipped int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.updates, l.skipped
}

// Update applies snap if its time is strictly newer than the last processed
// block and the listener has not been released. The check, the time advance
// and the native calls happen under one lock, so concurrent panners cannot
// apply the same block twice. The time
// advances even when a native call fails; the next block retries.
func (l *Listener) Update(snap Snapshot) (bool, error) {
	if len(snap.Values) != ListenerChannels {
		return false, fmt.Errorf("%w: listener snapshot has %d values, want %d", ErrBadArguments, len(snap.Values), ListenerChannels)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.released {
		return false, nil
	}

	if !(snap.Time > l.last) {
		l.skipped++
		l.log.WithFields(logrus.Fields{
			"function": "Update",
			"time":     snap.Time,
			"last":     l.last,
		}).Debug("Listener block already processed")
		return false, nil
	}

	l.last = snap.Time
	l.updates++

	_, err := l.chain.Update(snap.Values)

	return true, err
}

// Released reports whether the listener's context was released from its
// registry.
func (l *Listener) Released() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.released
}

func (l *Listener) release() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.released = true
}

// ProcessBlock samples the listener's own signal and applies it. Hosts with
// no coupled panner use it to drive the listener directly.
func (l *Listener) ProcessBlock(t float64) error {
	_, err := l.Update(l.sampler.Sample(t))
	return err
}
