// SPDX-License-Identifier: EPL-2.0

package bridge

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/ik5/spatialparam/param"
	"github.com/sirupsen/logrus"
)

// Panner makes a native spatializer's position and orientation automatable.
// The host calls ProcessBlock once per block; the panner samples its own
// six channels, offers the listener channels to the shared Listener, and
// applies its own changes.
type Panner struct {
	native   NativePanner
	own      *Encoder
	signal   *Encoder
	sampler  *Sampler
	chain    *Chain
	listener *Listener

	mu      sync.Mutex
	started bool
	last    float64
	closed  atomic.Bool

	log logrus.FieldLogger
}

func newPanner(ctx AudioContext, native NativePanner, listener *Listener, cfg Config) (*Panner, error) {
	log := cfg.logger().WithField("bridge", "panner")
	layout := PannerLayout()

	own, err := NewEncoder(layout, ctx.SampleRate(), cfg.BlockSize, log)
	if err != nil {
		return nil, err
	}

	signal := own
	if listener != nil {
		signal, err = own.Merge(listener.Encoder(), ListenerPrefix)
		if err != nil {
			return nil, err
		}
	}

	sink, err := NewPannerSink(layout, native, log)
	if err != nil {
		return nil, err
	}

	p := &Panner{
		native:   native,
		own:      own,
		signal:   signal,
		sampler:  NewSampler(signal),
		chain:    NewChain(NewDetector(layout, cfg.Tolerance), sink),
		listener: listener,
		log:      log,
	}

	log.WithFields(logrus.Fields{
		"function":          "newPanner",
		"channels":          signal.Channels(),
		"block_size":        cfg.BlockSize,
		"listener_coupling": listener != nil,
	}).Info("Created panner bridge")

	return p, nil
}

// ProcessBlock runs one block starting at t (seconds). Blocks not newer than
// the previous one are ignored. Native errors are returned unchanged; a
// listener failure stops the block before the panner's own calls.
func (p *Panner) ProcessBlock(t float64) error {
	if p.closed.Load() {
		return ErrClosed
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started && !(t > p.last) {
		p.log.WithFields(logrus.Fields{
			"function": "ProcessBlock",
			"time":     t,
			"last":     p.last,
		}).Debug("Ignoring stale block")
		return nil
	}
	p.started, p.last = true, t

	snap := p.sampler.peek(t)

	if p.listener != nil {
		if _, err := p.listener.Update(snap.Slice(PannerChannels, PannerChannels+ListenerChannels)); err != nil {
			return err
		}
	}

	_, err := p.chain.Update(snap.Values[:PannerChannels])

	return err
}

// Param returns an automatable parameter: positionX..orientationZ, and
// listener.positionX..listener.upZ when coupled.
func (p *Panner) Param(name string) (*param.Slot, error) {
	return p.signal.Slot(name)
}

// ParamNames lists every exposed parameter in channel order.
func (p *Panner) ParamNames() []string { return p.signal.Layout().Names() }

// Listener is the shared listener bridge, nil when coupling is disabled.
func (p *Panner) Listener() *Listener { return p.listener }

// Signal is the merged control signal the panner samples.
func (p *Panner) Signal() *Encoder { return p.signal }

// Applied returns the last six values sent to the native panner.
func (p *Panner) Applied() []float32 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.chain.Detector().Previous()
}

// Attribute reads a non-automatable native attribute.
func (p *Panner) Attribute(name string) (any, error) {
	if !isAttribute(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}

	return p.native.Attribute(name)
}

// SetAttribute writes a non-automatable native attribute.
func (p *Panner) SetAttribute(name string, value any) error {
	if !isAttribute(name) {
		return fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}

	return p.native.SetAttribute(name, value)
}

// Method returns a native method by name.
func (p *Panner) Method(name string) (MethodFunc, error) {
	return nativeMethod(p.native, name)
}

func (p *Panner) SetVelocity(x, y, z float64) error { return p.native.SetVelocity(x, y, z) }
func (p *Panner) Connect(dst Node) error            { return p.native.Connect(dst) }
func (p *Panner) Disconnect(dst Node) error         { return p.native.Disconnect(dst) }

// Close stops block processing and drops the panner's own modulation
// inputs. The shared listener is left alone.
func (p *Panner) Close() error {
	if p.closed.Swap(true) {
		return nil
	}

	return p.own.Close()
}
