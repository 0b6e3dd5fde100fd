// SPDX-License-Identifier: EPL-2.0

package bridge

import (
	"fmt"
)

// Factory builds panner bridges with one validated configuration against a
// shared listener registry.
type Factory struct {
	registry *Registry
	cfg      Config
}

// NewFactory validates opts before anything is wired. A coupled factory must
// use the registry's block size, since its panners drive the registry's
// listeners.
func NewFactory(registry *Registry, opts ...Option) (*Factory, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	if cfg.ListenerCoupling {
		if registry == nil {
			return nil, fmt.Errorf("%w: listener coupling needs a registry", ErrConfiguration)
		}
		if registry.BlockSize() != cfg.BlockSize {
			return nil, fmt.Errorf("%w: panners %d, listener %d", ErrBlockSizeMismatch, cfg.BlockSize, registry.BlockSize())
		}
	}

	return &Factory{registry: registry, cfg: cfg}, nil
}

// Config returns the validated configuration.
func (f *Factory) Config() Config { return f.cfg }

// NewPanner wires a panner bridge around native for ctx. With listener
// coupling the context's listener is created on first use.
func (f *Factory) NewPanner(ctx AudioContext, native NativePanner) (*Panner, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if native == nil {
		return nil, ErrNilTarget
	}
	if ctx.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSampleRate, ctx.SampleRate())
	}

	var listener *Listener
	if f.cfg.ListenerCoupling {
		l, err := f.registry.GetOrCreate(ctx)
		if err != nil {
			return nil, err
		}
		listener = l
	}

	return newPanner(ctx, native, listener, f.cfg)
}
