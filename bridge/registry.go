// SPDX-License-Identifier: EPL-2.0

package bridge

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Registry owns the listener bridge of every audio context. A context gets
// at most one Listener, created on first request and kept until Release.
// A released context is torn down for good: its listener goes quiet and no
// new one is created for it.
type Registry struct {
	cfg Config

	mu        sync.Mutex
	listeners map[AudioContext]*Listener
	released  map[AudioContext]struct{}
}

// NewRegistry validates opts; the block size and tolerance apply to every
// listener the registry creates.
func NewRegistry(opts ...Option) (*Registry, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Registry{
		cfg:       cfg,
		listeners: make(map[AudioContext]*Listener),
		released:  make(map[AudioContext]struct{}),
	}, nil
}

// GetOrCreate returns the context's listener, creating it on first use.
func (r *Registry) GetOrCreate(ctx AudioContext) (*Listener, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if l, ok := r.listeners[ctx]; ok {
		return l, nil
	}
	if _, gone := r.released[ctx]; gone {
		return nil, ErrContextReleased
	}

	l, err := newListener(ctx, r.cfg)
	if err != nil {
		return nil, err
	}
	r.listeners[ctx] = l

	r.cfg.logger().WithFields(logrus.Fields{
		"function":    "GetOrCreate",
		"sample_rate": ctx.SampleRate(),
		"block_size":  r.cfg.BlockSize,
		"contexts":    len(r.listeners),
	}).Info("Created listener bridge for audio context")

	return l, nil
}

// Lookup returns the context's listener without creating one.
func (r *Registry) Lookup(ctx AudioContext) (*Listener, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.listeners[ctx]
	return l, ok
}

// Release tears the context's listener down when the context goes away.
// Panners still holding the listener keep running their own chains, but the
// listener makes no more native calls, and GetOrCreate refuses the context
// from now on. It reports whether a listener existed.
func (r *Registry) Release(ctx AudioContext) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.released[ctx] = struct{}{}

	l, ok := r.listeners[ctx]
	if !ok {
		return false
	}
	l.release()
	_ = l.encoder.Close()
	delete(r.listeners, ctx)

	return true
}

// Len is the number of live contexts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.listeners)
}

// BlockSize is the block size listeners are created with.
func (r *Registry) BlockSize() int { return r.cfg.BlockSize }
