// SPDX-License-Identifier: EPL-2.0

package offline

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ik5/spatialparam/bridge"
	"github.com/sirupsen/logrus"
)

// Processor is anything driven once per block, such as a bridge.Panner or a
// bridge.Listener.
type Processor interface {
	ProcessBlock(t float64) error
}

// Context implements bridge.AudioContext.
type Context struct {
	sampleRate int
	blockSize  int
	listener   bridge.ListenerTarget
	registry   *bridge.Registry

	mu         sync.Mutex
	processors []Processor
	frame      int64
	closed     bool

	log logrus.FieldLogger
}

type Option func(*Context)

// WithBlockSize sets the frames per rendered block, bridge.DefaultBlockSize
// by default.
func WithBlockSize(frames int) Option {
	return func(c *Context) {
		c.blockSize = frames
	}
}

// WithRegistry makes Close release the context's listener from reg.
func WithRegistry(reg *bridge.Registry) Option {
	return func(c *Context) {
		c.registry = reg
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Context) {
		if log != nil {
			c.log = log
		}
	}
}

func New(sampleRate int, listener bridge.ListenerTarget, opts ...Option) (*Context, error) {
	c := &Context{
		sampleRate: sampleRate,
		blockSize:  bridge.DefaultBlockSize,
		listener:   listener,
		log:        logrus.StandardLogger(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.sampleRate <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSampleRate, c.sampleRate)
	}
	if c.blockSize <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBlockSize, c.blockSize)
	}
	if c.listener == nil {
		return nil, ErrNilListener
	}

	return c, nil
}

func (c *Context) SampleRate() int                 { return c.sampleRate }
func (c *Context) Listener() bridge.ListenerTarget { return c.listener }
func (c *Context) BlockSize() int                  { return c.blockSize }

// Register appends p to the processors run for every block.
func (c *Context) Register(p Processor) error {
	if p == nil {
		return ErrNilProcessor
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	c.processors = append(c.processors, p)

	return nil
}

// Unregister removes p from the processors. It reports whether p was
// registered.
func (c *Context) Unregister(p Processor) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, q := range c.processors {
		if q == p {
			c.processors = append(c.processors[:i], c.processors[i+1:]...)
			return true
		}
	}

	return false
}

// Time is the start of the next block in seconds.
func (c *Context) Time() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now()
}

func (c *Context) now() float64 {
	return float64(c.frame) / float64(c.sampleRate)
}

// Render runs blocks blocks. A processor reporting bridge.ErrClosed is
// dropped and the others keep running. Any other processor error stops
// rendering and is returned unchanged; the failing block still counts as
// rendered.
func (c *Context) Render(blocks int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	for range blocks {
		t := c.now()
		c.frame += int64(c.blockSize)

		for i := 0; i < len(c.processors); {
			p := c.processors[i]
			err := p.ProcessBlock(t)
			if errors.Is(err, bridge.ErrClosed) {
				c.log.WithFields(logrus.Fields{
					"function":  "Render",
					"time":      t,
					"processor": i,
				}).Debug("Dropping closed processor")
				c.processors = append(c.processors[:i], c.processors[i+1:]...)
				continue
			}
			if err != nil {
				c.log.WithFields(logrus.Fields{
					"function":  "Render",
					"time":      t,
					"processor": i,
					"error":     err.Error(),
				}).Error("Processor failed")
				return err
			}
			i++
		}
	}

	return nil
}

// Close drops every processor and releases the context from its registry.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.processors = nil

	if c.registry != nil {
		c.registry.Release(c)
	}

	c.log.WithFields(logrus.Fields{
		"function": "Close",
		"time":     c.now(),
	}).Debug("Closed offline context")

	return nil
}
