// SPDX-License-Identifier: EPL-2.0

package bridge

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

const DefaultBlockSize = 512

// Config holds bridge settings shared by the registry, the factory and the
// bridges they build.
type Config struct {
	// BlockSize is the processing block size in frames.
	BlockSize int
	// ListenerCoupling adds the context listener's nine channels to every
	// panner so that panners drive the shared listener.
	ListenerCoupling bool
	// Tolerance is the change-detection threshold. Zero keeps strict float
	// inequality.
	Tolerance float32
	Logger    logrus.FieldLogger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a 512 frame block, listener coupling on and exact
// change detection.
func DefaultConfig() Config {
	return Config{
		BlockSize:        DefaultBlockSize,
		ListenerCoupling: true,
		Logger:           logrus.StandardLogger(),
	}
}

func WithBlockSize(frames int) Option {
	return func(c *Config) {
		c.BlockSize = frames
	}
}

func WithListenerCoupling(enabled bool) Option {
	return func(c *Config) {
		c.ListenerCoupling = enabled
	}
}

// WithTolerance makes a group count as changed only when a component moved
// by more than tol.
func WithTolerance(tol float32) Option {
	return func(c *Config) {
		c.Tolerance = tol
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Config) {
		if log != nil {
			c.Logger = log
		}
	}
}

// NewConfig applies opts over DefaultConfig and validates the result.
func NewConfig(opts ...Option) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.BlockSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidBlockSize, c.BlockSize)
	}

	tol := float64(c.Tolerance)
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidTolerance, c.Tolerance)
	}

	return nil
}

func (c Config) logger() logrus.FieldLogger {
	if c.Logger == nil {
		return logrus.StandardLogger()
	}

	return c.Logger
}
