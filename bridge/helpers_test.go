// SPDX-License-Identifier: EPL-2.0

package bridge

import (
	"testing"

	"github.com/ik5/spatialparam/internal/audiotest"
	"github.com/ik5/spatialparam/param"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

type testContext struct {
	rate     int
	listener *audiotest.Listener
}

func newTestContext() *testContext {
	return &testContext{rate: 48000, listener: &audiotest.Listener{}}
}

func (c *testContext) SampleRate() int          { return c.rate }
func (c *testContext) Listener() ListenerTarget { return c.listener }

func quiet() Option {
	log, _ := logtest.NewNullLogger()
	return WithLogger(log)
}

// blockTime is the start of block n at 48 kHz with the default block size.
func blockTime(n int) float64 {
	return float64(n*DefaultBlockSize) / 48000
}

func newFactory(t *testing.T, opts ...Option) (*Registry, *Factory) {
	t.Helper()

	opts = append([]Option{quiet()}, opts...)
	reg, err := NewRegistry(opts...)
	require.NoError(t, err)
	f, err := NewFactory(reg, opts...)
	require.NoError(t, err)

	return reg, f
}

type paramOwner interface {
	Param(name string) (*param.Slot, error)
}

func set(t *testing.T, p paramOwner, values map[string]float64) {
	t.Helper()

	for name, v := range values {
		s, err := p.Param(name)
		require.NoError(t, err)
		s.SetValue(v)
	}
}
