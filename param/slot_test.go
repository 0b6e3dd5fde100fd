// SPDX-License-Identifier: EPL-2.0

package param

import (
	"math"
	"sync"
	"testing"

	"github.com/ik5/spatialparam/internal/audiotest"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlot(t *testing.T) {
	s := NewSlot("positionY", 1)

	assert.Equal(t, "positionY", s.Name())
	assert.Equal(t, 1, s.Index())
	assert.Equal(t, 0.0, s.Value())
	assert.Equal(t, 0, s.Inputs())

	d := NewSlot("upY", 7, WithDefault(1))
	assert.Equal(t, 1.0, d.Value())
	assert.Equal(t, 1.0, d.ValueAt(3))
}

func TestSlotSetValue(t *testing.T) {
	s := NewSlot("positionX", 0)
	s.SetValue(-12.5)

	assert.Equal(t, -12.5, s.Value())
	assert.Equal(t, -12.5, s.ValueAt(0))
	assert.Equal(t, -12.5, s.ValueAt(100))
}

func TestSlotTimeline(t *testing.T) {
	s := NewSlot("positionX", 0)
	s.SetValue(1)
	require.NoError(t, s.SetValueAtTime(2, 0.5))
	require.NoError(t, s.LinearRampToValueAtTime(10, 1.5))
	require.NoError(t, s.SetValueAtTime(-3, 2))

	tests := []struct {
		name string
		at   float64
		want float64
	}{
		{name: "before first event uses plain value", at: 0.25, want: 1},
		{name: "set event applies at its own time", at: 0.5, want: 2},
		{name: "ramp midpoint", at: 1.0, want: 6},
		{name: "ramp end", at: 1.5, want: 10},
		{name: "hold after ramp", at: 1.75, want: 10},
		{name: "last set holds", at: 9, want: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, s.ValueAt(tt.at), 1e-12)
		})
	}
}

func TestSlotRampFromPlainValue(t *testing.T) {
	s := NewSlot("forwardZ", 5)
	s.SetValue(-1)
	require.NoError(t, s.LinearRampToValueAtTime(1, 2))

	assert.InDelta(t, -1.0, s.ValueAt(0), 1e-12)
	assert.InDelta(t, 0.0, s.ValueAt(1), 1e-12)
	assert.InDelta(t, 1.0, s.ValueAt(4), 1e-12)
}

func TestSlotScheduleValidation(t *testing.T) {
	s := NewSlot("positionZ", 2)
	require.NoError(t, s.SetValueAtTime(1, 1))

	assert.ErrorIs(t, s.SetValueAtTime(0, 0.5), ErrEventOrder)
	assert.ErrorIs(t, s.SetValueAtTime(math.NaN(), 2), ErrNonFinite)
	assert.ErrorIs(t, s.LinearRampToValueAtTime(1, math.Inf(1)), ErrNonFinite)
	assert.ErrorIs(t, s.SetValueAtTime(1, -1), ErrNegativeTime)

	// equal times are allowed and applied in order
	require.NoError(t, s.SetValueAtTime(4, 1))
	assert.Equal(t, 4.0, s.ValueAt(1))
}

func TestSlotCancelScheduledValues(t *testing.T) {
	s := NewSlot("positionX", 0)
	require.NoError(t, s.SetValueAtTime(1, 1))
	require.NoError(t, s.SetValueAtTime(2, 2))
	require.NoError(t, s.SetValueAtTime(3, 3))

	s.CancelScheduledValues(2)
	assert.Equal(t, 1.0, s.ValueAt(10))

	// scheduling resumes after the cut
	require.NoError(t, s.SetValueAtTime(7, 1.5))
	assert.Equal(t, 7.0, s.ValueAt(10))
}

func TestSlotConnectAndBlockValue(t *testing.T) {
	s := NewSlot("positionX", 0)
	s.SetValue(1)

	src := audiotest.NewRampSource(48000, 1, 4096, 0.001)
	require.NoError(t, s.Connect(src, 10))
	assert.Equal(t, 1, s.Inputs())

	scratch := make([]float32, 128)

	// block 0 reads frames 0..127, frame 0 is 0
	assert.InDelta(t, 1.0, s.BlockValue(0, 48000, 128, scratch), 1e-9)
	// block 1 starts at frame 128
	assert.InDelta(t, 1.0+10*float64(float32(128)*0.001), s.BlockValue(128.0/48000, 48000, 128, scratch), 1e-6)
	assert.Equal(t, 256, src.Generated())
}

func TestSlotConnectConformsSource(t *testing.T) {
	s := NewSlot("positionX", 0)

	// stereo at a foreign rate, constant 0.5 on both channels
	src := audiotest.NewConstantSource(44100, 2, 44100, 0.5)
	require.NoError(t, s.Connect(src, 2))

	scratch := make([]float32, 512)
	assert.InDelta(t, 1.0, s.BlockValue(0, 48000, 512, scratch), 1e-5)
	assert.InDelta(t, 1.0, s.BlockValue(512.0/48000, 48000, 512, scratch), 1e-5)
}

func TestSlotInputEndsAndIsDropped(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	s := NewSlot("positionX", 0, WithLogger(logger))
	src := audiotest.NewConstantSource(48000, 1, 200, 1)
	require.NoError(t, s.Connect(src, 1))

	scratch := make([]float32, 128)
	assert.Equal(t, 1.0, s.BlockValue(0, 48000, 128, scratch))
	// 72 frames left: frame 0 still counts, then the input is dropped
	assert.Equal(t, 1.0, s.BlockValue(1, 48000, 128, scratch))
	assert.Equal(t, 0, s.Inputs())
	assert.Equal(t, 0.0, s.BlockValue(2, 48000, 128, scratch))

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)
	assert.False(t, src.Closed, "slot must not close caller-owned sources")
}

func TestSlotInputFailureIsDroppedWithWarning(t *testing.T) {
	logger, hook := test.NewNullLogger()

	s := NewSlot("positionY", 1, WithLogger(logger))
	src := audiotest.NewConstantSource(48000, 1, 1000, 1)
	src.FailAfter = 0
	require.NoError(t, s.Connect(src, 1))

	assert.Equal(t, 0.0, s.BlockValue(0, 48000, 64, make([]float32, 64)))
	assert.Equal(t, 0, s.Inputs())
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.WarnLevel, hook.Entries[0].Level)
	assert.Equal(t, "positionY", hook.Entries[0].Data["slot"])
}

func TestSlotDisconnect(t *testing.T) {
	s := NewSlot("positionX", 0)
	a := audiotest.NewConstantSource(48000, 1, 1000, 1)
	b := audiotest.NewConstantSource(48000, 1, 1000, 2)

	require.NoError(t, s.Connect(a, 1))
	require.NoError(t, s.Connect(b, 1))
	require.NoError(t, s.Disconnect(a))
	assert.ErrorIs(t, s.Disconnect(a), ErrNotConnected)
	assert.Equal(t, 2.0, s.BlockValue(0, 48000, 16, make([]float32, 16)))

	s.DisconnectAll()
	assert.Equal(t, 0, s.Inputs())
	assert.ErrorIs(t, s.Connect(nil, 1), ErrNilSource)
}

func TestSlotConcurrentWrites(t *testing.T) {
	s := NewSlot("positionX", 0)
	scratch := make([]float32, 8)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				s.SetValue(float64(i*100 + j))
			}
		}()
	}
	for range 100 {
		_ = s.BlockValue(0, 48000, 8, scratch)
	}
	wg.Wait()

	v := s.Value()
	assert.GreaterOrEqual(t, v, 0.0)
	assert.Less(t, v, 800.0)
}
