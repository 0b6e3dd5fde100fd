// SPDX-License-Identifier: EPL-2.0

package bridge

import (
	"testing"

	"github.com/ik5/spatialparam/internal/audiotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncoderRejectsBadSetup(t *testing.T) {
	t.Parallel()

	_, err := NewEncoder(nil, 48000, 512, nullLogger())
	assert.ErrorIs(t, err, ErrInvalidLayout)

	_, err = NewEncoder(PannerLayout(), 0, 512, nullLogger())
	assert.ErrorIs(t, err, ErrInvalidSampleRate)

	_, err = NewEncoder(PannerLayout(), 48000, 0, nullLogger())
	assert.ErrorIs(t, err, ErrInvalidBlockSize)

	a, err := NewEncoder(PannerLayout(), 48000, 512, nullLogger())
	require.NoError(t, err)
	b, err := NewEncoder(ListenerLayout(), 48000, 256, nullLogger())
	require.NoError(t, err)
	_, err = a.Merge(b, ListenerPrefix)
	assert.ErrorIs(t, err, ErrBlockSizeMismatch)
}

func TestEncoderSharedPartAdvancesOncePerBlock(t *testing.T) {
	t.Parallel()

	listener, err := NewEncoder(ListenerLayout(), 48000, 4, nullLogger())
	require.NoError(t, err)

	ramp := audiotest.NewRampSource(48000, 1, 1000, 1)
	x, err := listener.Slot("positionX")
	require.NoError(t, err)
	require.NoError(t, x.Connect(ramp, 1))

	var merged []*Encoder
	for range 3 {
		own, err := NewEncoder(PannerLayout(), 48000, 4, nullLogger())
		require.NoError(t, err)
		m, err := own.Merge(listener, ListenerPrefix)
		require.NoError(t, err)
		merged = append(merged, m)
	}

	for block := range 3 {
		t0 := float64(block*4) / 48000
		for _, m := range merged {
			frame := make([]float32, m.Channels())
			m.RenderFrame(t0, frame)
			assert.Equal(t, float32(block*4), frame[PannerChannels+ListenerPositionX])
		}
	}
	assert.Equal(t, 12, ramp.Generated())
}

func TestEncoderAsSource(t *testing.T) {
	t.Parallel()

	enc, err := NewEncoder(PannerLayout(), 8000, 2, nullLogger())
	require.NoError(t, err)

	z, err := enc.Slot("positionZ")
	require.NoError(t, err)
	require.NoError(t, z.SetValueAtTime(1, 0))
	require.NoError(t, z.SetValueAtTime(2, 2.0/8000))

	assert.Equal(t, 6, enc.Format().NumChannels)
	assert.Equal(t, 8000, enc.SampleRate())

	// Three frames span two blocks.
	buf := make([]float32, 3*PannerChannels)
	n, err := enc.ReadSamples(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, float32(1), buf[PannerPositionZ])
	assert.Equal(t, float32(1), buf[PannerChannels+PannerPositionZ])
	assert.Equal(t, float32(2), buf[2*PannerChannels+PannerPositionZ])

	_, err = enc.ReadSamples(make([]float32, 5))
	assert.ErrorIs(t, err, ErrBadArguments)
}

func TestSamplerCopiesSnapshot(t *testing.T) {
	t.Parallel()

	enc, err := NewEncoder(PannerLayout(), 48000, 512, nullLogger())
	require.NoError(t, err)
	s := NewSampler(enc)

	x, err := enc.Slot("positionX")
	require.NoError(t, err)
	x.SetValue(1)
	first := s.Sample(0)

	x.SetValue(2)
	second := s.Sample(1)

	assert.Equal(t, float32(1), first.Values[0])
	assert.Equal(t, float32(2), second.Values[0])
	assert.Equal(t, PannerChannels, s.Channels())
	assert.Equal(t, float32(2), s.Frame().Data[0])

	sub := second.Slice(3, 6)
	assert.Equal(t, 1.0, sub.Time)
	assert.Len(t, sub.Values, 3)
}

func TestSamplerReusesOneFrame(t *testing.T) {
	_, f := newFactory(t)
	p, err := f.NewPanner(newTestContext(), &audiotest.Panner{})
	require.NoError(t, err)

	s := NewSampler(p.Signal())
	assert.Equal(t, 1, s.Frame().NumFrames())

	x, err := p.Param("positionX")
	require.NoError(t, err)
	x.SetValue(4)

	snap := s.peek(0)
	assert.Same(t, &s.Frame().Data[0], &snap.Values[0])
	assert.Equal(t, float32(4), snap.Values[0])

	frame := make([]float32, p.Signal().Channels())
	block := 0
	allocs := testing.AllocsPerRun(100, func() {
		block++
		p.Signal().RenderFrame(blockTime(block), frame)
		s.peek(blockTime(block))
	})
	assert.Zero(t, allocs)
}
