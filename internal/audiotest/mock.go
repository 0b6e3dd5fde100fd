// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"io"
	"math"
)

// MockSource generates interleaved frames from a waveform function. It
// satisfies audio.Source without importing it.
type MockSource struct {
	sampleRate  int
	channels    int
	totalFrames int
	generated   int
	waveform    func(frame int, channel int) float32

	// FailAfter makes ReadSamples return ErrMockRead once this many frames
	// have been produced. Negative disables it.
	FailAfter int
	Closed    bool
}

// ErrMockRead is returned by a MockSource configured with FailAfter.
var ErrMockRead = errors.New("mock source read failure")

// NewMockSource creates a source producing totalFrames frames.
func NewMockSource(sampleRate, channels, totalFrames int, waveform func(frame int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		waveform:    waveform,
		FailAfter:   -1,
	}
}

// NewConstantSource produces value on every channel.
func NewConstantSource(sampleRate, channels, totalFrames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(int, int) float32 {
		return value
	})
}

// NewRampSource produces frame*step on every channel, handy for checking
// which frame of a block was sampled.
func NewRampSource(sampleRate, channels, totalFrames int, step float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame int, _ int) float32 {
		return float32(frame) * step
	})
}

// NewSineSource produces a sine at frequency Hz on every channel.
func NewSineSource(sampleRate, channels, totalFrames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame int, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.Closed = true
	return nil
}

// Generated reports how many frames have been produced so far.
func (m *MockSource) Generated() int { return m.generated }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.FailAfter >= 0 && m.generated >= m.FailAfter {
		return 0, ErrMockRead
	}
	if m.generated >= m.totalFrames {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalFrames-m.generated)
	if m.FailAfter >= 0 {
		frames = min(frames, m.FailAfter-m.generated)
	}

	for f := range frames {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.generated+f, ch)
		}
	}
	m.generated += frames

	if m.generated >= m.totalFrames {
		return frames * m.channels, io.EOF
	}

	return frames * m.channels, nil
}
