// SPDX-License-Identifier: EPL-2.0

package bridge

import (
	goaudio "github.com/go-audio/audio"
)

// Snapshot is the set of channel values captured for one block.
type Snapshot struct {
	// Time is the block start in seconds.
	Time   float64
	Values []float32
}

// Slice returns the sub-snapshot of channels [from, to), sharing Time.
func (s Snapshot) Slice(from, to int) Snapshot {
	return Snapshot{Time: s.Time, Values: s.Values[from:to:to]}
}

// Sampler reads the first frame of an encoder's signal once per block into
// a one-frame buffer. Values are held for the whole block, so frame 0 is
// the only frame that needs rendering.
type Sampler struct {
	enc   *Encoder
	frame *goaudio.Float32Buffer
}

func NewSampler(enc *Encoder) *Sampler {
	return &Sampler{
		enc: enc,
		frame: &goaudio.Float32Buffer{
			Format:         enc.Format(),
			Data:           make([]float32, enc.Channels()),
			SourceBitDepth: 32,
		},
	}
}

// Sample captures every channel at the block starting at t. Slots never
// written read as 0. It never fails. The snapshot owns its values.
func (s *Sampler) Sample(t float64) Snapshot {
	snap := s.peek(t)
	snap.Values = append([]float32(nil), snap.Values...)

	return snap
}

// peek is Sample without the copy; the values are only valid until the
// next call.
func (s *Sampler) peek(t float64) Snapshot {
	s.enc.RenderFrame(t, s.frame.Data)

	return Snapshot{Time: t, Values: s.frame.Data}
}

// Frame is the buffer holding the most recently sampled frame.
func (s *Sampler) Frame() *goaudio.Float32Buffer { return s.frame }

// Channels is the snapshot width.
func (s *Sampler) Channels() int { return len(s.frame.Data) }
