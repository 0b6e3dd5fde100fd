// SPDX-License-Identifier: EPL-2.0

package bridge

import (
	"fmt"
	"sync"

	vecmath "github.com/cwbudde/algo-vecmath"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/spatialparam/param"
	"github.com/sirupsen/logrus"
)

// Encoder turns an ordered set of slots into a multi-channel control-rate
// signal. Each channel is a constant one signal scaled by its slot's block
// value, so a channel carries the slot value for the whole block.
//
// A merged encoder concatenates parts; a part shared by several merged
// encoders (the context listener) is evaluated once per block time.
type Encoder struct {
	layout     *Layout
	sampleRate int
	blockSize  int

	slots []*param.Slot
	parts []*Encoder

	mu      sync.Mutex
	cached  bool
	cacheAt float64
	dc      []float64
	gains   []float64
	levels  []float64
	scratch []float32

	// audio.Source read position, in frames
	frame    int64
	blockBuf []float32
	pending  []float32

	log logrus.FieldLogger
}

// NewEncoder creates one slot per layout channel.
func NewEncoder(layout *Layout, sampleRate, blockSize int, log logrus.FieldLogger) (*Encoder, error) {
	if layout == nil {
		return nil, fmt.Errorf("%w: nil layout", ErrInvalidLayout)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSampleRate, sampleRate)
	}
	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBlockSize, blockSize)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	n := layout.Channels()
	e := &Encoder{
		layout:     layout,
		sampleRate: sampleRate,
		blockSize:  blockSize,
		slots:      make([]*param.Slot, n),
		dc:         make([]float64, n),
		gains:      make([]float64, n),
		levels:     make([]float64, n),
		scratch:    make([]float32, blockSize),
		log:        log,
	}
	for i, name := range layout.names {
		e.slots[i] = param.NewSlot(name, i, param.WithLogger(log))
		e.dc[i] = 1
	}

	return e, nil
}

// Merge returns an encoder whose channels are e's followed by other's,
// with other's names prefixed. Slots are shared, not copied.
func (e *Encoder) Merge(other *Encoder, prefix string) (*Encoder, error) {
	if other.sampleRate != e.sampleRate {
		return nil, fmt.Errorf("%w: merging %d Hz into %d Hz", ErrInvalidSampleRate, other.sampleRate, e.sampleRate)
	}
	if other.blockSize != e.blockSize {
		return nil, fmt.Errorf("%w: merging %d frames into %d", ErrBlockSizeMismatch, other.blockSize, e.blockSize)
	}

	layout, err := e.layout.Concat(other.layout, prefix)
	if err != nil {
		return nil, err
	}

	slots := make([]*param.Slot, 0, layout.Channels())
	slots = append(slots, e.slots...)
	slots = append(slots, other.slots...)

	return &Encoder{
		layout:     layout,
		sampleRate: e.sampleRate,
		blockSize:  e.blockSize,
		slots:      slots,
		parts:      []*Encoder{e, other},
		levels:     make([]float64, layout.Channels()),
		log:        e.log,
	}, nil
}

// Slot looks a parameter up by name.
func (e *Encoder) Slot(name string) (*param.Slot, error) {
	i, err := e.layout.Index(name)
	if err != nil {
		return nil, err
	}

	return e.slots[i], nil
}

// Slots returns the slots in channel order.
func (e *Encoder) Slots() []*param.Slot { return append([]*param.Slot(nil), e.slots...) }

// Layout is the channel table of the signal.
func (e *Encoder) Layout() *Layout { return e.layout }

// Format describes the rendered signal.
func (e *Encoder) Format() *goaudio.Format {
	return &goaudio.Format{NumChannels: e.layout.Channels(), SampleRate: e.sampleRate}
}

// Levels returns the value of every channel for the block starting at t.
// The result is memoized for the latest t, so modulation inputs advance
// once per block however many readers share the encoder.
func (e *Encoder) Levels(t float64) []float64 {
	out := make([]float64, e.layout.Channels())
	e.levelsInto(t, out)

	return out
}

// levelsInto copies the levels at t into dst under the encoder lock.
func (e *Encoder) levelsInto(t float64, dst []float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.refresh(t)
	copy(dst, e.levels)
}

// refresh recomputes e.levels unless they are already for t. e.mu must be held.
func (e *Encoder) refresh(t float64) {
	if e.cached && e.cacheAt == t {
		return
	}

	if len(e.parts) > 0 {
		at := 0
		for _, p := range e.parts {
			n := p.layout.Channels()
			p.levelsInto(t, e.levels[at:at+n])
			at += n
		}
	} else {
		for i, s := range e.slots {
			e.gains[i] = s.BlockValue(t, e.sampleRate, e.blockSize, e.scratch)
		}
		vecmath.MulBlock(e.levels, e.dc, e.gains)
	}
	e.cached, e.cacheAt = true, t
}

// RenderFrame writes the first frame of the block at t into dst, one value
// per channel. It does not allocate.
func (e *Encoder) RenderFrame(t float64, dst []float32) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.refresh(t)
	for i, v := range e.levels {
		dst[i] = float32(v)
	}
}

// RenderBlock writes blockSize interleaved frames for the block at t. Values
// are held for the whole block.
func (e *Encoder) RenderBlock(t float64, dst []float32) error {
	channels := e.layout.Channels()
	if len(dst) < e.blockSize*channels {
		return fmt.Errorf("%w: need %d values, got %d", ErrBadArguments, e.blockSize*channels, len(dst))
	}

	e.RenderFrame(t, dst[:channels])
	for f := 1; f < e.blockSize; f++ {
		copy(dst[f*channels:(f+1)*channels], dst[:channels])
	}

	return nil
}

// SampleRate is the context sample rate.
func (e *Encoder) SampleRate() int { return e.sampleRate }

// Channels is the number of control channels.
func (e *Encoder) Channels() int { return e.layout.Channels() }

// BufSize is one block of interleaved values.
func (e *Encoder) BufSize() int { return e.blockSize * e.layout.Channels() }

// Close disconnects every modulation input of the encoder's slots,
// including slots shared through Merge.
func (e *Encoder) Close() error {
	for _, s := range e.slots {
		s.DisconnectAll()
	}

	return nil
}

// ReadSamples makes the Encoder an audio.Source producing consecutive
// blocks from time 0. Reading it advances modulation inputs, so it should
// not be read while a sampler drives the same slots.
func (e *Encoder) ReadSamples(dst []float32) (int, error) {
	channels := e.layout.Channels()
	if len(dst)%channels != 0 {
		return 0, fmt.Errorf("%w: %d values for %d channels", ErrBadArguments, len(dst), channels)
	}

	written := 0
	for written < len(dst) {
		if len(e.pending) == 0 {
			if e.blockBuf == nil {
				e.blockBuf = make([]float32, e.blockSize*channels)
			}
			t := float64(e.frame) / float64(e.sampleRate)
			if err := e.RenderBlock(t, e.blockBuf); err != nil {
				return written, err
			}
			e.frame += int64(e.blockSize)
			e.pending = e.blockBuf
		}

		n := copy(dst[written:], e.pending)
		e.pending = e.pending[n:]
		written += n
	}

	return written, nil
}
