// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/spatialparam/utils"
)

// Resampler converts src to another sample rate with cubic interpolation,
// preserving the channel count. When downsampling, incoming frames pass
// through a one-pole low-pass first.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames per output frame
	channels int

	// hist[1] and hist[2] bracket the read position; hist[0] and hist[3]
	// are the outer spline points.
	hist   [4][]float32
	primed bool
	pos    float64
	pad    int // copies of the last frame appended after EOF

	chunk   []float32
	chunkN  int
	chunkAt int
	srcEOF  bool

	smooth      []float32
	useFilter   bool
	filterAlpha float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:       src,
		dstRate:   dstRate,
		ratio:     ratio,
		channels:  channels,
		chunk:     make([]float32, 1024*channels),
		smooth:    make([]float32, channels),
		useFilter: ratio > 1.0,
	}
	if r.useFilter {
		r.filterAlpha = 0.5
	}

	for i := range r.hist {
		r.hist[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// nextFrame copies the next source frame into dst. It reports false once the
// source is exhausted.
func (r *Resampler) nextFrame(dst []float32, first bool) (bool, error) {
	if r.chunkAt >= r.chunkN {
		if r.srcEOF {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.chunk)
		r.chunkN = n - n%r.channels
		r.chunkAt = 0

		if errors.Is(err, io.EOF) {
			r.srcEOF = true
		} else if err != nil {
			return false, fmt.Errorf("%w", err)
		}
		if r.chunkN == 0 {
			if r.srcEOF {
				return false, nil
			}
			return false, io.ErrNoProgress
		}
	}

	copy(dst, r.chunk[r.chunkAt:r.chunkAt+r.channels])
	r.chunkAt += r.channels

	if r.useFilter {
		if first {
			copy(r.smooth, dst)
		}
		for c := range dst {
			dst[c] = r.filterAlpha*dst[c] + (1-r.filterAlpha)*r.smooth[c]
			r.smooth[c] = dst[c]
		}
	}

	return true, nil
}

// shift drops hist[0] and pulls a new frame into hist[3], repeating the last
// frame once the source has ended.
func (r *Resampler) shift() error {
	oldest := r.hist[0]
	r.hist[0], r.hist[1], r.hist[2] = r.hist[1], r.hist[2], r.hist[3]
	r.hist[3] = oldest

	if r.pad == 0 {
		ok, err := r.nextFrame(r.hist[3], false)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}

	copy(r.hist[3], r.hist[2])
	r.pad++

	return nil
}

func (r *Resampler) prime() error {
	ok, err := r.nextFrame(r.hist[1], true)
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}
	copy(r.hist[0], r.hist[1])

	for _, h := range r.hist[2:] {
		if r.pad == 0 {
			ok, err = r.nextFrame(h, false)
			if err != nil {
				return err
			}
			if ok {
				continue
			}
		}
		r.pad++
	}
	if r.pad > 0 {
		// ran out while priming: repeat the last real frame forward
		last := 1 + (2 - min(r.pad, 2))
		for i := last + 1; i < len(r.hist); i++ {
			copy(r.hist[i], r.hist[last])
		}
	}

	r.primed = true

	return nil
}

func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	want := len(dst) / r.channels
	written := 0

	for written < want {
		for r.pos >= 1.0 {
			if err := r.shift(); err != nil {
				return written * r.channels, err
			}
			r.pos -= 1.0
		}

		// hist[1] is a padding copy: every real frame has been emitted.
		if r.pad >= 3 {
			if written == 0 {
				return 0, io.EOF
			}
			return written * r.channels, io.EOF
		}

		x := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(r.hist[0][c], r.hist[1][c], r.hist[2][c], r.hist[3][c], x)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
