// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ik5/spatialparam/audio"
	"github.com/ik5/spatialparam/utils"
	"github.com/sirupsen/logrus"
)

const recordBitDepth = 16

// Recorder writes an audio.Source to a 16-bit PCM WAV file with the
// source's channel count and sample rate.
type Recorder struct {
	fullScale float32
	chunk     int
	log       logrus.FieldLogger
}

type RecorderOption func(*Recorder)

// WithFullScale sets the value written as PCM full scale. Control signals
// carry positions in metres, so the default of 1 clips anything beyond it.
func WithFullScale(v float32) RecorderOption {
	return func(r *Recorder) {
		r.fullScale = v
	}
}

// WithChunkFrames sets how many frames are pulled from the source per read.
func WithChunkFrames(frames int) RecorderOption {
	return func(r *Recorder) {
		if frames > 0 {
			r.chunk = frames
		}
	}
}

func WithLogger(log logrus.FieldLogger) RecorderOption {
	return func(r *Recorder) {
		if log != nil {
			r.log = log
		}
	}
}

func NewRecorder(opts ...RecorderOption) *Recorder {
	r := &Recorder{
		fullScale: 1,
		chunk:     1024,
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	return r
}

// Record pulls up to frames frames from src (all of it when frames <= 0)
// and writes them to w. It returns the number of frames written. The
// source is not closed.
func (r *Recorder) Record(w io.WriteSeeker, src audio.Source, frames int) (int, error) {
	fs := float64(r.fullScale)
	if !(fs > 0) || math.IsInf(fs, 0) {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidFullScale, r.fullScale)
	}

	channels := src.Channels()
	enc := wav.NewEncoder(w, src.SampleRate(), recordBitDepth, channels, pcmFormat)

	floats := make([]float32, r.chunk*channels)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: src.SampleRate()},
		Data:           make([]int, len(floats)),
		SourceBitDepth: recordBitDepth,
	}

	inv := 1 / r.fullScale
	written := 0
	for frames <= 0 || written < frames {
		want := r.chunk
		if frames > 0 {
			want = min(want, frames-written)
		}

		n, readErr := src.ReadSamples(floats[:want*channels])
		n -= n % channels
		if n > 0 {
			for i, v := range floats[:n] {
				buf.Data[i] = utils.ToPCM(v*inv, recordBitDepth)
			}
			chunk := &goaudio.IntBuffer{Format: buf.Format, Data: buf.Data[:n], SourceBitDepth: recordBitDepth}
			if err := enc.Write(chunk); err != nil {
				_ = enc.Close()
				return written, fmt.Errorf("writing wav samples: %w", err)
			}
			written += n / channels
		}

		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			_ = enc.Close()
			return written, fmt.Errorf("reading source: %w", readErr)
		}
		if n == 0 {
			_ = enc.Close()
			return written, io.ErrNoProgress
		}
	}

	if err := enc.Close(); err != nil {
		return written, fmt.Errorf("finishing wav file: %w", err)
	}

	r.log.WithFields(logrus.Fields{
		"function":    "Record",
		"frames":      written,
		"channels":    channels,
		"sample_rate": src.SampleRate(),
	}).Debug("Recorded source to wav")

	return written, nil
}
