// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/spatialparam/internal/audiotest"
)

func drain(t *testing.T, src Source, bufSize int) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, bufSize)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestResampler_SameRateIsIdentity(t *testing.T) {
	t.Parallel()

	src := audiotest.NewRampSource(8000, 1, 300, 0.5)
	got := drain(t, NewResampler(src, 8000), 64)

	if len(got) != 300 {
		t.Fatalf("len = %d, want 300", len(got))
	}
	for i, v := range got {
		if math.Abs(float64(v)-float64(i)*0.5) > 1e-4 {
			t.Fatalf("sample %d = %v, want %v", i, v, float64(i)*0.5)
		}
	}
}

func TestResampler_FrameCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		srcRate  int
		dstRate  int
		channels int
		frames   int
		want     int
	}{
		{name: "upsample x2", srcRate: 8000, dstRate: 16000, channels: 1, frames: 800, want: 1600},
		{name: "downsample /2", srcRate: 16000, dstRate: 8000, channels: 1, frames: 1600, want: 800},
		{name: "44.1k to 48k stereo", srcRate: 44100, dstRate: 48000, channels: 2, frames: 4410, want: 4800},
		{name: "single frame", srcRate: 8000, dstRate: 8000, channels: 1, frames: 1, want: 1},
		{name: "two frames upsampled", srcRate: 8000, dstRate: 16000, channels: 1, frames: 2, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewConstantSource(tt.srcRate, tt.channels, tt.frames, 0.25)
			r := NewResampler(src, tt.dstRate)
			got := drain(t, r, 128*tt.channels)

			frames := len(got) / tt.channels
			if diff := frames - tt.want; diff < -1 || diff > 1 {
				t.Errorf("frames = %d, want %d (+-1)", frames, tt.want)
			}
		})
	}
}

func TestResampler_ConstantStaysConstant(t *testing.T) {
	t.Parallel()

	for _, dst := range []int{4000, 8000, 11025, 48000} {
		src := audiotest.NewConstantSource(8000, 2, 500, -0.75)
		got := drain(t, NewResampler(src, dst), 100)

		for i, v := range got {
			if math.Abs(float64(v)+0.75) > 1e-5 {
				t.Fatalf("dst %d: sample %d = %v, want -0.75", dst, i, v)
			}
		}
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewConstantSource(8000, 2, 10, 0), 16000)
	if _, err := r.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_EmptySource(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewConstantSource(8000, 1, 0, 0), 16000)
	n, err := r.ReadSamples(make([]float32, 8))
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() = (%d, %v), want (0, io.EOF)", n, err)
	}
}

func TestResampler_PropagatesReadError(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(8000, 1, 5000, 0.1)
	src.FailAfter = 2000

	r := NewResampler(src, 16000)
	buf := make([]float32, 256)
	for range 100 {
		_, err := r.ReadSamples(buf)
		if err == nil {
			continue
		}
		if !errors.Is(err, audiotest.ErrMockRead) {
			t.Fatalf("ReadSamples() error = %v, want ErrMockRead", err)
		}
		return
	}
	t.Fatal("ReadSamples() never surfaced the source failure")
}

func TestResampler_Properties(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(44100, 2, 10, 0)
	r := NewResampler(src, 48000)

	if r.SampleRate() != 48000 {
		t.Errorf("SampleRate() = %d, want 48000", r.SampleRate())
	}
	if r.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", r.Channels())
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !src.Closed {
		t.Error("Close() did not close the source")
	}
}
