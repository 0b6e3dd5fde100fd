// SPDX-License-Identifier: EPL-2.0

package spatialparam

import (
	"fmt"
	"os"

	"github.com/ik5/spatialparam/audio"
	"github.com/ik5/spatialparam/bridge"
	"github.com/ik5/spatialparam/formats/aiff"
	"github.com/ik5/spatialparam/formats/mp3"
	"github.com/ik5/spatialparam/formats/vorbis"
	"github.com/ik5/spatialparam/formats/wav"
)

// Decoders returns a registry with every bundled format.
func Decoders() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})

	return reg
}

type fileSource struct {
	audio.Source
	f *os.File
}

func (s *fileSource) Close() error {
	srcErr := s.Source.Close()
	if err := s.f.Close(); err != nil {
		return fmt.Errorf("closing curve file: %w", err)
	}

	return srcErr
}

// OpenCurve decodes the file at path with the decoder registered for its
// extension. Closing the source closes the file.
func OpenCurve(reg *audio.Registry, path string) (audio.Source, error) {
	dec, err := reg.ForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening curve: %w", err)
	}

	src, err := dec.Decode(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return &fileSource{Source: src, f: f}, nil
}

// CreatePanner returns native itself when it already exposes automatable
// parameters, and a bridged panner otherwise. opts are validated either way.
func CreatePanner(reg *bridge.Registry, ctx bridge.AudioContext, native bridge.NativePanner, opts ...bridge.Option) (bridge.PannerNode, error) {
	if _, err := bridge.NewConfig(opts...); err != nil {
		return nil, err
	}

	if native != nil && bridge.HasNativeParams(native) {
		return bridge.NewNative(native)
	}

	f, err := bridge.NewFactory(reg, opts...)
	if err != nil {
		return nil, err
	}

	return f.NewPanner(ctx, native)
}
