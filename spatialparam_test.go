// SPDX-License-Identifier: EPL-2.0

package spatialparam

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/spatialparam/audio"
	"github.com/ik5/spatialparam/bridge"
	"github.com/ik5/spatialparam/formats/wav"
	"github.com/ik5/spatialparam/internal/audiotest"
	"github.com/ik5/spatialparam/offline"
	"github.com/ik5/spatialparam/param"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodersKnowEveryFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"aif", "aiff", "mp3", "oga", "ogg", "wav"}, Decoders().Formats())

	_, err := Decoders().ForPath("curve.flac")
	assert.ErrorIs(t, err, audio.ErrUnknownFormat)
}

func TestOpenCurve(t *testing.T) {
	t.Parallel()

	log, _ := logtest.NewNullLogger()
	path := filepath.Join(t.TempDir(), "curve.WAV")
	f, err := os.Create(path)
	require.NoError(t, err)
	_, err = wav.NewRecorder(wav.WithLogger(log)).Record(f, audiotest.NewConstantSource(8000, 1, 800, 0.5), 0)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	src, err := OpenCurve(Decoders(), path)
	require.NoError(t, err)
	assert.Equal(t, 8000, src.SampleRate())
	assert.Equal(t, 1, src.Channels())

	buf := make([]float32, 10)
	n, err := audio.ReadFull(src, buf)
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.InDelta(t, 0.5, buf[0], 1e-4)
	require.NoError(t, src.Close())

	_, err = OpenCurve(Decoders(), filepath.Join(t.TempDir(), "missing.wav"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

type automatedPanner struct {
	audiotest.Panner
	x *param.Slot
}

func (p *automatedPanner) Param(name string) (*param.Slot, error) {
	if name != "positionX" {
		return nil, bridge.ErrUnknownParameter
	}

	return p.x, nil
}

func (p *automatedPanner) ParamNames() []string { return []string{"positionX"} }

func TestCreatePanner(t *testing.T) {
	t.Parallel()

	log, _ := logtest.NewNullLogger()
	reg, err := bridge.NewRegistry(bridge.WithLogger(log))
	require.NoError(t, err)
	ctx, err := offline.New(48000, &audiotest.Listener{}, offline.WithRegistry(reg), offline.WithLogger(log))
	require.NoError(t, err)

	native := &automatedPanner{x: param.NewSlot("positionX", 0)}
	node, err := CreatePanner(reg, ctx, native, bridge.WithLogger(log))
	require.NoError(t, err)
	assert.IsType(t, &bridge.Native{}, node)
	assert.Zero(t, reg.Len())

	node, err = CreatePanner(reg, ctx, &audiotest.Panner{}, bridge.WithLogger(log))
	require.NoError(t, err)
	assert.IsType(t, &bridge.Panner{}, node)
	assert.Len(t, node.ParamNames(), 15)
	assert.Equal(t, 1, reg.Len())

	_, err = CreatePanner(reg, ctx, &audiotest.Panner{}, bridge.WithBlockSize(0))
	assert.ErrorIs(t, err, bridge.ErrInvalidBlockSize)
}

func TestCreatePannerValidatesNativeShortcut(t *testing.T) {
	t.Parallel()

	log, _ := logtest.NewNullLogger()
	reg, err := bridge.NewRegistry(bridge.WithLogger(log))
	require.NoError(t, err)
	ctx, err := offline.New(48000, &audiotest.Listener{}, offline.WithLogger(log))
	require.NoError(t, err)

	native := &automatedPanner{x: param.NewSlot("positionX", 0)}

	_, err = CreatePanner(reg, ctx, native, bridge.WithLogger(log), bridge.WithBlockSize(0))
	require.ErrorIs(t, err, bridge.ErrInvalidBlockSize)
	assert.ErrorIs(t, err, bridge.ErrConfiguration)

	_, err = CreatePanner(reg, ctx, native, bridge.WithLogger(log), bridge.WithTolerance(-1))
	assert.ErrorIs(t, err, bridge.ErrInvalidTolerance)
}
