// SPDX-License-Identifier: EPL-2.0

package bridge

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/spatialparam/internal/audiotest"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectorStartsAtZero(t *testing.T) {
	t.Parallel()

	d := NewDetector(PannerLayout(), 0)

	assert.True(t, d.Changed(make([]float32, PannerChannels)).Empty())

	set := d.Changed([]float32{0, 0, 0, 0, 0, -1})
	assert.False(t, set.Has(0))
	assert.True(t, set.Has(1))
}

func TestDetectorStrictAndTolerance(t *testing.T) {
	t.Parallel()

	strict := NewDetector(PannerLayout(), 0)
	loose := NewDetector(PannerLayout(), 0.01)

	tiny := []float32{0.001, 0, 0, 0, 0, 0}
	assert.True(t, strict.Changed(tiny).Has(0))
	assert.True(t, loose.Changed(tiny).Empty())

	nan := []float32{float32(math.NaN()), 0, 0, 0, 0, 0}
	assert.True(t, strict.Changed(nan).Has(0))
	assert.True(t, loose.Changed(nan).Has(0))
}

func TestDetectorCommitOnlyTouchesSet(t *testing.T) {
	t.Parallel()

	d := NewDetector(PannerLayout(), 0)
	values := []float32{1, 2, 3, 4, 5, 6}

	d.Commit(values, ChangeSet(0).with(1))

	assert.Equal(t, []float32{0, 0, 0, 4, 5, 6}, d.Previous())
	set := d.Changed(values)
	assert.True(t, set.Has(0))
	assert.False(t, set.Has(1))
}

func nullLogger() logrus.FieldLogger {
	log, _ := logtest.NewNullLogger()
	return log
}

func TestPannerSinkOrder(t *testing.T) {
	t.Parallel()

	target := &audiotest.Panner{}
	sink, err := NewPannerSink(PannerLayout(), target, nullLogger())
	require.NoError(t, err)
	chain := NewChain(NewDetector(PannerLayout(), 0), sink)

	set, err := chain.Update([]float32{1, 2, 3, 0, 0, -1})
	require.NoError(t, err)
	assert.True(t, set.Has(0))
	assert.True(t, set.Has(1))

	assert.Equal(t, []audiotest.Call{
		{Method: "SetPosition", Args: []float64{1, 2, 3}},
		{Method: "SetOrientation", Args: []float64{0, 0, -1}},
	}, target.Calls())
}

func TestListenerSinkSendsForwardAndUpTogether(t *testing.T) {
	t.Parallel()

	target := &audiotest.Listener{}
	sink, err := NewListenerSink(ListenerLayout(), target, nullLogger())
	require.NoError(t, err)
	chain := NewChain(NewDetector(ListenerLayout(), 0), sink)

	_, err = chain.Update([]float32{0, 0, 0, 0, 0, -1, 0, 1, 0})
	require.NoError(t, err)

	// Only forward moves; up is sent with its current value.
	_, err = chain.Update([]float32{0, 0, 0, 1, 0, 0, 0, 1, 0})
	require.NoError(t, err)

	assert.Equal(t, []audiotest.Call{
		{Method: "SetOrientation", Args: []float64{0, 0, -1, 0, 1, 0}},
		{Method: "SetOrientation", Args: []float64{1, 0, 0, 0, 1, 0}},
	}, target.Calls())
}

func TestSinkFailureStopsAndRetries(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	target := &audiotest.Panner{}
	target.FailOn("SetOrientation", boom)

	log, hook := logtest.NewNullLogger()
	sink, err := NewPannerSink(PannerLayout(), target, log)
	require.NoError(t, err)
	chain := NewChain(NewDetector(PannerLayout(), 0), sink)

	values := []float32{1, 2, 3, 4, 5, 6}
	_, err = chain.Update(values)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, target.Count("SetPosition"))
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)

	// Position was committed, orientation was not.
	assert.Equal(t, []float32{1, 2, 3, 0, 0, 0}, chain.Detector().Previous())

	target.FailOn("SetOrientation", nil)
	set, err := chain.Update(values)
	require.NoError(t, err)
	assert.False(t, set.Has(0))
	assert.True(t, set.Has(1))
	assert.Equal(t, 1, target.Count("SetPosition"))
	assert.Equal(t, 1, target.Count("SetOrientation"))
}

func TestSinkRejectsLayoutWithoutGroups(t *testing.T) {
	t.Parallel()

	_, err := NewListenerSink(PannerLayout(), &audiotest.Listener{}, nullLogger())
	assert.ErrorIs(t, err, ErrInvalidLayout)
}
