package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/sweepsim/internal/match"
)

func sampleResult() *match.Result {
	return &match.Result{
		Poses: []match.Pose{
			{X: 1.8761, Y: -6.3738, Yaw: 0},
			{X: 1.9, Y: -6.3, Yaw: 0.5},
		},
		Times:          []float64{0.016, 0.032},
		Score:          1240,
		CleanedPercent: 6.0,
		StepsTaken:     2,
		Metrics:        map[string]float64{"distance": 0.1},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runID, err := st.Save("U19", "bump_and_turn", 0.016, 42, sampleResult())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(runID, "U19_"))

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, "U19", meta.Subleague)
	assert.Equal(t, int64(42), meta.Seed)
	assert.Equal(t, 1240, meta.Score)
	assert.Equal(t, 0.1, meta.Metrics["distance"])

	poses, times, err := st.LoadTrajectory(runID)
	require.NoError(t, err)
	require.Len(t, poses, 2)
	require.Len(t, times, 2)
	assert.InDelta(t, 1.8761, poses[0].X, 1e-6)
	assert.InDelta(t, 0.5, poses[1].Yaw, 1e-6)
	assert.InDelta(t, 0.032, times[1], 1e-6)
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	_, err := st.Save("U19", "none", 0.016, 1, sampleResult())
	require.NoError(t, err)
	_, err = st.Save("U14", "none", 0.016, 2, sampleResult())
	require.NoError(t, err)

	runs, err := st.List()
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestStoreListEmptyDir(t *testing.T) {
	st := New(t.TempDir() + "/missing")
	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestStoreLoadMissingRun(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	_, err := st.Load("nope")
	assert.Error(t, err)
}
