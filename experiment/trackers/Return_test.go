package trackers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	ts "github.com/samuelfneumann/gotabular/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func episode(rewards ...float64) []ts.TimeStep {
	steps := []ts.TimeStep{ts.New(ts.First, 0, 0.9, "s0", 0)}
	for i, r := range rewards {
		t := ts.Mid
		if i == len(rewards)-1 {
			t = ts.Last
		}
		steps = append(steps, ts.New(t, r, 0.9, "s0", i+1))
	}
	return steps
}

func TestReturnTracksEpisodes(t *testing.T) {
	r := NewReturn("")

	_, ok := r.Last()
	assert.False(t, ok)

	for _, step := range episode(10, 40, -50) {
		r.Track(step)
	}
	for _, step := range episode(1, 2) {
		r.Track(step)
	}

	assert.Equal(t, []float64{0, 3}, r.Data())
	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, 3.0, last)

	// Unfinished episodes are not recorded
	r.Track(ts.New(ts.First, 0, 0.9, "s0", 0))
	r.Track(ts.New(ts.Mid, 5, 0.9, "s0", 1))
	assert.Len(t, r.Data(), 2)

	// Saving without a file is a no-op
	assert.NoError(t, r.Save())
}

func TestReturnPanicsOnNonSequentialSteps(t *testing.T) {
	r := NewReturn("")
	r.Track(ts.New(ts.First, 0, 0.9, "s0", 0))
	assert.Panics(t, func() { r.Track(ts.New(ts.Mid, 1, 0.9, "s0", 2)) })
}

func TestReturnSaveAndLoad(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "returns.bin")
	r := NewReturn(filename)
	for _, step := range episode(1, 1, 1) {
		r.Track(step)
	}
	require.NoError(t, r.Save())

	data, err := LoadData(filename)
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, data)

	_, err = LoadData(filepath.Join(t.TempDir(), "missing.bin"))
	assert.Error(t, err)
}

func TestPlot(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "returns.html")
	err := Plot(filename, "returns",
		Series{"q-learning", []float64{1, 2, 3}},
		Series{"sarsa", []float64{0, 1}},
	)
	require.NoError(t, err)

	html, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(html), "sarsa"))

	assert.Error(t, Plot(filename, "empty"))
}
