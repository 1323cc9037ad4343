package sampler

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestSampleConvergesToNormalizedWeights(t *testing.T) {
	s := New(1923)
	items := []Weighted[string]{{"x", 1}, {"y", 3}}

	const draws = 100_000
	count := 0
	for i := 0; i < draws; i++ {
		v, err := Sample(s, items)
		require.NoError(t, err)
		if v == "y" {
			count++
		}
	}

	freq := float64(count) / draws
	assert.InDelta(t, 0.75, freq, 0.01)
}

func TestSampleDegenerate(t *testing.T) {
	s := New(1)

	tests := map[string][]Weighted[int]{
		"empty":    {},
		"zero sum": {{1, 0}, {2, 0}},
		"negative": {{1, 1}, {2, -0.5}},
		"nan":      {{1, math.NaN()}},
		"inf":      {{1, math.Inf(1)}, {2, 1}},
	}

	for name, items := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Sample(s, items)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDegenerateDistribution))
		})
	}
}

func TestSampleIgnoresZeroWeights(t *testing.T) {
	s := New(7)
	items := []Weighted[string]{{"never", 0}, {"always", 0.2}, {"nope", 0}}

	for i := 0; i < 1000; i++ {
		v, err := Sample(s, items)
		require.NoError(t, err)
		require.Equal(t, "always", v)
	}
}

func TestSampleSeeded(t *testing.T) {
	items := []Weighted[int]{{0, 0.7}, {1, 1.0}, {2, 0.2}}

	draw := func(seed uint64) []int {
		s := New(seed)
		out := make([]int, 200)
		for i := range out {
			v, err := Sample(s, items)
			require.NoError(t, err)
			out[i] = v
		}
		return out
	}

	assert.Equal(t, draw(42), draw(42))
}

func TestUniform(t *testing.T) {
	s := New(31415)
	const n, draws = 4, 40_000

	obs := make([]float64, n)
	for i := 0; i < draws; i++ {
		k, err := s.Uniform(n)
		require.NoError(t, err)
		obs[k]++
	}

	exp := make([]float64, n)
	for i := range exp {
		exp[i] = draws / n
	}

	chi := stat.ChiSquare(obs, exp)
	p := 1 - distuv.ChiSquared{K: n - 1}.CDF(chi)
	assert.Greater(t, p, 0.001, "chi-square %v over %v", chi, obs)

	_, err := s.Uniform(0)
	assert.True(t, errors.Is(err, ErrDegenerateDistribution))
}

func TestFloat64Range(t *testing.T) {
	s := New(3)
	for i := 0; i < 10_000; i++ {
		u := s.Float64()
		require.GreaterOrEqual(t, u, 0.0)
		require.Less(t, u, 1.0)
	}
}

func TestNormalize(t *testing.T) {
	probs, err := Normalize([]Weighted[string]{{"a0", 0.7}, {"a1", 1.0},
		{"a2", 0.2}})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.7 / 1.9, 1.0 / 1.9, 0.2 / 1.9},
		probs, 1e-12)
}
