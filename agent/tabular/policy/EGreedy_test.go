package policy

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/samuelfneumann/gotabular/environment"
	"github.com/samuelfneumann/gotabular/environment/envconfig"
	"github.com/samuelfneumann/gotabular/sampler"
	ts "github.com/samuelfneumann/gotabular/timestep"
	"github.com/samuelfneumann/gotabular/valuetable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

func defaultModel(t *testing.T) *environment.Model {
	t.Helper()
	m, err := envconfig.Default().CreateModel()
	require.NoError(t, err)
	return m
}

func TestEGreedyZeroEpsilonIsArgmax(t *testing.T) {
	table := valuetable.NewZero(defaultModel(t))
	require.NoError(t, table.Set("s0", "a2", 3.5))
	require.NoError(t, table.Set("s1", "a2", -1))

	p, err := NewEGreedy(0, table, sampler.New(5))
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		a, err := p.SelectAction(ts.New(ts.Mid, 0, 1, "s0", i))
		require.NoError(t, err)
		require.Equal(t, ts.Action("a2"), a)

		a, err = p.SelectAction(ts.New(ts.Mid, 0, 1, "s1", i))
		require.NoError(t, err)
		require.Equal(t, ts.Action("a0"), a)
	}
}

func TestEGreedyOneEpsilonIsUniform(t *testing.T) {
	table := valuetable.NewZero(defaultModel(t))
	require.NoError(t, table.Set("s0", "a1", 100))

	p, err := NewEGreedy(1, table, sampler.New(2718))
	require.NoError(t, err)

	const draws = 30_000
	index := map[ts.Action]int{"a0": 0, "a1": 1, "a2": 2}
	obs := make([]float64, 3)
	for i := 0; i < draws; i++ {
		a, err := p.SelectAction(ts.New(ts.Mid, 0, 1, "s0", i))
		require.NoError(t, err)
		obs[index[a]]++
	}

	exp := []float64{draws / 3.0, draws / 3.0, draws / 3.0}
	chi := stat.ChiSquare(obs, exp)
	pValue := 1 - distuv.ChiSquared{K: 2}.CDF(chi)
	assert.Greater(t, pValue, 0.001, "observed %v", obs)
}

func TestEGreedyExplores(t *testing.T) {
	table := valuetable.NewZero(defaultModel(t))
	require.NoError(t, table.Set("s0", "a1", 100))

	p, err := NewEGreedy(0.3, table, sampler.New(99))
	require.NoError(t, err)

	const draws = 30_000
	greedy := 0
	for i := 0; i < draws; i++ {
		a, err := p.SelectAction(ts.New(ts.Mid, 0, 1, "s0", i))
		require.NoError(t, err)
		if a == "a1" {
			greedy++
		}
	}

	// 1 - ε + ε/|A|
	assert.InDelta(t, 0.7+0.1, float64(greedy)/draws, 0.015)
}

func TestEGreedyUnknownState(t *testing.T) {
	table := valuetable.NewZero(defaultModel(t))
	p, err := NewEGreedy(0.1, table, sampler.New(1))
	require.NoError(t, err)

	_, err = p.SelectAction(ts.New(ts.Mid, 0, 1, "s3", 0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, valuetable.ErrUnknownState), err)
}

func TestEGreedyEpsilon(t *testing.T) {
	table := valuetable.NewZero(defaultModel(t))

	_, err := NewEGreedy(-0.1, table, sampler.New(1))
	assert.Error(t, err)
	_, err = NewEGreedy(1.1, table, sampler.New(1))
	assert.Error(t, err)

	p := NewGreedy(table, sampler.New(1))
	assert.Equal(t, 0.0, p.Epsilon())
	require.NoError(t, p.SetEpsilon(0.25))
	assert.Equal(t, 0.25, p.Epsilon())
	assert.Error(t, p.SetEpsilon(2))
	assert.Same(t, table, p.Table())
}

func TestEGreedyDoesNotChangeTable(t *testing.T) {
	table := valuetable.NewZero(defaultModel(t))
	require.NoError(t, table.Set("s0", "a0", 1))
	before := table.Values()

	p, err := NewEGreedy(0.5, table, sampler.New(4))
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		_, err := p.SelectAction(ts.New(ts.Mid, 0, 1, "s0", i))
		require.NoError(t, err)
	}

	assert.Equal(t, before, table.Values())
}
