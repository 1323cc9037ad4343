// Package sampler implements weighted random choice over finite sets.
//
// The same primitive is used for choosing actions from stochastic
// policies, for choosing exploratory actions in ε-greedy policies, and
// for sampling next states from environment transition distributions.
// Weights need not sum to 1; they are normalized at sampling time.
package sampler

import (
	"math"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrDegenerateDistribution is returned when a weighted list cannot be
// sampled from: it is empty, holds a negative or non-finite weight, or
// its weights sum to zero.
var ErrDegenerateDistribution = errors.New("degenerate distribution")

// Weighted pairs a value with a non-negative, unnormalized weight
type Weighted[T any] struct {
	Value  T
	Weight float64
}

// Sampler draws random numbers from a single seeded source. A Sampler
// is not safe for concurrent use.
type Sampler struct {
	seed    uint64
	src     rand.Source
	uniform distuv.Uniform
}

// New returns a new Sampler whose source is seeded with seed
func New(seed uint64) *Sampler {
	src := rand.NewSource(seed)
	return &Sampler{
		seed:    seed,
		src:     src,
		uniform: distuv.Uniform{Min: 0.0, Max: 1.0, Src: src},
	}
}

// Seed returns the seed the Sampler was created with
func (s *Sampler) Seed() uint64 {
	return s.seed
}

// Float64 returns a uniform random number in [0, 1)
func (s *Sampler) Float64() float64 {
	return s.uniform.Rand()
}

// Choose returns index i with probability weights[i] / sum(weights)
func (s *Sampler) Choose(weights []float64) (int, error) {
	if err := Validate(weights); err != nil {
		return -1, err
	}

	// Single-entry lists need no draw
	if len(weights) == 1 {
		return 0, nil
	}

	dist := distuv.NewCategorical(weights, s.src)
	return int(dist.Rand()), nil
}

// Uniform returns an index in [0, n) with equal probability
func (s *Sampler) Uniform(n int) (int, error) {
	if n <= 0 {
		return -1, errors.Wrapf(ErrDegenerateDistribution,
			"uniform: cannot choose from %d items", n)
	}

	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1.0
	}
	return s.Choose(weights)
}

// Validate returns an error wrapping ErrDegenerateDistribution if
// weights cannot be normalized into a probability distribution
func Validate(weights []float64) error {
	if len(weights) == 0 {
		return errors.Wrap(ErrDegenerateDistribution, "validate: no weights")
	}

	var sum float64
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return errors.Wrapf(ErrDegenerateDistribution,
				"validate: weight %d is not finite (%v)", i, w)
		}
		if w < 0 {
			return errors.Wrapf(ErrDegenerateDistribution,
				"validate: weight %d is negative (%v)", i, w)
		}
		sum += w
	}

	if sum <= 0 {
		return errors.Wrap(ErrDegenerateDistribution,
			"validate: weights sum to zero")
	}
	return nil
}

// Sample returns the value of one entry of items, chosen with
// probability proportional to its weight
func Sample[T any](s *Sampler, items []Weighted[T]) (T, error) {
	weights := Weights(items)

	i, err := s.Choose(weights)
	if err != nil {
		var zero T
		return zero, err
	}
	return items[i].Value, nil
}

// Weights returns the weights of items in order
func Weights[T any](items []Weighted[T]) []float64 {
	weights := make([]float64, len(items))
	for i := range items {
		weights[i] = items[i].Weight
	}
	return weights
}

// Normalize returns the probabilities of items, that is each weight
// divided by the sum of all weights
func Normalize[T any](items []Weighted[T]) ([]float64, error) {
	weights := Weights(items)
	if err := Validate(weights); err != nil {
		return nil, err
	}

	floats.Scale(1/floats.Sum(weights), weights)
	return weights, nil
}
