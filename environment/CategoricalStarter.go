package environment

import (
	"github.com/pkg/errors"
	"github.com/samuelfneumann/gotabular/sampler"
	"github.com/samuelfneumann/gotabular/timestep"
)

// SingleStart is a Starter that always starts episodes in the same
// state
type SingleStart struct {
	state timestep.State
}

// NewSingleStart returns a Starter that always returns state s. An
// error is returned if s is not a state of m.
func NewSingleStart(s timestep.State, m *Model) (*SingleStart, error) {
	if !m.HasState(s) {
		return nil, errors.Wrapf(ErrUnknownState, "newSingleStart: %v", s)
	}
	return &SingleStart{s}, nil
}

// Start returns the starting state
func (s *SingleStart) Start() timestep.State {
	return s.state
}

// CategoricalStarter samples starting states from a weighted
// distribution over the states of a Model
type CategoricalStarter struct {
	states []sampler.Weighted[timestep.State]
	rng    *sampler.Sampler
}

// NewCategoricalStarter returns a new CategoricalStarter sampling from
// the weighted states using rng. All states must belong to m and the
// weights must be normalizable.
func NewCategoricalStarter(states []sampler.Weighted[timestep.State],
	m *Model, rng *sampler.Sampler) (*CategoricalStarter, error) {
	if err := sampler.Validate(sampler.Weights(states)); err != nil {
		return nil, errors.Wrap(err, "newCategoricalStarter")
	}

	for _, s := range states {
		if !m.HasState(s.Value) {
			return nil, errors.Wrapf(ErrUnknownState,
				"newCategoricalStarter: %v", s.Value)
		}
	}

	weighted := make([]sampler.Weighted[timestep.State], len(states))
	copy(weighted, states)
	return &CategoricalStarter{weighted, rng}, nil
}

// Start returns a starting state
func (c *CategoricalStarter) Start() timestep.State {
	s, err := sampler.Sample(c.rng, c.states)
	if err != nil {
		// Weights were validated on construction
		panic(err)
	}
	return s
}
