package policy

import (
	"github.com/pkg/errors"
	"github.com/samuelfneumann/gotabular/environment"
	"github.com/samuelfneumann/gotabular/sampler"
	ts "github.com/samuelfneumann/gotabular/timestep"
)

// Stochastic is a fixed stochastic policy: in each state it chooses
// among weighted actions, independent of any learned values
type Stochastic struct {
	weights map[ts.State][]sampler.Weighted[ts.Action]
	rng     *sampler.Sampler
}

// NewStochastic returns a new Stochastic policy choosing actions with
// the given weights. Every state must belong to m, every action must be
// legal in its state, and the weights of each state must be
// normalizable.
func NewStochastic(m *environment.Model,
	weights map[ts.State][]sampler.Weighted[ts.Action],
	rng *sampler.Sampler) (*Stochastic, error) {
	policy := make(map[ts.State][]sampler.Weighted[ts.Action], len(weights))

	for s, actions := range weights {
		if !m.HasState(s) {
			return nil, errors.Wrapf(environment.ErrUnknownState,
				"newStochastic: state %v", s)
		}

		for _, a := range actions {
			if !m.Legal(s, a.Value) {
				return nil, errors.Wrapf(environment.ErrInvalidAction,
					"newStochastic: action %v is not legal in state %v",
					a.Value, s)
			}
		}

		if err := sampler.Validate(sampler.Weights(actions)); err != nil {
			return nil, errors.Wrapf(err, "newStochastic: state %v", s)
		}

		policy[s] = append([]sampler.Weighted[ts.Action](nil), actions...)
	}

	return &Stochastic{policy, rng}, nil
}

// SelectAction samples an action for the state of t
func (p *Stochastic) SelectAction(t ts.TimeStep) (ts.Action, error) {
	actions, ok := p.weights[t.State]
	if !ok {
		return "", errors.Wrapf(environment.ErrUnknownState,
			"selectAction: policy has no actions for state %v", t.State)
	}
	return sampler.Sample(p.rng, actions)
}

// Probabilities returns the normalized action probabilities in state s
func (p *Stochastic) Probabilities(s ts.State) ([]sampler.Weighted[ts.Action],
	error) {
	actions, ok := p.weights[s]
	if !ok {
		return nil, errors.Wrapf(environment.ErrUnknownState,
			"probabilities: state %v", s)
	}

	probs, err := sampler.Normalize(actions)
	if err != nil {
		return nil, err
	}

	out := make([]sampler.Weighted[ts.Action], len(actions))
	for i, a := range actions {
		out[i] = sampler.Weighted[ts.Action]{Value: a.Value, Weight: probs[i]}
	}
	return out, nil
}
