// Package envconfig provides configuration structs for describing
// finite MDPs and stochastic policies over them. Environment
// configurations in this package are JSON serializable and can be
// decoded by viper through mapstructure.
package envconfig

import (
	"github.com/pkg/errors"
	env "github.com/samuelfneumann/gotabular/environment"
	"github.com/samuelfneumann/gotabular/sampler"
	ts "github.com/samuelfneumann/gotabular/timestep"
)

// Config implements a declarative configuration of an MDP, a designated
// initial state, and optionally a stochastic policy over the MDP
type Config struct {
	InitialState string         `mapstructure:"initial_state" json:"initial_state"`
	States       []StateConfig  `mapstructure:"states" json:"states"`
	Policy       []PolicyConfig `mapstructure:"policy" json:"policy,omitempty"`
}

// StateConfig configures a single state and its legal actions
type StateConfig struct {
	Name    string         `mapstructure:"name" json:"name"`
	Actions []ActionConfig `mapstructure:"actions" json:"actions"`
}

// ActionConfig configures the reward and transitions of an action
type ActionConfig struct {
	Name        string             `mapstructure:"name" json:"name"`
	Reward      float64            `mapstructure:"reward" json:"reward"`
	Transitions []TransitionConfig `mapstructure:"transitions" json:"transitions"`
}

// TransitionConfig configures one possible next state of an action.
// Weights are relative and need not sum to 1.
type TransitionConfig struct {
	Next   string  `mapstructure:"next" json:"next"`
	Weight float64 `mapstructure:"weight" json:"weight"`
}

// PolicyConfig configures the action weights of a stochastic policy in
// a single state
type PolicyConfig struct {
	State   string         `mapstructure:"state" json:"state"`
	Actions []ActionWeight `mapstructure:"actions" json:"actions"`
}

// ActionWeight is the relative weight with which a stochastic policy
// chooses an action
type ActionWeight struct {
	Action string  `mapstructure:"action" json:"action"`
	Weight float64 `mapstructure:"weight" json:"weight"`
}

// Description converts the Config into an environment.Description
func (c Config) Description() env.Description {
	states := make([]env.StateDescription, len(c.States))

	for i, s := range c.States {
		actions := make([]env.ActionDescription, len(s.Actions))

		for j, a := range s.Actions {
			transitions := make([]sampler.Weighted[ts.State],
				len(a.Transitions))
			for k, t := range a.Transitions {
				transitions[k] = sampler.Weighted[ts.State]{
					Value:  ts.State(t.Next),
					Weight: t.Weight,
				}
			}

			actions[j] = env.ActionDescription{
				Action:      ts.Action(a.Name),
				Reward:      a.Reward,
				Transitions: transitions,
			}
		}

		states[i] = env.StateDescription{
			State:   ts.State(s.Name),
			Actions: actions,
		}
	}

	return env.Description{States: states}
}

// CreateModel validates the Config and creates the Model it describes
func (c Config) CreateModel() (*env.Model, error) {
	m, err := env.NewModel(c.Description())
	if err != nil {
		return nil, errors.Wrap(err, "createModel")
	}

	if c.InitialState != "" && !m.HasState(ts.State(c.InitialState)) {
		return nil, errors.Wrapf(env.ErrMalformedModel,
			"createModel: initial state %v is not declared",
			c.InitialState)
	}
	return m, nil
}

// Initial returns the designated initial state
func (c Config) Initial() ts.State {
	return ts.State(c.InitialState)
}

// PolicyWeights returns the stochastic policy as a mapping from state
// to weighted actions, or nil if the Config holds no policy
func (c Config) PolicyWeights() map[ts.State][]sampler.Weighted[ts.Action] {
	if len(c.Policy) == 0 {
		return nil
	}

	weights := make(map[ts.State][]sampler.Weighted[ts.Action], len(c.Policy))
	for _, p := range c.Policy {
		actions := make([]sampler.Weighted[ts.Action], len(p.Actions))
		for i, a := range p.Actions {
			actions[i] = sampler.Weighted[ts.Action]{
				Value:  ts.Action(a.Action),
				Weight: a.Weight,
			}
		}
		weights[ts.State(p.State)] = actions
	}
	return weights
}

// Default returns the three-state MDP used throughout this module,
// starting in s0, together with a stochastic policy over it.
//
// Transition and policy weights are kept as given rather than
// normalized, for example the policy weights of s0 sum to 1.9.
func Default() Config {
	return Config{
		InitialState: "s0",
		States: []StateConfig{
			{
				Name: "s0",
				Actions: []ActionConfig{
					{Name: "a0", Reward: 10, Transitions: []TransitionConfig{
						{Next: "s0", Weight: 1.0},
					}},
					{Name: "a1", Reward: 40, Transitions: []TransitionConfig{
						{Next: "s1", Weight: 0.8 / 0.9},
						{Next: "s2", Weight: 0.1 / 0.9},
					}},
					{Name: "a2", Reward: 0, Transitions: []TransitionConfig{
						{Next: "s1", Weight: 1.0},
					}},
				},
			},
			{
				Name: "s1",
				Actions: []ActionConfig{
					{Name: "a0", Reward: 0, Transitions: []TransitionConfig{
						{Next: "s0", Weight: 1.0},
					}},
					{Name: "a2", Reward: -50, Transitions: []TransitionConfig{
						{Next: "s2", Weight: 1.0},
					}},
				},
			},
			{
				Name: "s2",
				Actions: []ActionConfig{
					{Name: "a1", Reward: 0, Transitions: []TransitionConfig{
						{Next: "s1", Weight: 0.1 / 0.9},
						{Next: "s2", Weight: 0.8 / 0.9},
					}},
				},
			},
		},
		Policy: []PolicyConfig{
			{State: "s0", Actions: []ActionWeight{
				{Action: "a0", Weight: 0.7},
				{Action: "a1", Weight: 1.0},
				{Action: "a2", Weight: 0.2},
			}},
			{State: "s1", Actions: []ActionWeight{
				{Action: "a0", Weight: 1.0},
				{Action: "a2", Weight: 1.0},
			}},
			{State: "s2", Actions: []ActionWeight{
				{Action: "a1", Weight: 1.0},
			}},
		},
	}
}
