// Package train learns action values for finite MDPs with tabular
// Q-learning or Sarsa.
//
// A training run is an online experiment: the agent acts with an
// ε-greedy policy over its own action values for a fixed number of
// episodes, each a fixed number of steps long and starting in the same
// state, and learns from every transition. All randomness, both in the
// environment and in the agent, comes from a single source seeded with
// Config.Seed, so that equal configurations learn equal action values.
package train

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/samuelfneumann/gotabular/agent/tabular"
	"github.com/samuelfneumann/gotabular/environment"
	"github.com/samuelfneumann/gotabular/experiment"
	"github.com/samuelfneumann/gotabular/experiment/trackers"
	"github.com/samuelfneumann/gotabular/sampler"
	ts "github.com/samuelfneumann/gotabular/timestep"
	"github.com/samuelfneumann/gotabular/utils/progressbar"
	"github.com/samuelfneumann/gotabular/valuetable"
)

// Trainer runs training and reports on it. The zero value is not
// usable, use NewTrainer.
type Trainer struct {
	// Logger receives progress every LogEvery episodes
	Logger   zerolog.Logger
	LogEvery int

	// Trackers track every TimeStep of training
	Trackers []trackers.Tracker

	// Progress, if not nil, receives a progress bar
	Progress io.Writer
}

// NewTrainer returns a Trainer that does not report anything
func NewTrainer() *Trainer {
	return &Trainer{
		Logger:   zerolog.Nop(),
		LogEvery: experiment.DefaultLogEvery,
	}
}

// Train learns action values for m and returns them. Every legal
// (state, action) pair of m starts at zero.
func Train(m *environment.Model, c Config) (*valuetable.ValueTable, error) {
	return NewTrainer().Train(context.Background(), m, c)
}

// TrainContext is like Train but stops between episodes once ctx is
// done, returning the action values learned so far with the error.
func TrainContext(ctx context.Context, m *environment.Model,
	c Config) (*valuetable.ValueTable, error) {
	return NewTrainer().Train(ctx, m, c)
}

// Train learns action values for m, stopping early if ctx is done. If
// training stopped early, the action values learned so far are
// returned together with the error.
func (t *Trainer) Train(ctx context.Context, m *environment.Model,
	c Config) (*valuetable.ValueTable, error) {
	if m == nil {
		return nil, errors.Wrap(environment.ErrMalformedModel,
			"train: nil model")
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "train")
	}

	start, err := environment.NewSingleStart(c.InitialState, m)
	if err != nil {
		return nil, errors.Wrap(err, "train")
	}

	rng := sampler.New(c.Seed)
	env, _, err := environment.NewMDP(m, start,
		environment.NewStepLimit(c.StepsPerEpisode), c.Gamma, rng)
	if err != nil {
		return nil, errors.Wrap(err, "train")
	}

	agent, err := tabular.New(env, tabular.Config{
		Rule:         c.Rule,
		Epsilon:      c.Epsilon,
		LearningRate: c.Alpha,
	}, rng)
	if err != nil {
		return nil, errors.Wrap(err, "train")
	}

	exp := experiment.NewOnline(env, agent, c.NumEpisodes, t.Trackers...)
	exp.SetLogger(t.Logger.With().Str("rule", c.Rule.String()).Logger(),
		t.LogEvery)
	if t.Progress != nil {
		exp.SetProgressBar(progressbar.NewManualProgressBar(t.Progress, 40,
			c.NumEpisodes))
	}

	if err := exp.RunContext(ctx); err != nil {
		return agent.Table(), errors.Wrap(err, "train")
	}
	return agent.Table(), nil
}

// DeriveGreedyPolicy returns the greedy action of every state of m
// that has legal actions. Ties are broken towards the action whose
// identifier sorts first.
//
// An error wrapping valuetable.ErrUnknownState is returned if table
// has no values for some such state.
func DeriveGreedyPolicy(table *valuetable.ValueTable,
	m *environment.Model) (map[ts.State]ts.Action, error) {
	policy := make(map[ts.State]ts.Action, m.NumStates())

	for _, s := range m.States() {
		actions, err := m.Actions(s)
		if err != nil {
			return nil, errors.Wrap(err, "deriveGreedyPolicy")
		}
		if len(actions) == 0 {
			continue
		}

		a, err := table.Argmax(s)
		if err != nil {
			return nil, errors.Wrap(err, "deriveGreedyPolicy")
		}
		policy[s] = a
	}
	return policy, nil
}
