// Package tabular implements ε-greedy agents that learn tabular action
// values with either the Q-learning or the Sarsa update rule.
//
// Both rules share the same environment interaction and the same
// behaviour policy, and differ only in the bootstrap target. Sarsa
// needs the action that will actually be taken in the next state, so
// when learning with Sarsa the agent selects that action while
// updating and then returns it from the following call to
// SelectAction instead of selecting again.
package tabular

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/samuelfneumann/gotabular/agent/tabular/policy"
	"github.com/samuelfneumann/gotabular/environment"
	"github.com/samuelfneumann/gotabular/sampler"
	ts "github.com/samuelfneumann/gotabular/timestep"
	"github.com/samuelfneumann/gotabular/valuetable"
)

// Tabular implements the online Q-learning and Sarsa algorithms with an
// ε-greedy behaviour policy over a ValueTable
type Tabular struct {
	*Learner
	behaviour *policy.EGreedy
	target    *policy.EGreedy
	rule      valuetable.Rule
}

// New creates a new Tabular agent for env. The action values of every
// legal (state, action) pair of the environment's Model start at zero.
func New(env environment.Environment, config Config,
	rng *sampler.Sampler) (*Tabular, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "tabular: invalid config")
	}

	table := valuetable.NewZero(env.Model())

	behaviour, err := policy.NewEGreedy(config.Epsilon, table, rng)
	if err != nil {
		return nil, fmt.Errorf("tabular: invalid behaviour policy: %v", err)
	}

	// Target policy is greedy and shares the same action values
	target := policy.NewGreedy(table, rng)

	learner, err := NewLearner(table, config.Rule, behaviour,
		config.LearningRate)
	if err != nil {
		return nil, fmt.Errorf("tabular: cannot create learner: %v", err)
	}

	return &Tabular{learner, behaviour, target, config.Rule}, nil
}

// SelectAction selects an action in the state of t using the ε-greedy
// behaviour policy. When learning with Sarsa, the action already chosen
// for t during the last update is returned.
func (t *Tabular) SelectAction(step ts.TimeStep) (ts.Action, error) {
	if a, ok := t.Learner.pending(step); ok {
		return a, nil
	}
	return t.behaviour.SelectAction(step)
}

// Epsilon returns the exploration probability of the behaviour policy
func (t *Tabular) Epsilon() float64 {
	return t.behaviour.Epsilon()
}

// SetEpsilon sets the exploration probability of the behaviour policy
func (t *Tabular) SetEpsilon(e float64) error {
	return t.behaviour.SetEpsilon(e)
}

// Target returns the greedy policy with respect to the learned values
func (t *Tabular) Target() *policy.EGreedy {
	return t.target
}

// Rule returns the update rule the agent learns with
func (t *Tabular) Rule() valuetable.Rule {
	return t.rule
}
