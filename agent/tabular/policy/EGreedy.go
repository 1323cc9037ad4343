// Package policy implements policies over tabular action values and
// fixed stochastic policies over finite MDPs
package policy

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/samuelfneumann/gotabular/sampler"
	ts "github.com/samuelfneumann/gotabular/timestep"
	"github.com/samuelfneumann/gotabular/utils/floatutils"
	"github.com/samuelfneumann/gotabular/valuetable"
)

// EGreedy implements an ε-greedy policy over a ValueTable.
//
// With probability ε an action is chosen uniformly at random from the
// actions of the current state. Otherwise the action with the largest
// value is chosen, breaking ties in favour of the lowest action
// identifier.
type EGreedy struct {
	table   *valuetable.ValueTable
	epsilon float64
	rng     *sampler.Sampler
}

// NewEGreedy constructs a new EGreedy policy, where e=epsilon is the
// probability with which a random action is selected. The policy reads
// table but never changes it.
func NewEGreedy(e float64, table *valuetable.ValueTable,
	rng *sampler.Sampler) (*EGreedy, error) {
	if err := checkEpsilon(e); err != nil {
		return nil, errors.Wrap(err, "newEGreedy")
	}
	return &EGreedy{table, e, rng}, nil
}

// SelectAction selects an action from an ε-greedy policy
func (p *EGreedy) SelectAction(t ts.TimeStep) (ts.Action, error) {
	return SelectEGreedy(t.State, p.table, p.epsilon, p.rng)
}

// Epsilon returns the exploration probability of the policy
func (p *EGreedy) Epsilon() float64 {
	return p.epsilon
}

// SetEpsilon sets the exploration probability of the policy
func (p *EGreedy) SetEpsilon(e float64) error {
	if err := checkEpsilon(e); err != nil {
		return errors.Wrap(err, "setEpsilon")
	}
	p.epsilon = e
	return nil
}

// Table returns the ValueTable the policy acts greedily with respect to
func (p *EGreedy) Table() *valuetable.ValueTable {
	return p.table
}

// SelectEGreedy selects an action in state s ε-greedily with respect
// to table. A uniform random number u in [0, 1) is always drawn; if
// u < epsilon an action is chosen uniformly at random, otherwise the
// greedy action is returned.
//
// An error wrapping valuetable.ErrUnknownState is returned if the table
// has no entries for s.
func SelectEGreedy(s ts.State, table *valuetable.ValueTable, epsilon float64,
	rng *sampler.Sampler) (ts.Action, error) {
	actions, err := table.Actions(s)
	if err != nil {
		return "", errors.Wrap(err, "selectAction")
	}

	if rng.Float64() < epsilon {
		i, err := rng.Uniform(len(actions))
		if err != nil {
			return "", errors.Wrap(err, "selectAction")
		}
		return actions[i], nil
	}

	return table.Argmax(s)
}

func checkEpsilon(e float64) error {
	if !floatutils.InInterval(e, floatutils.Unit) {
		return fmt.Errorf("epsilon must be in [0, 1], got %v", e)
	}
	return nil
}
