package tabular

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/samuelfneumann/gotabular/agent"
	ts "github.com/samuelfneumann/gotabular/timestep"
	"github.com/samuelfneumann/gotabular/utils/floatutils"
	"github.com/samuelfneumann/gotabular/valuetable"
)

// Learner implements the update functionality for the Q-learning and
// Sarsa algorithms. It is the only component that changes the
// ValueTable.
type Learner struct {
	table        *valuetable.ValueTable
	rule         valuetable.Rule
	behaviour    agent.Policy
	learningRate float64

	step     ts.TimeStep
	action   ts.Action
	nextStep ts.TimeStep
	observed bool

	// Action selected for nextStep during the last on-policy update
	nextAction ts.Action
	hasNext    bool
}

// NewLearner creates a new Learner updating table with rule. The
// behaviour policy is only used by on-policy rules, to select the next
// action while updating.
func NewLearner(table *valuetable.ValueTable, rule valuetable.Rule,
	behaviour agent.Policy, learningRate float64) (*Learner, error) {
	if !floatutils.InLeftOpen(learningRate, floatutils.Unit) {
		return nil, fmt.Errorf("newLearner: learning rate must be in "+
			"(0, 1], got %v", learningRate)
	}
	if rule.OnPolicy() && behaviour == nil {
		return nil, fmt.Errorf("newLearner: rule %v needs a behaviour "+
			"policy", rule)
	}

	return &Learner{
		table:        table,
		rule:         rule,
		behaviour:    behaviour,
		learningRate: learningRate,
	}, nil
}

// ObserveFirst observes and records the first episodic timestep
func (l *Learner) ObserveFirst(t ts.TimeStep) error {
	if !t.First() {
		return fmt.Errorf("observeFirst: should only be called on the "+
			"first timestep (current timestep = %d)", t.Number)
	}
	l.step = ts.TimeStep{}
	l.nextStep = t
	l.observed = false
	l.hasNext = false
	return nil
}

// Observe observes and records any timestep other than the first
// timestep
func (l *Learner) Observe(action ts.Action, nextStep ts.TimeStep) error {
	if nextStep.Number != l.nextStep.Number+1 {
		return fmt.Errorf("observe: timesteps are not sequential: %d --> %d",
			l.nextStep.Number, nextStep.Number)
	}

	l.step = l.nextStep
	l.action = action
	l.nextStep = nextStep
	l.observed = true
	l.hasNext = false
	return nil
}

// Step updates the value of the last observed (state, action) pair
func (l *Learner) Step() error {
	if !l.observed {
		return fmt.Errorf("step: no transition observed")
	}

	var nextAction ts.Action
	if l.rule.OnPolicy() {
		a, err := l.behaviour.SelectAction(l.nextStep)
		if err != nil {
			return errors.Wrap(err, "step: cannot select next action")
		}
		nextAction = a
	}

	t := ts.NewTransition(l.step, l.action, l.nextStep, nextAction)
	if _, err := valuetable.Update(l.rule, l.table, t,
		l.learningRate); err != nil {
		return errors.Wrap(err, "step")
	}

	// Only one update per observed transition
	l.observed = false
	if l.rule.OnPolicy() {
		l.nextAction = nextAction
		l.hasNext = true
	}
	return nil
}

// EndEpisode performs cleanup at the end of an episode
func (l *Learner) EndEpisode() {
	l.observed = false
	l.hasNext = false
}

// TdError returns the TD error of t under the learner's rule
func (l *Learner) TdError(t ts.Transition) (float64, error) {
	return valuetable.TdError(l.rule, l.table, t)
}

// Table returns the ValueTable the learner updates
func (l *Learner) Table() *valuetable.ValueTable {
	return l.table
}

// pending returns the action selected for t during the last update, if
// there is one, and forgets it
func (l *Learner) pending(t ts.TimeStep) (ts.Action, bool) {
	if !l.hasNext || t.Number != l.nextStep.Number ||
		t.State != l.nextStep.State {
		return "", false
	}
	l.hasNext = false
	return l.nextAction, true
}
