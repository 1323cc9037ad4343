// Package simulator walks a fixed policy through a finite MDP without
// learning, reporting every step it takes
package simulator

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/samuelfneumann/gotabular/agent"
	"github.com/samuelfneumann/gotabular/environment"
	"github.com/samuelfneumann/gotabular/sampler"
	ts "github.com/samuelfneumann/gotabular/timestep"
)

// Record is a single step of a Trajectory
type Record struct {
	Step             int // 1-based
	State            ts.State
	Action           ts.Action
	Reward           float64
	CumulativeReward float64
	NextState        ts.State
}

func (r Record) String() string {
	return fmt.Sprintf("Step %d | State: %v | Action: %v | Reward: %+.2f | "+
		"Cumulative: %+.2f | Next: %v", r.Step, r.State, r.Action, r.Reward,
		r.CumulativeReward, r.NextState)
}

// Trajectory is a finite sequence of Records, generated one at a time
// as the policy acts. A Trajectory cannot be restarted: simulating
// again draws fresh randomness.
type Trajectory struct {
	env        *environment.MDP
	policy     agent.Policy
	step       ts.TimeStep
	numSteps   int
	taken      int
	cumulative float64
	err        error
}

// Simulate returns the Trajectory of policy p acting for numSteps steps
// in m, starting in initial. Actions and next states are sampled from
// rng as the Trajectory is consumed, an action before each next state.
func Simulate(m *environment.Model, p agent.Policy, initial ts.State,
	numSteps int, rng *sampler.Sampler) (*Trajectory, error) {
	if m == nil {
		return nil, errors.Wrap(environment.ErrMalformedModel,
			"simulate: nil model")
	}
	if p == nil {
		return nil, fmt.Errorf("simulate: nil policy")
	}
	if numSteps < 0 {
		return nil, fmt.Errorf("simulate: number of steps must be "+
			"non-negative, got %v", numSteps)
	}

	start, err := environment.NewSingleStart(initial, m)
	if err != nil {
		return nil, errors.Wrap(err, "simulate")
	}

	t := &Trajectory{policy: p, numSteps: numSteps}
	if numSteps == 0 {
		return t, nil
	}

	// Discounting plays no role without learning
	t.env, t.step, err = environment.NewMDP(m, start,
		environment.NewStepLimit(numSteps), 1.0, rng)
	if err != nil {
		return nil, errors.Wrap(err, "simulate")
	}
	return t, nil
}

// Next takes the next step of the Trajectory and returns its Record.
// The returned boolean is false once all steps have been taken. After
// an error, the Trajectory ends and keeps returning that error.
func (t *Trajectory) Next() (Record, bool, error) {
	if t.err != nil {
		return Record{}, false, t.err
	}
	if t.taken >= t.numSteps {
		return Record{}, false, nil
	}

	state := t.step.State
	action, err := t.policy.SelectAction(t.step)
	if err != nil {
		t.err = errors.Wrapf(err, "next: step %d", t.taken+1)
		return Record{}, false, t.err
	}

	next, _, err := t.env.Step(action)
	if err != nil {
		t.err = errors.Wrapf(err, "next: step %d", t.taken+1)
		return Record{}, false, t.err
	}

	t.taken++
	t.step = next
	t.cumulative += next.Reward

	return Record{
		Step:             t.taken,
		State:            state,
		Action:           action,
		Reward:           next.Reward,
		CumulativeReward: t.cumulative,
		NextState:        next.State,
	}, true, nil
}

// Remaining returns the number of steps not yet taken
func (t *Trajectory) Remaining() int {
	return t.numSteps - t.taken
}

// Records consumes the rest of the Trajectory and returns its Records
func (t *Trajectory) Records() ([]Record, error) {
	records := make([]Record, 0, t.Remaining())
	for {
		r, ok, err := t.Next()
		if err != nil {
			return records, err
		}
		if !ok {
			return records, nil
		}
		records = append(records, r)
	}
}
