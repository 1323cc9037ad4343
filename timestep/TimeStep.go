// Package timestep implements timesteps of the agent-environment
// interaction in a finite, discrete MDP
package timestep

import (
	"fmt"
)

// State identifies a state of a finite MDP. States carry no structure
// beyond identity.
type State string

// Action identifies an action. An Action is only meaningful together
// with the State it is legal in.
type Action string

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// TimeStep packages together a single timestep in an environment.
//
// Reward is the reward received on the transition into State, and
// Discount is the discount applied to the value of State when
// bootstrapping.
type TimeStep struct {
	StepType StepType
	Reward   float64
	Discount float64
	State    State
	Number   int
}

// New returns a new TimeStep
func New(t StepType, r, d float64, s State, n int) TimeStep {
	return TimeStep{t, r, d, s, n}
}

// First returns whether a TimeStep is the first in an episode
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an episode
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an episode
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  State: %v  |  Reward:  %.2f  |  " +
		"Discount: %.2f  |  Step Number:  %v"

	return fmt.Sprintf(str, t.StepType, t.State, t.Reward, t.Discount,
		t.Number)
}

// Transition is a single (s, a, r, s', a') tuple. NextAction is only
// set by on-policy learners, which need the action that will actually
// be taken in NextState.
type Transition struct {
	State      State
	Action     Action
	Reward     float64
	Discount   float64
	NextState  State
	NextAction Action
}

// NewTransition creates a Transition from two consecutive TimeSteps and
// the action taken between them.
func NewTransition(step TimeStep, action Action, next TimeStep,
	nextAction Action) Transition {
	return Transition{
		State:      step.State,
		Action:     action,
		Reward:     next.Reward,
		Discount:   next.Discount,
		NextState:  next.State,
		NextAction: nextAction,
	}
}
