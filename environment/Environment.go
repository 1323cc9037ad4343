// Package environment outlines the interfaces and structs needed to
// implement finite, discrete Markov Decision Processes and simulate
// agents acting in them
package environment

import (
	"github.com/pkg/errors"
	"github.com/samuelfneumann/gotabular/timestep"
)

var (
	// ErrMalformedModel is returned when a Model description is not
	// self-consistent, for example when a transition targets a state
	// that was never declared
	ErrMalformedModel = errors.New("malformed model")

	// ErrInvalidAction is returned when an action is not legal in the
	// state it is taken in
	ErrInvalidAction = errors.New("invalid action")

	// ErrUnknownState is returned when a state is not part of a Model
	ErrUnknownState = errors.New("unknown state")
)

// Starter implements a distribution of starting states and samples
// starting states for environments
type Starter interface {
	Start() timestep.State
}

// Ender determines when episodes end. If an episode should end, End
// sets the StepType of the argument TimeStep to timestep.Last and
// returns true.
type Ender interface {
	End(*timestep.TimeStep) bool
}

// Environment implements a simulated environment over a finite MDP
type Environment interface {
	Starter

	Reset() (timestep.TimeStep, error) // Resets between episodes
	Step(action timestep.Action) (timestep.TimeStep, bool, error)

	// Model returns the MDP the Environment simulates
	Model() *Model

	// Discount returns the discount factor used on each TimeStep
	Discount() float64

	// LastTimeStep returns the most recently generated TimeStep
	LastTimeStep() timestep.TimeStep
}
