// Package agent defines the agent interfaces
package agent

import (
	ts "github.com/samuelfneumann/gotabular/timestep"
)

// Agent determines the implementation details of an agent or algorithm
//
// An Agent is composed of a Learner, which learns action values, and a
// Policy which chooses actions in each state. The Policy chooses which
// actions are taken, and the Learner uses these actions to update the
// action values the Policy reads.
type Agent interface {
	Learner
	Policy
}

// Learner implements a learning algorithm that defines how action
// values are updated.
type Learner interface {
	// Step performs a single update to the learner
	Step() error

	// Observe records that an action lead to some timestep
	Observe(action ts.Action, nextStep ts.TimeStep) error

	// ObserveFirst records the first timestep in an episode
	ObserveFirst(ts.TimeStep) error

	// EndEpisode performs cleanup at the end of an episode
	EndEpisode()
}

// TdErrorer is a Learner that can return the TD error of some
// transition
type TdErrorer interface {
	Learner

	// TdError returns the TD error on a transition
	TdError(t ts.Transition) (float64, error)
}

// Policy represents a policy that an agent can have.
//
// Policies determine how agents select actions. For a given agent, the
// Policy and Learner should reference the same action values so that
// any changes the learner makes are reflected in the actions the
// Policy chooses. A Policy never changes the values it reads.
type Policy interface {
	SelectAction(t ts.TimeStep) (ts.Action, error)
}

// EGreedyPolicy is a Policy that acts greedily with respect to some
// action values with probability 1 - ε and uniformly at random
// otherwise
type EGreedyPolicy interface {
	Policy
	SetEpsilon(float64) error
	Epsilon() float64
}
