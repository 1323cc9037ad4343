package environment

import (
	"fmt"

	"github.com/samuelfneumann/gotabular/timestep"
)

// StepLimit implements the Ender interface to end episodes at specific
// timestep limits
type StepLimit struct {
	episodeSteps int
}

// NewStepLimit creates and returns a new step limit. Episodes end on
// the TimeStep numbered episodeSteps, so that exactly episodeSteps
// actions are taken in each episode.
func NewStepLimit(episodeSteps int) StepLimit {
	if episodeSteps <= 0 {
		panic(fmt.Sprintf("newStepLimit: episode steps must be positive, "+
			"got %v", episodeSteps))
	}
	return StepLimit{episodeSteps}
}

// End determines whether or not the current episode should be ended,
// returning a boolean to indicate episode termination. If the episode
// should be ended End() will modify the timestep so that its StepType
// field is timestep.Last
func (s StepLimit) End(t *timestep.TimeStep) bool {
	if t.Number >= s.episodeSteps {
		t.StepType = timestep.Last
		return true
	}
	return false
}

// Steps returns the number of steps in each episode
func (s StepLimit) Steps() int {
	return s.episodeSteps
}
