package environment

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/samuelfneumann/gotabular/sampler"
	"github.com/samuelfneumann/gotabular/timestep"
	"github.com/samuelfneumann/gotabular/utils/floatutils"
)

// MDP is an Environment that simulates a Model. Episodes start in a
// state given by a Starter and end when an Ender says so. There are no
// terminal states: the discount of every TimeStep is the same, and an
// episode ending never cuts off bootstrapping.
type MDP struct {
	Starter
	model       *Model
	ender       Ender
	discount    float64
	rng         *sampler.Sampler
	currentStep timestep.TimeStep
}

// NewMDP creates a new MDP environment and returns it together with
// the first TimeStep of the first episode
func NewMDP(m *Model, s Starter, e Ender, discount float64,
	rng *sampler.Sampler) (*MDP, timestep.TimeStep, error) {
	if m == nil {
		return nil, timestep.TimeStep{}, errors.Wrap(ErrMalformedModel,
			"newMDP: nil model")
	}
	if !floatutils.InInterval(discount, floatutils.Unit) {
		return nil, timestep.TimeStep{}, fmt.Errorf("newMDP: discount "+
			"must be in [0, 1], got %v", discount)
	}

	env := &MDP{
		Starter:  s,
		model:    m,
		ender:    e,
		discount: discount,
		rng:      rng,
	}

	step, err := env.Reset()
	if err != nil {
		return nil, timestep.TimeStep{}, err
	}
	return env, step, nil
}

// Reset resets the environment to a starting state and returns the
// first TimeStep of the new episode
func (m *MDP) Reset() (timestep.TimeStep, error) {
	start := m.Start()
	if !m.model.HasState(start) {
		return timestep.TimeStep{}, errors.Wrapf(ErrUnknownState,
			"reset: start state %v", start)
	}

	m.currentStep = timestep.New(timestep.First, 0.0, m.discount, start, 0)
	return m.currentStep, nil
}

// Step takes a single environmental step, taking action in the current
// state. The returned boolean is true when the episode has ended.
func (m *MDP) Step(action timestep.Action) (timestep.TimeStep, bool,
	error) {
	if m.currentStep.Last() {
		return m.currentStep, true, fmt.Errorf("step: episode ended, " +
			"call Reset first")
	}

	reward, next, err := m.model.Sample(m.currentStep.State, action, m.rng)
	if err != nil {
		return m.currentStep, false, errors.Wrap(err, "step")
	}

	step := timestep.New(timestep.Mid, reward, m.discount, next,
		m.currentStep.Number+1)

	last := false
	if m.ender != nil {
		last = m.ender.End(&step)
	}
	m.currentStep = step

	return step, last, nil
}

// Model returns the Model that the environment simulates
func (m *MDP) Model() *Model {
	return m.model
}

// Discount returns the discount factor of the environment
func (m *MDP) Discount() float64 {
	return m.discount
}

// LastTimeStep returns the last TimeStep generated by the environment
func (m *MDP) LastTimeStep() timestep.TimeStep {
	return m.currentStep
}

// String returns the environment as a string
func (m *MDP) String() string {
	str := "MDP | At: %v  |  States: %d  |  Discount: %.2f"
	return fmt.Sprintf(str, m.currentStep.State, m.model.NumStates(),
		m.discount)
}
