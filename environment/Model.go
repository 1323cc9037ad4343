package environment

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/samuelfneumann/gotabular/sampler"
	"github.com/samuelfneumann/gotabular/timestep"
)

// Description is a declarative description of a finite MDP: for each
// state, the legal actions in that state, and for each action its
// reward and next-state distribution
type Description struct {
	States []StateDescription
}

// StateDescription describes a single state and its legal actions. A
// state may have no legal actions, but then an agent reaching it has
// nothing to do, and stepping from it fails.
type StateDescription struct {
	State   timestep.State
	Actions []ActionDescription
}

// ActionDescription describes the deterministic reward of taking an
// action and the weighted distribution over next states. Weights are
// proportional likelihoods and need not sum to 1.
type ActionDescription struct {
	Action      timestep.Action
	Reward      float64
	Transitions []sampler.Weighted[timestep.State]
}

// outcome is the result of taking a single action in a single state
type outcome struct {
	reward      float64
	transitions []sampler.Weighted[timestep.State]
}

// Model is an immutable finite MDP.
//
// States are enumerated in ascending order of their identifiers, and
// the legal actions of each state are enumerated in ascending order of
// their identifiers. Anything that needs a deterministic enumeration
// order, such as tie-breaking between equally valued actions, uses
// this order.
type Model struct {
	states   []timestep.State
	actions  map[timestep.State][]timestep.Action
	outcomes map[timestep.State]map[timestep.Action]outcome
}

// NewModel validates a Description and constructs a Model from it.
//
// Construction fails with an error wrapping ErrMalformedModel if a
// state or action is declared twice, an action has no transitions,
// an action's transition weights cannot be normalized, or a transition
// targets a state that was never declared.
func NewModel(d Description) (*Model, error) {
	if len(d.States) == 0 {
		return nil, errors.Wrap(ErrMalformedModel, "newModel: no states")
	}

	m := &Model{
		states:   make([]timestep.State, 0, len(d.States)),
		actions:  make(map[timestep.State][]timestep.Action, len(d.States)),
		outcomes: make(map[timestep.State]map[timestep.Action]outcome),
	}

	// Declare all states first so that transitions may target states
	// declared later in the description
	for _, s := range d.States {
		if _, ok := m.outcomes[s.State]; ok {
			return nil, errors.Wrapf(ErrMalformedModel,
				"newModel: state %v declared twice", s.State)
		}
		m.outcomes[s.State] = make(map[timestep.Action]outcome,
			len(s.Actions))
		m.states = append(m.states, s.State)
	}

	for _, s := range d.States {
		actions := make([]timestep.Action, 0, len(s.Actions))

		for _, a := range s.Actions {
			if _, ok := m.outcomes[s.State][a.Action]; ok {
				return nil, errors.Wrapf(ErrMalformedModel,
					"newModel: action %v declared twice in state %v",
					a.Action, s.State)
			}

			if err := sampler.Validate(sampler.Weights(a.Transitions)); err != nil {
				return nil, errors.Wrapf(ErrMalformedModel,
					"newModel: transitions from %v/%v: %v", s.State,
					a.Action, err)
			}

			transitions := make([]sampler.Weighted[timestep.State],
				len(a.Transitions))
			for i, t := range a.Transitions {
				if _, ok := m.outcomes[t.Value]; !ok {
					return nil, errors.Wrapf(ErrMalformedModel,
						"newModel: transition from %v/%v targets undeclared "+
							"state %v", s.State, a.Action, t.Value)
				}
				transitions[i] = t
			}

			m.outcomes[s.State][a.Action] = outcome{a.Reward, transitions}
			actions = append(actions, a.Action)
		}

		sort.Slice(actions, func(i, j int) bool {
			return actions[i] < actions[j]
		})
		m.actions[s.State] = actions
	}

	sort.Slice(m.states, func(i, j int) bool {
		return m.states[i] < m.states[j]
	})

	return m, nil
}

// States returns all states of the Model in enumeration order
func (m *Model) States() []timestep.State {
	states := make([]timestep.State, len(m.states))
	copy(states, m.states)
	return states
}

// NumStates returns the number of states in the Model
func (m *Model) NumStates() int {
	return len(m.states)
}

// HasState returns whether s is a state of the Model
func (m *Model) HasState(s timestep.State) bool {
	_, ok := m.outcomes[s]
	return ok
}

// Actions returns the legal actions of state s in enumeration order
func (m *Model) Actions(s timestep.State) ([]timestep.Action, error) {
	actions, ok := m.actions[s]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownState, "actions: state %v", s)
	}

	out := make([]timestep.Action, len(actions))
	copy(out, actions)
	return out, nil
}

// Legal returns whether action a is legal in state s
func (m *Model) Legal(s timestep.State, a timestep.Action) bool {
	_, ok := m.outcomes[s][a]
	return ok
}

// RewardAndTransitions returns the reward for taking action a in state
// s together with the weighted distribution over next states.
//
// An error wrapping ErrUnknownState is returned if s is not a state of
// the Model, and an error wrapping ErrInvalidAction is returned if a is
// not legal in s.
func (m *Model) RewardAndTransitions(s timestep.State,
	a timestep.Action) (float64, []sampler.Weighted[timestep.State], error) {
	o, err := m.outcome(s, a)
	if err != nil {
		return 0, nil, err
	}

	transitions := make([]sampler.Weighted[timestep.State],
		len(o.transitions))
	copy(transitions, o.transitions)
	return o.reward, transitions, nil
}

// Sample takes action a in state s, returning the reward and a next
// state sampled from the transition distribution using rng
func (m *Model) Sample(s timestep.State, a timestep.Action,
	rng *sampler.Sampler) (float64, timestep.State, error) {
	o, err := m.outcome(s, a)
	if err != nil {
		return 0, "", err
	}

	next, err := sampler.Sample(rng, o.transitions)
	if err != nil {
		return 0, "", errors.Wrapf(err, "sample: %v/%v", s, a)
	}
	return o.reward, next, nil
}

func (m *Model) outcome(s timestep.State, a timestep.Action) (outcome,
	error) {
	actions, ok := m.outcomes[s]
	if !ok {
		return outcome{}, errors.Wrapf(ErrUnknownState, "state %v", s)
	}

	o, ok := actions[a]
	if !ok {
		return outcome{}, errors.Wrapf(ErrInvalidAction,
			"action %v is not legal in state %v", a, s)
	}
	return o, nil
}

// String returns the Model as a string
func (m *Model) String() string {
	var b strings.Builder
	for _, s := range m.states {
		fmt.Fprintf(&b, "%v:\n", s)
		for _, a := range m.actions[s] {
			o := m.outcomes[s][a]
			fmt.Fprintf(&b, "  %v: reward %+.2f -> ", a, o.reward)
			for i, t := range o.transitions {
				if i > 0 {
					b.WriteString(", ")
				}
				fmt.Fprintf(&b, "%v (%.3f)", t.Value, t.Weight)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
