package valuetable

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	ts "github.com/samuelfneumann/gotabular/timestep"
)

// Rule selects the temporal difference target used to update a
// ValueTable
type Rule int

const (
	// QLearning bootstraps off the best action in the next state, and
	// so learns the value of the greedy policy regardless of the policy
	// generating experience (off-policy)
	QLearning Rule = iota

	// Sarsa bootstraps off the action actually taken in the next state,
	// and so learns the value of the policy being followed (on-policy)
	Sarsa
)

func (r Rule) String() string {
	switch r {
	case QLearning:
		return "qlearning"
	case Sarsa:
		return "sarsa"
	default:
		return fmt.Sprintf("Rule(%d)", int(r))
	}
}

// OnPolicy returns whether the rule needs the next action to compute
// its target
func (r Rule) OnPolicy() bool {
	return r == Sarsa
}

// ParseRule returns the Rule named by name. Both "qlearning" and
// "q-learning" name QLearning.
func ParseRule(name string) (Rule, error) {
	switch strings.ToLower(name) {
	case "qlearning", "q-learning", "q":
		return QLearning, nil
	case "sarsa":
		return Sarsa, nil
	}
	return 0, fmt.Errorf("parseRule: no such rule %q", name)
}

// MarshalText implements encoding.TextMarshaler
func (r Rule) MarshalText() ([]byte, error) {
	if r != QLearning && r != Sarsa {
		return nil, fmt.Errorf("marshalText: no such rule %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *Rule) UnmarshalText(text []byte) error {
	rule, err := ParseRule(string(text))
	if err != nil {
		return err
	}
	*r = rule
	return nil
}

// QLearningUpdate applies the Q-learning update
//
//	Q(s, a) <- Q(s, a) + α [r + γ max_a' Q(s', a') - Q(s, a)]
//
// to the table and returns the new value of Q(s, a). Only the entry
// for (s, a) is changed.
func QLearningUpdate(v *ValueTable, s ts.State, a ts.Action, r float64,
	next ts.State, alpha, gamma float64) (float64, error) {
	current, err := v.At(s, a)
	if err != nil {
		return 0, errors.Wrap(err, "qLearningUpdate")
	}

	bootstrap, err := v.Max(next)
	if err != nil {
		return 0, errors.Wrap(err, "qLearningUpdate: bootstrap")
	}

	return set(v, s, a, current, r+gamma*bootstrap, alpha)
}

// SarsaUpdate applies the Sarsa update
//
//	Q(s, a) <- Q(s, a) + α [r + γ Q(s', a') - Q(s, a)]
//
// to the table, where a' is the action that will actually be taken in
// s', and returns the new value of Q(s, a). Only the entry for (s, a)
// is changed.
func SarsaUpdate(v *ValueTable, s ts.State, a ts.Action, r float64,
	next ts.State, nextAction ts.Action, alpha,
	gamma float64) (float64, error) {
	current, err := v.At(s, a)
	if err != nil {
		return 0, errors.Wrap(err, "sarsaUpdate")
	}

	bootstrap, err := v.At(next, nextAction)
	if err != nil {
		return 0, errors.Wrap(err, "sarsaUpdate: bootstrap")
	}

	return set(v, s, a, current, r+gamma*bootstrap, alpha)
}

// Update applies rule to the table using transition t, with the
// transition's discount as γ
func Update(rule Rule, v *ValueTable, t ts.Transition,
	alpha float64) (float64, error) {
	switch rule {
	case QLearning:
		return QLearningUpdate(v, t.State, t.Action, t.Reward, t.NextState,
			alpha, t.Discount)

	case Sarsa:
		return SarsaUpdate(v, t.State, t.Action, t.Reward, t.NextState,
			t.NextAction, alpha, t.Discount)
	}
	return 0, fmt.Errorf("update: no such rule %v", rule)
}

// TdError returns the temporal difference error of transition t under
// rule without changing the table
func TdError(rule Rule, v *ValueTable, t ts.Transition) (float64, error) {
	current, err := v.At(t.State, t.Action)
	if err != nil {
		return 0, err
	}

	var bootstrap float64
	switch rule {
	case QLearning:
		bootstrap, err = v.Max(t.NextState)
	case Sarsa:
		bootstrap, err = v.At(t.NextState, t.NextAction)
	default:
		err = fmt.Errorf("tdError: no such rule %v", rule)
	}
	if err != nil {
		return 0, err
	}

	return t.Reward + t.Discount*bootstrap - current, nil
}

func set(v *ValueTable, s ts.State, a ts.Action, current, target,
	alpha float64) (float64, error) {
	updated := current + alpha*(target-current)
	if err := v.Set(s, a, updated); err != nil {
		return 0, err
	}
	return updated, nil
}
