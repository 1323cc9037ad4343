// Package valuetable implements tabular action-value functions and
// the temporal difference rules that update them
package valuetable

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/samuelfneumann/gotabular/environment"
	ts "github.com/samuelfneumann/gotabular/timestep"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrUnknownState is returned when a state has no entries in a
	// ValueTable
	ErrUnknownState = environment.ErrUnknownState

	// ErrUnknownStateAction is returned when a (state, action) pair has
	// no entry in a ValueTable
	ErrUnknownStateAction = errors.New("unknown state-action pair")
)

// ValueTable maps each legal (state, action) pair of a Model to an
// estimate of its action value.
//
// The domain of a ValueTable is fixed when it is created: entries are
// never added or removed. A ValueTable is not safe for concurrent use;
// a single update reads and then writes the same entry, so concurrent
// learners need a ValueTable each.
type ValueTable struct {
	states  []ts.State
	actions map[ts.State][]ts.Action
	index   map[ts.State]map[ts.Action]int
	values  map[ts.State]*mat.VecDense
}

// NewZero returns a ValueTable covering exactly the legal (state,
// action) pairs of m, with every entry set to 0
func NewZero(m *environment.Model) *ValueTable {
	states := m.States()
	v := &ValueTable{
		states:  states,
		actions: make(map[ts.State][]ts.Action, len(states)),
		index:   make(map[ts.State]map[ts.Action]int, len(states)),
		values:  make(map[ts.State]*mat.VecDense, len(states)),
	}

	for _, s := range states {
		actions, err := m.Actions(s)
		if err != nil {
			// States() and Actions() come from the same Model
			panic(err)
		}
		if len(actions) == 0 {
			continue
		}

		v.actions[s] = actions
		v.index[s] = make(map[ts.Action]int, len(actions))
		for i, a := range actions {
			v.index[s][a] = i
		}
		v.values[s] = mat.NewVecDense(len(actions), nil)
	}

	return v
}

// States returns the states with at least one entry in the table, in
// enumeration order
func (v *ValueTable) States() []ts.State {
	states := make([]ts.State, 0, len(v.actions))
	for _, s := range v.states {
		if _, ok := v.actions[s]; ok {
			states = append(states, s)
		}
	}
	return states
}

// Len returns the number of (state, action) entries in the table
func (v *ValueTable) Len() int {
	n := 0
	for _, row := range v.values {
		n += row.Len()
	}
	return n
}

// At returns the value of taking action a in state s
func (v *ValueTable) At(s ts.State, a ts.Action) (float64, error) {
	i, err := v.entry(s, a)
	if err != nil {
		return 0, err
	}
	return v.values[s].AtVec(i), nil
}

// Set sets the value of taking action a in state s
func (v *ValueTable) Set(s ts.State, a ts.Action, value float64) error {
	i, err := v.entry(s, a)
	if err != nil {
		return err
	}
	v.values[s].SetVec(i, value)
	return nil
}

// Row returns the actions of state s in enumeration order together
// with their values
func (v *ValueTable) Row(s ts.State) ([]ts.Action, []float64, error) {
	row, ok := v.values[s]
	if !ok {
		return nil, nil, errors.Wrapf(ErrUnknownState,
			"row: no entries for state %v", s)
	}

	actions := make([]ts.Action, len(v.actions[s]))
	copy(actions, v.actions[s])
	return actions, mat.Col(nil, 0, row), nil
}

// Actions returns the actions with entries for state s
func (v *ValueTable) Actions(s ts.State) ([]ts.Action, error) {
	actions, _, err := v.Row(s)
	return actions, err
}

// Max returns the largest value of any action in state s
func (v *ValueTable) Max(s ts.State) (float64, error) {
	_, values, err := v.Row(s)
	if err != nil {
		return 0, err
	}
	return floats.Max(values), nil
}

// Argmax returns the action with the largest value in state s. When
// several actions share the largest value, the first of them in
// enumeration order, that is the one with the lowest identifier, is
// returned.
func (v *ValueTable) Argmax(s ts.State) (ts.Action, error) {
	actions, values, err := v.Row(s)
	if err != nil {
		return "", err
	}
	return actions[floats.MaxIdx(values)], nil
}

// GreedyPolicy returns, for each state with entries in the table, the
// action chosen by Argmax
func (v *ValueTable) GreedyPolicy() map[ts.State]ts.Action {
	policy := make(map[ts.State]ts.Action, len(v.actions))
	for _, s := range v.States() {
		a, err := v.Argmax(s)
		if err != nil {
			panic(err)
		}
		policy[s] = a
	}
	return policy
}

// Values returns a copy of all entries in the table
func (v *ValueTable) Values() map[ts.State]map[ts.Action]float64 {
	values := make(map[ts.State]map[ts.Action]float64, len(v.values))
	for s, row := range v.values {
		values[s] = make(map[ts.Action]float64, row.Len())
		for i, a := range v.actions[s] {
			values[s][a] = row.AtVec(i)
		}
	}
	return values
}

// Clone returns a deep copy of the table
func (v *ValueTable) Clone() *ValueTable {
	c := &ValueTable{
		states:  v.states,
		actions: v.actions,
		index:   v.index,
		values:  make(map[ts.State]*mat.VecDense, len(v.values)),
	}
	for s, row := range v.values {
		c.values[s] = mat.VecDenseCopyOf(row)
	}
	return c
}

func (v *ValueTable) entry(s ts.State, a ts.Action) (int, error) {
	i, ok := v.index[s][a]
	if !ok {
		return -1, errors.Wrapf(ErrUnknownStateAction, "no entry for %v/%v",
			s, a)
	}
	return i, nil
}

// String returns the table as a string, one state per line
func (v *ValueTable) String() string {
	var b strings.Builder
	for _, s := range v.States() {
		fmt.Fprintf(&b, "%v:", s)
		for i, a := range v.actions[s] {
			fmt.Fprintf(&b, "  %v=%.4f", a, v.values[s].AtVec(i))
		}
		b.WriteString("\n")
	}
	return b.String()
}
