// Package gridworld implements 2D gridworld environments as finite MDPs
package gridworld

import (
	"fmt"

	"github.com/samuelfneumann/gotabular/environment/envconfig"
)

// Actions of a gridworld, in the order they are declared
var Actions = []string{"left", "right", "up", "down"}

// Cell is a position (x, y) in a gridworld, with (0, 0) in the bottom
// left corner
type Cell struct {
	X, Y int
}

// String returns the state name of the cell
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Config describes a rectangular gridworld. The agent moves one cell
// in the direction of its action, and stays in place if it would leave
// the grid or if it slips. Moving into a goal cell gives GoalReward,
// every other move gives StepReward. There are no terminal states: any
// action taken in a goal cell moves the agent back to Start.
type Config struct {
	Rows, Cols int
	Start      Cell
	Goals      []Cell
	StepReward float64
	GoalReward float64

	// Slip is the probability that a move fails and the agent stays
	// where it is
	Slip float64
}

// Default returns a 4x4 gridworld starting in the bottom left corner
// with the goal in the top right corner
func Default() Config {
	return Config{
		Rows:       4,
		Cols:       4,
		Start:      Cell{0, 0},
		Goals:      []Cell{{3, 3}},
		StepReward: -1,
		GoalReward: 10,
	}
}

// New returns the environment configuration of the gridworld, together
// with a policy choosing uniformly between all four actions everywhere
func New(c Config) (envconfig.Config, error) {
	if c.Rows <= 0 || c.Cols <= 0 {
		return envconfig.Config{}, fmt.Errorf("new: rows and columns must "+
			"be positive, got (%d, %d)", c.Rows, c.Cols)
	}
	if c.Slip < 0 || c.Slip >= 1 {
		return envconfig.Config{}, fmt.Errorf("new: slip must be in [0, 1), "+
			"got %v", c.Slip)
	}
	if !c.inBounds(c.Start) {
		return envconfig.Config{}, fmt.Errorf("new: start %v out of bounds",
			c.Start)
	}

	goals := make(map[Cell]bool, len(c.Goals))
	for _, g := range c.Goals {
		if !c.inBounds(g) {
			return envconfig.Config{}, fmt.Errorf("new: goal %v out of "+
				"bounds", g)
		}
		goals[g] = true
	}

	conf := envconfig.Config{InitialState: c.Start.String()}
	for y := 0; y < c.Rows; y++ {
		for x := 0; x < c.Cols; x++ {
			cell := Cell{x, y}
			state := envconfig.StateConfig{Name: cell.String()}
			policy := envconfig.PolicyConfig{State: cell.String()}

			for _, a := range Actions {
				var action envconfig.ActionConfig
				if goals[cell] {
					action = c.restart(a)
				} else {
					action = c.move(cell, a, goals)
				}
				state.Actions = append(state.Actions, action)
				policy.Actions = append(policy.Actions,
					envconfig.ActionWeight{Action: a, Weight: 1})
			}

			conf.States = append(conf.States, state)
			conf.Policy = append(conf.Policy, policy)
		}
	}

	return conf, nil
}

// move returns the action of moving from cell in direction a
func (c Config) move(cell Cell, a string, goals map[Cell]bool) envconfig.ActionConfig {
	next := cell
	switch a {
	case "left":
		next.X--
	case "right":
		next.X++
	case "up":
		next.Y++
	case "down":
		next.Y--
	}
	if !c.inBounds(next) {
		next = cell
	}

	reward := c.StepReward
	if goals[next] {
		reward = c.GoalReward
	}

	transitions := []envconfig.TransitionConfig{{Next: next.String(),
		Weight: 1 - c.Slip}}
	if c.Slip > 0 && next != cell {
		transitions = append(transitions, envconfig.TransitionConfig{
			Next:   cell.String(),
			Weight: c.Slip,
		})
	}

	// Reward depends on the intended move only, a slip does not change it
	return envconfig.ActionConfig{Name: a, Reward: reward,
		Transitions: transitions}
}

// restart returns an action that moves back to the start cell
func (c Config) restart(a string) envconfig.ActionConfig {
	return envconfig.ActionConfig{
		Name:   a,
		Reward: 0,
		Transitions: []envconfig.TransitionConfig{
			{Next: c.Start.String(), Weight: 1},
		},
	}
}

func (c Config) inBounds(cell Cell) bool {
	return cell.X >= 0 && cell.X < c.Cols && cell.Y >= 0 && cell.Y < c.Rows
}
