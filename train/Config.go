package train

import (
	"fmt"

	"github.com/samuelfneumann/gotabular/timestep"
	"github.com/samuelfneumann/gotabular/utils/floatutils"
	"github.com/samuelfneumann/gotabular/valuetable"
)

// Config holds the hyperparameters of a training run
type Config struct {
	Alpha           float64 `mapstructure:"alpha" json:"alpha"`
	Gamma           float64 `mapstructure:"gamma" json:"gamma"`
	Epsilon         float64 `mapstructure:"epsilon" json:"epsilon"`
	NumEpisodes     int     `mapstructure:"episodes" json:"episodes"`
	StepsPerEpisode int     `mapstructure:"steps" json:"steps"`

	Rule         valuetable.Rule `mapstructure:"rule" json:"rule"`
	Seed         uint64          `mapstructure:"seed" json:"seed"`
	InitialState timestep.State  `mapstructure:"initial_state" json:"initial_state"`
}

// Default returns the hyperparameters used to train on the default
// environment
func Default() Config {
	return Config{
		Alpha:           0.1,
		Gamma:           0.9,
		Epsilon:         0.1,
		NumEpisodes:     1000,
		StepsPerEpisode: 100,
		Rule:            valuetable.QLearning,
		InitialState:    "s0",
	}
}

// Validate returns an error if any hyperparameter is out of range
func (c Config) Validate() error {
	if !floatutils.InLeftOpen(c.Alpha, floatutils.Unit) {
		return fmt.Errorf("validate: alpha must be in (0, 1], got %v",
			c.Alpha)
	}
	if !floatutils.InInterval(c.Gamma, floatutils.Unit) {
		return fmt.Errorf("validate: gamma must be in [0, 1], got %v",
			c.Gamma)
	}
	if !floatutils.InInterval(c.Epsilon, floatutils.Unit) {
		return fmt.Errorf("validate: epsilon must be in [0, 1], got %v",
			c.Epsilon)
	}
	if c.NumEpisodes <= 0 {
		return fmt.Errorf("validate: episodes must be positive, got %v",
			c.NumEpisodes)
	}
	if c.StepsPerEpisode <= 0 {
		return fmt.Errorf("validate: steps per episode must be positive, "+
			"got %v", c.StepsPerEpisode)
	}
	if c.Rule != valuetable.QLearning && c.Rule != valuetable.Sarsa {
		return fmt.Errorf("validate: no such rule %v", c.Rule)
	}
	if c.InitialState == "" {
		return fmt.Errorf("validate: no initial state")
	}
	return nil
}
