package tabular

import (
	"fmt"

	"github.com/samuelfneumann/gotabular/agent"
	"github.com/samuelfneumann/gotabular/environment"
	"github.com/samuelfneumann/gotabular/sampler"
	"github.com/samuelfneumann/gotabular/utils/floatutils"
	"github.com/samuelfneumann/gotabular/valuetable"
)

// Config represents a configuration for the Tabular agent
type Config struct {
	Rule         valuetable.Rule
	Epsilon      float64 // epsilon for behaviour policy
	LearningRate float64
}

// CreateAgent creates the agent from the Config. Action values are
// always initialized to zero, and the agent draws random numbers from
// a source seeded with seed.
func (c Config) CreateAgent(env environment.Environment,
	seed uint64) (agent.Agent, error) {
	return New(env, c, sampler.New(seed))
}

// ValidAgent returns whether the argument agent is a valid agent for
// construction with the Config
func (c Config) ValidAgent(a agent.Agent) bool {
	t, ok := a.(*Tabular)
	return ok && t.rule == c.Rule
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if !floatutils.InInterval(c.Epsilon, floatutils.Unit) {
		return fmt.Errorf("epsilon must be in [0, 1], got %v", c.Epsilon)
	}
	if !floatutils.InLeftOpen(c.LearningRate, floatutils.Unit) {
		return fmt.Errorf("learning rate must be in (0, 1], got %v",
			c.LearningRate)
	}
	if c.Rule != valuetable.QLearning && c.Rule != valuetable.Sarsa {
		return fmt.Errorf("no such rule %v", c.Rule)
	}
	return nil
}

// Type returns the type of the agent constructed by the Config
func (c Config) Type() agent.Type {
	if c.Rule == valuetable.Sarsa {
		return agent.EGreedySarsaTabular
	}
	return agent.EGreedyQLearningTabular
}
