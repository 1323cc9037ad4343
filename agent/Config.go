package agent

import (
	"github.com/samuelfneumann/gotabular/environment"
)

// Config represents a configuration for creating an agent
type Config interface {
	// CreateAgent creates the agent that the config describes
	CreateAgent(env environment.Environment, seed uint64) (Agent, error)

	// ValidAgent returns whether the argument agent is valid for the
	// Config
	ValidAgent(Agent) bool

	// Validate returns an error describing whether or not the
	// configuration is valid or not.
	Validate() error
}

// Type represents a type of an agent
type Type string

const (
	EGreedyQLearningTabular Type = "EGreedyQLearning-Tabular"
	EGreedySarsaTabular     Type = "EGreedySarsa-Tabular"
)
