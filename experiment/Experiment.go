// Package experiment implements functionality for running an experiment
package experiment

import (
	"context"

	"github.com/samuelfneumann/gotabular/experiment/trackers"
)

// Experiment outlines structs that can run experiments. Experiments
// track environment TimeSteps using Trackers, which cache data from
// each TimeStep in RAM to be later saved to disk with Save. This is
// usually performed after an experiment has been run. The Run() method
// runs all episodes of the experiment and RunEpisode() runs a single
// episode.
//
// New Trackers can be registered with an Experiment through the
// constructor or through an Experiment's Register() function.
type Experiment interface {
	Run() error

	// RunContext runs episodes until all have finished or ctx is done
	RunContext(ctx context.Context) error

	// RunEpisode runs a single episode and returns whether all episodes
	// of the experiment have finished
	RunEpisode() (bool, error)

	// Save all tracked data to disk
	Save() error

	// Adds a new Tracker to the (possibly already running) experiment.
	// Useful if you want to track data only after a specified event.
	Register(t trackers.Tracker)
}

// Type is a type of Experiment
type Type string

const (
	OnlineExp Type = "OnlineExperiment"
)
