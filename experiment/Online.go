package experiment

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/samuelfneumann/gotabular/agent"
	env "github.com/samuelfneumann/gotabular/environment"
	"github.com/samuelfneumann/gotabular/experiment/trackers"
	ts "github.com/samuelfneumann/gotabular/timestep"
	"github.com/samuelfneumann/gotabular/utils/progressbar"
)

// DefaultLogEvery is the default number of episodes between progress
// logs
const DefaultLogEvery = 100

// Online is an Experiment that runs an agent online only. No offline
// evaluation is performed. The agent learns on every transition it
// experiences.
//
// The environment must end its episodes, for example with an
// environment.StepLimit, otherwise RunEpisode never returns.
type Online struct {
	env.Environment
	agent.Agent
	numEpisodes    int
	currentEpisode int
	trackers       []trackers.Tracker

	id       uuid.UUID
	logger   zerolog.Logger
	logEvery int
	progress *progressbar.ManualProgressBar
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. The episodes parameter determines how
// many episodes the experiment is run for, and the t parameter is a
// slice of trackers.Tracker which determine what data is saved.
func NewOnline(e env.Environment, a agent.Agent, episodes int,
	t ...trackers.Tracker) *Online {
	return &Online{
		Environment: e,
		Agent:       a,
		numEpisodes: episodes,
		trackers:    t,
		id:          uuid.New(),
		logger:      zerolog.Nop(),
		logEvery:    DefaultLogEvery,
	}
}

// SetLogger sets the logger that progress is reported to every
// logEvery episodes. If logEvery is not positive, only the start and
// end of the experiment are logged.
func (o *Online) SetLogger(l zerolog.Logger, logEvery int) {
	o.logger = l.With().Str("run", o.id.String()).Logger()
	o.logEvery = logEvery
}

// SetProgressBar sets a progress bar that is advanced after each
// episode
func (o *Online) SetProgressBar(p *progressbar.ManualProgressBar) {
	o.progress = p
}

// ID returns the unique identifier of the experiment run
func (o *Online) ID() uuid.UUID {
	return o.id
}

// Episode returns the number of episodes run so far
func (o *Online) Episode() int {
	return o.currentEpisode
}

// Register registers a trackers.Tracker with an Experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online) Register(t trackers.Tracker) {
	o.trackers = append(o.trackers, t)
}

// RunEpisode runs a single episode of the experiment
func (o *Online) RunEpisode() (bool, error) {
	step, err := o.Environment.Reset()
	if err != nil {
		return false, errors.Wrap(err, "runEpisode: could not reset")
	}
	if err := o.Agent.ObserveFirst(step); err != nil {
		return false, errors.Wrap(err, "runEpisode")
	}
	o.track(step)

	episodeReturn := 0.0
	for !step.Last() {
		action, err := o.Agent.SelectAction(step)
		if err != nil {
			return false, errors.Wrapf(err, "runEpisode: could not "+
				"select action on timestep %d", step.Number)
		}

		state := step.State
		step, _, err = o.Environment.Step(action)
		if err != nil {
			return false, errors.Wrap(err, "runEpisode")
		}
		episodeReturn += step.Reward
		o.track(step)

		o.logger.Debug().
			Int("step", step.Number).
			Str("state", string(state)).
			Str("action", string(action)).
			Float64("reward", step.Reward).
			Str("next", string(step.State)).
			Msg("transition")

		// Observe the timestep and step the agent
		if err := o.Agent.Observe(action, step); err != nil {
			return false, errors.Wrap(err, "runEpisode")
		}
		if err := o.Agent.Step(); err != nil {
			return false, errors.Wrap(err, "runEpisode")
		}
	}
	o.Agent.EndEpisode()
	o.currentEpisode++

	if o.logEvery > 0 && o.currentEpisode%o.logEvery == 0 {
		o.logger.Info().
			Int("episode", o.currentEpisode).
			Int("episodes", o.numEpisodes).
			Float64("return", episodeReturn).
			Msg("episode concluded")
	}
	if o.progress != nil {
		o.progress.Increment()
		o.progress.Display()
	}

	return o.currentEpisode >= o.numEpisodes, nil
}

// Run runs the entire experiment for all episodes
func (o *Online) Run() error {
	return o.RunContext(context.Background())
}

// RunContext runs the experiment until all episodes have finished or
// ctx is done. The context is only checked between episodes.
func (o *Online) RunContext(ctx context.Context) error {
	o.logger.Info().Int("episodes", o.numEpisodes).Msg("experiment started")
	if o.progress != nil {
		defer o.progress.Close()
	}

	for o.currentEpisode < o.numEpisodes {
		if err := ctx.Err(); err != nil {
			o.logger.Warn().Int("episode", o.currentEpisode).
				Msg("experiment stopped")
			return errors.Wrap(err, "run")
		}

		if _, err := o.RunEpisode(); err != nil {
			return err
		}
	}

	o.logger.Info().Int("episodes", o.currentEpisode).
		Msg("experiment finished")
	return nil
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() error {
	for _, t := range o.trackers {
		if err := t.Save(); err != nil {
			return errors.Wrap(err, "save")
		}
	}
	return nil
}

// track tracks the current timestep by caching its data in each Tracker
func (o *Online) track(t ts.TimeStep) {
	for _, tracker := range o.trackers {
		tracker.Track(t)
	}
}
