package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/samuelfneumann/gotabular/agent/tabular/policy"
	"github.com/samuelfneumann/gotabular/sampler"
	"github.com/samuelfneumann/gotabular/simulator"
	ts "github.com/samuelfneumann/gotabular/timestep"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Walk the stochastic policy through the MDP",
	Long: `Follow the stochastic policy of the environment configuration for a
number of steps without learning, printing the state, action, reward
and next state of every step.`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	flags := simulateCmd.Flags()
	flags.Int("steps", 20, "Number of steps to simulate")
	flags.String("initial-state", "", "Starting state (default from the environment)")
	flags.Duration("delay", 0, "Pause between printed steps (e.g. 1s)")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	envConf, err := environmentConfig()
	if err != nil {
		return err
	}
	m, err := envConf.CreateModel()
	if err != nil {
		return err
	}

	weights := envConf.PolicyWeights()
	if weights == nil {
		return fmt.Errorf("environment has no policy to simulate")
	}

	initial := ts.State(viper.GetString("initial-state"))
	if initial == "" {
		initial = envConf.Initial()
	}

	s := seed()
	rng := sampler.New(s)
	p, err := policy.NewStochastic(m, weights, rng)
	if err != nil {
		return err
	}

	numSteps := viper.GetInt("steps")
	traj, err := simulator.Simulate(m, p, initial, numSteps, rng)
	if err != nil {
		return err
	}
	logger.Info().
		Str("initial", string(initial)).
		Int("steps", numSteps).
		Uint64("seed", s).
		Msg("simulating")

	if viper.GetBool("json") {
		records, err := traj.Records()
		if err != nil {
			return err
		}
		return printJSON(os.Stdout, records)
	}

	ctx, cancel := signalContext()
	defer cancel()

	delay := viper.GetDuration("delay")
	for {
		r, ok, err := traj.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		printRecord(os.Stdout, r)

		if delay > 0 && traj.Remaining() > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	fmt.Fprintln(os.Stdout, au.Bold("Simulation finished"))
	return nil
}
