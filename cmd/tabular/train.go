package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/samuelfneumann/gotabular/experiment/trackers"
	ts "github.com/samuelfneumann/gotabular/timestep"
	"github.com/samuelfneumann/gotabular/train"
	"github.com/samuelfneumann/gotabular/valuetable"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Learn action values with Q-learning or Sarsa",
	Long: `Train an ε-greedy agent on the MDP for a fixed number of episodes of
a fixed number of steps, then print the learned action values and the
greedy policy they induce.

With --rule both, a Q-learning agent and a Sarsa agent are trained with
the same hyperparameters and seed.`,
	Args: cobra.NoArgs,
	RunE: runTrain,
}

func init() {
	d := train.Default()
	flags := trainCmd.Flags()

	flags.String("rule", d.Rule.String(), "Update rule (qlearning, sarsa, both)")
	flags.Float64("alpha", d.Alpha, "Learning rate")
	flags.Float64("gamma", d.Gamma, "Discount factor")
	flags.Float64("epsilon", d.Epsilon, "Exploration probability")
	flags.Int("episodes", d.NumEpisodes, "Number of training episodes")
	flags.Int("steps", d.StepsPerEpisode, "Steps per episode")
	flags.String("initial-state", "", "Starting state (default from the environment)")
	flags.Int("log-every", 100, "Episodes between progress logs (0 disables)")
	flags.Bool("progress", false, "Show a progress bar")
	flags.String("returns", "", "Save episodic returns to this file (gob)")
	flags.String("plot", "", "Plot episodic returns to this HTML file")
}

// result is the output of a single training run
type result struct {
	Rule    valuetable.Rule                    `json:"rule"`
	Seed    uint64                             `json:"seed"`
	Values  map[ts.State]map[ts.Action]float64 `json:"values"`
	Policy  map[ts.State]ts.Action             `json:"policy"`
	Returns []float64                          `json:"returns,omitempty"`
	table   *valuetable.ValueTable
}

func runTrain(cmd *cobra.Command, args []string) error {
	rules, err := parseRules(viper.GetString("rule"))
	if err != nil {
		return err
	}

	envConf, err := environmentConfig()
	if err != nil {
		return err
	}
	m, err := envConf.CreateModel()
	if err != nil {
		return err
	}

	initial := ts.State(viper.GetString("initial-state"))
	if initial == "" {
		initial = envConf.Initial()
	}

	c := train.Config{
		Alpha:           viper.GetFloat64("alpha"),
		Gamma:           viper.GetFloat64("gamma"),
		Epsilon:         viper.GetFloat64("epsilon"),
		NumEpisodes:     viper.GetInt("episodes"),
		StepsPerEpisode: viper.GetInt("steps"),
		Seed:            seed(),
		InitialState:    initial,
	}

	ctx, cancel := signalContext()
	defer cancel()

	results := make([]result, 0, len(rules))
	series := make([]trackers.Series, 0, len(rules))

	for _, rule := range rules {
		c.Rule = rule
		returns := trackers.NewReturn(returnsFile(rule, len(rules)))

		trainer := train.NewTrainer()
		trainer.Logger = logger
		trainer.LogEvery = viper.GetInt("log-every")
		trainer.Trackers = append(trainer.Trackers, returns)
		if viper.GetBool("progress") {
			trainer.Progress = os.Stderr
		}

		logger.Info().
			Str("rule", rule.String()).
			Uint64("seed", c.Seed).
			Float64("alpha", c.Alpha).
			Float64("gamma", c.Gamma).
			Float64("epsilon", c.Epsilon).
			Int("episodes", c.NumEpisodes).
			Int("steps", c.StepsPerEpisode).
			Msg("training")

		table, err := trainer.Train(ctx, m, c)
		if err != nil {
			return err
		}

		policy, err := train.DeriveGreedyPolicy(table, m)
		if err != nil {
			return err
		}

		if err := returns.Save(); err != nil {
			return err
		}

		results = append(results, result{
			Rule:    rule,
			Seed:    c.Seed,
			Values:  table.Values(),
			Policy:  policy,
			Returns: returns.Data(),
			table:   table,
		})
		series = append(series, trackers.Series{
			Name: rule.String(),
			Data: returns.Data(),
		})
	}

	if file := viper.GetString("plot"); file != "" {
		if err := trackers.Plot(file, "Episodic return", series...); err != nil {
			return err
		}
		logger.Info().Str("file", file).Msg("returns plotted")
	}

	if viper.GetBool("json") {
		return printJSON(os.Stdout, results)
	}
	for _, r := range results {
		printResult(os.Stdout, r)
	}
	return nil
}

// parseRules parses the --rule flag
func parseRules(name string) ([]valuetable.Rule, error) {
	if strings.ToLower(name) == "both" {
		return []valuetable.Rule{valuetable.QLearning, valuetable.Sarsa}, nil
	}

	rule, err := valuetable.ParseRule(name)
	if err != nil {
		return nil, errors.Wrap(err, "--rule")
	}
	return []valuetable.Rule{rule}, nil
}

// returnsFile returns the file the returns of rule are saved to. When
// several rules are trained, the rule name is added before the
// extension.
func returnsFile(rule valuetable.Rule, numRules int) string {
	file := viper.GetString("returns")
	if file == "" || numRules == 1 {
		return file
	}

	dot := strings.LastIndex(file, ".")
	if dot <= strings.LastIndex(file, string(os.PathSeparator)) {
		return fmt.Sprintf("%v-%v", file, rule)
	}
	return fmt.Sprintf("%v-%v%v", file[:dot], rule, file[dot:])
}
