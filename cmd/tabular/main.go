// Command tabular trains tabular Q-learning and Sarsa agents on finite
// MDPs and simulates fixed stochastic policies on them.
//
// The MDP defaults to a small three-state example and can be replaced
// by the environment section of a configuration file given with
// --config. Every flag can also be set in the configuration file or
// with a TABULAR_ environment variable, for example TABULAR_EPISODES.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/samuelfneumann/gotabular/environment/envconfig"
	"github.com/samuelfneumann/gotabular/environment/gridworld"
)

var (
	logger zerolog.Logger
	au     aurora.Aurora
)

var rootCmd = &cobra.Command{
	Use:   "tabular",
	Short: "Tabular reinforcement learning on finite MDPs",
	Long: `Learn action values of finite MDPs with tabular Q-learning or Sarsa,
and walk fixed stochastic policies through them.

Without a configuration file, the three-state MDP with states s0, s1
and s2 and its stochastic policy are used.`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Configuration file (YAML, JSON or TOML)")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.Uint64("seed", 0, "Random seed (random if not set)")
	flags.Bool("json", false, "Print results as JSON")
	flags.Bool("no-color", false, "Disable coloured output")
	flags.String("gridworld", "", "Use a ROWSxCOLS gridworld instead of the configured MDP")
	flags.Float64("slip", 0, "Probability that a gridworld move fails")

	viper.BindPFlags(flags)
	viper.SetEnvPrefix("TABULAR")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(trainCmd, simulateCmd)
}

// setup reads the configuration file and creates the logger
func setup(cmd *cobra.Command, args []string) error {
	// Bind the flags of the command being run, so that commands may
	// share flag names
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	if file := viper.GetString("config"); file != "" {
		viper.SetConfigFile(file)
		if err := viper.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "could not read config %v", file)
		}
	}

	level, err := zerolog.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return err
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()

	au = aurora.NewAurora(!viper.GetBool("no-color"))
	return nil
}

// environmentConfig returns the gridworld requested with --gridworld,
// the environment section of the configuration file, or the default
// environment
func environmentConfig() (envconfig.Config, error) {
	if dims := viper.GetString("gridworld"); dims != "" {
		var rows, cols int
		if _, err := fmt.Sscanf(dims, "%dx%d", &rows, &cols); err != nil {
			return envconfig.Config{}, errors.Wrapf(err,
				"--gridworld: expected ROWSxCOLS, got %q", dims)
		}

		c := gridworld.Default()
		c.Rows, c.Cols = rows, cols
		c.Goals = []gridworld.Cell{{X: cols - 1, Y: rows - 1}}
		c.Slip = viper.GetFloat64("slip")
		return gridworld.New(c)
	}

	if !viper.IsSet("environment") {
		return envconfig.Default(), nil
	}

	var c envconfig.Config
	if err := viper.UnmarshalKey("environment", &c); err != nil {
		return c, errors.Wrap(err, "could not decode environment")
	}
	return c, nil
}

// seed returns the configured seed, drawing one from the clock if none
// was configured
func seed() uint64 {
	if viper.IsSet("seed") {
		return viper.GetUint64("seed")
	}
	return uint64(time.Now().UnixNano())
}

// signalContext returns a context cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			logger.Warn().Msg("shutdown signal received, stopping")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
