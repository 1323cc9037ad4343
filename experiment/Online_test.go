package experiment

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/samuelfneumann/gotabular/agent/tabular"
	"github.com/samuelfneumann/gotabular/environment"
	"github.com/samuelfneumann/gotabular/environment/envconfig"
	"github.com/samuelfneumann/gotabular/experiment/trackers"
	"github.com/samuelfneumann/gotabular/sampler"
	"github.com/samuelfneumann/gotabular/utils/progressbar"
	"github.com/samuelfneumann/gotabular/valuetable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOnline(t *testing.T, rule valuetable.Rule, episodes,
	steps int) (*Online, *tabular.Tabular) {
	t.Helper()
	m, err := envconfig.Default().CreateModel()
	require.NoError(t, err)
	start, err := environment.NewSingleStart("s0", m)
	require.NoError(t, err)

	rng := sampler.New(42)
	env, _, err := environment.NewMDP(m, start,
		environment.NewStepLimit(steps), 0.9, rng)
	require.NoError(t, err)

	a, err := tabular.New(env, tabular.Config{
		Rule:         rule,
		Epsilon:      0.1,
		LearningRate: 0.1,
	}, rng)
	require.NoError(t, err)

	return NewOnline(env, a, episodes), a
}

func TestOnlineRun(t *testing.T) {
	for _, rule := range []valuetable.Rule{valuetable.QLearning,
		valuetable.Sarsa} {
		t.Run(rule.String(), func(t *testing.T) {
			o, a := newOnline(t, rule, 5, 10)
			returns := trackers.NewReturn("")
			o.Register(returns)

			require.NoError(t, o.Run())
			assert.Equal(t, 5, o.Episode())
			assert.Len(t, returns.Data(), 5)

			// Some value must have moved away from zero
			moved := false
			for _, row := range a.Table().Values() {
				for _, v := range row {
					moved = moved || v != 0
				}
			}
			assert.True(t, moved)

			// Running again does nothing once all episodes are done
			require.NoError(t, o.Run())
			assert.Equal(t, 5, o.Episode())
		})
	}
}

func TestOnlineRunEpisodeReportsEnd(t *testing.T) {
	o, _ := newOnline(t, valuetable.QLearning, 2, 3)

	done, err := o.RunEpisode()
	require.NoError(t, err)
	assert.False(t, done)

	done, err = o.RunEpisode()
	require.NoError(t, err)
	assert.True(t, done)
}

func TestOnlineLogsProgress(t *testing.T) {
	o, _ := newOnline(t, valuetable.Sarsa, 4, 5)

	var buf bytes.Buffer
	o.SetLogger(zerolog.New(&buf).Level(zerolog.InfoLevel), 2)
	require.NoError(t, o.Run())

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "episode concluded"))
	assert.Contains(t, out, o.ID().String())
	assert.NotContains(t, out, "transition")
}

func TestOnlineProgressBar(t *testing.T) {
	o, _ := newOnline(t, valuetable.QLearning, 3, 5)

	var buf bytes.Buffer
	o.SetProgressBar(progressbar.NewManualProgressBar(&buf, 10, 3))
	require.NoError(t, o.Run())
	assert.Contains(t, buf.String(), "100.00%")
}

func TestOnlineRunContextCancelled(t *testing.T) {
	o, _ := newOnline(t, valuetable.QLearning, 3, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := o.RunContext(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, o.Episode())
}
