package valuetable

import (
	"testing"

	"github.com/pkg/errors"
	ts "github.com/samuelfneumann/gotabular/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQLearningUpdate(t *testing.T) {
	v, _ := newTable(t)

	updated, err := QLearningUpdate(v, "s0", "a1", 40, "s1", 0.1, 0.9)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, updated, 1e-12)

	value, err := v.At("s0", "a1")
	require.NoError(t, err)
	assert.InDelta(t, 4.0, value, 1e-12)
}

func TestQLearningUpdateBootstrapsOffMax(t *testing.T) {
	v, _ := newTable(t)
	require.NoError(t, v.Set("s1", "a0", 5))
	require.NoError(t, v.Set("s1", "a2", -20))

	updated, err := QLearningUpdate(v, "s0", "a1", 40, "s1", 0.1, 0.9)
	require.NoError(t, err)
	assert.InDelta(t, 0.1*(40+0.9*5), updated, 1e-12)
}

func TestSarsaUpdate(t *testing.T) {
	v, _ := newTable(t)
	require.NoError(t, v.Set("s1", "a0", 5))

	updated, err := SarsaUpdate(v, "s0", "a1", 40, "s1", "a0", 0.1, 0.9)
	require.NoError(t, err)
	assert.InDelta(t, 4.45, updated, 1e-12)

	// The bootstrap is the action taken, not the best action
	require.NoError(t, v.Set("s0", "a1", 0))
	updated, err = SarsaUpdate(v, "s0", "a1", 40, "s1", "a2", 0.1, 0.9)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, updated, 1e-12)
}

func TestUpdateOnlyTouchesOneEntry(t *testing.T) {
	v, _ := newTable(t)
	before := v.Values()

	_, err := SarsaUpdate(v, "s1", "a2", -50, "s2", "a1", 0.5, 0.9)
	require.NoError(t, err)

	after := v.Values()
	for s, row := range before {
		for a, value := range row {
			if s == "s1" && a == "a2" {
				assert.Equal(t, -25.0, after[s][a])
				continue
			}
			assert.Equal(t, value, after[s][a], "%v/%v", s, a)
		}
	}
}

func TestUpdateUnknown(t *testing.T) {
	v, _ := newTable(t)

	_, err := QLearningUpdate(v, "s2", "a0", 1, "s0", 0.1, 0.9)
	assert.True(t, errors.Is(err, ErrUnknownStateAction), err)

	_, err = SarsaUpdate(v, "s9", "a0", 1, "s0", "a0", 0.1, 0.9)
	assert.True(t, errors.Is(err, ErrUnknownStateAction), err)

	_, err = SarsaUpdate(v, "s0", "a0", 1, "s2", "a0", 0.1, 0.9)
	assert.True(t, errors.Is(err, ErrUnknownStateAction), err)

	_, err = QLearningUpdate(v, "s0", "a0", 1, "s9", 0.1, 0.9)
	assert.True(t, errors.Is(err, ErrUnknownState), err)

	// Failed updates leave the table unchanged
	for _, row := range v.Values() {
		for _, value := range row {
			assert.Equal(t, 0.0, value)
		}
	}
}

func TestUpdateDispatch(t *testing.T) {
	tr := ts.Transition{
		State: "s0", Action: "a1", Reward: 40, Discount: 0.9,
		NextState: "s1", NextAction: "a0",
	}

	q, _ := newTable(t)
	require.NoError(t, q.Set("s1", "a2", 5))
	updated, err := Update(QLearning, q, tr, 0.1)
	require.NoError(t, err)
	assert.InDelta(t, 4.45, updated, 1e-12)

	s, _ := newTable(t)
	require.NoError(t, s.Set("s1", "a2", 5))
	updated, err = Update(Sarsa, s, tr, 0.1)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, updated, 1e-12)

	delta, err := TdError(Sarsa, s, tr)
	require.NoError(t, err)
	assert.InDelta(t, 36.0, delta, 1e-12)

	_, err = Update(Rule(7), s, tr, 0.1)
	assert.Error(t, err)
}

func TestParseRule(t *testing.T) {
	for name, want := range map[string]Rule{
		"qlearning":  QLearning,
		"Q-Learning": QLearning,
		"sarsa":      Sarsa,
	} {
		got, err := ParseRule(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, want.String(), got.String())
	}

	_, err := ParseRule("expected-sarsa")
	assert.Error(t, err)

	assert.True(t, Sarsa.OnPolicy())
	assert.False(t, QLearning.OnPolicy())
}

func TestRuleText(t *testing.T) {
	text, err := Sarsa.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "sarsa", string(text))

	var r Rule
	require.NoError(t, r.UnmarshalText([]byte("q-learning")))
	assert.Equal(t, QLearning, r)

	assert.Error(t, r.UnmarshalText([]byte("td")))
	_, err = Rule(4).MarshalText()
	assert.Error(t, err)
}
