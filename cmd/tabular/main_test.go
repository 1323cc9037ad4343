package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelfneumann/gotabular/environment/envconfig"
	"github.com/samuelfneumann/gotabular/simulator"
	"github.com/samuelfneumann/gotabular/train"
	"github.com/samuelfneumann/gotabular/valuetable"
)

func TestParseRules(t *testing.T) {
	rules, err := parseRules("both")
	require.NoError(t, err)
	assert.Equal(t, []valuetable.Rule{valuetable.QLearning, valuetable.Sarsa},
		rules)

	rules, err = parseRules("sarsa")
	require.NoError(t, err)
	assert.Equal(t, []valuetable.Rule{valuetable.Sarsa}, rules)

	_, err = parseRules("monte-carlo")
	assert.Error(t, err)
}

func TestReturnsFile(t *testing.T) {
	defer viper.Reset()

	viper.Set("returns", "out/returns.bin")
	assert.Equal(t, "out/returns.bin", returnsFile(valuetable.Sarsa, 1))
	assert.Equal(t, "out/returns-sarsa.bin", returnsFile(valuetable.Sarsa, 2))

	viper.Set("returns", "returns")
	assert.Equal(t, "returns-qlearning", returnsFile(valuetable.QLearning, 2))

	viper.Set("returns", "")
	assert.Equal(t, "", returnsFile(valuetable.QLearning, 2))
}

func TestPrintResult(t *testing.T) {
	au = aurora.NewAurora(false)

	m, err := envconfig.Default().CreateModel()
	require.NoError(t, err)
	c := train.Default()
	c.NumEpisodes = 5
	table, err := train.Train(m, c)
	require.NoError(t, err)
	policy, err := train.DeriveGreedyPolicy(table, m)
	require.NoError(t, err)

	r := result{Rule: c.Rule, Values: table.Values(), Policy: policy,
		table: table}

	var out bytes.Buffer
	printResult(&out, r)
	assert.Contains(t, out.String(), "Action values (qlearning)")
	assert.Contains(t, out.String(), "Greedy policy")

	out.Reset()
	require.NoError(t, printJSON(&out, []result{r}))

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "qlearning", decoded[0]["rule"])
	assert.Contains(t, decoded[0]["policy"], "s2")
}

func TestPrintRecord(t *testing.T) {
	au = aurora.NewAurora(false)

	var out bytes.Buffer
	printRecord(&out, simulator.Record{
		Step: 3, State: "s1", Action: "a2", Reward: -50,
		CumulativeReward: -10, NextState: "s2",
	})
	assert.Contains(t, out.String(), "Step 3:")
	assert.Contains(t, out.String(), "-50.00")
	assert.Contains(t, out.String(), "-10.00")
}

func TestEnvironmentConfig(t *testing.T) {
	defer viper.Reset()

	c, err := environmentConfig()
	require.NoError(t, err)
	assert.Equal(t, envconfig.Default(), c)

	viper.Set("gridworld", "2x3")
	c, err = environmentConfig()
	require.NoError(t, err)
	assert.Len(t, c.States, 6)

	viper.Set("gridworld", "three")
	_, err = environmentConfig()
	assert.Error(t, err)
}
