package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/samuelfneumann/gotabular/simulator"
)

const separator = "--------------------------------------------------------------"

// printResult prints the learned action values of a training run with
// the greedy action of each state highlighted, followed by the greedy
// policy
func printResult(w io.Writer, r result) {
	fmt.Fprintln(w, au.Bold(fmt.Sprintf("Action values (%v)", r.Rule)))
	fmt.Fprintln(w, separator)

	for _, s := range r.table.States() {
		actions, values, err := r.table.Row(s)
		if err != nil {
			continue
		}

		fmt.Fprintf(w, "%-6s", au.Cyan(s))
		for i, a := range actions {
			entry := fmt.Sprintf("  %v: %10.4f", a, values[i])
			if a == r.Policy[s] {
				fmt.Fprint(w, au.Green(entry))
			} else {
				fmt.Fprint(w, au.Blue(entry))
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, au.Bold("Greedy policy"))
	fmt.Fprintln(w, separator)
	for _, s := range r.table.States() {
		fmt.Fprintf(w, "%-6s -> %v\n", au.Cyan(s), au.Green(r.Policy[s]))
	}
	fmt.Fprintln(w)
}

// printRecord prints a single step of a trajectory
func printRecord(w io.Writer, r simulator.Record) {
	reward := au.Green(fmt.Sprintf("%+.2f", r.Reward))
	if r.Reward < 0 {
		reward = au.Red(fmt.Sprintf("%+.2f", r.Reward))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%v\n", au.Bold(fmt.Sprintf("Step %d:", r.Step)))
	fmt.Fprintf(&b, "  state:       %v\n", au.Cyan(r.State))
	fmt.Fprintf(&b, "  action:      %v\n", au.Yellow(r.Action))
	fmt.Fprintf(&b, "  reward:      %v\n", reward)
	fmt.Fprintf(&b, "  cumulative:  %+.2f\n", r.CumulativeReward)
	fmt.Fprintf(&b, "  next state:  %v\n", au.Cyan(r.NextState))
	b.WriteString(separator + "\n")

	fmt.Fprint(w, b.String())
}

// printJSON prints v as indented JSON
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
