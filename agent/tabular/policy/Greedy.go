package policy

import (
	"github.com/samuelfneumann/gotabular/sampler"
	"github.com/samuelfneumann/gotabular/valuetable"
)

// NewGreedy creates a new Greedy policy
func NewGreedy(table *valuetable.ValueTable,
	rng *sampler.Sampler) *EGreedy {
	p, err := NewEGreedy(0.0, table, rng)
	if err != nil {
		panic(err)
	}
	return p
}
