package progressbar

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManualProgressBar(t *testing.T) {
	var out bytes.Buffer
	p := NewManualProgressBar(&out, 10, 4)

	p.Increment()
	assert.Equal(t, 0.25, p.Progress())
	p.Display()
	assert.Contains(t, out.String(), "25.00%")

	for i := 0; i < 10; i++ {
		p.Increment()
	}
	assert.Equal(t, 1.0, p.Progress())
	assert.Equal(t, 10, strings.Count(p.String(), "█"))

	p.Close()
	assert.True(t, strings.HasSuffix(out.String(), "\n"))
}
