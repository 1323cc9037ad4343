package trackers

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"
)

// Series is a named sequence of per-episode values
type Series struct {
	Name string
	Data []float64
}

// Plot renders the series as a line chart of value per episode to an
// HTML file at filename
func Plot(filename, title string, series ...Series) error {
	if len(series) == 0 {
		return fmt.Errorf("plot: no series to plot")
	}

	numEpisodes := 0
	for _, s := range series {
		if len(s.Data) > numEpisodes {
			numEpisodes = len(s.Data)
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "episode"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "return"}),
	)

	episodes := make([]string, numEpisodes)
	for i := range episodes {
		episodes[i] = fmt.Sprintf("%d", i+1)
	}
	line.SetXAxis(episodes)

	for _, s := range series {
		items := make([]opts.LineData, len(s.Data))
		for i, v := range s.Data {
			items[i] = opts.LineData{Value: v}
		}
		line.AddSeries(s.Name, items)
	}

	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "plot")
	}
	defer f.Close()

	if err := line.Render(f); err != nil {
		return errors.Wrap(err, "plot: could not render chart")
	}
	return f.Close()
}
