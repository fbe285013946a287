package calibra

import (
	"fmt"
	"image/color"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

type dateTicks struct{}

// PlotEquityCurve renders the compounded equity curve of a strategy as a PNG
// line plot. The equity samples are aligned by index with the series.
func PlotEquityCurve(series Series, equity []float64, path string) error {
	length := min(len(series), len(equity))
	plotterData := make(plotter.XYs, length)
	for i := 0; i < length; i++ {
		plotterData[i].X = timeToFloat(series[i].Timestamp)
		plotterData[i].Y = equity[i]
	}
	p := plot.New()
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Equity"
	p.X.Padding = -1
	p.Y.Padding = -1
	grid := plotter.NewGrid()
	dashes := []vg.Length{vg.Points(2), vg.Points(2)}
	grid.Horizontal.Dashes = dashes
	grid.Vertical.Dashes = dashes
	p.Add(grid)
	p.X.Tick.Marker = dateTicks{}
	line, err := plotter.NewLine(plotterData)
	if err != nil {
		return fmt.Errorf("failed to create line plot: %w", err)
	}
	line.LineStyle.Color = color.RGBA{R: 255, A: 255}
	p.Add(line)
	err = p.Save(12 * vg.Inch, 8 * vg.Inch, path)
	if err != nil {
		return fmt.Errorf("failed to save plot (%s): %w", path, err)
	}
	return nil
}

func (dateTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			tickTime := time.Unix(int64(ticks[i].Value), 0).UTC()
			ticks[i].Label = tickTime.Format("2006-01-02")
		}
	}
	return ticks
}

func timeToFloat(t time.Time) float64 {
	return float64(t.Unix())
}
