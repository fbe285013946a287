package calibra

import (
	"gonum.org/v1/gonum/stat"
)

// Score is the cumulative strategy return under a one-bar lag: the position
// taken at the previous bar's close earns the current bar's return. The
// signal at index 0 is flat since no prior signal exists, and unavailable
// signals contribute nothing. Returns are summed, not compounded.
func Score(signal []Optional, returns []float64) float64 {
	total := 0.0
	length := min(len(signal), len(returns))
	for i := 1; i < length; i++ {
		previous := signal[i - 1]
		if !previous.Available {
			continue
		}
		total += previous.Value * returns[i]
	}
	return total
}

// Performance carries the diagnostics behind a single score: the cumulative
// PnL path, a compounded equity curve, the maximum drawdown of that curve,
// and the mean-over-stddev of the per-bar strategy returns. Only Score feeds
// the optimizer.
type Performance struct {
	Score float64
	Path []float64
	Equity []float64
	MaxDrawdown float64
	RiskAdjusted float64
}

func Measure(signal []Optional, returns []float64) Performance {
	length := min(len(signal), len(returns))
	path := make([]float64, length)
	equity := make([]float64, length)
	samples := []float64{}
	total := 0.0
	cash := 1.0
	maxCash := 1.0
	maxDrawdown := 0.0
	for i := 0; i < length; i++ {
		contribution := 0.0
		if i > 0 && signal[i - 1].Available {
			contribution = signal[i - 1].Value * returns[i]
			samples = append(samples, contribution)
		}
		total += contribution
		cash *= 1.0 + contribution
		maxCash = max(maxCash, cash)
		drawdown := 1.0 - cash / maxCash
		maxDrawdown = max(maxDrawdown, drawdown)
		path[i] = total
		equity[i] = cash
	}
	return Performance{
		Score: total,
		Path: path,
		Equity: equity,
		MaxDrawdown: maxDrawdown,
		RiskAdjusted: riskAdjusted(samples),
	}
}

func riskAdjusted(samples []float64) float64 {
	if len(samples) < 2 {
		return 0.0
	}
	deviation := stat.StdDev(samples, nil)
	if deviation == 0.0 {
		return 0.0
	}
	return stat.Mean(samples, nil) / deviation
}
