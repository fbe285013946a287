package calibra

import (
	"math"
)

type SMAPoint struct {
	Fast int
	Slow int
}

type RSIPoint struct {
	Period int
	Oversold float64
	Overbought float64
}

// SMAGrid enumerates fast/slow window pairs. Bounds are exclusive and the
// slow window always starts one step above the fast one, so fast < slow
// holds for every point.
func SMAGrid(config SMAConfig) []SMAPoint {
	points := []SMAPoint{}
	for fast := config.FastMin; fast < config.FastMax; fast += config.Step {
		for slow := fast + config.Step; slow < config.SlowMax; slow += config.Step {
			point := SMAPoint{
				Fast: fast,
				Slow: slow,
			}
			points = append(points, point)
		}
	}
	return points
}

// RSIGrid enumerates the Cartesian product of periods and thresholds,
// pruning pairs where the oversold threshold is not strictly below the
// overbought one.
func RSIGrid(config RSIConfig) []RSIPoint {
	points := []RSIPoint{}
	for _, period := range config.Periods {
		for _, oversold := range config.Oversold {
			for _, overbought := range config.Overbought {
				if oversold >= overbought {
					continue
				}
				point := RSIPoint{
					Period: period,
					Oversold: oversold,
					Overbought: overbought,
				}
				points = append(points, point)
			}
		}
	}
	return points
}

// EvaluateSMA scores a single crossover parameterization against the series.
func EvaluateSMA(closes, returns []float64, point SMAPoint) float64 {
	fast, err := SMA(closes, point.Fast)
	if err != nil {
		return math.Inf(-1)
	}
	slow, err := SMA(closes, point.Slow)
	if err != nil {
		return math.Inf(-1)
	}
	return Score(CrossoverSignal(fast, slow), returns)
}

// EvaluateRSI scores a single threshold parameterization against the series.
func EvaluateRSI(closes, returns []float64, point RSIPoint) float64 {
	oscillator, err := RSI(closes, point.Period)
	if err != nil {
		return math.Inf(-1)
	}
	return Score(ThresholdSignal(oscillator, point.Oversold, point.Overbought), returns)
}
