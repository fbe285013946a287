package calibra

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// The downstream RSI strategy keeps a fixed candle lookback buffer.
const rsiCandleLookback = 400

// Probability thresholds for the classifier strategy config.
const (
	classifierThresholdLong = 0.1
	classifierThresholdShort = -0.1
)

var ErrTruncatedSearch = errors.New("grid search was truncated by the deadline")

// PipelineOptions are the per-run settings shared by the three pipelines.
type PipelineOptions struct {
	DataPath string
	Symbol string
	OutputPath string
	Deadline time.Duration
	Progress bool
	Plot bool
}

// OptimizeSMA searches the fast/slow crossover grid and writes the winning
// parameterization as a strategy config.
func OptimizeSMA(options PipelineOptions, config Config) error {
	series, err := LoadSeries(options.DataPath)
	if err != nil {
		return err
	}
	closes := series.Closes()
	returns := Returns(series)
	points := SMAGrid(config.SMA)
	start := time.Now()
	result, err := Search(points, func (point SMAPoint) float64 {
		return EvaluateSMA(closes, returns, point)
	}, searchOptions(options))
	if err != nil {
		return err
	}
	log.Info().
		Int("evaluated", result.Evaluated).
		Dur("elapsed", time.Since(start)).
		Int("fast", result.Best.Fast).
		Int("slow", result.Best.Slow).
		Float64("score", result.Score).
		Msg("Finished SMA grid search")
	if result.Truncated {
		return fmt.Errorf("%w: best point so far was fast=%d slow=%d", ErrTruncatedSearch, result.Best.Fast, result.Best.Slow)
	}
	if options.Plot {
		fast, _ := SMA(closes, result.Best.Fast)
		slow, _ := SMA(closes, result.Best.Slow)
		err = plotWinner(series, CrossoverSignal(fast, slow), returns, options.OutputPath)
		if err != nil {
			return err
		}
	}
	params := map[string]any{
		"symbol": options.Symbol,
		"fast_period": result.Best.Fast,
		"slow_period": result.Best.Slow,
		"min_samples": result.Best.Slow + 5,
	}
	return WriteStrategy(options.OutputPath, StrategySMACross, params)
}

// OptimizeRSI searches the period/threshold grid and writes the winning
// parameterization as a strategy config.
func OptimizeRSI(options PipelineOptions, config Config) error {
	series, err := LoadSeries(options.DataPath)
	if err != nil {
		return err
	}
	closes := series.Closes()
	returns := Returns(series)
	points := RSIGrid(config.RSI)
	start := time.Now()
	result, err := Search(points, func (point RSIPoint) float64 {
		return EvaluateRSI(closes, returns, point)
	}, searchOptions(options))
	if err != nil {
		return err
	}
	log.Info().
		Int("evaluated", result.Evaluated).
		Dur("elapsed", time.Since(start)).
		Int("period", result.Best.Period).
		Float64("oversold", result.Best.Oversold).
		Float64("overbought", result.Best.Overbought).
		Float64("score", result.Score).
		Msg("Finished RSI grid search")
	if result.Truncated {
		return fmt.Errorf("%w: best point so far was period=%d", ErrTruncatedSearch, result.Best.Period)
	}
	if options.Plot {
		oscillator, _ := RSI(closes, result.Best.Period)
		signal := ThresholdSignal(oscillator, result.Best.Oversold, result.Best.Overbought)
		err = plotWinner(series, signal, returns, options.OutputPath)
		if err != nil {
			return err
		}
	}
	params := map[string]any{
		"symbol": options.Symbol,
		"period": result.Best.Period,
		"oversold": result.Best.Oversold,
		"overbought": result.Best.Overbought,
		"lookback": rsiCandleLookback,
	}
	return WriteStrategy(options.OutputPath, StrategyRSIReversion, params)
}

// TrainClassifier builds the return-window dataset, fits the logistic
// classifier, and writes the model artifact plus a sibling strategy config
// pointing at it.
func TrainClassifier(options PipelineOptions, config Config) error {
	series, err := LoadSeries(options.DataPath)
	if err != nil {
		return err
	}
	returns := Returns(series)
	dataset, err := BuildDataset(returns, config.Train.Lookback)
	if err != nil {
		return err
	}
	start := time.Now()
	model, err := Fit(dataset, config.Train.LearningRate, config.Train.Iterations)
	if err != nil {
		return err
	}
	log.Info().
		Int("samples", len(dataset.Features)).
		Int("lookback", config.Train.Lookback).
		Dur("elapsed", time.Since(start)).
		Float64("accuracy", model.Accuracy(dataset)).
		Msg("Trained classifier")
	err = WriteModel(options.OutputPath, model)
	if err != nil {
		return err
	}
	params := map[string]any{
		"symbol": options.Symbol,
		"model_path": options.OutputPath,
		"lookback": config.Train.Lookback,
		"threshold_long": classifierThresholdLong,
		"threshold_short": classifierThresholdShort,
	}
	return WriteStrategy(siblingPath(options.OutputPath, ".strategy.toml"), StrategyClassifier, params)
}

func searchOptions(options PipelineOptions) SearchOptions {
	return SearchOptions{
		Progress: options.Progress,
		Deadline: options.Deadline,
	}
}

func plotWinner(series Series, signal []Optional, returns []float64, outputPath string) error {
	performance := Measure(signal, returns)
	plotPath := siblingPath(outputPath, ".png")
	err := PlotEquityCurve(series, performance.Equity, plotPath)
	if err != nil {
		return err
	}
	log.Info().
		Str("path", plotPath).
		Float64("maxDrawdown", performance.MaxDrawdown).
		Float64("riskAdjusted", performance.RiskAdjusted).
		Msg("Wrote equity curve plot")
	return nil
}

func siblingPath(path, suffix string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + suffix
}
