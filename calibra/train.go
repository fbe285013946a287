package calibra

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var ErrFit = errors.New("degenerate training set")

// Model is a trained binary classifier: a bias plus one weight per
// feature-window position. It is written once and never mutated.
type Model struct {
	Bias float64
	Weights []float64
}

// Fit trains a logistic-regression classifier with batch gradient descent.
// Features are standardized per column before training and the
// standardization is folded back into the returned weights, so the model
// applies directly to raw return windows. Zero initialization and a fixed
// iteration count keep the fit deterministic.
func Fit(dataset Dataset, learningRate float64, iterations int) (Model, error) {
	if len(dataset.Features) == 0 {
		return Model{}, fmt.Errorf("%w: no samples", ErrFit)
	}
	if len(dataset.Features) != len(dataset.Labels) {
		return Model{}, fmt.Errorf("%w: %d features vs. %d labels", ErrFit, len(dataset.Features), len(dataset.Labels))
	}
	if learningRate <= 0 || iterations < 1 {
		return Model{}, fmt.Errorf("invalid training settings (learningRate = %f, iterations = %d)", learningRate, iterations)
	}
	columns := len(dataset.Features[0])
	for _, features := range dataset.Features {
		if len(features) != columns {
			return Model{}, fmt.Errorf("%w: ragged feature windows", ErrFit)
		}
	}
	means, deviations := columnStats(dataset.Features, columns)
	standardized := make([][]float64, len(dataset.Features))
	for i, features := range dataset.Features {
		row := make([]float64, columns)
		for j, value := range features {
			row[j] = (value - means[j]) / deviations[j]
		}
		standardized[i] = row
	}
	weights := make([]float64, columns)
	bias := 0.0
	gradient := make([]float64, columns)
	scale := learningRate / float64(len(standardized))
	for it := 0; it < iterations; it++ {
		for j := range gradient {
			gradient[j] = 0.0
		}
		biasGradient := 0.0
		for i, row := range standardized {
			probability := sigmoid(bias + floats.Dot(weights, row))
			residual := probability - float64(dataset.Labels[i])
			floats.AddScaled(gradient, residual, row)
			biasGradient += residual
		}
		floats.AddScaled(weights, -scale, gradient)
		bias -= scale * biasGradient
	}
	// Undo the standardization so the artifact applies to raw returns.
	rawWeights := make([]float64, columns)
	rawBias := bias
	for j := range weights {
		rawWeights[j] = weights[j] / deviations[j]
		rawBias -= weights[j] * means[j] / deviations[j]
	}
	model := Model{
		Bias: rawBias,
		Weights: rawWeights,
	}
	return model, nil
}

// Predict returns the probability that the next return is positive.
func (m Model) Predict(features []float64) float64 {
	return sigmoid(m.Bias + floats.Dot(m.Weights, features))
}

// Accuracy is the in-sample share of samples the model classifies correctly
// at a 0.5 probability threshold.
func (m Model) Accuracy(dataset Dataset) float64 {
	if len(dataset.Features) == 0 {
		return 0.0
	}
	correct := 0
	for i, features := range dataset.Features {
		predicted := 0
		if m.Predict(features) >= 0.5 {
			predicted = 1
		}
		if predicted == dataset.Labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(dataset.Features))
}

func columnStats(features [][]float64, columns int) ([]float64, []float64) {
	means := make([]float64, columns)
	deviations := make([]float64, columns)
	column := make([]float64, len(features))
	for j := 0; j < columns; j++ {
		for i, row := range features {
			column[i] = row[j]
		}
		means[j] = stat.Mean(column, nil)
		deviation := stat.StdDev(column, nil)
		if deviation == 0.0 || math.IsNaN(deviation) {
			deviation = 1.0
		}
		deviations[j] = deviation
	}
	return means, deviations
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
