package calibra

import (
	"errors"
	"fmt"
)

var ErrInsufficientData = errors.New("insufficient data")

type Dataset struct {
	Features [][]float64
	Labels []int
}

// BuildDataset slices the return series into fixed-width feature windows
// with binary up/down labels. The window for index i covers returns[i-L:i]
// and the label is 1 when the return after the window is positive. Indices
// without a full window or a following return are excluded, not zero-filled.
func BuildDataset(returns []float64, lookback int) (Dataset, error) {
	if lookback < 1 {
		return Dataset{}, fmt.Errorf("invalid lookback: %d", lookback)
	}
	dataset := Dataset{}
	for i := lookback; i < len(returns) - 1; i++ {
		window := make([]float64, lookback)
		copy(window, returns[i - lookback:i])
		label := 0
		if returns[i + 1] > 0 {
			label = 1
		}
		dataset.Features = append(dataset.Features, window)
		dataset.Labels = append(dataset.Labels, label)
	}
	if len(dataset.Features) == 0 {
		return Dataset{}, fmt.Errorf("%w: %d returns with lookback %d", ErrInsufficientData, len(returns), lookback)
	}
	return dataset, nil
}
