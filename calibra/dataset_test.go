package calibra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDataset(t *testing.T) {
	t.Run("entry_count", func(t *testing.T) {
		returns := make([]float64, 10)
		for i := range returns {
			returns[i] = float64(i) * 0.01
		}
		dataset, err := BuildDataset(returns, 3)
		require.NoError(t, err)
		// N - L - 1 entries, windows of length L, binary labels.
		assert.Len(t, dataset.Features, 6)
		assert.Len(t, dataset.Labels, 6)
		for _, window := range dataset.Features {
			assert.Len(t, window, 3)
		}
		for _, label := range dataset.Labels {
			assert.Contains(t, []int{0, 1}, label)
		}
	})

	t.Run("windows_and_labels", func(t *testing.T) {
		returns := []float64{0, 0.01, -0.02, 0.03, 0.01}
		dataset, err := BuildDataset(returns, 2)
		require.NoError(t, err)
		require.Len(t, dataset.Features, 2)
		assert.Equal(t, []float64{0, 0.01}, dataset.Features[0])
		assert.Equal(t, []float64{0.01, -0.02}, dataset.Features[1])
		// Labels come from returns[i+1]: 0.03 and 0.01, both positive.
		assert.Equal(t, []int{1, 1}, dataset.Labels)
	})

	t.Run("negative_next_return_labels_zero", func(t *testing.T) {
		returns := []float64{0, 0.01, 0.02, -0.05, 0.01}
		dataset, err := BuildDataset(returns, 2)
		require.NoError(t, err)
		require.Len(t, dataset.Labels, 2)
		assert.Equal(t, 0, dataset.Labels[0])
		assert.Equal(t, 1, dataset.Labels[1])
	})

	t.Run("windows_are_copies", func(t *testing.T) {
		returns := []float64{0, 0.01, -0.02, 0.03, 0.01}
		dataset, err := BuildDataset(returns, 2)
		require.NoError(t, err)
		returns[0] = 99.0
		assert.Equal(t, 0.0, dataset.Features[0][0])
	})

	t.Run("insufficient_data", func(t *testing.T) {
		_, err := BuildDataset([]float64{0, 0.01, 0.02}, 2)
		assert.ErrorIs(t, err, ErrInsufficientData)
	})

	t.Run("invalid_lookback", func(t *testing.T) {
		_, err := BuildDataset([]float64{0, 0.01, 0.02}, 0)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrInsufficientData)
	})
}
