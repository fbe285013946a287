package calibra

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSyntheticCSV(t *testing.T, bars int) string {
	t.Helper()
	var builder strings.Builder
	builder.WriteString("timestamp,close\n")
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < bars; i++ {
		timestamp := start.Add(time.Duration(i) * time.Hour)
		close := 100.0 + 10.0*math.Sin(float64(i)*0.1) + 0.05*float64(i)
		builder.WriteString(fmt.Sprintf("%s,%.4f\n", timestamp.Format("2006-01-02 15:04:05"), close))
	}
	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte(builder.String()), 0644))
	return path
}

func readStrategyArtifact(t *testing.T, path string) (string, map[string]any) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded struct {
		StrategyName string `toml:"strategy_name"`
		Params map[string]any `toml:"params"`
	}
	require.NoError(t, toml.Unmarshal(data, &decoded))
	return decoded.StrategyName, decoded.Params
}

func testConfig() Config {
	config := DefaultConfig()
	config.SMA = SMAConfig{
		FastMin: 3,
		FastMax: 9,
		SlowMax: 15,
		Step: 3,
	}
	config.RSI = RSIConfig{
		Periods: []int{5, 8},
		Oversold: []float64{25, 30},
		Overbought: []float64{70, 75},
	}
	config.Train = TrainConfig{
		Lookback: 5,
		LearningRate: 0.1,
		Iterations: 200,
	}
	return config
}

func TestOptimizeSMA(t *testing.T) {
	dataPath := writeSyntheticCSV(t, 300)
	outputPath := filepath.Join(t.TempDir(), "sma_cross_optimal.toml")
	options := PipelineOptions{
		DataPath: dataPath,
		Symbol: "BTCUSDT",
		OutputPath: outputPath,
	}
	err := OptimizeSMA(options, testConfig())
	require.NoError(t, err)

	name, params := readStrategyArtifact(t, outputPath)
	assert.Equal(t, StrategySMACross, name)
	assert.Equal(t, "BTCUSDT", params["symbol"])
	fast, ok := params["fast_period"].(int64)
	require.True(t, ok)
	slow, ok := params["slow_period"].(int64)
	require.True(t, ok)
	assert.Less(t, fast, slow)
	assert.EqualValues(t, slow+5, params["min_samples"])
}

func TestOptimizeRSI(t *testing.T) {
	dataPath := writeSyntheticCSV(t, 300)
	outputPath := filepath.Join(t.TempDir(), "rsi_reversion_optimal.toml")
	options := PipelineOptions{
		DataPath: dataPath,
		Symbol: "ETHUSDT",
		OutputPath: outputPath,
	}
	err := OptimizeRSI(options, testConfig())
	require.NoError(t, err)

	name, params := readStrategyArtifact(t, outputPath)
	assert.Equal(t, StrategyRSIReversion, name)
	assert.Equal(t, "ETHUSDT", params["symbol"])
	assert.Contains(t, []int64{5, 8}, params["period"])
	assert.EqualValues(t, rsiCandleLookback, params["lookback"])
}

func TestOptimizeSMADeadline(t *testing.T) {
	dataPath := writeSyntheticCSV(t, 300)
	outputPath := filepath.Join(t.TempDir(), "sma_cross_optimal.toml")
	config := testConfig()
	config.SMA = SMAConfig{
		FastMin: 3,
		FastMax: 60,
		SlowMax: 120,
		Step: 1,
	}
	options := PipelineOptions{
		DataPath: dataPath,
		Symbol: "BTCUSDT",
		OutputPath: outputPath,
		Deadline: time.Nanosecond,
	}
	err := OptimizeSMA(options, config)
	require.ErrorIs(t, err, ErrTruncatedSearch)
	_, statErr := os.Stat(outputPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestTrainClassifier(t *testing.T) {
	dataPath := writeSyntheticCSV(t, 300)
	outputPath := filepath.Join(t.TempDir(), "classifier.toml")
	options := PipelineOptions{
		DataPath: dataPath,
		Symbol: "BTCUSDT",
		OutputPath: outputPath,
	}
	err := TrainClassifier(options, testConfig())
	require.NoError(t, err)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	var model modelArtifact
	require.NoError(t, toml.Unmarshal(data, &model))
	assert.Len(t, model.Weights, 5)

	strategyPath := siblingPath(outputPath, ".strategy.toml")
	name, params := readStrategyArtifact(t, strategyPath)
	assert.Equal(t, StrategyClassifier, name)
	assert.Equal(t, outputPath, params["model_path"])
	assert.EqualValues(t, 5, params["lookback"])
}

func TestSiblingPath(t *testing.T) {
	assert.Equal(t, "out/model.strategy.toml", siblingPath("out/model.toml", ".strategy.toml"))
	assert.Equal(t, "out/sma.png", siblingPath("out/sma.toml", ".png"))
}
