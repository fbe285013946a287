package calibra

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the grid ranges and training settings for a calibration run.
// The ranges live here rather than in the pipelines so callers control the
// search space.
type Config struct {
	SMA SMAConfig `yaml:"sma"`
	RSI RSIConfig `yaml:"rsi"`
	Train TrainConfig `yaml:"train"`
}

type SMAConfig struct {
	FastMin int `yaml:"fastMin"`
	FastMax int `yaml:"fastMax"`
	SlowMax int `yaml:"slowMax"`
	Step int `yaml:"step"`
}

type RSIConfig struct {
	Periods []int `yaml:"periods"`
	Oversold []float64 `yaml:"oversold"`
	Overbought []float64 `yaml:"overbought"`
}

type TrainConfig struct {
	Lookback int `yaml:"lookback"`
	LearningRate float64 `yaml:"learningRate"`
	Iterations int `yaml:"iterations"`
}

// DefaultConfig mirrors the grids the research workflow has always used.
func DefaultConfig() Config {
	return Config{
		SMA: SMAConfig{
			FastMin: 5,
			FastMax: 25,
			SlowMax: 60,
			Step: 5,
		},
		RSI: RSIConfig{
			Periods: []int{8, 14, 21, 28},
			Oversold: []float64{20, 25, 30, 35},
			Overbought: []float64{65, 70, 75, 80},
		},
		Train: TrainConfig{
			Lookback: 20,
			LearningRate: 0.1,
			Iterations: 1000,
		},
	}
}

func LoadConfig(path string) (Config, error) {
	yamlData, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read configuration file (%s): %w", path, err)
	}
	config := DefaultConfig()
	err = yaml.Unmarshal(yamlData, &config)
	if err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal YAML (%s): %w", path, err)
	}
	err = config.Validate()
	if err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	err := c.SMA.validate()
	if err != nil {
		return err
	}
	err = c.RSI.validate()
	if err != nil {
		return err
	}
	return c.Train.validate()
}

func (c *SMAConfig) validate() error {
	if c.FastMin < 1 {
		return fmt.Errorf("invalid minimum fast window: %d", c.FastMin)
	}
	if c.Step < 1 {
		return fmt.Errorf("invalid window step: %d", c.Step)
	}
	if c.FastMax <= c.FastMin {
		return fmt.Errorf("invalid fast window range: %d to %d", c.FastMin, c.FastMax)
	}
	if c.SlowMax <= c.FastMax {
		return fmt.Errorf("invalid slow window limit: %d", c.SlowMax)
	}
	return nil
}

func (c *RSIConfig) validate() error {
	if len(c.Periods) == 0 {
		return fmt.Errorf("no RSI periods configured")
	}
	for _, period := range c.Periods {
		if period < 1 {
			return fmt.Errorf("invalid RSI period: %d", period)
		}
	}
	if len(c.Oversold) == 0 || len(c.Overbought) == 0 {
		return fmt.Errorf("no RSI thresholds configured")
	}
	return nil
}

func (c *TrainConfig) validate() error {
	if c.Lookback < 1 {
		return fmt.Errorf("invalid lookback: %d", c.Lookback)
	}
	if c.LearningRate <= 0.0 {
		return fmt.Errorf("invalid learning rate: %f", c.LearningRate)
	}
	if c.Iterations < 1 {
		return fmt.Errorf("invalid iteration count: %d", c.Iterations)
	}
	return nil
}
