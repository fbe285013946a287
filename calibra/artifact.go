package calibra

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Strategy names understood by the downstream execution system.
const (
	StrategySMACross = "SmaCross"
	StrategyRSIReversion = "RsiReversion"
	StrategyClassifier = "MlClassifier"
)

type strategyArtifact struct {
	StrategyName string `toml:"strategy_name"`
	Params map[string]any `toml:"params"`
}

type modelArtifact struct {
	Bias float64 `toml:"bias"`
	Weights []float64 `toml:"weights"`
}

// WriteStrategy persists a winning parameterization as a TOML strategy
// config, creating parent directories as needed.
func WriteStrategy(path, name string, params map[string]any) error {
	artifact := strategyArtifact{
		StrategyName: name,
		Params: params,
	}
	return writeTOML(path, artifact)
}

// WriteModel persists trained classifier weights as a TOML model artifact.
func WriteModel(path string, model Model) error {
	artifact := modelArtifact{
		Bias: model.Bias,
		Weights: model.Weights,
	}
	return writeTOML(path, artifact)
}

func writeTOML(path string, value any) error {
	directory := filepath.Dir(path)
	err := os.MkdirAll(directory, 0755)
	if err != nil {
		return fmt.Errorf("failed to create directory (%s): %w", directory, err)
	}
	data, err := toml.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal TOML: %w", err)
	}
	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write file (%s): %w", path, err)
	}
	return nil
}
