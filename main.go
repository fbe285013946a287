package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"calibra/calibra"
)

var (
	dataPath string
	symbol string
	outputPath string
	configPath string
	deadline time.Duration
	enablePlot bool
	noProgress bool
)

var rootCmd = &cobra.Command{
	Use: "calibra",
	Short: "Calibrate trading strategy parameters against historical price data",
	Long: `Calibra replays historical close prices through simple trading
strategies, exhaustively searches each strategy's parameter grid for the best
cumulative return, and writes the winning configuration as a TOML artifact
for the execution system.`,
}

var optimizeSMACmd = &cobra.Command{
	Use: "optimize-sma",
	Short: "Grid-search fast/slow moving average windows",
	RunE: func (cmd *cobra.Command, args []string) error {
		return runPipeline(calibra.OptimizeSMA)
	},
}

var optimizeRSICmd = &cobra.Command{
	Use: "optimize-rsi",
	Short: "Grid-search RSI period and oversold/overbought thresholds",
	RunE: func (cmd *cobra.Command, args []string) error {
		return runPipeline(calibra.OptimizeRSI)
	},
}

var trainCmd = &cobra.Command{
	Use: "train",
	Short: "Train the logistic direction classifier on return windows",
	RunE: func (cmd *cobra.Command, args []string) error {
		return runPipeline(calibra.TrainClassifier)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{optimizeSMACmd, optimizeRSICmd, trainCmd} {
		cmd.Flags().StringVar(&dataPath, "data", "", "Path to the historical close-price CSV")
		cmd.Flags().StringVar(&symbol, "symbol", "BTCUSDT", "Traded symbol written into the artifact")
		cmd.Flags().StringVar(&outputPath, "output", "", "Path of the TOML artifact to write")
		cmd.Flags().StringVar(&configPath, "config", "", "Optional YAML file with grid ranges and training settings")
		cmd.Flags().DurationVar(&deadline, "deadline", 0, "Abort the grid search after this duration (0 disables)")
		cmd.Flags().BoolVar(&enablePlot, "plot", false, "Write an equity curve PNG next to the artifact")
		cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")
		cmd.MarkFlagRequired("data")
		cmd.MarkFlagRequired("output")
		rootCmd.AddCommand(cmd)
	}
}

func runPipeline(pipeline func (calibra.PipelineOptions, calibra.Config) error) error {
	config := calibra.DefaultConfig()
	if configPath != "" {
		loaded, err := calibra.LoadConfig(configPath)
		if err != nil {
			return err
		}
		config = loaded
	}
	options := calibra.PipelineOptions{
		DataPath: dataPath,
		Symbol: symbol,
		OutputPath: outputPath,
		Deadline: deadline,
		Progress: !noProgress,
		Plot: enablePlot,
	}
	return pipeline(options, config)
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Run failed")
	}
}
