package main

import (
	"github.com/spf13/cobra"
)

var (
	inputPath    string
	configPath   string
	noPlot       bool
	saveModel    bool
	loadModel    bool
	predictOnly  bool
	modelPath    string
	metadataPath string
	logLevel     string

	rootCmd = &cobra.Command{
		Use:   "housefit",
		Short: "Multi linear regression analysis on house pricing",
		Long: `Housefit fits house prices against square footage and bedroom count.
It loads a CSV, drops incomplete rows and outliers, trains on a
standardized train/test split and reports the fitted formula in original
units together with R2 and RMSE for both partitions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}
)

func init() {
	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "",
		"path to CSV data file (default from config)")
	rootCmd.Flags().StringVar(&configPath, "config", "",
		"path to a YAML config file overlaying the defaults")
	rootCmd.Flags().BoolVar(&noPlot, "no-plot", false,
		"not creating visualization when running")
	rootCmd.Flags().BoolVar(&saveModel, "save-model", false,
		"save trained model to file system")
	rootCmd.Flags().StringVar(&modelPath, "model-path", "",
		"path to load/save model (default from config)")
	rootCmd.Flags().StringVar(&metadataPath, "metadata-path", "",
		"path to load/save model metadata (default from config)")
	rootCmd.Flags().BoolVar(&loadModel, "load-model", false,
		"load a previously trained model")
	rootCmd.Flags().BoolVar(&predictOnly, "predict-only", false,
		"only make predictions with a pretrained model, requires --load-model")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "",
		"log level: debug, info, warn or error (default from config)")
}
