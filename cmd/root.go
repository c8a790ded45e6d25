package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/benoitkugler/svgstyler/config"
	"github.com/benoitkugler/svgstyler/logging"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "svgstyler",
	Short: "Recolor the shapes of SVG images and export them as PNG",
	Long: `svgstyler loads an SVG image and lets you recolor its shapes one by one,
save the resulting color schemes as named styles, and export the image
as PNG. The editor runs as a local web page (serve) or in the terminal (shell).`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "svgstyler.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig reads the configuration and installs the logger it describes.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	logging.SetLogger(logger)
	return cfg, nil
}
