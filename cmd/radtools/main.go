// Package main is the entry point for the radtools CLI: DICOM directory
// indexing and anonymization, and PubMed bibliography aggregation.
package main

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"radtools/internal/config"
	"radtools/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// log is the shared logger, configured in PersistentPreRun once flags and
// config have been resolved.
var log *logrus.Logger = logging.Discard()

// rootCmd is the base command for the radtools CLI.
var rootCmd = &cobra.Command{
	Use:   "radtools",
	Short: "Utilities for radiology research file handling",
	Long: `radtools handles the file formats of a radiology research workflow:
DICOM studies (directory indexing, deterministic anonymization) and PubMed
bibliography exports (parsing, aggregation, spreadsheet export).`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg := config.FromViper(viper.GetViper())
		log = logging.New(cfg.LogLevel, cfg.LogFormat)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./radtools.yaml or ~/.config/radtools/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text or json")
}

func initConfig() {
	config.SetDefaults(viper.GetViper())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("radtools")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "radtools"))
		}
	}

	viper.SetEnvPrefix("RADTOOLS")
	viper.AutomaticEnv()

	if level, _ := rootCmd.PersistentFlags().GetString("log-level"); level != "" {
		viper.Set("log.level", level)
	}
	if format, _ := rootCmd.PersistentFlags().GetString("log-format"); format != "" {
		viper.Set("log.format", format)
	}

	_ = viper.ReadInConfig() // absent config file is fine
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
