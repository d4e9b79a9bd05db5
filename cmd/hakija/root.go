package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/yairfalse/hakija/internal/config"
)

var (
	version = "0.1.0"

	cfgPath    string
	cfgProfile string
	cfgDebug   bool

	cfg = config.Default()

	rootCmd = &cobra.Command{
		Use:   "hakija",
		Short: "AWS resource resolution filters",
		Long: `Hakija - AWS resource resolution filters

Hakija resolves tag and name queries into concrete AWS resource
identifiers: instance attributes, subnet ids, the latest machine
image, security groups, queue ARNs and more.

Each lookup is a single stateless query. No caching, no retries,
no state files.`,
		Version:           version,
		PersistentPreRunE: setup,
	}
)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate(`Hakija {{.Version}} - AWS resource resolution filters
`)
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVarP(&cfgProfile, "profile", "p", "", "AWS shared config profile")
	rootCmd.PersistentFlags().BoolVar(&cfgDebug, "debug", false, "Enable debug logging")
}

// setup loads configuration and wires the global logger. Flags win over the
// config file.
func setup(cmd *cobra.Command, args []string) error {
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if cfgProfile != "" {
		cfg.Profile = cfgProfile
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	if cfgDebug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	return nil
}
