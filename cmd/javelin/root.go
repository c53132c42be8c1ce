package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/javelin/internal/config"
	"github.com/aretw0/javelin/internal/logging"
	"github.com/spf13/cobra"
)

var (
	v      = config.NewViper()
	cfg    config.Config
	logger = logging.NewNop()
)

var rootCmd = &cobra.Command{
	Use:           "javelin",
	Short:         "Javelin talks to servers that speak the async envelope protocol",
	Long:          `Javelin sends async requests, validates the "for (;;);" envelope and serves fixture endpoints for development.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(v, path)
		if err != nil {
			return err
		}
		cfg = loaded

		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		if cfg.Debug {
			level = slog.LevelDebug
		}
		logger = logging.New(level)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// bindFlag ties a viper key to a command flag so the flag wins when set.
func bindFlag(key string, cmd *cobra.Command, name string) {
	if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", name, err))
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./javelin.yaml or ~/.config/javelin/javelin.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging and protocol diagnostics")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	if err := v.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		panic(err)
	}
	if err := v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		panic(err)
	}
}
