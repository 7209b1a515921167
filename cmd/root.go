package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tokenguard/internal/config"
	"tokenguard/internal/logger"
)

// cli holds what the subcommands share once the root has loaded config.
type cli struct {
	configFile string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:           "tokenguard",
		Short:         "tokenguard CLI",
		Long:          `tokenguard keeps a client JWT and verifies bearer tokens on an HTTP API`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(c.configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger.Init(cfg.LogLevel)
			c.cfg = cfg
			logger.Debug("Starting CLI", "env", cfg.AppEnv)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&c.configFile, "config", "", "path to a config file (default ./config.yaml)")

	rootCmd.AddCommand(newServeCmd(c))
	rootCmd.AddCommand(newTokenCmd(c))
	return rootCmd
}
