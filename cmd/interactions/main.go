// Package main es el CLI de la app: serve (HTTP + cron en proceso),
// register (sube los slash commands) y migrate.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jose-valero/discord-interactions/internal/infra/config"
	"github.com/jose-valero/discord-interactions/internal/infra/logger"
)

var (
	envFile string

	cfg config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "interactions",
	Short:         "Discord interactions webhook",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "archivo .env (si existe)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(migrateCmd)
}

func setup(cmd *cobra.Command) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("env file %s: %w", envFile, err)
		}
	}
	var err error
	if cfg, err = config.Load(); err != nil {
		return err
	}
	if log, err = logger.New(cfg.LogLevel, cfg.LogDevelopment); err != nil {
		return err
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
