package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/jose-valero/discord-interactions/internal/infra/storage"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|version]",
	Short:     "Migraciones del interaction log",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "version"},
	RunE:      runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if cfg.DatabaseURL == "" {
		return errors.New("migrate: DATABASE_URL vacío")
	}
	ctx := cmd.Context()
	db, err := storage.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	action := "up"
	if len(args) == 1 {
		action = args[0]
	}
	switch action {
	case "down":
		err = storage.MigrateDown(ctx, db)
	case "version":
		var v int64
		if v, err = storage.MigrationVersion(ctx, db); err == nil {
			cmd.Printf("version %d\n", v)
		}
	default:
		err = storage.Migrate(ctx, db)
	}
	return err
}
