// Package wire arma la app completa a partir de la config: DB y NATS
// opcionales, servicios y Router. Lo comparten todos los cmd/.
package wire

import (
	"context"
	"database/sql"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/jose-valero/discord-interactions/internal/adapters/comms"
	"github.com/jose-valero/discord-interactions/internal/adapters/discord"
	"github.com/jose-valero/discord-interactions/internal/app/bot"
	"github.com/jose-valero/discord-interactions/internal/app/service"
	"github.com/jose-valero/discord-interactions/internal/infra/config"
	"github.com/jose-valero/discord-interactions/internal/infra/storage"
)

const clientName = "discord-interactions"

type App struct {
	Router *discord.Router
	DB     *sql.DB    // nil sin DATABASE_URL
	Comms  *nats.Conn // nil sin COMMS_URL

	log *zap.Logger
}

// Build conecta lo que la config pida. opts se suman a los del Router.
func Build(ctx context.Context, cfg config.Config, log *zap.Logger, opts ...discord.Option) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	mode, err := discord.ParseRegistryMode(cfg.RegistryMode)
	if err != nil {
		return nil, err
	}

	a := &App{log: log}
	deps := bot.Deps{MenuRateLimit: cfg.MenuRateLimit, Log: log}
	routerOpts := []discord.Option{discord.WithSeparator(cfg.CustomIDSeparator)}

	if cfg.DatabaseURL != "" {
		db, err := storage.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.DB = db
		repo := storage.NewInteractionRepo(db)
		deps.Stats = service.NewStatsService(repo)
		deps.Janitor = service.NewJanitorService(repo, cfg.InteractionLogRetention)
		routerOpts = append(routerOpts, discord.WithRecorder(repo))
	} else {
		log.Info("DATABASE_URL vacío: sin interaction log")
	}

	if cfg.CommsURL != "" {
		nc, err := comms.Connect(cfg.CommsURL, clientName, log)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.Comms = nc
		routerOpts = append(routerOpts, discord.WithRecorder(comms.NewPublisher(nc, cfg.CommsSubjectPrefix, log)))
	}

	a.Router = bot.New(deps, mode, append(routerOpts, opts...)...)
	return a, nil
}

// Migrate aplica migraciones si hay DB.
func (a *App) Migrate(ctx context.Context) error {
	if a.DB == nil {
		return nil
	}
	if err := storage.Migrate(ctx, a.DB); err != nil {
		return err
	}
	a.log.Info("✅ DB lista y migrada")
	return nil
}

func (a *App) Close() {
	if a.Comms != nil {
		if err := a.Comms.Drain(); err != nil {
			a.log.Warn("comms drain", zap.Error(err))
		}
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}
