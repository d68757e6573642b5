// janitor: Lambda disparada por EventBridge. El input es un CronEvent
// ({"cron":"0 3 * * *"}); sin cron se asume el prune diario.
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/jose-valero/discord-interactions/internal/adapters/discord"
	"github.com/jose-valero/discord-interactions/internal/app/bot"
	"github.com/jose-valero/discord-interactions/internal/app/wire"
	"github.com/jose-valero/discord-interactions/internal/infra/config"
	"github.com/jose-valero/discord-interactions/internal/infra/logger"
)

// dispatcher lo implementa *discord.Router.
type dispatcher interface {
	Scheduled(ctx context.Context, event discord.CronEvent, b discord.Bindings, bg discord.Background) error
}

func newHandler(d dispatcher, b discord.Bindings, log *zap.Logger) func(ctx context.Context, ev discord.CronEvent) (string, error) {
	return func(ctx context.Context, ev discord.CronEvent) (string, error) {
		if ev.Cron == "" {
			ev.Cron = bot.PruneSchedule
		}
		if ev.Type == "" {
			ev.Type = "scheduled"
		}
		// sin background: la Lambda tiene que esperar al handler
		if err := d.Scheduled(ctx, ev, b, nil); err != nil {
			log.Error("cron failed", zap.String("cron", ev.Cron), zap.Error(err))
			return "", err
		}
		return "ok", nil
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	app, err := wire.Build(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("wire", zap.Error(err))
	}
	defer app.Close()

	lambda.Start(newHandler(app.Router, discord.OSBindings(), log))
}
