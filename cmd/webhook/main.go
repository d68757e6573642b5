// webhook: Lambda detrás de API Gateway (HTTP API v2) que recibe las
// interacciones de Discord. No hay background: los defers fallan rápido.
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/jose-valero/discord-interactions/internal/adapters/discord"
	"github.com/jose-valero/discord-interactions/internal/app/wire"
	"github.com/jose-valero/discord-interactions/internal/infra/config"
	"github.com/jose-valero/discord-interactions/internal/infra/logger"
)

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
