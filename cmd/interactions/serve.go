package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jose-valero/discord-interactions/internal/adapters/discord"
	"github.com/jose-valero/discord-interactions/internal/adapters/httpserver"
	"github.com/jose-valero/discord-interactions/internal/app/bot"
	"github.com/jose-valero/discord-interactions/internal/app/wire"
	"github.com/jose-valero/discord-interactions/internal/infra/scheduler"
	"github.com/jose-valero/discord-interactions/internal/infra/worker"
)

var (
	serveMigrate bool
	serveWorkers int
	serveGrace   time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Servidor HTTP de interacciones + cron en proceso",
	Long: `Levanta el endpoint de interacciones (POST /) con un executor en
background para respuestas diferidas, y programa CRON_SCHEDULES (por
default sólo el prune diario del interaction log).`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", true, "aplicar migraciones al arrancar")
	serveCmd.Flags().IntVar(&serveWorkers, "workers", 32, "tareas en background concurrentes")
	serveCmd.Flags().DurationVar(&serveGrace, "grace", 15*time.Second, "espera máxima al apagar")
}

// schedules: CRON_SCHEDULES o, si está vacío, el prune.
func schedules() []string {
	if len(cfg.CronSchedules) > 0 {
		return cfg.CronSchedules
	}
	return []string{bot.PruneSchedule}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := scheduler.Validate(schedules()...); err != nil {
		return err
	}

	bg := worker.New(ctx, log, worker.WithLimit(serveWorkers))
	bindings := discord.OSBindings()

	app, err := wire.Build(ctx, cfg, log, discord.WithBackground(bg), discord.WithBindings(bindings))
	if err != nil {
		return err
	}
	defer app.Close()

	if serveMigrate {
		if err := app.Migrate(ctx); err != nil {
			return err
		}
	}

	sched := scheduler.New(app.Router, log, scheduler.WithBindings(bindings), scheduler.WithBackground(bg))
	for _, expr := range schedules() {
		if err := sched.Add(expr); err != nil {
			return err
		}
	}
	sched.Start()

	srv := httpserver.New(cfg.HTTPAddr, app.Router, log)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case <-ctx.Done():
		log.Info("apagando…")
	case err = <-errCh:
		if err != nil {
			log.Error("http server", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), serveGrace)
	defer cancel()
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		log.Warn("http shutdown", zap.Error(serr))
	}
	if serr := sched.Stop(shutdownCtx); serr != nil {
		log.Warn("scheduler stop", zap.Error(serr))
	}
	if serr := bg.Shutdown(shutdownCtx); serr != nil {
		log.Warn("background tasks abandoned", zap.Error(serr))
	}
	return err
}
