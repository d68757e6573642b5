// Package scheduler dispara los handlers cron del Router desde el proceso
// (modo serve). En Lambda lo reemplaza EventBridge + cmd/janitor.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/jose-valero/discord-interactions/internal/adapters/discord"
)

// Dispatcher lo implementa *discord.Router.
type Dispatcher interface {
	Scheduled(ctx context.Context, event discord.CronEvent, b discord.Bindings, bg discord.Background) error
}

type Scheduler struct {
	cron     *cron.Cron
	d        Dispatcher
	log      *zap.Logger
	bindings discord.Bindings
	bg       discord.Background
	entries  map[string]cron.EntryID
}

type Option func(*Scheduler)

func WithBindings(b discord.Bindings) Option { return func(s *Scheduler) { s.bindings = b } }

// WithBackground hace que cada disparo vuelva enseguida y corra en bg.
func WithBackground(bg discord.Background) Option { return func(s *Scheduler) { s.bg = bg } }

func New(d Dispatcher, log *zap.Logger, opts ...Option) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Scheduler{
		cron:    cron.New(),
		d:       d,
		log:     log,
		entries: map[string]cron.EntryID{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Validate revisa expresiones de 5 campos (o descriptores @daily, @every 1h).
func Validate(exprs ...string) error {
	for _, e := range exprs {
		if _, err := cron.ParseStandard(e); err != nil {
			return fmt.Errorf("invalid cron schedule %q: %w", e, err)
		}
	}
	return nil
}

// Add programa expr; el evento lleva expr tal cual como key de dispatch.
func (s *Scheduler) Add(expr string) error {
	if _, ok := s.entries[expr]; ok {
		return nil
	}
	if err := Validate(expr); err != nil {
		return err
	}
	id, err := s.cron.AddFunc(expr, func() {
		if err := s.Fire(context.Background(), expr, time.Now()); err != nil {
			s.log.Error("cron dispatch failed", zap.String("cron", expr), zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("scheduling %q: %w", expr, err)
	}
	s.entries[expr] = id
	s.log.Info("cron scheduled", zap.String("cron", expr))
	return nil
}

// Fire despacha un disparo de expr como si lo hubiera hecho el reloj.
func (s *Scheduler) Fire(ctx context.Context, expr string, at time.Time) error {
	event := discord.CronEvent{
		Cron:          expr,
		Type:          "scheduled",
		ScheduledTime: at.UnixMilli(),
	}
	return s.d.Scheduled(ctx, event, s.bindings, s.bg)
}

// Next devuelve el próximo disparo de expr (cero si no está programada o no arrancó).
func (s *Scheduler) Next(expr string) time.Time {
	id, ok := s.entries[expr]
	if !ok {
		return time.Time{}
	}
	return s.cron.Entry(id).Next
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop frena el reloj y espera los disparos en curso (no los de background).
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
