// Package worker corre el trabajo diferido de las interacciones (ResDefer,
// cron en background) después de haber respondido el request.
package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Group implementa discord.Background sobre un errgroup. Los errores de las
// tareas se loguean; uno que falla no cancela al resto.
type Group struct {
	g       *errgroup.Group
	base    context.Context
	log     *zap.Logger
	timeout time.Duration
}

// ErrBusy: el límite de tareas concurrentes está lleno.
var ErrBusy = errors.New("worker: background limit reached")

type Option func(*Group)

// WithLimit acota tareas concurrentes; con el límite lleno WaitUntil devuelve
// ErrBusy en vez de bloquear al request.
func WithLimit(n int) Option { return func(g *Group) { g.g.SetLimit(n) } }

// WithTimeout corta cada tarea (Discord invalida el token a los 15 min).
func WithTimeout(d time.Duration) Option { return func(g *Group) { g.timeout = d } }

func New(ctx context.Context, log *zap.Logger, opts ...Option) *Group {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Group{
		g:       &errgroup.Group{},
		base:    context.WithoutCancel(ctx),
		log:     log,
		timeout: 15 * time.Minute,
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// WaitUntil nunca bloquea al que llama.
func (g *Group) WaitUntil(task func(ctx context.Context) error) error {
	ok := g.g.TryGo(func() error {
		ctx, cancel := context.WithTimeout(g.base, g.timeout)
		defer cancel()

		start := time.Now()
		if err := g.run(ctx, task); err != nil {
			g.log.Error("background task failed", zap.Duration("took", time.Since(start)), zap.Error(err))
			return nil
		}
		g.log.Debug("background task done", zap.Duration("took", time.Since(start)))
		return nil
	})
	if !ok {
		g.log.Warn("background task rejected", zap.Error(ErrBusy))
		return ErrBusy
	}
	return nil
}

func (g *Group) run(ctx context.Context, task func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return task(ctx)
}

// Wait espera a que terminen todas las tareas encoladas.
func (g *Group) Wait() error { return g.g.Wait() }

// Shutdown espera como Wait pero se rinde cuando ctx vence.
func (g *Group) Shutdown(ctx context.Context) error {
	done := make(chan error, 1)
	go func() { done <- g.g.Wait() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
