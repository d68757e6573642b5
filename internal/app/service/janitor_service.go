package service

import (
	"context"
	"time"
)

// JanitorService limpia el interaction log (cron diario).
type JanitorService struct {
	log       InteractionLog
	retention time.Duration
}

func NewJanitorService(l InteractionLog, retention time.Duration) *JanitorService {
	return &JanitorService{log: l, retention: retention}
}

func (s *JanitorService) Retention() time.Duration { return s.retention }

// Prune borra lo más viejo que la retención; retención 0 = no borrar nada.
func (s *JanitorService) Prune(ctx context.Context) (int64, error) {
	if s.retention <= 0 {
		return 0, nil
	}
	return s.log.Prune(ctx, s.retention)
}
