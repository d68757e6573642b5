package service

import (
	"context"
	"time"

	"github.com/jose-valero/discord-interactions/internal/infra/storage"
)

// Lo implementa internal/infra/storage.InteractionRepo
type InteractionLog interface {
	CountByKind(ctx context.Context, guildID string, since time.Time, kinds []string) (map[string]int64, error)
	TopKeys(ctx context.Context, guildID string, since time.Time, limit int) ([]storage.KeyCount, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
}
