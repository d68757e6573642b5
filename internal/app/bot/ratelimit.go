package bot

import (
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/discord-interactions/internal/adapters/discord"
)

// userLimiter: un click por usuario cada win.
type userLimiter struct {
	mu   sync.Mutex
	next map[string]time.Time
	win  time.Duration
	now  func() time.Time
}

func newUserLimiter(window time.Duration) *userLimiter {
	return &userLimiter{next: map[string]time.Time{}, win: window, now: time.Now}
}

func (l *userLimiter) Allow(userID string) bool {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	if until, ok := l.next[userID]; ok && now.Before(until) {
		return false
	}
	l.next[userID] = now.Add(l.win)
	// poda de vencidos
	if len(l.next) > 10_000 {
		for id, until := range l.next {
			if now.After(until) {
				delete(l.next, id)
			}
		}
	}
	return true
}

// limited envuelve un handler de component con el limiter.
func limited(l *userLimiter, h discord.ComponentHandler) discord.ComponentHandler {
	return func(c *discord.ComponentContext) (*discordgo.InteractionResponse, error) {
		if !l.Allow(c.UserID()) {
			return c.ResEphemeral("⏳ Esperá un segundo…"), nil
		}
		return h(c)
	}
}
