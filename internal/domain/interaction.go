package domain

import "time"

// InteractionEvent es el registro mínimo de una interacción despachada
// (lo consumen el log en Postgres y el publisher de NATS).
type InteractionEvent struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Key        string    `json:"key"`
	GuildID    string    `json:"guild_id,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
}
