package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"time"

	pq "github.com/lib/pq"

	"github.com/jose-valero/discord-interactions/internal/domain"
)

var ErrNotFound = errors.New("not found")

// InteractionRepo guarda una fila por interacción despachada.
type InteractionRepo struct{ db *sql.DB }

func NewInteractionRepo(db *sql.DB) *InteractionRepo { return &InteractionRepo{db: db} }

// Record inserta el evento; Discord reintenta entregas, así que un id repetido no es error.
func (r *InteractionRepo) Record(ctx context.Context, e domain.InteractionEvent) error {
	if e.ReceivedAt.IsZero() {
		e.ReceivedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO interaction_log (id, kind, key, guild_id, user_id, received_at)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (id) DO NOTHING
`, e.ID, e.Kind, e.Key, e.GuildID, e.UserID, e.ReceivedAt)
	return err
}

func (r *InteractionRepo) Get(ctx context.Context, id string) (domain.InteractionEvent, error) {
	var e domain.InteractionEvent
	err := r.db.QueryRowContext(ctx, `
SELECT id, kind, key, guild_id, user_id, received_at
  FROM interaction_log
 WHERE id = $1
`, id).Scan(&e.ID, &e.Kind, &e.Key, &e.GuildID, &e.UserID, &e.ReceivedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.InteractionEvent{}, ErrNotFound
	}
	return e, err
}

// CountByKind: kind -> cantidad desde since. kinds vacío = todos.
func (r *InteractionRepo) CountByKind(ctx context.Context, guildID string, since time.Time, kinds []string) (map[string]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT kind, count(*)
  FROM interaction_log
 WHERE received_at >= $1
   AND ($2 = '' OR guild_id = $2)
   AND (coalesce(cardinality($3::text[]), 0) = 0 OR kind = ANY($3))
 GROUP BY kind
`, since, guildID, kindsParam(kinds))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int64{}
	for rows.Next() {
		var kind string
		var n int64
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		out[kind] = n
	}
	return out, rows.Err()
}

// kindsParam: pq.Array de un slice nil viaja como NULL y NULL en el WHERE
// descarta todas las filas; siempre mandamos un array ('{}' si vacío).
func kindsParam(kinds []string) driver.Valuer {
	if kinds == nil {
		kinds = []string{}
	}
	return pq.Array(kinds)
}

// TopKeys devuelve las keys más usadas desde since.
func (r *InteractionRepo) TopKeys(ctx context.Context, guildID string, since time.Time, limit int) ([]KeyCount, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT kind, key, count(*) AS n
  FROM interaction_log
 WHERE received_at >= $1
   AND ($2 = '' OR guild_id = $2)
 GROUP BY kind, key
 ORDER BY n DESC, key ASC
 LIMIT $3
`, since, guildID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []KeyCount
	for rows.Next() {
		var kc KeyCount
		if err := rows.Scan(&kc.Kind, &kc.Key, &kc.Count); err != nil {
			return nil, err
		}
		out = append(out, kc)
	}
	return out, rows.Err()
}

// Prune borra lo que tenga más de olderThan. Devuelve filas borradas.
func (r *InteractionRepo) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, nil
	}
	res, err := r.db.ExecContext(ctx, `
DELETE FROM interaction_log
 WHERE received_at < now() - $1::interval
`, durToInterval(olderThan))
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}
