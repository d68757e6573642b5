package comms

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/jose-valero/discord-interactions/internal/domain"
)

const DefaultPrefix = "interactions"

// Publisher manda cada evento a <prefix>.<kind>.<key>.
type Publisher struct {
	nc     *nats.Conn
	prefix string
	log    *zap.Logger
}

func NewPublisher(nc *nats.Conn, prefix string, log *zap.Logger) *Publisher {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{nc: nc, prefix: prefix, log: log}
}

func (p *Publisher) Subject(e domain.InteractionEvent) string {
	return p.prefix + "." + token(e.Kind) + "." + token(e.Key)
}

// Record publica sin esperar ack (core NATS, fire and forget).
func (p *Publisher) Record(_ context.Context, e domain.InteractionEvent) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("comms encode: %w", err)
	}
	subject := p.Subject(e)
	if err := p.nc.Publish(subject, data); err != nil {
		p.log.Error("comms publish failed", zap.String("subject", subject), zap.Error(err))
		return err
	}
	p.log.Debug("comms published", zap.String("subject", subject))
	return nil
}

// token deja un segmento de subject válido: sin separadores ni wildcards.
func token(s string) string {
	if s == "" {
		return "_"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '*', '>', ' ', '\t', '\r', '\n':
			return '_'
		}
		return r
	}, s)
}
