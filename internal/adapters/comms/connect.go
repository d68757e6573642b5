// Package comms publica las interacciones despachadas en NATS para otros
// consumidores (analytics, auditoría).
package comms

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Connect abre la conexión con reconexión automática.
func Connect(url, name string, log *zap.Logger) (*nats.Conn, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("comms_url", url))

	nc, err := nats.Connect(url,
		nats.Name(name),
		nats.Timeout(10*time.Second),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(60),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("comms disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("comms reconnected", zap.String("server", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(*nats.Conn) {
			log.Info("comms connection closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("comms connect: %w", err)
	}
	log.Info("comms connected", zap.String("server", nc.ConnectedUrl()))
	return nc, nil
}
