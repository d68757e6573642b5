package discord

import (
	"time"

	"go.uber.org/zap"
)

func step(log *zap.Logger, label string, fields ...zap.Field) func() {
	start := time.Now()
	return func() { log.Debug(label, append(fields, zap.Duration("took", time.Since(start)))...) }
}
