package storage

import (
	"fmt"
	"time"
)

// durToInterval pasa una duración a literal de interval de Postgres (segundos enteros).
func durToInterval(d time.Duration) string {
	secs := int64(d.Seconds())
	if secs <= 0 {
		return "0 seconds"
	}
	return fmt.Sprintf("%d seconds", secs)
}
