package checkout

import (
	"strconv"
	"sync"
	"time"
)

const orderIDPrefix = "ORD-"

// orderIDs hands out "ORD-<unix millis>" ids that keep increasing even when
// two orders land in the same millisecond or the clock steps back.
type orderIDs struct {
	mu   sync.Mutex
	last int64
}

func (g *orderIDs) next(now time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := now.UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms

	return orderIDPrefix + strconv.FormatInt(ms, 10)
}
