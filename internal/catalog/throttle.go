package catalog

import (
	"time"

	"golang.org/x/time/rate"
)

const DefaultSearchThrottle = 150 * time.Millisecond

// Throttle runs at most one call per interval. Calls that arrive too soon
// are dropped, not deferred.
type Throttle struct {
	s rate.Sometimes
}

func NewThrottle(interval time.Duration) *Throttle {
	if interval <= 0 {
		interval = DefaultSearchThrottle
	}
	return &Throttle{s: rate.Sometimes{Interval: interval}}
}

// Do runs f if the interval since the last run has passed and reports
// whether it ran.
func (t *Throttle) Do(f func()) bool {
	ran := false
	t.s.Do(func() {
		ran = true
		f()
	})
	return ran
}
