package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/catalogclient/internal/logging"
	"github.com/sony/gobreaker"
)

// BreakerSettings configures the optional circuit breaker.
type BreakerSettings struct {
	Name        string
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	// FailureThreshold is the failure ratio that trips the breaker once at
	// least MinRequests were counted.
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerSettings returns conservative settings for a backend that is
// occasionally cold-started.
func DefaultBreakerSettings(name string) BreakerSettings {
	return BreakerSettings{
		Name:             name,
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// WithBreaker wraps every request in a gobreaker circuit breaker. State
// changes are logged at warn level.
func WithBreaker(s BreakerSettings, log logging.Logger) Option {
	if log == nil {
		log = logging.Nop()
	}
	return func(c *HTTPClient) {
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        s.Name,
			MaxRequests: s.MaxRequests,
			Interval:    s.Interval,
			Timeout:     s.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				if counts.Requests < s.MinRequests {
					return false
				}
				ratio := float64(counts.TotalFailures) / float64(counts.Requests)
				return ratio >= s.FailureThreshold
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn(context.Background(), "circuit breaker state changed",
					"breaker", name, "from", from.String(), "to", to.String())
			},
		})
	}
}
