package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/catalogclient/internal/logging"
)

// Exchange describes one completed request. StatusCode is zero when no
// response was received.
type Exchange struct {
	RequestID  string
	Method     string
	Path       string
	StatusCode int
	Duration   time.Duration
	Err        error
}

// Observer is notified after every exchange. Observers must not block.
type Observer interface {
	Observe(ctx context.Context, ex Exchange)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, ex Exchange)

func (f ObserverFunc) Observe(ctx context.Context, ex Exchange) { f(ctx, ex) }

// LogObserver writes one structured line per exchange: debug on success,
// warn on failure. Bodies are never logged.
type LogObserver struct {
	log logging.Logger
}

func NewLogObserver(log logging.Logger) *LogObserver {
	return &LogObserver{log: log}
}

func (o *LogObserver) Observe(ctx context.Context, ex Exchange) {
	args := []any{
		"request_id", ex.RequestID,
		"method", ex.Method,
		"path", ex.Path,
		"status", ex.StatusCode,
		"duration", ex.Duration,
	}
	if ex.Err != nil {
		o.log.Warn(ctx, "request failed", append(args, "error", ex.Err.Error())...)
		return
	}
	o.log.Debug(ctx, "request completed", args...)
}
