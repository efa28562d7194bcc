package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Logger implementations selectable by name.
const (
	KindZap  = "zap"
	KindSlog = "slog"
)

// New builds a logger of the given kind ("zap" or "slog") writing to w at
// level ("debug", "info", "warn" or "error"). The returned func flushes
// buffered output.
func New(kind, level string, w io.Writer) (Logger, func(), error) {
	switch strings.ToLower(kind) {
	case KindZap:
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, nil, fmt.Errorf("zap level: %w", err)
		}
		z := NewZapWriter(w, lvl)
		return z, func() { _ = z.Sync() }, nil

	case KindSlog:
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, nil, fmt.Errorf("slog level: %w", err)
		}
		return NewTextLogger(w, lvl), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown logger %q", kind)
	}
}
