package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration.
type Config struct {
	Level   string // trace, debug, info, warn, error
	Format  string // json, console
	Service string // stamped as "service" when set
	Output  io.Writer
}

// New creates a zerolog logger writing to cfg.Output, or stdout.
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    cfg.Output != nil,
		}
	}

	lc := zerolog.New(out).Level(parseLevel(cfg.Level)).With().Timestamp().Caller()
	if cfg.Service != "" {
		lc = lc.Str("service", cfg.Service)
	}
	return lc.Logger()
}

// WithRequest returns a context carrying l enriched with the request and
// user ids. Empty values are omitted.
func WithRequest(ctx context.Context, l zerolog.Logger, requestID, userID string) context.Context {
	return With(ctx, l, "request_id", requestID, "user_id", userID)
}

// With stores l in ctx with the given key/value string pairs attached.
// Pairs with an empty value are skipped.
func With(ctx context.Context, l zerolog.Logger, kv ...string) context.Context {
	lc := l.With()
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] != "" {
			lc = lc.Str(kv[i], kv[i+1])
		}
	}
	enriched := lc.Logger()
	return enriched.WithContext(ctx)
}

// FromContext returns the logger stored in ctx, or a disabled logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// parseLevel falls back to info for blank, unknown or disabling levels.
func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel || lvl == zerolog.Disabled {
		return zerolog.InfoLevel
	}
	return lvl
}
