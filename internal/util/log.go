package util

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogFromContext returns a request-scoped logger if one was attached to ctx,
// falling back to the global logger otherwise.
func LogFromContext(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		l = &log.Logger
	}

	return l
}

// ContextWithLogger attaches the given logger to ctx.
func ContextWithLogger(ctx context.Context, l zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}

// DetachContext returns a context that keeps the values (logger, request id) of ctx
// but is never cancelled. Used for fire-and-forget work that must outlive a request.
func DetachContext(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

// LogLevelFromString parses a zerolog level, falling back to debug.
func LogLevelFromString(s string) zerolog.Level {
	l, err := zerolog.ParseLevel(s)
	if err != nil {
		log.Error().Err(err).Msgf("Failed to parse log level, defaulting to %s", zerolog.DebugLevel)
		return zerolog.DebugLevel
	}

	return l
}
