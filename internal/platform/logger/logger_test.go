package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dailyseven/dailyseven-api/internal/config"
)

func TestSetupLogLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		logLevel string
	}{
		{name: "debug level", logLevel: "debug"},
		{name: "info level", logLevel: "info"},
		{name: "warn level", logLevel: "warn"},
		{name: "error level", logLevel: "error"},
		{name: "invalid level falls back to info", logLevel: "verbose"},
		{name: "case insensitive", logLevel: "DEBUG"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			log := Setup(config.ServerConfig{Port: 8080, LogLevel: tc.logLevel})
			assert.NotNil(t, log)
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	// Without a stored logger the default is returned.
	assert.NotNil(t, FromContext(context.Background()))

	// A stored logger round-trips.
	log := slog.New(slog.NewTextHandler(nil, nil))
	ctx := WithLogger(context.Background(), log)
	assert.Same(t, log, FromContext(ctx))
}

func TestFromContextOrDefault(t *testing.T) {
	t.Parallel()

	def := slog.New(slog.NewTextHandler(nil, nil))

	// Falls back to the provided default.
	assert.Same(t, def, FromContextOrDefault(context.Background(), def))

	// Context logger wins over the default.
	log := slog.New(slog.NewTextHandler(nil, nil))
	ctx := WithLogger(context.Background(), log)
	assert.Same(t, log, FromContextOrDefault(ctx, def))
}
