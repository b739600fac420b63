package test

import (
	"context"
	"testing"
	"time"

	"github.com/iamshubha/roy-dex-sub005/internal/api"
	"github.com/iamshubha/roy-dex-sub005/internal/api/router"
	"github.com/iamshubha/roy-dex-sub005/internal/config"
	"github.com/iamshubha/roy-dex-sub005/internal/data/fixtures"
	"github.com/iamshubha/roy-dex-sub005/internal/data/local"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewTestConfig returns the env config with an in-memory badger store.
func NewTestConfig() config.Server {
	cfg := config.DefaultServiceConfigFromEnv()

	cfg.Store.Driver = config.StoreDriverBadger
	cfg.Store.BadgerDir = ""
	cfg.Hardware.BatchTimeout = 5 * time.Second
	cfg.Logger.PrettyPrintConsole = false

	return cfg
}

// WithTestServer runs closure against a fully wired server backed by an in-memory
// store that holds the fixtures.
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	WithTestServerConfigurable(t, NewTestConfig(), closure)
}

// WithTestServerConfigurable is WithTestServer with a custom config. The store is always
// in memory.
func WithTestServerConfigurable(t *testing.T, cfg config.Server, closure func(s *api.Server)) {
	t.Helper()

	store, err := local.NewService("")
	require.NoError(t, err, "failed to open in-memory store")

	s, err := api.InitNewServerWithStore(cfg, store)
	require.NoError(t, err, "failed to init server")

	router.Init(s)

	require.NoError(t, fixtures.Upsert(t.Context(), s.Store, Fixtures(t, s)), "failed to upsert fixtures")

	closure(s)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	assert.Empty(t, s.Shutdown(ctx), "failed to shutdown server")
}

// Fixtures returns the fixtures WithTestServer stored.
func Fixtures(t *testing.T, s *api.Server) *fixtures.FixtureMap {
	t.Helper()

	f, err := fixtures.Fixtures(t.Context(), s.Addresses)
	require.NoError(t, err, "failed to derive fixtures")

	return f
}
