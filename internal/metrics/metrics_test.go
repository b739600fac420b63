package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iamshubha/roy-dex-sub005/internal/config"
	"github.com/iamshubha/roy-dex-sub005/internal/metrics"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/allnetwork"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/hardware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *metrics.Service {
	t.Helper()

	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Metrics.Namespace = "test"

	s, err := metrics.New(cfg)
	require.NoError(t, err)

	return s
}

func TestDiscoveryMetrics(t *testing.T) {
	s := newService(t)

	s.NetworkWorkerStarted()
	s.NetworkWorkerStarted()
	s.NetworkWorkerFinished()

	info := &allnetwork.AccountInfo{NetworkID: "evm--1"}
	s.DiscoveryFinished(time.Millisecond, &allnetwork.Result{
		AccountsInfo:               []*allnetwork.AccountInfo{info},
		AllAccountsInfo:            []*allnetwork.AccountInfo{info, info},
		AccountsInfoBackendIndexed: []*allnetwork.AccountInfo{info},
	}, nil)
	s.DiscoveryFinished(time.Millisecond, nil, errors.New("boom"))

	count, err := testutil.GatherAndCount(s.Registry(), "test_discovery_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = testutil.GatherAndCount(s.Registry(), "test_discovery_accounts_found_total")
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	count, err = testutil.GatherAndCount(s.Registry(), "test_discovery_network_workers_in_flight")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestHardwareMetrics(t *testing.T) {
	s := newService(t)

	table := hardware.NewResponseTable(s)
	table.Deliver(t.Context(), hardware.ResponseItem{Network: "evm", Path: "m/44'/60'/0'/0/0", Success: true, Payload: &hardware.Payload{}})
	table.Deliver(t.Context(), hardware.ResponseItem{Network: "evm", Path: "m/44'/60'/0'/0/0", Success: true, Payload: &hardware.Payload{}})
	table.Poison(errors.New("cable pulled"))

	count, err := testutil.GatherAndCount(s.Registry(), "test_hardware_deliveries_total", "test_hardware_tables_poisoned_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestHandler(t *testing.T) {
	s := newService(t)
	s.TablePoisoned()

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test_hardware_tables_poisoned_total 1")
}
