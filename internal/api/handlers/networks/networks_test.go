package networks_test

import (
	"net/http"
	"testing"

	"github.com/iamshubha/roy-dex-sub005/internal/api"
	"github.com/iamshubha/roy-dex-sub005/internal/api/handlers/networks"
	"github.com/iamshubha/roy-dex-sub005/internal/api/httperrors"
	"github.com/iamshubha/roy-dex-sub005/internal/test"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/derive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func networkIDs(res *networks.GetNetworksResponse) []string {
	ids := make([]string, 0, len(res.Networks))
	for _, n := range res.Networks {
		ids = append(ids, n.ID)
	}

	return ids
}

func TestGetNetworks(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/networks", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var mainnets networks.GetNetworksResponse
		test.ParseResponseBody(t, res, &mainnets)
		ids := networkIDs(&mainnets)
		assert.Contains(t, ids, "evm--1")
		assert.Contains(t, ids, "btc--0")
		assert.NotContains(t, ids, "tbtc--0")
		assert.NotContains(t, ids, "evm--11155111")

		res = test.PerformRequest(t, s, "GET", "/api/v1/networks?excludeTestNetwork=false", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var all networks.GetNetworksResponse
		test.ParseResponseBody(t, res, &all)
		ids = networkIDs(&all)
		assert.Contains(t, ids, "tbtc--0")
		assert.Contains(t, ids, "evm--11155111")
		assert.Greater(t, len(all.Networks), len(mainnets.Networks))

		res = test.PerformRequest(t, s, "GET", "/api/v1/networks?excludeTestNetwork=maybe", nil, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
	})
}

func TestDeriveTypes(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/networks/evm--1/derive-types", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		var got networks.DeriveTypesResponse
		test.ParseResponseBody(t, res, &got)
		assert.Equal(t, "evm--1", got.NetworkID)
		assert.Equal(t, derive.TypeDefault, got.GlobalDeriveType)

		info, ok := got.DeriveTypes.Get(derive.TypeLedgerLive)
		require.True(t, ok)
		assert.Equal(t, "m/44'/60'/$$INDEX$$'/0/0", info.Template)

		res = test.PerformRequest(t, s, "GET", "/api/v1/networks/unknown--1/derive-types", nil, nil)
		require.Equal(t, http.StatusNotFound, res.Result().StatusCode)
	})
}

func TestPutGlobalDeriveType(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "PUT", "/api/v1/networks/evm--1/global-derive-type", networks.PutGlobalDeriveTypePayload{
			DeriveType: derive.TypeLedgerLive,
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		var got networks.DeriveTypesResponse
		test.ParseResponseBody(t, res, &got)
		assert.Equal(t, derive.TypeLedgerLive, got.GlobalDeriveType)

		deriveType, err := s.Networks.GetGlobalDeriveTypeOfNetwork(t.Context(), "evm--1")
		require.NoError(t, err)
		assert.Equal(t, derive.TypeLedgerLive, deriveType)

		res = test.PerformRequest(t, s, "PUT", "/api/v1/networks/evm--1/global-derive-type", networks.PutGlobalDeriveTypePayload{
			DeriveType: derive.TypeBIP86,
		}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var httpErr httperrors.HTTPError
		test.ParseResponseBody(t, res, &httpErr)
		assert.Equal(t, httperrors.TypeInvalidParams, httpErr.Type)

		res = test.PerformRequest(t, s, "PUT", "/api/v1/networks/evm--1/global-derive-type", map[string]any{}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
	})
}
