package allnetwork_test

import (
	"net/http"
	"testing"

	"github.com/iamshubha/roy-dex-sub005/internal/api"
	"github.com/iamshubha/roy-dex-sub005/internal/api/handlers/allnetwork"
	"github.com/iamshubha/roy-dex-sub005/internal/api/httperrors"
	"github.com/iamshubha/roy-dex-sub005/internal/test"
	wallet "github.com/iamshubha/roy-dex-sub005/internal/wallet/allnetwork"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(infos []*wallet.AccountInfo) []string {
	res := make([]string, 0, len(infos))
	for _, info := range infos {
		res = append(res, info.NetworkID+" "+info.AccountID)
	}

	return res
}

func TestPostAccounts(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		f := test.Fixtures(t, s)

		res := test.PerformRequest(t, s, "POST", "/api/v1/allnetwork/accounts", map[string]any{
			"networkId":                   network.AllNetworkID,
			"indexedAccountId":            "hd-1--0",
			"includingNonExistingAccount": true,
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		var result wallet.Result
		test.ParseResponseBody(t, res, &result)

		got := entries(result.AccountsInfo)
		assert.Contains(t, got, "evm--1 "+f.HDEVMAccount0.ID)
		assert.Contains(t, got, "evm--56 "+f.HDEVMAccount0.ID)
		assert.Contains(t, got, "btc--0 "+f.HDBTCAccount0.ID)
		assert.Contains(t, got, "btc--0 "+f.HDBTCTaprootAccount0.ID)
		// not the global derive type of evm networks
		assert.NotContains(t, got, "evm--1 "+f.HDEVMLedgerAccount0.ID)
		// placeholder for a network without accounts
		assert.Contains(t, got, "sol--101 ")
		// testnets are excluded by default
		assert.NotContains(t, got, "tbtc--0 ")

		assert.Len(t, result.AllAccountsInfo, len(result.AccountsInfo))
		assert.Len(t, result.AccountsInfo, len(result.AccountsInfoBackendIndexed)+len(result.AccountsInfoBackendNotIndexed))

		for _, info := range result.AccountsInfo {
			if info.AccountID == f.HDEVMAccount0.ID {
				assert.Regexp(t, "^0x[0-9a-fA-F]{40}$", info.APIAddress)
				assert.True(t, info.IsBackendIndexed)
			}
		}
	})
}

func TestPostAccountsValidation(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/allnetwork/accounts", map[string]any{
			"networkId": network.AllNetworkID,
		}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var httpErr httperrors.HTTPError
		test.ParseResponseBody(t, res, &httpErr)
		assert.Equal(t, httperrors.TypeInvalidParams, httpErr.Type)
		assert.Contains(t, httpErr.Title, "indexedAccountId")

		res = test.PerformRequest(t, s, "POST", "/api/v1/allnetwork/accounts", nil, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
	})
}

func TestPostAccountsEnabled(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		f := test.Fixtures(t, s)

		res := test.PerformRequest(t, s, "PUT", "/api/v1/allnetwork/state", network.AllNetworksState{
			DisabledNetworks: map[string]bool{"evm--56": true},
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		res = test.PerformRequest(t, s, "POST", "/api/v1/allnetwork/accounts/enabled", map[string]any{
			"networkId":        network.AllNetworkID,
			"indexedAccountId": "hd-1--0",
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		var result wallet.Result
		test.ParseResponseBody(t, res, &result)

		got := entries(result.AccountsInfo)
		assert.Contains(t, got, "evm--1 "+f.HDEVMAccount0.ID)
		assert.NotContains(t, got, "evm--56 "+f.HDEVMAccount0.ID)
		// not enabled by default
		assert.NotContains(t, got, "evm--137 "+f.HDEVMAccount0.ID)
	})
}

func TestPostAPIAccounts(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/allnetwork/api-accounts", map[string]any{
			"networkId":        network.AllNetworkID,
			"indexedAccountId": "hd-1--0",
			"withoutAccountId": true,
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		var list wallet.APIAccountList
		test.ParseResponseBody(t, res, &list)

		require.NotEmpty(t, list.AllNetworkAccounts)
		networkIDs := make([]string, 0, len(list.AllNetworkAccounts))
		for _, a := range list.AllNetworkAccounts {
			assert.Empty(t, a.AccountID)
			assert.NotEmpty(t, a.AccountAddress)
			networkIDs = append(networkIDs, a.NetworkID)
		}
		assert.Contains(t, networkIDs, "evm--1")
		assert.NotContains(t, networkIDs, "evm--137")
	})
}

func TestPostDBAccounts(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		f := test.Fixtures(t, s)

		res := test.PerformRequest(t, s, "POST", "/api/v1/allnetwork/db-accounts", map[string]any{
			"networkId":        network.AllNetworkID,
			"indexedAccountId": "hd-1--0",
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		var body allnetwork.DBAccountsResponse
		test.ParseResponseBody(t, res, &body)
		assert.Len(t, body.Accounts, 4)

		res = test.PerformRequest(t, s, "POST", "/api/v1/allnetwork/db-accounts", map[string]any{
			"networkId":        "evm--1",
			"indexedAccountId": "hd-1--0",
			"deriveType":       "ledgerLive",
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		test.ParseResponseBody(t, res, &body)
		require.Len(t, body.Accounts, 1)
		assert.Equal(t, f.HDEVMLedgerAccount0.ID, body.Accounts[0].ID)

		res = test.PerformRequest(t, s, "POST", "/api/v1/allnetwork/db-accounts", map[string]any{
			"networkId":        "evm--1",
			"indexedAccountId": "hd-1--0",
		}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
	})
}

func TestState(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/allnetwork/state", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var state network.AllNetworksState
		test.ParseResponseBody(t, res, &state)
		assert.Empty(t, state.EnabledNetworks)
		assert.Empty(t, state.DisabledNetworks)

		res = test.PerformRequest(t, s, "PUT", "/api/v1/allnetwork/state", network.AllNetworksState{
			EnabledNetworks: map[string]bool{"evm--137": true},
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "PUT", "/api/v1/allnetwork/state", network.AllNetworksState{
			DisabledNetworks: map[string]bool{"evm--1": true},
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		test.ParseResponseBody(t, res, &state)
		assert.Equal(t, map[string]bool{"evm--137": true}, state.EnabledNetworks)
		assert.Equal(t, map[string]bool{"evm--1": true}, state.DisabledNetworks)
	})
}
