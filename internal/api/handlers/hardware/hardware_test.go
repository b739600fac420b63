package hardware_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/iamshubha/roy-dex-sub005/internal/api"
	handlers "github.com/iamshubha/roy-dex-sub005/internal/api/handlers/hardware"
	"github.com/iamshubha/roy-dex-sub005/internal/api/httperrors"
	"github.com/iamshubha/roy-dex-sub005/internal/test"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/hardware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startBatch(t *testing.T, s *api.Server, indexes []int) *handlers.BatchResponse {
	t.Helper()

	res := test.PerformRequest(t, s, "POST", "/api/v1/hardware/batches", map[string]any{
		"walletId":  "hw-1",
		"connectId": "connect-1",
		"deviceId":  "device-1",
		"indexes":   indexes,
		"networks": []map[string]any{
			{"networkId": "evm--1", "deriveType": "default"},
		},
	}, nil)
	require.Equal(t, http.StatusCreated, res.Result().StatusCode, res.Body.String())

	var batch handlers.BatchResponse
	test.ParseResponseBody(t, res, &batch)

	return &batch
}

func evmItem(index int) hardware.ResponseItem {
	return hardware.ResponseItem{
		Path:    fmt.Sprintf("m/44'/60'/0'/0/%d", index),
		Network: "evm",
		Success: true,
		Payload: &hardware.Payload{
			Address:         fmt.Sprintf("0x%040d", index+1),
			PublicKey:       fmt.Sprintf("02%064d", index+1),
			RootFingerprint: 42,
		},
	}
}

func TestBatchLifecycle(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		batch := startBatch(t, s, []int{0, 1})

		assert.NotEmpty(t, batch.ID)
		assert.Equal(t, "hw-1", batch.WalletID)
		assert.Equal(t, 2, batch.BundleLength)
		require.Len(t, batch.Request.Bundle, 2)
		assert.Equal(t, "m/44'/60'/0'/0/0", batch.Request.Bundle[0].Path)
		assert.Equal(t, "evm", batch.Request.Bundle[0].Network)

		path := "/api/v1/hardware/batches/" + batch.ID

		// out of order, with a redelivery of an already settled key
		res := test.PerformRequest(t, s, "POST", path+"/items", handlers.PostBatchItemsPayload{
			Items: []hardware.ResponseItem{evmItem(1), evmItem(0), evmItem(1)},
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		var delivered handlers.PostBatchItemsResponse
		test.ParseResponseBody(t, res, &delivered)
		assert.Equal(t, 2, delivered.Accepted)
		assert.Equal(t, 1, delivered.Ignored)

		res = test.PerformRequest(t, s, "POST", path+"/accounts", map[string]any{
			"networkId":  "evm--1",
			"deriveType": "default",
			"indexes":    []int{0, 1},
			"save":       true,
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		var prepared handlers.PostBatchAccountsResponse
		test.ParseResponseBody(t, res, &prepared)
		require.Len(t, prepared.Accounts, 2)
		assert.Equal(t, "hw-1--m/44'/60'/0'/0/0", prepared.Accounts[0].ID)
		assert.Equal(t, "hw-1--1", prepared.Accounts[1].IndexedAccountID)
		assert.Equal(t, evmItem(1).Payload.Address, prepared.Accounts[1].Address)
		assert.Equal(t, uint32(42), prepared.Accounts[0].HWExtraInfo.RootFingerprint)

		stored, err := s.Store.GetAccount(t.Context(), prepared.Accounts[1].ID)
		require.NoError(t, err)
		assert.Equal(t, evmItem(1).Payload.PublicKey, stored.Pub)

		res = test.PerformRequest(t, s, "GET", path, nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var status handlers.BatchResponse
		test.ParseResponseBody(t, res, &status)
		assert.Equal(t, 2, status.Slots)
		assert.Empty(t, status.Error)

		res = test.PerformRequest(t, s, "DELETE", path, nil, nil)
		require.Equal(t, http.StatusNoContent, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "GET", path, nil, nil)
		require.Equal(t, http.StatusNotFound, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "POST", path+"/items", handlers.PostBatchItemsPayload{
			Items: []hardware.ResponseItem{evmItem(0)},
		}, nil)
		require.Equal(t, http.StatusNotFound, res.Result().StatusCode)
	})
}

func TestBatchFailedByBridge(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		batch := startBatch(t, s, []int{0})
		path := "/api/v1/hardware/batches/" + batch.ID

		res := test.PerformRequest(t, s, "POST", path+"/fail", hardware.Payload{
			Code:     hardware.CodeActionCancelled,
			DeviceID: "device-1",
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		var status handlers.BatchResponse
		test.ParseResponseBody(t, res, &status)
		assert.NotEmpty(t, status.Error)

		res = test.PerformRequest(t, s, "POST", path+"/accounts", map[string]any{
			"networkId":  "evm--1",
			"deriveType": "default",
			"indexes":    []int{0},
		}, http.Header{"Accept-Language": []string{"zh-Hans"}})
		require.Equal(t, http.StatusBadGateway, res.Result().StatusCode, res.Body.String())

		var httpErr httperrors.HTTPError
		test.ParseResponseBody(t, res, &httpErr)
		assert.Equal(t, httperrors.TypeHardware, httpErr.Type)
		assert.Equal(t, "hardware_user_cancel_error", httpErr.Key)
		assert.Equal(t, "已在设备上取消操作。", httpErr.Title)
	})
}

func TestBatchFailedWithoutPayload(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		batch := startBatch(t, s, []int{0})
		path := "/api/v1/hardware/batches/" + batch.ID

		res := test.PerformRequest(t, s, "POST", path+"/fail", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		res = test.PerformRequest(t, s, "POST", path+"/accounts", map[string]any{
			"networkId":  "evm--1",
			"deriveType": "default",
			"indexes":    []int{0},
		}, nil)
		require.Equal(t, http.StatusBadGateway, res.Result().StatusCode, res.Body.String())

		var httpErr httperrors.HTTPError
		test.ParseResponseBody(t, res, &httpErr)
		assert.Equal(t, httperrors.TypeCommunicationInterrupted, httpErr.Type)
	})
}

func TestBatchForbiddenKeyPath(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		batch := startBatch(t, s, []int{0, 1})
		path := "/api/v1/hardware/batches/" + batch.ID

		failed := evmItem(1)
		failed.Success = false
		failed.Payload = &hardware.Payload{Error: "Failure_DataError,Forbidden key path"}

		res := test.PerformRequest(t, s, "POST", path+"/items", handlers.PostBatchItemsPayload{
			Items: []hardware.ResponseItem{evmItem(0), failed},
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode, res.Body.String())

		res = test.PerformRequest(t, s, "POST", path+"/accounts", map[string]any{
			"networkId":  "evm--1",
			"deriveType": "default",
			"indexes":    []int{0, 1},
		}, nil)
		require.Equal(t, http.StatusUnprocessableEntity, res.Result().StatusCode, res.Body.String())

		var httpErr httperrors.HTTPError
		test.ParseResponseBody(t, res, &httpErr)
		assert.Equal(t, httperrors.TypeUnsupportedAddressType, httpErr.Type)
		assert.Equal(t, "The current address type is not supported by this device.", httpErr.Title)
	})
}

func TestPostBatchValidation(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/hardware/batches", map[string]any{
			"walletId": "hw-1",
		}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "POST", "/api/v1/hardware/batches", map[string]any{
			"walletId": "hd-1",
			"indexes":  []int{0},
			"networks": []map[string]any{{"networkId": "evm--1", "deriveType": "default"}},
		}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "POST", "/api/v1/hardware/batches/unknown/accounts", map[string]any{
			"networkId":  "evm--1",
			"deriveType": "default",
			"indexes":    []int{0},
		}, nil)
		require.Equal(t, http.StatusNotFound, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "DELETE", "/api/v1/hardware/batches/unknown", nil, nil)
		require.Equal(t, http.StatusNotFound, res.Result().StatusCode)
	})
}
