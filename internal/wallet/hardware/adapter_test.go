package hardware_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/iamshubha/roy-dex-sub005/internal/wallet/hardware"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccount struct {
	Address string
	Index   int
	Extra   hardware.ExtraInfo
}

func (a *fakeAccount) SetHWExtraInfo(info hardware.ExtraInfo) {
	a.Extra = info
}

func evmPath(_ context.Context, index int) (string, error) {
	return fmt.Sprintf("m/44'/60'/0'/0/%d", index), nil
}

func prepareParams(table *hardware.ResponseTable, indexes ...int) hardware.PrepareParams[*fakeAccount] {
	return hardware.PrepareParams[*fakeAccount]{
		HardwareNetworkID: "evm",
		Indexes:           indexes,
		BuildPath:         evmPath,
		BuildResult: func(item hardware.ResponseItem, index int) (*fakeAccount, error) {
			return &fakeAccount{Address: item.Payload.Address, Index: index}, nil
		},
		Table: table,
	}
}

func TestPrepareAccountsSkipsWithoutNetworkOrTable(t *testing.T) {
	params := prepareParams(nil, 0)
	res, err := hardware.PrepareAccounts(t.Context(), params)
	require.NoError(t, err)
	assert.Nil(t, res)

	params = prepareParams(hardware.NewResponseTable(nil), 0)
	params.HardwareNetworkID = ""
	res, err = hardware.PrepareAccounts(t.Context(), params)
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestPrepareAccountsComplete(t *testing.T) {
	table := hardware.NewResponseTable(nil)

	// responses arrive out of order
	for _, index := range []int{2, 0, 1} {
		path, _ := evmPath(t.Context(), index)
		table.Deliver(t.Context(), okItem("evm", path))
	}

	res, err := hardware.PrepareAccounts(t.Context(), prepareParams(table, 0, 1, 2))
	require.NoError(t, err)
	require.Len(t, res, 3)

	for i, a := range res {
		assert.Equal(t, i, a.Index)
		assert.Equal(t, fmt.Sprintf("evm:m/44'/60'/0'/0/%d", i), a.Address)
		assert.Equal(t, uint32(42), a.Extra.RootFingerprint)
	}

	// the table outlives the adapter
	require.NoError(t, table.Err())
	assert.Equal(t, 3, table.Len())
}

func TestPrepareAccountsWrapsPlainResults(t *testing.T) {
	table := hardware.NewResponseTable(nil)
	table.Deliver(t.Context(), okItem("evm", "m/44'/60'/0'/0/0"))

	res, err := hardware.PrepareAccounts(t.Context(), hardware.PrepareParams[*hardware.Prepared[string]]{
		HardwareNetworkID: "evm",
		Indexes:           []int{0},
		BuildPath:         evmPath,
		BuildResult: func(item hardware.ResponseItem, _ int) (*hardware.Prepared[string], error) {
			return &hardware.Prepared[string]{Value: item.Payload.Address}, nil
		},
		Table: table,
	})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, uint32(42), res[0].HWExtraInfo.RootFingerprint)
}

func TestPrepareAccountsIncomplete(t *testing.T) {
	tests := []struct {
		name    string
		failure *hardware.ResponseItem
		check   func(t *testing.T, err error)
	}{
		{
			name:    "forbidden key path",
			failure: &hardware.ResponseItem{Network: "evm", Path: "m/44'/60'/0'/0/1", Payload: &hardware.Payload{Error: "Failure_DataError,Forbidden key path", Code: hardware.CodeRuntimeError}},
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, hardware.ErrUnsupportedAddressType)
			},
		},
		{
			name:    "device error",
			failure: &hardware.ResponseItem{Network: "evm", Path: "m/44'/60'/0'/0/1", Payload: &hardware.Payload{Error: "pin wrong", Code: hardware.CodePinInvalid, DeviceID: "dev-1"}},
			check: func(t *testing.T, err error) {
				var hwErr *hardware.HardwareError
				require.ErrorAs(t, err, &hwErr)
				assert.Equal(t, hardware.CodePinInvalid, hwErr.Code)
				assert.Equal(t, "enter_pin_invalid_pin", hwErr.Key)
				assert.Equal(t, "dev-1", hwErr.DeviceID)
				assert.NotErrorIs(t, err, hardware.ErrUnsupportedAddressType)
			},
		},
		{
			name:    "failure without message",
			failure: &hardware.ResponseItem{Network: "evm", Path: "m/44'/60'/0'/0/1", Payload: &hardware.Payload{}},
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, hardware.ErrBatchAccountsFailed)
			},
		},
		{
			name:    "success without payload",
			failure: &hardware.ResponseItem{Network: "evm", Path: "m/44'/60'/0'/0/1", Success: true},
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, hardware.ErrBatchAccountsFailed)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := hardware.NewResponseTable(nil)
			table.Deliver(t.Context(), okItem("evm", "m/44'/60'/0'/0/0"))
			table.Deliver(t.Context(), *tt.failure)
			table.Deliver(t.Context(), okItem("evm", "m/44'/60'/0'/0/2"))

			res, err := hardware.PrepareAccounts(t.Context(), prepareParams(table, 0, 1, 2))
			assert.Nil(t, res)
			tt.check(t, err)
		})
	}
}

func TestPrepareAccountsReportsOwnFailureFirst(t *testing.T) {
	table := hardware.NewResponseTable(nil)

	// another network of the same batch failed earlier
	table.Deliver(t.Context(), hardware.ResponseItem{Network: "btc", Path: "m/86'/0'/0'", Payload: &hardware.Payload{Error: "Failure_DataError,Forbidden key path", Code: hardware.CodeRuntimeError}})
	table.Deliver(t.Context(), okItem("evm", "m/44'/60'/0'/0/0"))
	table.Deliver(t.Context(), hardware.ResponseItem{Network: "evm", Path: "m/44'/60'/0'/0/1", Payload: &hardware.Payload{Error: "pin wrong", Code: hardware.CodePinInvalid}})

	res, err := hardware.PrepareAccounts(t.Context(), prepareParams(table, 0, 1))
	assert.Nil(t, res)

	var hwErr *hardware.HardwareError
	require.ErrorAs(t, err, &hwErr)
	assert.Equal(t, hardware.CodePinInvalid, hwErr.Code)
	assert.NotErrorIs(t, err, hardware.ErrUnsupportedAddressType)

	// without a failure of its own the network reports the batch's first failure
	table.Deliver(t.Context(), okItem("evm", "m/44'/60'/0'/0/5"))
	table.Deliver(t.Context(), hardware.ResponseItem{Network: "evm", Path: "m/44'/60'/0'/0/6", Success: true})

	res, err = hardware.PrepareAccounts(t.Context(), prepareParams(table, 5, 6))
	assert.Nil(t, res)
	require.ErrorIs(t, err, hardware.ErrUnsupportedAddressType)
}

func TestPrepareAccountsPoisoned(t *testing.T) {
	table := hardware.NewResponseTable(nil)
	table.Deliver(t.Context(), okItem("evm", "m/44'/60'/0'/0/0"))
	poison := errors.New("device disconnected")
	table.Poison(poison)

	res, err := hardware.PrepareAccounts(t.Context(), prepareParams(table, 0, 1))
	assert.Nil(t, res)
	require.ErrorIs(t, err, poison)
}

func TestPrepareAccountsPropagatesCallbackErrors(t *testing.T) {
	table := hardware.NewResponseTable(nil)
	table.Deliver(t.Context(), okItem("evm", "m/44'/60'/0'/0/0"))
	boom := errors.New("boom")

	params := prepareParams(table, 0)
	params.BuildPath = func(context.Context, int) (string, error) { return "", boom }
	_, err := hardware.PrepareAccounts(t.Context(), params)
	require.ErrorIs(t, err, boom)

	params = prepareParams(table, 0)
	params.BuildResult = func(hardware.ResponseItem, int) (*fakeAccount, error) { return nil, boom }
	_, err = hardware.PrepareAccounts(t.Context(), params)
	require.ErrorIs(t, err, boom)
}

func TestConvertDeviceError(t *testing.T) {
	assert.Nil(t, hardware.ConvertDeviceError(nil))

	hwErr := hardware.ConvertDeviceError(&hardware.Payload{Code: hardware.CodeActionCancelled, ConnectID: "c-1"})
	assert.Equal(t, "UserCancel", hwErr.Message)
	assert.Equal(t, "hardware_user_cancel_error", hwErr.Key)
	assert.Equal(t, "c-1", hwErr.ConnectID)

	hwErr = hardware.ConvertDeviceError(&hardware.Payload{Code: 9999})
	assert.Equal(t, "UnknownHardwareError", hwErr.Message)
	assert.Contains(t, hwErr.Error(), "9999")

	assert.True(t, hardware.IsForbiddenKeyPath("Failure_DataError,Forbidden key path: m/44'/999'"))
	assert.False(t, hardware.IsForbiddenKeyPath("Failure_DataError"))
}
