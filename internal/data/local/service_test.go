package local_test

import (
	"context"
	"testing"

	"github.com/iamshubha/roy-dex-sub005/internal/data/local"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/account"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/derive"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/network"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *local.Service {
	t.Helper()

	s, err := local.NewService("")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

func TestAccounts(t *testing.T) {
	ctx := t.Context()
	s := newStore(t)
	require.True(t, s.InMemory())

	_, err := s.GetAccount(ctx, "hd-1--m/44'/60'/0'/0/0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, account.ErrAccountNotFound))

	evm := &account.DBAccount{
		ID:               "hd-1--m/44'/60'/0'/0/0",
		Type:             account.TypeSimple,
		Impl:             network.ImplEVM,
		IndexedAccountID: "hd-1--0",
		Pub:              "02abcdef",
	}
	btc := &account.DBAccount{
		ID:               "hd-1--m/84'/0'/0'",
		Type:             account.TypeUTXO,
		Impl:             network.ImplBTC,
		IndexedAccountID: "hd-1--0",
		Xpub:             "xpub",
	}
	other := &account.DBAccount{
		ID:               "hd-1--m/44'/60'/0'/0/1",
		Type:             account.TypeSimple,
		Impl:             network.ImplEVM,
		IndexedAccountID: "hd-1--1",
	}

	require.NoError(t, s.SaveAccounts(ctx, evm, btc, other, nil))

	got, err := s.GetAccount(ctx, evm.ID)
	require.NoError(t, err)
	assert.Equal(t, evm, got)

	siblings, err := s.GetAccountsByIndexedAccountID(ctx, "hd-1--0")
	require.NoError(t, err)
	require.Len(t, siblings, 2)
	assert.ElementsMatch(t, []string{evm.ID, btc.ID}, []string{siblings[0].ID, siblings[1].ID})

	none, err := s.GetAccountsByIndexedAccountID(ctx, "hd-2--0")
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := s.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	evm.Name = "EVM #1"
	require.NoError(t, s.SaveAccounts(ctx, evm))

	got, err = s.GetAccount(ctx, evm.ID)
	require.NoError(t, err)
	assert.Equal(t, "EVM #1", got.Name)
}

func TestAccountAddresses(t *testing.T) {
	ctx := t.Context()
	s := newStore(t)

	_, ok, err := s.GetAccountAddress(ctx, "hd-1--m/44'/60'/0'/0/0", "evm--1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SaveAccountAddress(ctx, "hd-1--m/44'/60'/0'/0/0", "evm--1", "0xabc"))
	require.NoError(t, s.SaveAccountAddress(ctx, "hd-1--m/44'/60'/0'/0/0", "evm--56", "0xdef"))

	addr, ok, err := s.GetAccountAddress(ctx, "hd-1--m/44'/60'/0'/0/0", "evm--1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "0xabc", addr)

	addr, ok, err = s.GetAccountAddress(ctx, "hd-1--m/44'/60'/0'/0/0", "evm--56")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "0xdef", addr)
}

func TestGlobalDeriveType(t *testing.T) {
	ctx := t.Context()
	s := newStore(t)

	_, ok, err := s.GetGlobalDeriveType(ctx, "btc--0")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetGlobalDeriveType(ctx, "btc--0", derive.Type("BIP86")))

	dt, ok, err := s.GetGlobalDeriveType(ctx, "btc--0")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, derive.Type("BIP86"), dt)
}

func TestAllNetworksState(t *testing.T) {
	ctx := t.Context()
	s := newStore(t)

	state, err := s.GetAllNetworksState(ctx)
	require.NoError(t, err)
	assert.NotNil(t, state.EnabledNetworks)
	assert.NotNil(t, state.DisabledNetworks)
	assert.Empty(t, state.EnabledNetworks)

	require.NoError(t, s.UpdateAllNetworksState(ctx, network.AllNetworksState{
		EnabledNetworks:  map[string]bool{"evm--137": true},
		DisabledNetworks: map[string]bool{"evm--56": true},
	}))
	require.NoError(t, s.UpdateAllNetworksState(ctx, network.AllNetworksState{
		EnabledNetworks: map[string]bool{"doge--0": true, "evm--137": false},
	}))

	state, err = s.GetAllNetworksState(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"evm--137": false, "doge--0": true}, state.EnabledNetworks)
	assert.Equal(t, map[string]bool{"evm--56": true}, state.DisabledNetworks)
}

func TestDeFiEnabledNetworks(t *testing.T) {
	ctx := t.Context()
	s := newStore(t)

	m, err := s.GetDeFiEnabledNetworksMap(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)

	require.NoError(t, s.SetDeFiEnabledNetworks(ctx, map[string]bool{"evm--1": true}))

	m, err = s.GetDeFiEnabledNetworksMap(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"evm--1": true}, m)
}

func TestWithTransactionRollback(t *testing.T) {
	ctx := t.Context()
	s := newStore(t)

	failure := errors.New("boom")
	err := s.WithTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, s.SaveAccounts(ctx, &account.DBAccount{ID: "hd-1--m/44'/60'/0'/0/0"}))
		require.NoError(t, s.SaveAccountAddress(ctx, "hd-1--m/44'/60'/0'/0/0", "evm--1", "0xabc"))

		return failure
	})
	require.ErrorIs(t, err, failure)

	_, err = s.GetAccount(ctx, "hd-1--m/44'/60'/0'/0/0")
	require.ErrorIs(t, err, account.ErrAccountNotFound)

	_, ok, err := s.GetAccountAddress(ctx, "hd-1--m/44'/60'/0'/0/0", "evm--1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPing(t *testing.T) {
	s, err := local.NewService("")
	require.NoError(t, err)

	require.NoError(t, s.Ping(t.Context()))
	require.NoError(t, s.Close())
	require.Error(t, s.Ping(t.Context()))
}
