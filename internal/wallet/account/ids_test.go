package account_test

import (
	"testing"

	"github.com/iamshubha/roy-dex-sub005/internal/wallet/account"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletIDFromAccountID(t *testing.T) {
	assert.Equal(t, "hd-1", account.WalletIDFromAccountID("hd-1--m/44'/60'/0'/0/0"))
	assert.Equal(t, "hw-da2fb055", account.WalletIDFromAccountID("hw-da2fb055--m/44'/0'/0'"))
	assert.Equal(t, "external", account.WalletIDFromAccountID("external--60--0xf588"))
	assert.Equal(t, "hd-1", account.WalletIDFromAccountID("hd-1"))
}

func TestWalletKinds(t *testing.T) {
	tests := []struct {
		accountID string
		others    bool
		hw        bool
	}{
		{"watching--60--0xabc", true, false},
		{"external--60--0xabc", true, false},
		{"imported--60--0xabc", true, false},
		{"hd-1--m/44'/60'/0'/0/0", false, false},
		{"hw-abc--m/44'/60'/0'/0/0", false, true},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.accountID, func(t *testing.T) {
			assert.Equal(t, tt.others, account.IsOthersAccount(tt.accountID))
			assert.Equal(t, tt.hw, account.IsHwAccount(tt.accountID))
		})
	}

	assert.True(t, account.IsHDWallet("hd-1"))
	assert.True(t, account.IsQrWallet("qr-abc"))
	assert.False(t, account.IsOthersWallet(""))
}

func TestIndexedAccountID(t *testing.T) {
	id, err := account.BuildIndexedAccountID("hd-1", 3)
	require.NoError(t, err)
	assert.Equal(t, "hd-1--3", id)

	_, err = account.BuildIndexedAccountID("hd-1", -1)
	require.Error(t, err)

	walletID, index, err := account.ParseIndexedAccountID("hw-abc--12")
	require.NoError(t, err)
	assert.Equal(t, "hw-abc", walletID)
	assert.Equal(t, 12, index)

	for _, bad := range []string{"hd-1", "--1", "hd-1--x", "hd-1--"} {
		_, _, err := account.ParseIndexedAccountID(bad)
		assert.Error(t, err, bad)
	}
}

func TestBuildHDAccountID(t *testing.T) {
	assert.Equal(t, "hd-1--m/44'/60'/0'/0/0", account.BuildHDAccountID("hd-1", "m/44'/60'/0'/0/0", "", false))
	assert.Equal(t, "hd-1--m/44'/60'/0'/0/0--LedgerLive", account.BuildHDAccountID("hd-1", "m/44'/60'/0'/0/0", "LedgerLive", false))
	assert.Equal(t, "hd-1--m/84'/0'/0'", account.BuildHDAccountID("hd-1", "m/84'/0'/0'/0/0", "", true))
	assert.Equal(t, "hd-1--m/84'/0'/0'", account.BuildHDAccountID("hd-1", "m/84'/0'/0'", "", true))
}

func TestAllNetworkMockAccount(t *testing.T) {
	id := account.BuildAllNetworkAccountID("hd-1", 2)
	assert.Equal(t, "hd-1--8888/2", id)
	assert.True(t, account.IsAllNetworkMockAccount(id))
	assert.False(t, account.IsAllNetworkMockAccount("hd-1--m/44'/60'/0'/0/0"))
	assert.False(t, account.IsAllNetworkMockAccount("hd-1"))
}

func TestIsAccountCompatibleWithNetwork(t *testing.T) {
	tests := []struct {
		name      string
		account   *account.DBAccount
		networkID string
		want      bool
	}{
		{"same impl", &account.DBAccount{Impl: "evm"}, "evm--1", true},
		{"other impl", &account.DBAccount{Impl: "evm"}, "btc--0", false},
		{"no impl", &account.DBAccount{}, "btc--0", true},
		{"bound networks match", &account.DBAccount{Impl: "evm", Networks: []string{"evm--56"}}, "evm--56", true},
		{"bound networks miss", &account.DBAccount{Impl: "evm", Networks: []string{"evm--56"}}, "evm--1", false},
		{"nil account", nil, "evm--1", false},
		{"empty network", &account.DBAccount{Impl: "evm"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, account.IsAccountCompatibleWithNetwork(tt.account, tt.networkID))
		})
	}
}
