package address_test

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/address"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/derive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// BIP32 test vector 1
const testSeedHex = "000102030405060708090a0b0c0d0e0f"

func testSeed(t *testing.T) []byte {
	t.Helper()

	seed, err := hex.DecodeString(testSeedHex)
	require.NoError(t, err)

	return seed
}

func newService(t *testing.T) address.Service {
	t.Helper()

	s, err := address.NewService(16)
	require.NoError(t, err)

	return s
}

func TestParseBIP32Path(t *testing.T) {
	indices, err := address.ParseBIP32Path("m/44'/60'/0'/0/7")
	require.NoError(t, err)
	assert.Equal(t, []uint32{0x8000002c, 0x8000003c, 0x80000000, 0, 7}, indices)

	indices, err = address.ParseBIP32Path("m")
	require.NoError(t, err)
	assert.Empty(t, indices)

	for _, path := range []string{"", "44'/0'", "m/x'", "m/44'//0", "m/2147483648"} {
		_, err := address.ParseBIP32Path(path)
		assert.Error(t, err, path)
	}
}

func TestDeriveExtendedPublicKeyMaster(t *testing.T) {
	s := newService(t)

	xpub, err := s.DeriveExtendedPublicKey(t.Context(), testSeed(t), "m")
	require.NoError(t, err)
	assert.Equal(t, "xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8", xpub)
}

func TestResolveEVMAddressFromPub(t *testing.T) {
	s := newService(t)
	seed := testSeed(t)
	path := "m/44'/60'/0'/0/0"

	derived, err := s.DeriveAddress(t.Context(), seed, path, "evm")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(derived, "0x"))
	assert.Len(t, derived, 42)

	pub, err := s.DerivePublicKey(t.Context(), seed, path)
	require.NoError(t, err)
	assert.Len(t, pub, 66)

	resolved, err := s.ResolveAddress(t.Context(), address.Request{Impl: "evm", NetworkID: "evm--1", Pub: pub})
	require.NoError(t, err)
	assert.Equal(t, derived, resolved)

	// cached result is stable
	again, err := s.ResolveAddress(t.Context(), address.Request{Impl: "evm", NetworkID: "evm--1", Pub: pub})
	require.NoError(t, err)
	assert.Equal(t, resolved, again)
}

func TestResolveTronAddress(t *testing.T) {
	s := newService(t)

	pub, err := s.DerivePublicKey(t.Context(), testSeed(t), "m/44'/195'/0'/0/0")
	require.NoError(t, err)

	addr, err := s.ResolveAddress(t.Context(), address.Request{Impl: "tron", NetworkID: "tron--0x2b6653dc", Pub: pub})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(addr, "T"), addr)
	assert.Len(t, addr, 34)
}

func TestResolveUTXOAddressFromXpub(t *testing.T) {
	s := newService(t)
	seed := testSeed(t)

	tests := []struct {
		name      string
		impl      string
		isTestnet bool
		account   string
		encoding  string
		prefix    string
		expected  func(pub []byte) (btcutil.Address, error)
	}{
		{
			name: "btc native segwit", impl: "btc", account: "m/84'/0'/0'", encoding: derive.EncodingP2WPKH, prefix: "bc1q",
			expected: func(pub []byte) (btcutil.Address, error) {
				return btcutil.NewAddressWitnessPubKeyHash(btcutil.Hash160(pub), &chaincfg.MainNetParams)
			},
		},
		{
			name: "btc legacy", impl: "btc", account: "m/44'/0'/0'", encoding: derive.EncodingP2PKH, prefix: "1",
			expected: func(pub []byte) (btcutil.Address, error) {
				return btcutil.NewAddressPubKeyHash(btcutil.Hash160(pub), &chaincfg.MainNetParams)
			},
		},
		{
			name: "btc nested segwit", impl: "btc", account: "m/49'/0'/0'", encoding: derive.EncodingP2SHP2WPKH, prefix: "3",
		},
		{
			name: "btc taproot", impl: "btc", account: "m/86'/0'/0'", encoding: derive.EncodingP2TR, prefix: "bc1p",
		},
		{
			name: "tbtc native segwit", impl: "tbtc", isTestnet: true, account: "m/84'/1'/0'", encoding: derive.EncodingP2WPKH, prefix: "tb1q",
			expected: func(pub []byte) (btcutil.Address, error) {
				return btcutil.NewAddressWitnessPubKeyHash(btcutil.Hash160(pub), &chaincfg.TestNet3Params)
			},
		},
		{
			name: "ltc native segwit", impl: "ltc", account: "m/84'/2'/0'", encoding: derive.EncodingP2WPKH, prefix: "ltc1q",
		},
		{
			name: "doge legacy", impl: "doge", account: "m/44'/3'/0'", encoding: derive.EncodingP2PKH, prefix: "D",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xpub, err := s.DeriveExtendedPublicKey(t.Context(), seed, tt.account)
			require.NoError(t, err)

			addr, err := s.ResolveAddress(t.Context(), address.Request{
				Impl:            tt.impl,
				NetworkID:       tt.impl + "--0",
				IsTestnet:       tt.isTestnet,
				Xpub:            xpub,
				AddressEncoding: tt.encoding,
			})
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(addr, tt.prefix), addr)

			if tt.expected == nil {
				return
			}

			pubHex, err := s.DerivePublicKey(t.Context(), seed, tt.account+"/0/0")
			require.NoError(t, err)
			pub, err := hex.DecodeString(pubHex)
			require.NoError(t, err)

			want, err := tt.expected(pub)
			require.NoError(t, err)
			assert.Equal(t, want.EncodeAddress(), addr)
		})
	}
}

func TestResolveAddressErrors(t *testing.T) {
	s := newService(t)

	addr, err := s.ResolveAddress(t.Context(), address.Request{Impl: "sol", Address: "stored"})
	require.NoError(t, err)
	assert.Equal(t, "stored", addr)

	_, err = s.ResolveAddress(t.Context(), address.Request{Impl: "sol", NetworkID: "sol--101"})
	require.ErrorIs(t, err, address.ErrNoKeyMaterial)

	pub, err := s.DerivePublicKey(t.Context(), testSeed(t), "m/44'/501'/0'/0'")
	require.NoError(t, err)
	_, err = s.ResolveAddress(t.Context(), address.Request{Impl: "sol", NetworkID: "sol--101", Pub: pub})
	require.ErrorIs(t, err, address.ErrUnsupportedImpl)

	_, err = s.ResolveAddress(t.Context(), address.Request{Impl: "btc", Xpub: "not-an-xpub"})
	require.Error(t, err)
}
