package fixtures

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/iamshubha/roy-dex-sub005/internal/util"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/account"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/address"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/derive"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/network"
	"github.com/pkg/errors"
)

const (
	HDWalletID = "hd-1"
	HWWalletID = "hw-1"

	// demoSeed is BIP32 test vector 1, never use it for real funds
	demoSeed = "000102030405060708090a0b0c0d0e0f"

	evmTemplate        = "m/44'/60'/0'/0/$$INDEX$$"
	evmLedgerTemplate  = "m/44'/60'/$$INDEX$$'/0/0"
	btcTemplate        = "m/84'/0'/$$INDEX$$'/0/0"
	btcTaprootTemplate = "m/86'/0'/$$INDEX$$'/0/0"
	watchedAddress     = "0x9858EfFD232B4033E47d90003D41EC34EcaEda94"
)

// Store is what Upsert writes fixtures to.
type Store interface {
	SaveAccounts(ctx context.Context, accounts ...*account.DBAccount) error
	SetDeFiEnabledNetworks(ctx context.Context, networks map[string]bool) error
}

// FixtureMap is the deterministic demo wallet: a software wallet with two indexed
// accounts on EVM and bitcoin, a hardware wallet with one EVM account and a watched
// address.
type FixtureMap struct {
	HDEVMAccount0        *account.DBAccount
	HDEVMAccount1        *account.DBAccount
	HDEVMLedgerAccount0  *account.DBAccount
	HDBTCAccount0        *account.DBAccount
	HDBTCAccount1        *account.DBAccount
	HDBTCTaprootAccount0 *account.DBAccount
	HWEVMAccount0        *account.DBAccount
	WatchingEVMAccount   *account.DBAccount
	DeFiEnabledNetworks  map[string]bool
}

// Fixtures derives the demo wallet from the demo seed.
func Fixtures(ctx context.Context, addresses address.Service) (*FixtureMap, error) {
	seed, err := hex.DecodeString(demoSeed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode demo seed")
	}

	b := builder{ctx: ctx, seed: seed, addresses: addresses}

	f := &FixtureMap{
		HDEVMAccount0:        b.evmAccount(HDWalletID, evmTemplate, "", 0),
		HDEVMAccount1:        b.evmAccount(HDWalletID, evmTemplate, "", 1),
		HDEVMLedgerAccount0:  b.evmAccount(HDWalletID, evmLedgerTemplate, "LedgerLive", 0),
		HDBTCAccount0:        b.btcAccount(HDWalletID, btcTemplate, derive.EncodingP2WPKH, 0),
		HDBTCAccount1:        b.btcAccount(HDWalletID, btcTemplate, derive.EncodingP2WPKH, 1),
		HDBTCTaprootAccount0: b.btcAccount(HDWalletID, btcTaprootTemplate, derive.EncodingP2TR, 0),
		HWEVMAccount0:        b.evmAccount(HWWalletID, evmTemplate, "", 0),
		WatchingEVMAccount: &account.DBAccount{
			ID:              account.WalletTypeWatching + "--" + network.ImplEVM + "--" + watchedAddress,
			Name:            "Watched",
			Type:            account.TypeSimple,
			Impl:            network.ImplEVM,
			CoinType:        "60",
			Address:         watchedAddress,
			Networks:        []string{"evm--1"},
			CreateAtNetwork: "evm--1",
		},
		DeFiEnabledNetworks: map[string]bool{
			"evm--1":  true,
			"evm--56": true,
		},
	}

	if b.err != nil {
		return nil, b.err
	}

	return f, nil
}

// Accounts lists every fixture account.
func (f *FixtureMap) Accounts() []*account.DBAccount {
	return []*account.DBAccount{
		f.HDEVMAccount0,
		f.HDEVMAccount1,
		f.HDEVMLedgerAccount0,
		f.HDBTCAccount0,
		f.HDBTCAccount1,
		f.HDBTCTaprootAccount0,
		f.HWEVMAccount0,
		f.WatchingEVMAccount,
	}
}

// Upsert writes the fixtures to store, replacing records with the same id.
func Upsert(ctx context.Context, store Store, f *FixtureMap) error {
	if err := store.SaveAccounts(ctx, f.Accounts()...); err != nil {
		return errors.Wrap(err, "failed to upsert fixture accounts")
	}

	if err := store.SetDeFiEnabledNetworks(ctx, f.DeFiEnabledNetworks); err != nil {
		return errors.Wrap(err, "failed to upsert fixture DeFi networks")
	}

	util.LogFromContext(ctx).Info().Int("accounts", len(f.Accounts())).Msg("Fixtures upserted")

	return nil
}

// builder keeps the first derivation error so fixtures read as a flat list.
type builder struct {
	ctx       context.Context
	seed      []byte
	addresses address.Service
	err       error
}

func (b *builder) evmAccount(walletID string, template string, idSuffix string, index int) *account.DBAccount {
	path := derive.BuildPath(template, index)

	pub, err := b.addresses.DerivePublicKey(b.ctx, b.seed, path)
	if err != nil {
		b.fail(err, path)
		return nil
	}

	a := &account.DBAccount{
		ID:        account.BuildHDAccountID(walletID, path, idSuffix, false),
		Name:      fmt.Sprintf("EVM #%d", index+1),
		Type:      account.TypeSimple,
		Impl:      network.ImplEVM,
		CoinType:  derive.CoinType(template),
		Template:  template,
		Path:      path,
		PathIndex: index,
		Pub:       pub,
	}
	a.IndexedAccountID = b.indexedAccountID(walletID, index)

	// hardware accounts carry the address the device reported instead of a public key
	if walletID == HWWalletID {
		a.Address, err = b.addresses.DeriveAddress(b.ctx, b.seed, path, network.ImplEVM)
		if err != nil {
			b.fail(err, path)
			return nil
		}
		a.Pub = ""
	}

	return a
}

func (b *builder) btcAccount(walletID string, template string, encoding string, index int) *account.DBAccount {
	path := derive.BuildPath(template, index)
	accountPath := strings.TrimSuffix(path, "/0/0")

	xpub, err := b.addresses.DeriveExtendedPublicKey(b.ctx, b.seed, accountPath)
	if err != nil {
		b.fail(err, accountPath)
		return nil
	}

	a := &account.DBAccount{
		ID:              account.BuildHDAccountID(walletID, path, "", true),
		Name:            fmt.Sprintf("BTC #%d", index+1),
		Type:            account.TypeUTXO,
		Impl:            network.ImplBTC,
		CoinType:        derive.CoinType(template),
		Template:        template,
		Path:            accountPath,
		PathIndex:       index,
		Xpub:            xpub,
		AddressEncoding: encoding,
	}
	a.IndexedAccountID = b.indexedAccountID(walletID, index)

	return a
}

func (b *builder) indexedAccountID(walletID string, index int) string {
	id, err := account.BuildIndexedAccountID(walletID, index)
	if err != nil {
		b.fail(err, walletID)
	}

	return id
}

func (b *builder) fail(err error, path string) {
	if b.err == nil {
		b.err = errors.Wrapf(err, "failed to derive fixture account at %q", path)
	}
}
