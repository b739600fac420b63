package account

import (
	"context"

	"github.com/iamshubha/roy-dex-sub005/internal/util"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/address"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/derive"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/network"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"
)

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountIDRequired    = errors.New("accountId is required")
	ErrIncompatibleNetwork  = errors.New("account is not compatible with network")
	ErrAllNetworkNotAllowed = errors.New("all networks account can not be resolved without indexed account")
)

// AllNetworkMockAddress is the address of mocked all-networks accounts.
const AllNetworkMockAddress = "0x0000000000000000000000000000000000000000"

type service struct {
	store     Store
	networks  network.Service
	addresses address.Service
}

// NewService creates a store backed account service
//
//nolint:ireturn
func NewService(store Store, networks network.Service, addresses address.Service) (Service, error) {
	if err := vala.BeginValidation().Validate(
		vala.IsNotNil(store, "store"),
		vala.IsNotNil(networks, "networks"),
		vala.IsNotNil(addresses, "addresses"),
	).Check(); err != nil {
		return nil, errors.Wrap(err, "invalid account service arguments")
	}

	return &service{
		store:     store,
		networks:  networks,
		addresses: addresses,
	}, nil
}

func (s *service) GetAccount(ctx context.Context, params GetAccountParams) (*NetworkAccount, error) {
	if network.IsAllNetwork(params.NetworkID) && !IsOthersAccount(params.AccountID) {
		if params.IndexedAccountID == "" {
			return nil, ErrAllNetworkNotAllowed
		}

		return s.mockedAllNetworkAccount(params.IndexedAccountID)
	}

	if params.AccountID == "" {
		return nil, ErrAccountIDRequired
	}

	a, err := s.GetDBAccount(ctx, params.AccountID)
	if err != nil {
		return nil, err
	}

	networkID := params.NetworkID
	if networkID == "" || network.IsAllNetwork(networkID) {
		networkID = compatibleNetworkID(a)
	}

	if !IsAccountCompatibleWithNetwork(a, networkID) {
		return nil, errors.Wrapf(ErrIncompatibleNetwork, "account %q network %q", a.ID, networkID)
	}

	info, err := s.GetAccountAddressInfoForAPI(ctx, a, networkID)
	if err != nil {
		return nil, err
	}

	return info.Account, nil
}

func (s *service) mockedAllNetworkAccount(indexedAccountID string) (*NetworkAccount, error) {
	walletID, index, err := ParseIndexedAccountID(indexedAccountID)
	if err != nil {
		return nil, err
	}

	return &NetworkAccount{
		DBAccount: DBAccount{
			ID:               BuildAllNetworkAccountID(walletID, index),
			Impl:             network.ImplAllNetworks,
			CoinType:         AllNetworksCoinType,
			PathIndex:        index,
			IndexedAccountID: indexedAccountID,
			Address:          AllNetworkMockAddress,
		},
		NetworkID: network.AllNetworkID,
	}, nil
}

// compatibleNetworkID picks the network an account is shown on when none is given.
func compatibleNetworkID(a *DBAccount) string {
	if a.CreateAtNetwork != "" && IsAccountCompatibleWithNetwork(a, a.CreateAtNetwork) {
		return a.CreateAtNetwork
	}

	if len(a.Networks) > 0 {
		return a.Networks[0]
	}

	return a.CreateAtNetwork
}

func (s *service) GetDBAccount(ctx context.Context, accountID string) (*DBAccount, error) {
	if accountID == "" {
		return nil, ErrAccountIDRequired
	}

	a, err := s.store.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return a, nil
}

func (s *service) GetAccountsInSameIndexedAccountID(ctx context.Context, indexedAccountID string) ([]*DBAccount, error) {
	accounts, err := s.store.GetAccountsByIndexedAccountID(ctx, indexedAccountID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list accounts of indexed account %q", indexedAccountID)
	}

	return accounts, nil
}

func (s *service) GetDBAccountIDFromIndexedAccountID(ctx context.Context, indexedAccountID string, networkID string, deriveType derive.Type) (string, error) {
	walletID, index, err := ParseIndexedAccountID(indexedAccountID)
	if err != nil {
		return "", err
	}

	if network.IsAllNetwork(networkID) {
		return BuildAllNetworkAccountID(walletID, index), nil
	}

	info, err := s.networks.GetDeriveInfoOfNetwork(ctx, networkID, deriveType)
	if err != nil {
		return "", err
	}

	impl := network.Impl(networkID)

	return BuildHDAccountID(walletID, derive.BuildPath(info.Template, index), info.IDSuffix, network.IsUTXO(impl)), nil
}

func (s *service) GetAccountAddressInfoForAPI(ctx context.Context, a *DBAccount, networkID string) (*AddressInfo, error) {
	if a == nil {
		return nil, ErrAccountNotFound
	}

	n, err := s.networks.GetNetwork(ctx, networkID)
	if err != nil {
		return nil, err
	}

	addr, ok, err := s.store.GetAccountAddress(ctx, a.ID, networkID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get cached account address")
	}

	if !ok {
		addr, err = s.addresses.ResolveAddress(ctx, address.Request{
			Impl:            n.Impl,
			NetworkID:       n.ID,
			IsTestnet:       n.IsTestnet,
			Address:         a.Address,
			Pub:             a.Pub,
			Xpub:            a.Xpub,
			AddressEncoding: a.AddressEncoding,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to resolve address of account %q", a.ID)
		}
	}

	networkAccount := &NetworkAccount{DBAccount: *a, NetworkID: networkID}
	networkAccount.Address = addr

	return &AddressInfo{Address: addr, Account: networkAccount}, nil
}

func (s *service) GetAccountXpub(_ context.Context, a *DBAccount, networkID string) (string, error) {
	if a == nil {
		return "", ErrAccountNotFound
	}

	if !network.IsUTXO(network.Impl(networkID)) {
		return "", nil
	}

	if a.XpubSegwit != "" {
		return a.XpubSegwit, nil
	}

	return a.Xpub, nil
}

func (s *service) SaveAccountAddresses(ctx context.Context, networkID string, a *NetworkAccount) error {
	if a == nil || a.Address == "" {
		return nil
	}

	if err := s.store.SaveAccountAddress(ctx, a.ID, networkID, a.Address); err != nil {
		return errors.Wrapf(err, "failed to save address of account %q", a.ID)
	}

	util.LogFromContext(ctx).Debug().Str("accountId", a.ID).Str("networkId", networkID).Msg("Account address saved")

	return nil
}

func (s *service) AddAccounts(ctx context.Context, accounts ...*DBAccount) error {
	for _, a := range accounts {
		if a == nil || a.ID == "" {
			return ErrAccountIDRequired
		}
	}

	if err := s.store.SaveAccounts(ctx, accounts...); err != nil {
		return errors.Wrap(err, "failed to save accounts")
	}

	return nil
}
