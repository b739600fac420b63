package hardware

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/iamshubha/roy-dex-sub005/internal/util"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/account"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/derive"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/network"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"
)

type batchService struct {
	networks  network.Service
	accounts  account.Service
	transport Transport
	observer  Observer
	timeout   time.Duration

	mu      sync.RWMutex
	batches map[string]*Batch
}

// NewBatchService creates a BatchService. observer may be nil; a zero timeout lets the
// transport run until it returns on its own.
//
//nolint:ireturn
func NewBatchService(networks network.Service, accounts account.Service, transport Transport, observer Observer, timeout time.Duration) (BatchService, error) {
	if err := vala.BeginValidation().Validate(
		vala.IsNotNil(networks, "networks"),
		vala.IsNotNil(accounts, "accounts"),
		vala.IsNotNil(transport, "transport"),
	).Check(); err != nil {
		return nil, errors.Wrap(err, "invalid hardware batch service arguments")
	}

	return &batchService{
		networks:  networks,
		accounts:  accounts,
		transport: transport,
		observer:  observer,
		timeout:   timeout,
		batches:   make(map[string]*Batch),
	}, nil
}

func (s *batchService) Start(ctx context.Context, params StartParams) (*Batch, error) {
	log := util.LogFromContext(ctx).With().Str("walletId", params.WalletID).Logger()

	if !account.IsHwWallet(params.WalletID) {
		return nil, errors.Wrapf(ErrNotHardwareWallet, "wallet %q", params.WalletID)
	}

	req := BundleRequest{
		ConnectID: params.ConnectID,
		DeviceID:  params.DeviceID,
		Bundle:    make([]BundleParam, 0, len(params.Networks)*len(params.Indexes)),
	}

	for _, np := range params.Networks {
		n, err := s.networks.GetNetwork(ctx, np.NetworkID)
		if err != nil {
			return nil, err
		}

		if n.HardwareNetwork == "" {
			log.Debug().Str("networkId", n.ID).Msg("Skipping network without hardware support")
			continue
		}

		info, err := s.networks.GetDeriveInfoOfNetwork(ctx, n.ID, np.DeriveType)
		if err != nil {
			return nil, err
		}

		for _, index := range params.Indexes {
			if params.ExcludedIndexes[index] {
				continue
			}

			req.Bundle = append(req.Bundle, BundleParam{
				Network:         n.HardwareNetwork,
				Path:            devicePath(n, info.Template, index),
				UseTweak:        np.UseTweak,
				ShowOnOneKey:    params.ShowOnOneKey,
				AddressEncoding: info.AddressEncoding,
				NetworkID:       n.ID,
				DeriveType:      np.DeriveType,
				Index:           index,
			})
		}
	}

	table := NewResponseTable(s.observer)
	table.SetBundleLength(len(req.Bundle))

	batch := &Batch{
		ID:       table.ID(),
		WalletID: params.WalletID,
		Request:  req,
		Table:    table,
	}

	s.mu.Lock()
	s.batches[batch.ID] = batch
	s.mu.Unlock()

	log.Info().Str("batchId", batch.ID).Int("bundleLength", len(req.Bundle)).Msg("Hardware batch started")

	if len(req.Bundle) > 0 {
		go s.run(util.DetachContext(ctx), batch)
	}

	return batch, nil
}

func (s *batchService) run(ctx context.Context, batch *Batch) {
	log := util.LogFromContext(ctx).With().Str("batchId", batch.ID).Logger()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	err := s.transport.AllNetworkGetAddress(ctx, batch.Request, func(item ResponseItem) {
		batch.Table.Deliver(ctx, item)
	})
	if err != nil {
		log.Error().Err(err).Msg("Hardware batch failed")
		batch.Table.Poison(poisonError(err))
		return
	}

	log.Debug().Msg("Hardware batch transport finished")
}

func poisonError(err error) error {
	var hwErr *HardwareError
	if errors.As(err, &hwErr) {
		return hwErr
	}

	return errors.Wrap(ErrCommunicationInterrupted, err.Error())
}

func (s *batchService) Get(id string) (*Batch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	batch, ok := s.batches[id]

	return batch, ok
}

func (s *batchService) PrepareNetworkAccounts(ctx context.Context, id string, params PrepareNetworkParams) ([]*PreparedAccount, error) {
	batch, ok := s.Get(id)
	if !ok {
		return nil, errors.Wrapf(ErrBatchNotFound, "batch %q", id)
	}

	n, err := s.networks.GetNetwork(ctx, params.NetworkID)
	if err != nil {
		return nil, err
	}

	info, err := s.networks.GetDeriveInfoOfNetwork(ctx, n.ID, params.DeriveType)
	if err != nil {
		return nil, err
	}

	isUTXO := network.IsUTXO(n.Impl)
	accountType := account.TypeSimple
	if isUTXO {
		accountType = account.TypeUTXO
	}

	prepared, err := PrepareAccounts(ctx, PrepareParams[*PreparedAccount]{
		HardwareNetworkID: n.HardwareNetwork,
		Indexes:           params.Indexes,
		UseTweak:          params.UseTweak,
		Table:             batch.Table,
		BuildPath: func(_ context.Context, index int) (string, error) {
			return devicePath(n, info.Template, index), nil
		},
		BuildResult: func(item ResponseItem, index int) (*PreparedAccount, error) {
			indexedAccountID, err := account.BuildIndexedAccountID(batch.WalletID, index)
			if err != nil {
				return nil, err
			}

			return &PreparedAccount{
				DBAccount: account.DBAccount{
					ID:               account.BuildHDAccountID(batch.WalletID, item.Path, info.IDSuffix, isUTXO),
					Name:             fmt.Sprintf("%s #%d", info.NamePrefix, index+1),
					Type:             accountType,
					Impl:             n.Impl,
					CoinType:         derive.CoinType(info.Template),
					Template:         info.Template,
					Path:             item.Path,
					PathIndex:        index,
					IndexedAccountID: indexedAccountID,
					Pub:              item.Payload.PublicKey,
					Xpub:             item.Payload.ExtendedPublicKey,
					Address:          item.Payload.Address,
					AddressEncoding:  info.AddressEncoding,
				},
			}, nil
		},
	})
	if err != nil {
		return nil, err
	}

	if len(prepared) > 0 && params.Save {
		dbAccounts := make([]*account.DBAccount, 0, len(prepared))
		for _, p := range prepared {
			dbAccounts = append(dbAccounts, &p.DBAccount)
		}

		if err := s.accounts.AddAccounts(ctx, dbAccounts...); err != nil {
			return nil, errors.Wrap(err, "failed to save prepared accounts")
		}
	}

	return prepared, nil
}

func (s *batchService) Finish(ctx context.Context, id string) error {
	s.mu.Lock()
	batch, ok := s.batches[id]
	delete(s.batches, id)
	s.mu.Unlock()

	if !ok {
		return errors.Wrapf(ErrBatchNotFound, "batch %q", id)
	}

	batch.Table.Destroy()
	util.LogFromContext(ctx).Info().Str("batchId", id).Msg("Hardware batch finished")

	return nil
}

// devicePath is the path requested from the device. UTXO accounts are requested at
// account level.
func devicePath(n *network.Network, template string, index int) string {
	path := derive.BuildPath(template, index)
	if network.IsUTXO(n.Impl) {
		path = strings.TrimSuffix(path, "/0/0")
	}

	return path
}

type bridgeTransport struct{}

// NewBridgeTransport returns a Transport for devices driven by an external bridge. The
// bridge reads the bundle of a batch and pushes the device responses back to its table.
//
//nolint:ireturn
func NewBridgeTransport() Transport {
	return bridgeTransport{}
}

func (bridgeTransport) AllNetworkGetAddress(ctx context.Context, req BundleRequest, _ func(item ResponseItem)) error {
	util.LogFromContext(ctx).Debug().Int("bundleLength", len(req.Bundle)).Msg("Bundle handed to device bridge")
	return nil
}
