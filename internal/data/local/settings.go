package local

import (
	"context"
	"maps"

	"github.com/iamshubha/roy-dex-sub005/internal/wallet/derive"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/network"
	"github.com/pkg/errors"
	"github.com/timshannon/badgerhold/v4"
)

const (
	allNetworksStateKey    = "allNetworksState"
	defiEnabledNetworksKey = "defiEnabledNetworks"
)

type globalDeriveType struct {
	NetworkID  string
	DeriveType derive.Type
}

type networkFlags struct {
	Networks map[string]bool
}

func (s *Service) get(ctx context.Context, key string, result any) (bool, error) {
	var err error
	if tx := txFromContext(ctx); tx != nil {
		err = s.store.TxGet(tx, key, result)
	} else {
		err = s.store.Get(key, result)
	}

	if err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (s *Service) upsert(ctx context.Context, key string, data any) error {
	if tx := txFromContext(ctx); tx != nil {
		return s.store.TxUpsert(tx, key, data)
	}

	return s.store.Upsert(key, data)
}

func (s *Service) GetGlobalDeriveType(ctx context.Context, networkID string) (derive.Type, bool, error) {
	var rec globalDeriveType

	found, err := s.get(ctx, networkID, &rec)
	if err != nil {
		return "", false, errors.Wrapf(err, "failed to get global derive type of %q", networkID)
	}

	if !found {
		return "", false, nil
	}

	return rec.DeriveType, true, nil
}

func (s *Service) SetGlobalDeriveType(ctx context.Context, networkID string, deriveType derive.Type) error {
	err := s.upsert(ctx, networkID, &globalDeriveType{NetworkID: networkID, DeriveType: deriveType})
	return errors.Wrapf(err, "failed to set global derive type of %q", networkID)
}

// GetAllNetworksState returns the stored enabled/disabled overrides. Both maps are
// non-nil.
func (s *Service) GetAllNetworksState(ctx context.Context) (network.AllNetworksState, error) {
	var state network.AllNetworksState

	if _, err := s.get(ctx, allNetworksStateKey, &state); err != nil {
		return network.AllNetworksState{}, errors.Wrap(err, "failed to get all networks state")
	}

	if state.EnabledNetworks == nil {
		state.EnabledNetworks = map[string]bool{}
	}
	if state.DisabledNetworks == nil {
		state.DisabledNetworks = map[string]bool{}
	}

	return state, nil
}

// UpdateAllNetworksState merges the given overrides into the stored state; keys absent
// from update keep their stored value.
func (s *Service) UpdateAllNetworksState(ctx context.Context, update network.AllNetworksState) error {
	return s.WithTransaction(ctx, func(ctx context.Context) error {
		state, err := s.GetAllNetworksState(ctx)
		if err != nil {
			return err
		}

		maps.Copy(state.EnabledNetworks, update.EnabledNetworks)
		maps.Copy(state.DisabledNetworks, update.DisabledNetworks)

		return errors.Wrap(s.upsert(ctx, allNetworksStateKey, &state), "failed to update all networks state")
	})
}

// GetDeFiEnabledNetworksMap returns the networks with DeFi positions enabled.
func (s *Service) GetDeFiEnabledNetworksMap(ctx context.Context) (map[string]bool, error) {
	var flags networkFlags

	if _, err := s.get(ctx, defiEnabledNetworksKey, &flags); err != nil {
		return nil, errors.Wrap(err, "failed to get DeFi enabled networks")
	}

	if flags.Networks == nil {
		flags.Networks = map[string]bool{}
	}

	return flags.Networks, nil
}

func (s *Service) SetDeFiEnabledNetworks(ctx context.Context, networks map[string]bool) error {
	err := s.upsert(ctx, defiEnabledNetworksKey, &networkFlags{Networks: maps.Clone(networks)})
	return errors.Wrap(err, "failed to set DeFi enabled networks")
}
