package pg

import (
	"context"
	"database/sql"
	"maps"

	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/aarondl/sqlboiler/v4/types"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/derive"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/network"
	"github.com/pkg/errors"
)

const (
	allNetworksStateKey    = "allNetworksState"
	defiEnabledNetworksKey = "defiEnabledNetworks"
)

type settingRow struct {
	Key   string     `boil:"key"`
	Value types.JSON `boil:"value"`
}

type globalDeriveTypeRow struct {
	NetworkID  string `boil:"network_id"`
	DeriveType string `boil:"derive_type"`
}

func (s *Service) getSetting(ctx context.Context, key string, result any) (bool, error) {
	var row settingRow

	err := NewQuery(qm.Select("key", "value"), qm.From("settings"), qm.Where("key = ?", key)).Bind(ctx, s.exec(ctx), &row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, err
	}

	if err := row.Value.Unmarshal(result); err != nil {
		return false, errors.Wrapf(err, "failed to decode setting %q", key)
	}

	return true, nil
}

func (s *Service) upsertSetting(ctx context.Context, key string, value any) error {
	row := settingRow{Key: key}
	if err := row.Value.Marshal(value); err != nil {
		return errors.Wrapf(err, "failed to encode setting %q", key)
	}

	_, err := queries.Raw(`
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		row.Key, row.Value,
	).ExecContext(ctx, s.exec(ctx))

	return err
}

func (s *Service) GetGlobalDeriveType(ctx context.Context, networkID string) (derive.Type, bool, error) {
	var row globalDeriveTypeRow

	err := NewQuery(
		qm.Select("network_id", "derive_type"),
		qm.From("global_derive_types"),
		qm.Where("network_id = ?", networkID),
	).Bind(ctx, s.exec(ctx), &row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}

		return "", false, errors.Wrapf(err, "failed to get global derive type of %q", networkID)
	}

	return derive.Type(row.DeriveType), true, nil
}

func (s *Service) SetGlobalDeriveType(ctx context.Context, networkID string, deriveType derive.Type) error {
	if _, err := queries.Raw(`
		INSERT INTO global_derive_types (network_id, derive_type) VALUES ($1, $2)
		ON CONFLICT (network_id) DO UPDATE SET derive_type = EXCLUDED.derive_type, updated_at = now()`,
		networkID, string(deriveType),
	).ExecContext(ctx, s.exec(ctx)); err != nil {
		return errors.Wrapf(err, "failed to set global derive type of %q", networkID)
	}

	return nil
}

func (s *Service) GetAllNetworksState(ctx context.Context) (network.AllNetworksState, error) {
	var state network.AllNetworksState

	if _, err := s.getSetting(ctx, allNetworksStateKey, &state); err != nil {
		return network.AllNetworksState{}, errors.Wrap(err, "failed to get all networks state")
	}

	if state.EnabledNetworks == nil {
		state.EnabledNetworks = make(map[string]bool)
	}
	if state.DisabledNetworks == nil {
		state.DisabledNetworks = make(map[string]bool)
	}

	return state, nil
}

// UpdateAllNetworksState merges update into the stored state key by key.
func (s *Service) UpdateAllNetworksState(ctx context.Context, update network.AllNetworksState) error {
	return s.WithTransaction(ctx, func(ctx context.Context) error {
		// serialise concurrent merges
		if _, err := queries.Raw(`SELECT pg_advisory_xact_lock(hashtext($1))`, allNetworksStateKey).ExecContext(ctx, s.exec(ctx)); err != nil {
			return errors.Wrap(err, "failed to lock all networks state")
		}

		state, err := s.GetAllNetworksState(ctx)
		if err != nil {
			return err
		}

		maps.Copy(state.EnabledNetworks, update.EnabledNetworks)
		maps.Copy(state.DisabledNetworks, update.DisabledNetworks)

		if err := s.upsertSetting(ctx, allNetworksStateKey, state); err != nil {
			return errors.Wrap(err, "failed to update all networks state")
		}

		return nil
	})
}

func (s *Service) GetDeFiEnabledNetworksMap(ctx context.Context) (map[string]bool, error) {
	networks := make(map[string]bool)

	if _, err := s.getSetting(ctx, defiEnabledNetworksKey, &networks); err != nil {
		return nil, errors.Wrap(err, "failed to get DeFi enabled networks")
	}

	if networks == nil {
		networks = make(map[string]bool)
	}

	return networks, nil
}

func (s *Service) SetDeFiEnabledNetworks(ctx context.Context, networks map[string]bool) error {
	if networks == nil {
		networks = make(map[string]bool)
	}

	if err := s.upsertSetting(ctx, defiEnabledNetworksKey, maps.Clone(networks)); err != nil {
		return errors.Wrap(err, "failed to set DeFi enabled networks")
	}

	return nil
}
