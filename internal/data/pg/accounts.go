package pg

import (
	"context"
	"database/sql"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/account"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

const tableAccounts = "accounts"

var accountColumns = []string{
	"id", "name", "type", "impl", "coin_type", "template", "path", "path_index", "indexed_account_id",
	"pub", "xpub", "xpub_segwit", "address", "address_encoding", "networks", "create_at_network",
}

type accountRow struct {
	ID               string         `boil:"id"`
	Name             string         `boil:"name"`
	Type             string         `boil:"type"`
	Impl             string         `boil:"impl"`
	CoinType         string         `boil:"coin_type"`
	Template         null.String    `boil:"template"`
	Path             string         `boil:"path"`
	PathIndex        int            `boil:"path_index"`
	IndexedAccountID null.String    `boil:"indexed_account_id"`
	Pub              null.String    `boil:"pub"`
	Xpub             null.String    `boil:"xpub"`
	XpubSegwit       null.String    `boil:"xpub_segwit"`
	Address          null.String    `boil:"address"`
	AddressEncoding  null.String    `boil:"address_encoding"`
	Networks         pq.StringArray `boil:"networks"`
	CreateAtNetwork  null.String    `boil:"create_at_network"`
}

func newAccountRow(a *account.DBAccount) *accountRow {
	networks := pq.StringArray(a.Networks)
	if networks == nil {
		networks = pq.StringArray{}
	}

	return &accountRow{
		ID:               a.ID,
		Name:             a.Name,
		Type:             string(a.Type),
		Impl:             a.Impl,
		CoinType:         a.CoinType,
		Template:         optional(a.Template),
		Path:             a.Path,
		PathIndex:        a.PathIndex,
		IndexedAccountID: optional(a.IndexedAccountID),
		Pub:              optional(a.Pub),
		Xpub:             optional(a.Xpub),
		XpubSegwit:       optional(a.XpubSegwit),
		Address:          optional(a.Address),
		AddressEncoding:  optional(a.AddressEncoding),
		Networks:         networks,
		CreateAtNetwork:  optional(a.CreateAtNetwork),
	}
}

func (r *accountRow) toDBAccount() *account.DBAccount {
	a := &account.DBAccount{
		ID:               r.ID,
		Name:             r.Name,
		Type:             account.Type(r.Type),
		Impl:             r.Impl,
		CoinType:         r.CoinType,
		Template:         r.Template.String,
		Path:             r.Path,
		PathIndex:        r.PathIndex,
		IndexedAccountID: r.IndexedAccountID.String,
		Pub:              r.Pub.String,
		Xpub:             r.Xpub.String,
		XpubSegwit:       r.XpubSegwit.String,
		Address:          r.Address.String,
		AddressEncoding:  r.AddressEncoding.String,
		CreateAtNetwork:  r.CreateAtNetwork.String,
	}
	if len(r.Networks) > 0 {
		a.Networks = []string(r.Networks)
	}

	return a
}

func optional(s string) null.String {
	return null.NewString(s, s != "")
}

// accountsQuery selects every account column, narrowed by mods.
func accountsQuery(mods ...qm.QueryMod) *queries.Query {
	return NewQuery(append([]qm.QueryMod{qm.Select(accountColumns...), qm.From(tableAccounts)}, mods...)...)
}

func (s *Service) GetAccount(ctx context.Context, accountID string) (*account.DBAccount, error) {
	var row accountRow

	if err := accountsQuery(qm.Where("id = ?", accountID)).Bind(ctx, s.exec(ctx), &row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrapf(account.ErrAccountNotFound, "account %q", accountID)
		}

		return nil, errors.Wrapf(err, "failed to get account %q", accountID)
	}

	return row.toDBAccount(), nil
}

func (s *Service) GetAccountsByIndexedAccountID(ctx context.Context, indexedAccountID string) ([]*account.DBAccount, error) {
	return s.queryAccounts(ctx, qm.Where("indexed_account_id = ?", indexedAccountID), qm.OrderBy("id"))
}

func (s *Service) ListAccounts(ctx context.Context) ([]*account.DBAccount, error) {
	return s.queryAccounts(ctx, qm.OrderBy("id"))
}

func (s *Service) queryAccounts(ctx context.Context, mods ...qm.QueryMod) ([]*account.DBAccount, error) {
	var rows []*accountRow

	if err := accountsQuery(mods...).Bind(ctx, s.exec(ctx), &rows); err != nil {
		return nil, errors.Wrap(err, "failed to query accounts")
	}

	res := make([]*account.DBAccount, 0, len(rows))
	for _, row := range rows {
		res = append(res, row.toDBAccount())
	}

	return res, nil
}

func (s *Service) SaveAccounts(ctx context.Context, accounts ...*account.DBAccount) error {
	return s.WithTransaction(ctx, func(ctx context.Context) error {
		for _, a := range accounts {
			if a == nil {
				continue
			}

			r := newAccountRow(a)

			if _, err := queries.Raw(`
				INSERT INTO accounts (id, name, type, impl, coin_type, template, path, path_index, indexed_account_id,
					pub, xpub, xpub_segwit, address, address_encoding, networks, create_at_network)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
				ON CONFLICT (id) DO UPDATE SET
					name = EXCLUDED.name,
					type = EXCLUDED.type,
					impl = EXCLUDED.impl,
					coin_type = EXCLUDED.coin_type,
					template = EXCLUDED.template,
					path = EXCLUDED.path,
					path_index = EXCLUDED.path_index,
					indexed_account_id = EXCLUDED.indexed_account_id,
					pub = EXCLUDED.pub,
					xpub = EXCLUDED.xpub,
					xpub_segwit = EXCLUDED.xpub_segwit,
					address = EXCLUDED.address,
					address_encoding = EXCLUDED.address_encoding,
					networks = EXCLUDED.networks,
					create_at_network = EXCLUDED.create_at_network,
					updated_at = now()`,
				r.ID, r.Name, r.Type, r.Impl, r.CoinType, r.Template, r.Path, r.PathIndex,
				r.IndexedAccountID, r.Pub, r.Xpub, r.XpubSegwit,
				r.Address, r.AddressEncoding, pq.Array([]string(r.Networks)), r.CreateAtNetwork,
			).ExecContext(ctx, s.exec(ctx)); err != nil {
				return errors.Wrapf(err, "failed to save account %q", a.ID)
			}
		}

		return nil
	})
}

type accountAddressRow struct {
	Address string `boil:"address"`
}

func (s *Service) GetAccountAddress(ctx context.Context, accountID string, networkID string) (string, bool, error) {
	var row accountAddressRow

	err := NewQuery(
		qm.Select("address"),
		qm.From("account_addresses"),
		qm.Where("account_id = ? AND network_id = ?", accountID, networkID),
	).Bind(ctx, s.exec(ctx), &row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}

		return "", false, errors.Wrapf(err, "failed to get address of account %q", accountID)
	}

	return row.Address, true, nil
}

func (s *Service) SaveAccountAddress(ctx context.Context, accountID string, networkID string, address string) error {
	if _, err := queries.Raw(`
		INSERT INTO account_addresses (account_id, network_id, address)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_id, network_id) DO UPDATE SET address = EXCLUDED.address, updated_at = now()`,
		accountID, networkID, address,
	).ExecContext(ctx, s.exec(ctx)); err != nil {
		return errors.Wrapf(err, "failed to save address of account %q", accountID)
	}

	return nil
}
