package local

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/iamshubha/roy-dex-sub005/internal/wallet/account"
	"github.com/pkg/errors"
	"github.com/timshannon/badgerhold/v4"
)

type accountAddress struct {
	AccountID string
	NetworkID string
	Address   string
}

func accountAddressKey(accountID string, networkID string) string {
	return fmt.Sprintf("%s@%s", networkID, accountID)
}

func (s *Service) GetAccount(ctx context.Context, accountID string) (*account.DBAccount, error) {
	var a account.DBAccount

	var err error
	if tx := txFromContext(ctx); tx != nil {
		err = s.store.TxGet(tx, accountID, &a)
	} else {
		err = s.store.Get(accountID, &a)
	}

	if err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, errors.Wrapf(account.ErrAccountNotFound, "account %q", accountID)
		}

		return nil, errors.Wrapf(err, "failed to get account %q", accountID)
	}

	return &a, nil
}

func (s *Service) GetAccountsByIndexedAccountID(ctx context.Context, indexedAccountID string) ([]*account.DBAccount, error) {
	query := badgerhold.Where("IndexedAccountID").Eq(indexedAccountID).SortBy("ID")

	var accounts []account.DBAccount

	var err error
	if tx := txFromContext(ctx); tx != nil {
		err = s.store.TxFind(tx, &accounts, query)
	} else {
		err = s.store.Find(&accounts, query)
	}

	if err != nil {
		return nil, errors.Wrapf(err, "failed to find accounts of %q", indexedAccountID)
	}

	result := make([]*account.DBAccount, 0, len(accounts))
	for i := range accounts {
		result = append(result, &accounts[i])
	}

	return result, nil
}

// ListAccounts returns every stored account.
func (s *Service) ListAccounts(ctx context.Context) ([]*account.DBAccount, error) {
	var accounts []account.DBAccount

	var err error
	if tx := txFromContext(ctx); tx != nil {
		err = s.store.TxFind(tx, &accounts, nil)
	} else {
		err = s.store.Find(&accounts, nil)
	}

	if err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}

	slices.SortFunc(accounts, func(a, b account.DBAccount) int {
		return strings.Compare(a.ID, b.ID)
	})

	result := make([]*account.DBAccount, 0, len(accounts))
	for i := range accounts {
		result = append(result, &accounts[i])
	}

	return result, nil
}

func (s *Service) SaveAccounts(ctx context.Context, accounts ...*account.DBAccount) error {
	return s.WithTransaction(ctx, func(ctx context.Context) error {
		tx := txFromContext(ctx)

		for _, a := range accounts {
			if a == nil {
				continue
			}

			if err := s.store.TxUpsert(tx, a.ID, a); err != nil {
				return errors.Wrapf(err, "failed to save account %q", a.ID)
			}
		}

		return nil
	})
}

func (s *Service) GetAccountAddress(ctx context.Context, accountID string, networkID string) (string, bool, error) {
	var rec accountAddress

	key := accountAddressKey(accountID, networkID)

	var err error
	if tx := txFromContext(ctx); tx != nil {
		err = s.store.TxGet(tx, key, &rec)
	} else {
		err = s.store.Get(key, &rec)
	}

	if err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return "", false, nil
		}

		return "", false, errors.Wrapf(err, "failed to get address of %q on %q", accountID, networkID)
	}

	return rec.Address, true, nil
}

func (s *Service) SaveAccountAddress(ctx context.Context, accountID string, networkID string, address string) error {
	rec := &accountAddress{
		AccountID: accountID,
		NetworkID: networkID,
		Address:   address,
	}

	key := accountAddressKey(accountID, networkID)

	var err error
	if tx := txFromContext(ctx); tx != nil {
		err = s.store.TxUpsert(tx, key, rec)
	} else {
		err = s.store.Upsert(key, rec)
	}

	return errors.Wrapf(err, "failed to save address of %q on %q", accountID, networkID)
}
