package account

import (
	"context"

	"github.com/iamshubha/roy-dex-sub005/internal/wallet/derive"
)

// Type is the storage layout of an account.
type Type string

const (
	TypeSimple  Type = "simple"
	TypeUTXO    Type = "utxo"
	TypeVariant Type = "variant"
)

// DBAccount is a stored account record.
type DBAccount struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Type             Type     `json:"type"`
	Impl             string   `json:"impl"`
	CoinType         string   `json:"coinType"`
	Template         string   `json:"template,omitempty"`
	Path             string   `json:"path"`
	PathIndex        int      `json:"pathIndex"`
	IndexedAccountID string   `json:"indexedAccountId,omitempty"`
	Pub              string   `json:"pub,omitempty"`
	Xpub             string   `json:"xpub,omitempty"`
	XpubSegwit       string   `json:"xpubSegwit,omitempty"`
	Address          string   `json:"address,omitempty"`
	AddressEncoding  string   `json:"addressEncoding,omitempty"`
	Networks         []string `json:"networks,omitempty"`
	CreateAtNetwork  string   `json:"createAtNetwork,omitempty"`
}

// NetworkAccount is a DBAccount viewed on a concrete network, with its address resolved
// for that network.
type NetworkAccount struct {
	DBAccount
	NetworkID string `json:"networkId"`
}

// AddressInfo is the result of GetAccountAddressInfoForAPI.
type AddressInfo struct {
	Address string          `json:"address"`
	Account *NetworkAccount `json:"account"`
}

// GetAccountParams selects the account returned by GetAccount.
type GetAccountParams struct {
	AccountID        string
	NetworkID        string
	IndexedAccountID string
}

// Store persists accounts and their resolved addresses.
type Store interface {
	GetAccount(ctx context.Context, accountID string) (*DBAccount, error)
	GetAccountsByIndexedAccountID(ctx context.Context, indexedAccountID string) ([]*DBAccount, error)
	SaveAccounts(ctx context.Context, accounts ...*DBAccount) error
	GetAccountAddress(ctx context.Context, accountID string, networkID string) (string, bool, error)
	SaveAccountAddress(ctx context.Context, accountID string, networkID string, address string) error
}

// Service resolves accounts for discovery and address lookups.
type Service interface {
	// GetAccount returns the account on a network; on the all-networks pseudo network an
	// indexed account resolves to a mocked account
	GetAccount(ctx context.Context, params GetAccountParams) (*NetworkAccount, error)

	// GetDBAccount returns the stored account
	GetDBAccount(ctx context.Context, accountID string) (*DBAccount, error)

	// GetAccountsInSameIndexedAccountID lists every account derived for an indexed account
	GetAccountsInSameIndexedAccountID(ctx context.Context, indexedAccountID string) ([]*DBAccount, error)

	// GetDBAccountIDFromIndexedAccountID builds the id of the account an indexed account has on a network
	GetDBAccountIDFromIndexedAccountID(ctx context.Context, indexedAccountID string, networkID string, deriveType derive.Type) (string, error)

	// GetAccountAddressInfoForAPI resolves the address backend APIs know the account by
	GetAccountAddressInfoForAPI(ctx context.Context, account *DBAccount, networkID string) (*AddressInfo, error)

	// GetAccountXpub returns the extended public key of the account, empty for account based chains
	GetAccountXpub(ctx context.Context, account *DBAccount, networkID string) (string, error)

	// SaveAccountAddresses caches a resolved address
	SaveAccountAddresses(ctx context.Context, networkID string, account *NetworkAccount) error

	// AddAccounts stores new accounts
	AddAccounts(ctx context.Context, accounts ...*DBAccount) error
}
