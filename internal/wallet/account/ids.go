package account

import (
	"slices"
	"strconv"
	"strings"

	"github.com/iamshubha/roy-dex-sub005/internal/wallet/network"
	"github.com/pkg/errors"
)

// Wallet types, used as wallet id or wallet id prefix.
const (
	WalletTypeHD       = "hd"
	WalletTypeHW       = "hw"
	WalletTypeQR       = "qr"
	WalletTypeImported = "imported"
	WalletTypeWatching = "watching"
	WalletTypeExternal = "external"

	// AllNetworksCoinType is the coin type of mocked all-networks accounts.
	AllNetworksCoinType = "8888"

	separator = "--"
)

// WalletIDFromAccountID returns the wallet part of an account id, e.g. "hd-1" for
// "hd-1--m/44'/60'/0'/0/0".
func WalletIDFromAccountID(accountID string) string {
	walletID, _, _ := strings.Cut(accountID, separator)
	return walletID
}

func IsHDWallet(walletID string) bool {
	return strings.HasPrefix(walletID, WalletTypeHD+"-")
}

func IsHwWallet(walletID string) bool {
	return strings.HasPrefix(walletID, WalletTypeHW+"-")
}

func IsQrWallet(walletID string) bool {
	return strings.HasPrefix(walletID, WalletTypeQR+"-")
}

// IsOthersWallet reports whether walletID holds standalone accounts (watching, external
// or imported) instead of seed derived ones.
func IsOthersWallet(walletID string) bool {
	switch walletID {
	case WalletTypeWatching, WalletTypeExternal, WalletTypeImported:
		return true
	default:
		return false
	}
}

func IsOthersAccount(accountID string) bool {
	if accountID == "" {
		return false
	}

	return IsOthersWallet(WalletIDFromAccountID(accountID))
}

func IsHwAccount(accountID string) bool {
	return IsHwWallet(WalletIDFromAccountID(accountID))
}

// BuildIndexedAccountID returns "walletId--index".
func BuildIndexedAccountID(walletID string, index int) (string, error) {
	if index < 0 {
		return "", errors.New("indexed account index must be positive")
	}

	return walletID + separator + strconv.Itoa(index), nil
}

// ParseIndexedAccountID splits "walletId--index".
func ParseIndexedAccountID(indexedAccountID string) (walletID string, index int, err error) {
	i := strings.LastIndex(indexedAccountID, separator)
	if i <= 0 {
		return "", 0, errors.Errorf("malformed indexed account id %q", indexedAccountID)
	}

	index, err = strconv.Atoi(indexedAccountID[i+len(separator):])
	if err != nil || index < 0 {
		return "", 0, errors.Errorf("malformed indexed account id %q", indexedAccountID)
	}

	return indexedAccountID[:i], index, nil
}

// BuildHDAccountID returns "walletId--path[--idSuffix]". UTXO account ids use the
// account level path, so a trailing "/0/0" is dropped.
func BuildHDAccountID(walletID string, path string, idSuffix string, isUTXO bool) string {
	id := walletID + separator + path
	if idSuffix != "" {
		id += separator + idSuffix
	}

	if isUTXO {
		id = strings.TrimSuffix(id, "/0/0")
	}

	return id
}

// BuildAllNetworkAccountID returns the id of the mocked all-networks account of an
// indexed account.
func BuildAllNetworkAccountID(walletID string, index int) string {
	return walletID + separator + AllNetworksCoinType + "/" + strconv.Itoa(index)
}

// IsAllNetworkMockAccount reports whether accountID was built by BuildAllNetworkAccountID.
func IsAllNetworkMockAccount(accountID string) bool {
	parts := strings.Split(accountID, separator)
	if len(parts) < 2 {
		return false
	}

	coinType, index, ok := strings.Cut(parts[1], "/")
	if !ok || coinType != AllNetworksCoinType {
		return false
	}
	_, err := strconv.Atoi(index)

	return err == nil
}

// IsAccountCompatibleWithNetwork reports whether a can be used on networkID: the
// implementations must match and, when the account is bound to a list of networks,
// networkID must be one of them.
func IsAccountCompatibleWithNetwork(a *DBAccount, networkID string) bool {
	if a == nil || networkID == "" {
		return false
	}

	if a.Impl != "" && a.Impl != network.Impl(networkID) {
		return false
	}

	if len(a.Networks) > 0 {
		return slices.Contains(a.Networks, networkID)
	}

	return true
}
