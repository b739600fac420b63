package address

import (
	"context"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/network"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip32"
)

const tronAddressVersion = 0x41

// DeriveAddress derives an account based chain address from seed and path
func (s *service) DeriveAddress(ctx context.Context, seed []byte, path string, impl string) (string, error) {
	pub, err := s.DerivePublicKey(ctx, seed, path)
	if err != nil {
		return "", err
	}

	return pubKeyAddress(impl, pub)
}

// DerivePrivateKey derives a private key from seed and BIP32 path
// WARNING: Caller must clear the private key after use
func (s *service) DerivePrivateKey(_ context.Context, seed []byte, path string) ([]byte, error) {
	key, err := deriveKey(seed, path)
	if err != nil {
		return nil, err
	}

	return key.Key, nil
}

// DerivePublicKey derives the compressed public key at path
func (s *service) DerivePublicKey(_ context.Context, seed []byte, path string) (string, error) {
	key, err := deriveKey(seed, path)
	if err != nil {
		return "", err
	}

	pub := key.PublicKey().Key

	// Clear private key after use
	for i := range key.Key {
		key.Key[i] = 0
	}

	return hex.EncodeToString(pub), nil
}

// DeriveExtendedPublicKey derives the extended public key at an account level path
func (s *service) DeriveExtendedPublicKey(_ context.Context, seed []byte, path string) (string, error) {
	key, err := deriveKey(seed, path)
	if err != nil {
		return "", err
	}

	return key.PublicKey().B58Serialize(), nil
}

func deriveKey(seed []byte, path string) (*bip32.Key, error) {
	masterKey, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create master key")
	}

	key, err := deriveKeyFromPath(masterKey, path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive key from path")
	}

	return key, nil
}

// deriveKeyFromPath derives a key from a BIP32 path, e.g. m/44'/60'/0'/0/{index}
func deriveKeyFromPath(masterKey *bip32.Key, path string) (*bip32.Key, error) {
	indices, err := ParseBIP32Path(path)
	if err != nil {
		return nil, err
	}

	key := masterKey
	for _, index := range indices {
		key, err = key.NewChildKey(index)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to derive child key at index %d", index)
		}
	}

	return key, nil
}

// ParseBIP32Path parses a BIP32 path string into indices
// Example: "m/44'/60'/0'/0/0" -> [2147483692, 2147483708, 2147483648, 0, 0]
func ParseBIP32Path(path string) ([]uint32, error) {
	rest, ok := strings.CutPrefix(path, "m")
	if !ok {
		return nil, errors.Errorf("invalid BIP32 path: %s", path)
	}
	rest = strings.TrimPrefix(rest, "/")
	if rest == "" {
		return []uint32{}, nil
	}

	parts := strings.Split(rest, "/")
	indices := make([]uint32, 0, len(parts))
	for _, part := range parts {
		segment, hardened := strings.CutSuffix(part, "'")

		n, err := strconv.ParseUint(segment, 10, 31)
		if err != nil {
			return nil, errors.Errorf("invalid path segment: %s", part)
		}

		index := uint32(n)
		if hardened {
			index += bip32.FirstHardenedChild
		}

		indices = append(indices, index)
	}

	return indices, nil
}

// pubKeyAddress builds the address of a compressed secp256k1 public key on an account
// based chain.
func pubKeyAddress(impl string, pubHex string) (string, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(pubHex, "0x"))
	if err != nil {
		return "", errors.Wrap(err, "failed to decode public key")
	}

	pub, err := crypto.DecompressPubkey(raw)
	if err != nil {
		return "", errors.Wrap(err, "failed to decompress public key")
	}

	addr := crypto.PubkeyToAddress(*pub)

	switch impl {
	case network.ImplEVM:
		return addr.Hex(), nil
	case network.ImplTRON:
		return base58.CheckEncode(addr.Bytes(), tronAddressVersion), nil
	default:
		return "", errors.Wrapf(ErrUnsupportedImpl, "impl %q", impl)
	}
}
