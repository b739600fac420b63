package address

import "context"

// Request describes an account whose address is resolved on a network.
type Request struct {
	Impl      string
	NetworkID string
	IsTestnet bool

	// Address is the stored address of the account; when set it wins over derivation
	Address string

	// Pub is the hex encoded compressed public key of account based chains
	Pub string

	// Xpub is the account level extended public key of UTXO chains
	Xpub string

	// AddressEncoding selects the UTXO address type (P2PKH, P2SH_P2WPKH, P2WPKH, P2TR)
	AddressEncoding string
}

// Service provides address derivation and resolution
type Service interface {
	// ResolveAddress returns the address of an account on a network
	ResolveAddress(ctx context.Context, req Request) (string, error)

	// DeriveAddress derives an account based chain address from seed and path
	DeriveAddress(ctx context.Context, seed []byte, path string, impl string) (string, error)

	// DerivePrivateKey derives a private key from seed and path
	// WARNING: Private key should be cleared after use
	DerivePrivateKey(ctx context.Context, seed []byte, path string) ([]byte, error)

	// DerivePublicKey derives the hex encoded compressed public key at path
	DerivePublicKey(ctx context.Context, seed []byte, path string) (string, error)

	// DeriveExtendedPublicKey derives the base58 extended public key at an account level path
	DeriveExtendedPublicKey(ctx context.Context, seed []byte, path string) (string, error)
}
