package address

import (
	"context"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/iamshubha/roy-dex-sub005/internal/util"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/network"
	"github.com/pkg/errors"
)

const DefaultCacheSize = 4096

var (
	ErrUnsupportedImpl = errors.New("unsupported network implementation")
	ErrNoKeyMaterial   = errors.New("account has no address or public key")
)

type service struct {
	cache *lru.Cache[string, string]
}

// NewService creates a new address Service keeping up to cacheSize derived addresses
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(cacheSize int) (Service, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}

	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create address cache")
	}

	return &service{
		cache: cache,
	}, nil
}

// ResolveAddress returns the stored address, or derives it from the account's key material
func (s *service) ResolveAddress(ctx context.Context, req Request) (string, error) {
	if req.Address != "" {
		return req.Address, nil
	}

	key := cacheKey(req)
	if addr, ok := s.cache.Get(key); ok {
		return addr, nil
	}

	var (
		addr string
		err  error
	)

	switch {
	case network.IsUTXO(req.Impl) && req.Xpub != "":
		addr, err = utxoAddress(req.Impl, req.IsTestnet, req.Xpub, req.AddressEncoding)
	case req.Pub != "":
		addr, err = pubKeyAddress(req.Impl, req.Pub)
	default:
		return "", errors.Wrapf(ErrNoKeyMaterial, "impl %q network %q", req.Impl, req.NetworkID)
	}

	if err != nil {
		util.LogFromContext(ctx).Debug().Err(err).Str("networkId", req.NetworkID).Msg("Failed to derive address")
		return "", err
	}

	s.cache.Add(key, addr)

	return addr, nil
}

func cacheKey(req Request) string {
	return strings.Join([]string{
		req.Impl,
		req.NetworkID,
		strconv.FormatBool(req.IsTestnet),
		req.Pub,
		req.Xpub,
		req.AddressEncoding,
	}, "|")
}
