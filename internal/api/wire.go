//go:build wireinject

package api

import (
	"github.com/google/wire"
	"github.com/iamshubha/roy-dex-sub005/internal/config"
)

// INJECTORS - https://github.com/google/wire/blob/main/docs/guide.md#injectors

// serviceSet groups the default set of providers that are required for initing a server
var serviceSet = wire.NewSet(
	newServerWithComponents,
	NewI18N,
	NewMetrics,
	NewNetworkService,
	NewAddressService,
	NewAccountService,
	NewAllNetworkService,
	NewHardwareTransport,
	NewHardwareBatchService,
)

// InitNewServer returns a new Server instance.
func InitNewServer(
	_ config.Server,
) (*Server, error) {
	wire.Build(serviceSet, NewStore)
	return new(Server), nil
}

// InitNewServerWithStore returns a new Server instance with the given store.
// All the other components are initialized via go wire according to the configuration.
func InitNewServerWithStore(
	_ config.Server,
	_ Store,
) (*Server, error) {
	wire.Build(serviceSet)
	return new(Server), nil
}
