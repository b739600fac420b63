package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iamshubha/roy-dex-sub005/internal/config"
	"github.com/iamshubha/roy-dex-sub005/internal/data/fixtures"
	"github.com/iamshubha/roy-dex-sub005/internal/i18n"
	"github.com/iamshubha/roy-dex-sub005/internal/metrics"
	"github.com/iamshubha/roy-dex-sub005/internal/util"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/account"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/address"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/allnetwork"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/hardware"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/network"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Store is the persistence backend of the server, either the embedded badger store or
// Postgres depending on config.Store.Driver.
type Store interface {
	account.Store
	network.GlobalDeriveTypeStore
	allnetwork.StateStore
	fixtures.Store

	ListAccounts(ctx context.Context) ([]*account.DBAccount, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	Ping(ctx context.Context) error
	Close() error
}

type Router struct {
	Routes          []*echo.Route
	Root            *echo.Group
	Management      *echo.Group
	APIV1AllNetwork *echo.Group
	APIV1Hardware   *echo.Group
	APIV1Networks   *echo.Group
}

// Server is a central struct keeping all the dependencies.
// It is initialized with wire, which handles making the new instances of the components
// in the right order. To add a new component, 3 steps are required:
// - declaring it in this struct
// - adding a provider function in providers.go
// - adding the provider's function name to the arguments of wire.Build() in wire.go
//
// Components labeled as `wire:"-"` will be skipped and have to be initialized after the InitNewServer* call.
// For more information about wire refer to https://pkg.go.dev/github.com/google/wire
type Server struct {
	// skip wire:
	// -> initialized with router.Init(s) function
	Echo   *echo.Echo `wire:"-"`
	Router *Router    `wire:"-"`

	Config     config.Server
	Store      Store
	I18n       *i18n.Service
	Metrics    *metrics.Service
	Networks   network.Service
	Addresses  address.Service
	Accounts   account.Service
	AllNetwork allnetwork.Service
	Hardware   hardware.BatchService
}

// newServerWithComponents is used by wire to initialize the server components.
// Components not listed here won't be handled by wire and should be initialized separately.
// Components which shouldn't be handled must be labeled `wire:"-"` in Server struct.
func newServerWithComponents(
	cfg config.Server,
	store Store,
	i18n *i18n.Service,
	metrics *metrics.Service,
	networks network.Service,
	addresses address.Service,
	accounts account.Service,
	allNetwork allnetwork.Service,
	hw hardware.BatchService,
) *Server {
	return &Server{
		Config:     cfg,
		Store:      store,
		I18n:       i18n,
		Metrics:    metrics,
		Networks:   networks,
		Addresses:  addresses,
		Accounts:   accounts,
		AllNetwork: allNetwork,
		Hardware:   hw,
	}
}

func NewServer(config config.Server) *Server {
	s := &Server{
		Config: config,
	}

	return s
}

func (s *Server) Ready() bool {
	if err := util.IsStructInitialized(s); err != nil {
		log.Debug().Err(err).Msg("Server is not fully initialized")
		return false
	}

	return true
}

func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}

	if err := s.Echo.Start(s.Config.Echo.ListenAddress); err != nil {
		return fmt.Errorf("failed to start echo server: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn().Msg("Shutting down server")

	var errs []error

	if s.Echo != nil {
		log.Debug().Msg("Shutting down echo server")

		if err := s.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to shutdown echo server")
			errs = append(errs, err)
		}
	}

	// a store that no longer answers pings was already closed
	if s.Store != nil && s.Store.Ping(ctx) == nil {
		log.Debug().Msg("Closing store")

		if err := s.Store.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close store")
			errs = append(errs, err)
		}
	}

	return errs
}
