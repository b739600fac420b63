package handlers

import (
	"github.com/iamshubha/roy-dex-sub005/internal/api"
	"github.com/iamshubha/roy-dex-sub005/internal/api/handlers/allnetwork"
	"github.com/iamshubha/roy-dex-sub005/internal/api/handlers/common"
	"github.com/iamshubha/roy-dex-sub005/internal/api/handlers/hardware"
	"github.com/iamshubha/roy-dex-sub005/internal/api/handlers/networks"
	"github.com/labstack/echo/v4"
)

func AttachAllRoutes(s *api.Server) {
	// attach our routes
	s.Router.Routes = []*echo.Route{
		allnetwork.GetStateRoute(s),
		allnetwork.PostAccountsEnabledRoute(s),
		allnetwork.PostAccountsRoute(s),
		allnetwork.PostAPIAccountsRoute(s),
		allnetwork.PostDBAccountsRoute(s),
		allnetwork.PutStateRoute(s),
		common.GetHealthyRoute(s),
		common.GetMetricsRoute(s),
		common.GetReadyRoute(s),
		common.GetVersionRoute(s),
		hardware.DeleteBatchRoute(s),
		hardware.GetBatchRoute(s),
		hardware.PostBatchAccountsRoute(s),
		hardware.PostBatchFailRoute(s),
		hardware.PostBatchItemsRoute(s),
		hardware.PostBatchRoute(s),
		networks.GetDeriveTypesRoute(s),
		networks.GetNetworksRoute(s),
		networks.PutGlobalDeriveTypeRoute(s),
	}
}
