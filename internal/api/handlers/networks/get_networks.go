package networks

import (
	"net/http"

	"github.com/iamshubha/roy-dex-sub005/internal/api"
	"github.com/iamshubha/roy-dex-sub005/internal/util"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/network"
	"github.com/labstack/echo/v4"
)

type GetNetworksResponse struct {
	Networks []*network.Network `json:"networks"`
}

func GetNetworksRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Networks.GET("", getNetworksHandler(s))
}

// getNetworksHandler lists the catalog. Testnets are left out unless
// ?excludeTestNetwork=false is passed.
func getNetworksHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		excludeTestNetwork := true
		if err := echo.QueryParamsBinder(c).Bool("excludeTestNetwork", &excludeTestNetwork).BindError(); err != nil {
			return err
		}

		networks, err := s.Networks.GetAllNetworks(c.Request().Context(), excludeTestNetwork)
		if err != nil {
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, &GetNetworksResponse{Networks: networks})
	}
}
