package allnetwork

import (
	"net/http"

	"github.com/iamshubha/roy-dex-sub005/internal/api"
	"github.com/iamshubha/roy-dex-sub005/internal/util"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/allnetwork"
	"github.com/labstack/echo/v4"
)

func PostAccountsEnabledRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1AllNetwork.POST("/accounts/enabled", postAccountsEnabledHandler(s))
}

func postAccountsEnabledHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body allnetwork.Params
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		result, err := s.AllNetwork.DiscoverWithEnabledNetworks(ctx, body)
		if err != nil {
			util.LogFromContext(ctx).Debug().Err(err).Msg("Failed to discover accounts of enabled networks")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, result)
	}
}
