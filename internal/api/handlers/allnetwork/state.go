package allnetwork

import (
	"net/http"

	"github.com/iamshubha/roy-dex-sub005/internal/api"
	"github.com/iamshubha/roy-dex-sub005/internal/util"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/network"
	"github.com/labstack/echo/v4"
)

func GetStateRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1AllNetwork.GET("/state", getStateHandler(s))
}

func getStateHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		state, err := s.AllNetwork.GetState(c.Request().Context())
		if err != nil {
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, &state)
	}
}

func PutStateRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1AllNetwork.PUT("/state", putStateHandler(s))
}

// putStateHandler merges the body into the stored state and returns the result.
func putStateHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body network.AllNetworksState
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		if err := s.AllNetwork.UpdateState(ctx, body); err != nil {
			util.LogFromContext(ctx).Debug().Err(err).Msg("Failed to update all networks state")
			return err
		}

		state, err := s.AllNetwork.GetState(ctx)
		if err != nil {
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, &state)
	}
}
