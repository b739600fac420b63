package hardware

import (
	"context"
	"net/http"

	"github.com/iamshubha/roy-dex-sub005/internal/api"
	"github.com/iamshubha/roy-dex-sub005/internal/util"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/hardware"
	"github.com/labstack/echo/v4"
)

func PostBatchAccountsRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Hardware.POST("/batches/:id/accounts", postBatchAccountsHandler(s))
}

// postBatchAccountsHandler builds the accounts of one network from the batch. It waits
// for the device responses of the requested indexes, bounded by the batch timeout.
func postBatchAccountsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body PostBatchAccountsPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		if s.Config.Hardware.BatchTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.Config.Hardware.BatchTimeout)
			defer cancel()
		}

		accounts, err := s.Hardware.PrepareNetworkAccounts(ctx, c.Param("id"), body.PrepareNetworkParams)
		if err != nil {
			util.LogFromContext(ctx).Debug().Err(err).Msg("Failed to prepare hardware accounts")
			return err
		}

		if accounts == nil {
			accounts = make([]*hardware.PreparedAccount, 0)
		}

		return util.ValidateAndReturn(c, http.StatusOK, &PostBatchAccountsResponse{Accounts: accounts})
	}
}
