package hardware

import (
	"net/http"

	"github.com/iamshubha/roy-dex-sub005/internal/api"
	"github.com/iamshubha/roy-dex-sub005/internal/util"
	"github.com/labstack/echo/v4"
)

func PostBatchRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Hardware.POST("/batches", postBatchHandler(s))
}

// postBatchHandler starts a batched address request. The bundle is returned so a
// device bridge can forward it and push the answers to /batches/:id/items.
func postBatchHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body PostBatchPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		batch, err := s.Hardware.Start(ctx, body.StartParams)
		if err != nil {
			util.LogFromContext(ctx).Debug().Err(err).Msg("Failed to start hardware batch")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusCreated, newBatchResponse(batch))
	}
}
