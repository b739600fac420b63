package hardware

import (
	"net/http"

	"github.com/iamshubha/roy-dex-sub005/internal/api"
	"github.com/iamshubha/roy-dex-sub005/internal/util"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/hardware"
	"github.com/labstack/echo/v4"
)

func PostBatchFailRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Hardware.POST("/batches/:id/fail", postBatchFailHandler(s))
}

// postBatchFailHandler poisons the batch with the device error of the body. An empty
// body means the bridge lost the device.
func postBatchFailHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		batch, err := lookupBatch(s, c.Param("id"))
		if err != nil {
			return err
		}

		var body hardware.Payload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		var poison error = hardware.ErrCommunicationInterrupted
		if body.Code != hardware.CodeUnknownError || body.Error != "" {
			poison = hardware.ConvertDeviceError(&body)
		}

		batch.Table.Poison(poison)
		util.LogFromContext(ctx).Info().Str("batchId", batch.ID).Err(poison).Msg("Hardware batch failed by bridge")

		return util.ValidateAndReturn(c, http.StatusOK, newBatchResponse(batch))
	}
}
