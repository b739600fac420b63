package hardware

import (
	"net/http"

	"github.com/iamshubha/roy-dex-sub005/internal/api"
	"github.com/iamshubha/roy-dex-sub005/internal/util"
	"github.com/labstack/echo/v4"
)

func PostBatchItemsRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Hardware.POST("/batches/:id/items", postBatchItemsHandler(s))
}

// postBatchItemsHandler delivers device responses pushed by a bridge, in any order.
// Items for keys that already settled are counted as ignored.
func postBatchItemsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		batch, err := lookupBatch(s, c.Param("id"))
		if err != nil {
			return err
		}

		var body PostBatchItemsPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		res := &PostBatchItemsResponse{}
		for _, item := range body.Items {
			if batch.Table.Deliver(ctx, item) {
				res.Accepted++
			} else {
				res.Ignored++
			}
		}

		return util.ValidateAndReturn(c, http.StatusOK, res)
	}
}
