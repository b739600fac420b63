package hardware

import (
	"net/http"

	"github.com/iamshubha/roy-dex-sub005/internal/api"
	"github.com/iamshubha/roy-dex-sub005/internal/util"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/hardware"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

func GetBatchRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Hardware.GET("/batches/:id", getBatchHandler(s))
}

func getBatchHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		batch, err := lookupBatch(s, c.Param("id"))
		if err != nil {
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, newBatchResponse(batch))
	}
}

func lookupBatch(s *api.Server, id string) (*hardware.Batch, error) {
	batch, ok := s.Hardware.Get(id)
	if !ok {
		return nil, errors.Wrapf(hardware.ErrBatchNotFound, "batch %q", id)
	}

	return batch, nil
}
