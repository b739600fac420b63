package hardware

import (
	"net/http"

	"github.com/iamshubha/roy-dex-sub005/internal/api"
	"github.com/labstack/echo/v4"
)

func DeleteBatchRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Hardware.DELETE("/batches/:id", deleteBatchHandler(s))
}

// deleteBatchHandler destroys the table of the batch. Pending waiters fail with
// ErrTableDestroyed.
func deleteBatchHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := s.Hardware.Finish(c.Request().Context(), c.Param("id")); err != nil {
			return err
		}

		return c.NoContent(http.StatusNoContent)
	}
}
