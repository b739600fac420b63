package common

import (
	"github.com/iamshubha/roy-dex-sub005/internal/api"
	"github.com/labstack/echo/v4"
)

func GetMetricsRoute(s *api.Server) *echo.Route {
	return s.Router.Root.GET("/metrics", getMetricsHandler(s))
}

func getMetricsHandler(s *api.Server) echo.HandlerFunc {
	handler := echo.WrapHandler(s.Metrics.Handler())

	return func(c echo.Context) error {
		if !s.Config.Metrics.Enabled {
			return echo.ErrNotFound
		}

		return handler(c)
	}
}
