package common

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/iamshubha/roy-dex-sub005/internal/api"
	"github.com/labstack/echo/v4"
)

func GetHealthyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/healthy", getHealthyHandler(s))
}

// Health check
// Returns an overview of the components the server depends on. 200 if all probes
// succeeded, 521 otherwise.
func getHealthyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), s.Config.Management.LivenessTimeout)
		defer cancel()

		var str strings.Builder
		healthy := true

		fmt.Fprintf(&str, "Ready: %t\n", s.Ready())

		if err := s.Store.Ping(ctx); err != nil {
			healthy = false
			fmt.Fprintf(&str, "Store: %v\n", err)
		} else {
			str.WriteString("Store: ok\n")
		}

		networks, err := s.Networks.GetAllNetworks(ctx, false)
		if err != nil {
			healthy = false
			fmt.Fprintf(&str, "Networks: %v\n", err)
		} else {
			fmt.Fprintf(&str, "Networks: %d\n", len(networks))
		}

		if !healthy {
			return c.String(statusNotReady, str.String())
		}

		return c.String(http.StatusOK, str.String())
	}
}
