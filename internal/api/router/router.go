package router

import (
	"github.com/iamshubha/roy-dex-sub005/internal/api"
	"github.com/iamshubha/roy-dex-sub005/internal/api/handlers"
	"github.com/iamshubha/roy-dex-sub005/internal/api/middleware"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

// Init builds the echo instance of s, registers the middlewares enabled in the config
// and attaches every route.
func Init(s *api.Server) {
	s.Echo = echo.New()

	s.Echo.Debug = s.Config.Echo.Debug
	s.Echo.HideBanner = true
	s.Echo.HidePort = true
	s.Echo.Logger.SetOutput(log.With().Str("component", "echo").Logger())

	s.Echo.HTTPErrorHandler = HTTPErrorHandler(s)

	// ---
	// General middleware
	if s.Config.Echo.EnableTrailingSlashMiddleware {
		s.Echo.Pre(echoMiddleware.RemoveTrailingSlash())
	} else {
		log.Warn().Msg("Disabling trailing slash middleware due to environment config")
	}

	if s.Config.Echo.EnableRecoverMiddleware {
		s.Echo.Use(echoMiddleware.Recover())
	} else {
		log.Warn().Msg("Disabling recover middleware due to environment config")
	}

	if s.Config.Echo.EnableRequestIDMiddleware {
		s.Echo.Use(echoMiddleware.RequestID())
	} else {
		log.Warn().Msg("Disabling request ID middleware due to environment config")
	}

	if s.Config.Echo.EnableLoggerMiddleware {
		s.Echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
			Level:             s.Config.Logger.RequestLevel,
			LogRequestHeader:  s.Config.Logger.LogRequestHeader,
			LogRequestQuery:   s.Config.Logger.LogRequestQuery,
			LogResponseHeader: s.Config.Logger.LogResponseHeader,
			LogCaller:         s.Config.Logger.LogCaller,
		}))

		if s.Config.Logger.LogRequestBody || s.Config.Logger.LogResponseBody {
			s.Echo.Use(middleware.BodyDump(s.Config.Logger.LogRequestBody, s.Config.Logger.LogResponseBody))
		}
	} else {
		log.Warn().Msg("Disabling logger middleware due to environment config")
	}

	if s.Config.Echo.EnableCORSMiddleware {
		s.Echo.Use(echoMiddleware.CORS())
	} else {
		log.Warn().Msg("Disabling CORS middleware due to environment config")
	}

	if len(s.Config.Echo.BodyLimit) > 0 {
		s.Echo.Use(echoMiddleware.BodyLimit(s.Config.Echo.BodyLimit))
	}

	s.Router = &api.Router{
		Routes:          nil, // will be populated by handlers.AttachAllRoutes(s)
		Root:            s.Echo.Group(""),
		Management:      s.Echo.Group("/-"),
		APIV1AllNetwork: s.Echo.Group("/api/v1/allnetwork"),
		APIV1Hardware:   s.Echo.Group("/api/v1/hardware"),
		APIV1Networks:   s.Echo.Group("/api/v1/networks"),
	}

	handlers.AttachAllRoutes(s)
}
