package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/iamshubha/roy-dex-sub005/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LoggerConfig configures the request logger.
type LoggerConfig struct {
	Skipper middleware.Skipper
	Level   zerolog.Level

	LogRequestHeader  bool
	LogRequestQuery   bool
	LogResponseHeader bool
	LogCaller         bool
}

var DefaultLoggerConfig = LoggerConfig{
	Skipper: middleware.DefaultSkipper,
	Level:   zerolog.DebugLevel,
}

var redactedHeaders = map[string]bool{
	echo.HeaderAuthorization: true,
	echo.HeaderCookie:        true,
	echo.HeaderSetCookie:     true,
}

// Logger returns a request logger using DefaultLoggerConfig.
func Logger() echo.MiddlewareFunc {
	return LoggerWithConfig(DefaultLoggerConfig)
}

// LoggerWithConfig attaches a request scoped zerolog logger and the request id to the
// request context and logs every request once it completed.
func LoggerWithConfig(config LoggerConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = DefaultLoggerConfig.Skipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			req := c.Request()
			res := c.Response()

			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = res.Header().Get(echo.HeaderXRequestID)
			}

			lctx := log.With().Str("id", id).Str("method", req.Method).Str("path", req.URL.Path)
			if config.LogCaller {
				lctx = lctx.Caller()
			}
			l := lctx.Logger()

			ctx := util.ContextWithLogger(req.Context(), l)
			ctx = context.WithValue(ctx, util.CTXKeyRequestID, id)
			c.SetRequest(req.WithContext(ctx))

			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			e := l.WithLevel(config.Level)
			if res.Status >= http.StatusInternalServerError {
				e = l.Error()
			}

			if config.LogRequestQuery {
				e = e.Str("query", req.URL.RawQuery)
			}
			if config.LogRequestHeader {
				e = e.Dict("req_header", headerDict(req.Header))
			}
			if config.LogResponseHeader {
				e = e.Dict("res_header", headerDict(res.Header()))
			}

			e.Str("remote_ip", c.RealIP()).
				Int("status", res.Status).
				Int64("size", res.Size).
				Dur("duration", time.Since(start)).
				Msg("http_request")

			return nil
		}
	}
}

// BodyDump logs request and response bodies at debug level.
func BodyDump(logRequest bool, logResponse bool) echo.MiddlewareFunc {
	return middleware.BodyDump(func(c echo.Context, reqBody []byte, resBody []byte) {
		e := util.LogFromContext(c.Request().Context()).Debug()
		if logRequest {
			e = e.Bytes("req_body", reqBody)
		}
		if logResponse {
			e = e.Bytes("res_body", resBody)
		}
		e.Msg("http_body")
	})
}

func headerDict(h http.Header) *zerolog.Event {
	d := zerolog.Dict()
	for k, v := range h {
		if redactedHeaders[k] {
			d = d.Str(k, "*****")
			continue
		}
		d = d.Strs(k, v)
	}

	return d
}
