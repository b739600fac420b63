package router

import (
	"net/http"

	"github.com/iamshubha/roy-dex-sub005/internal/api"
	"github.com/iamshubha/roy-dex-sub005/internal/api/httperrors"
	"github.com/iamshubha/roy-dex-sub005/internal/util"
	"github.com/labstack/echo/v4"
)

// HTTPErrorHandler writes every error returned by a handler as httperrors.HTTPError.
// Hardware errors are localised to the language of the Accept-Language header.
func HTTPErrorHandler(s *api.Server) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		log := util.LogFromContext(c.Request().Context())

		lang := s.I18n.ParseAcceptLanguage(c.Request().Header.Get("Accept-Language"))
		he := httperrors.FromError(err, func(key string, data map[string]any) string {
			return s.I18n.Translate(key, lang, data)
		})

		if he.Code >= http.StatusInternalServerError {
			log.Error().Err(err).Int("status", he.Code).Msg("Request failed")

			if he.Code == http.StatusInternalServerError && !s.Config.Echo.HideInternalServerErrorDetails && he.Internal != nil {
				e := *he
				e.Detail = he.Internal.Error()
				he = &e
			}
		} else {
			log.Debug().Err(err).Int("status", he.Code).Msg("Request rejected")
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(he.Code)
		} else {
			werr = c.JSON(he.Code, he)
		}
		if werr != nil {
			log.Error().Err(werr).Msg("Failed to write error response")
		}
	}
}
