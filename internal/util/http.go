package util

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request and response payloads that check themselves.
type Validatable interface {
	Validate() error
}

// BindAndValidateBody binds the JSON body of the request to v and validates it if
// v implements Validatable.
func BindAndValidateBody(c echo.Context, v any) error {
	binder := &echo.DefaultBinder{}
	if err := binder.BindBody(c, v); err != nil {
		LogFromContext(c.Request().Context()).Debug().Err(err).Msg("Failed to bind request body")
		return err
	}

	return validate(v, http.StatusBadRequest)
}

// ValidateAndReturn validates v if it implements Validatable and writes it as JSON.
func ValidateAndReturn(c echo.Context, code int, v any) error {
	if err := validate(v, http.StatusInternalServerError); err != nil {
		LogFromContext(c.Request().Context()).Error().Err(err).Msg("Response failed validation")
		return err
	}

	return c.JSON(code, v)
}

func validate(v any, code int) error {
	validatable, ok := v.(Validatable)
	if !ok {
		return nil
	}

	if err := validatable.Validate(); err != nil {
		return echo.NewHTTPError(code, err.Error()).SetInternal(err)
	}

	return nil
}
