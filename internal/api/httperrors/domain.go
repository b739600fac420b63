package httperrors

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iamshubha/roy-dex-sub005/internal/wallet/account"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/allnetwork"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/hardware"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/network"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	keyCommunicationInterrupted = "hardware_communication_interrupted"
	keyBatchAccountsFailed      = "hardware_batch_accounts_failed"
)

// Translator localises a message key.
type Translator func(key string, data map[string]any) string

// FromError maps err to the HTTPError returned to clients. Hardware errors are
// localised with translate.
func FromError(err error, translate Translator) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var bindErr *echo.BindingError
	if errors.As(err, &bindErr) {
		return NewHTTPError(http.StatusBadRequest, TypeInvalidParams, fmt.Sprintf("invalid value for %q", bindErr.Field))
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		e := NewHTTPError(echoErr.Code, TypeGeneric, fmt.Sprint(echoErr.Message))
		e.Internal = echoErr.Internal
		if echoErr.Code == http.StatusBadRequest {
			e.Type = TypeInvalidParams
		}
		return e
	}

	var hwErr *hardware.HardwareError
	if errors.As(err, &hwErr) {
		code, errorType := http.StatusBadGateway, TypeHardware
		if errors.Is(hwErr, hardware.ErrUnsupportedAddressType) {
			code, errorType = http.StatusUnprocessableEntity, TypeUnsupportedAddressType
		}

		e := localised(code, errorType, hwErr.Key, translate, map[string]any{"Code": int(hwErr.Code)}, err)
		e.Detail = hwErr.Message

		return e
	}

	switch {
	case errors.Is(err, allnetwork.ErrInvalidParams),
		errors.Is(err, account.ErrAccountIDRequired),
		errors.Is(err, account.ErrAllNetworkNotAllowed),
		errors.Is(err, account.ErrIncompatibleNetwork),
		errors.Is(err, network.ErrDeriveTypeNotSupported),
		errors.Is(err, hardware.ErrNotHardwareWallet):
		return NewFromErr(http.StatusBadRequest, TypeInvalidParams, err)
	case errors.Is(err, account.ErrAccountNotFound),
		errors.Is(err, network.ErrNetworkNotFound),
		errors.Is(err, hardware.ErrBatchNotFound):
		return NewFromErr(http.StatusNotFound, TypeNotFound, err)
	case errors.Is(err, hardware.ErrTableDestroyed):
		return NewFromErr(http.StatusGone, TypeBatchDestroyed, err)
	case errors.Is(err, hardware.ErrTableReset):
		return NewFromErr(http.StatusConflict, TypeBatchReset, err)
	case errors.Is(err, hardware.ErrCommunicationInterrupted):
		return localised(http.StatusBadGateway, TypeCommunicationInterrupted, keyCommunicationInterrupted, translate, nil, err)
	case errors.Is(err, hardware.ErrBatchAccountsFailed):
		return localised(http.StatusBadGateway, TypeBatchAccountsFailed, keyBatchAccountsFailed, translate, nil, err)
	case errors.Is(err, context.DeadlineExceeded):
		return NewFromErr(http.StatusGatewayTimeout, TypeTimeout, err)
	}

	e := *ErrInternalServerError
	e.Internal = err

	return &e
}

func localised(code int, errorType string, key string, translate Translator, data map[string]any, err error) *HTTPError {
	title := key
	if translate != nil {
		title = translate(key, data)
	}

	return &HTTPError{
		Code:     code,
		Type:     errorType,
		Title:    title,
		Key:      key,
		Internal: err,
	}
}
