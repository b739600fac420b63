package httperrors_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/iamshubha/roy-dex-sub005/internal/api/httperrors"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/account"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/allnetwork"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/hardware"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/network"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func translate(key string, _ map[string]any) string {
	return "translated:" + key
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     int
		typ      string
		key      string
		title    string
		internal bool
	}{
		{
			name: "validation",
			err:  errors.Wrap(&allnetwork.ValidationError{Field: "indexedAccountId"}, "discover"),
			code: http.StatusBadRequest,
			typ:  httperrors.TypeInvalidParams,
		},
		{
			name: "account not found",
			err:  errors.Wrapf(account.ErrAccountNotFound, "account %q", "x"),
			code: http.StatusNotFound,
			typ:  httperrors.TypeNotFound,
		},
		{
			name: "network not found",
			err:  errors.Wrap(network.ErrNetworkNotFound, "evm--999"),
			code: http.StatusNotFound,
			typ:  httperrors.TypeNotFound,
		},
		{
			name: "batch destroyed",
			err:  hardware.ErrTableDestroyed,
			code: http.StatusGone,
			typ:  httperrors.TypeBatchDestroyed,
		},
		{
			name:  "unsupported address type",
			err:   errors.Wrap(hardware.ErrUnsupportedAddressType, "prepare"),
			code:  http.StatusUnprocessableEntity,
			typ:   httperrors.TypeUnsupportedAddressType,
			key:   "feedback_hardware_unsupported_current_address_type",
			title: "translated:feedback_hardware_unsupported_current_address_type",
		},
		{
			name:  "device error",
			err:   hardware.ConvertDeviceError(&hardware.Payload{Code: hardware.CodePinCancelled}),
			code:  http.StatusBadGateway,
			typ:   httperrors.TypeHardware,
			key:   "feedback_pin_verification_cancelled",
			title: "translated:feedback_pin_verification_cancelled",
		},
		{
			name:  "communication interrupted",
			err:   errors.Wrap(hardware.ErrCommunicationInterrupted, "EOF"),
			code:  http.StatusBadGateway,
			typ:   httperrors.TypeCommunicationInterrupted,
			key:   "hardware_communication_interrupted",
			title: "translated:hardware_communication_interrupted",
		},
		{
			name: "timeout",
			err:  errors.Wrap(context.DeadlineExceeded, "await"),
			code: http.StatusGatewayTimeout,
			typ:  httperrors.TypeTimeout,
		},
		{
			name:  "echo",
			err:   echo.NewHTTPError(http.StatusBadRequest, "malformed body"),
			code:  http.StatusBadRequest,
			typ:   httperrors.TypeInvalidParams,
			title: "malformed body",
		},
		{
			name:     "unknown",
			err:      errors.New("boom"),
			code:     http.StatusInternalServerError,
			typ:      httperrors.TypeGeneric,
			title:    http.StatusText(http.StatusInternalServerError),
			internal: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := httperrors.FromError(tt.err, translate)

			assert.Equal(t, tt.code, e.Code)
			assert.Equal(t, tt.typ, e.Type)
			assert.Equal(t, tt.key, e.Key)
			if tt.title != "" {
				assert.Equal(t, tt.title, e.Title)
			}
			if tt.internal {
				assert.Equal(t, tt.err, e.Internal)
			}
		})
	}
}

func TestFromErrorKeepsHTTPError(t *testing.T) {
	original := httperrors.NewHTTPError(http.StatusTeapot, httperrors.TypeGeneric, "teapot")

	assert.Same(t, original, httperrors.FromError(errors.Wrap(original, "wrapped"), nil))
	assert.NotSame(t, httperrors.ErrInternalServerError, httperrors.FromError(errors.New("x"), nil))
}

func TestHTTPErrorString(t *testing.T) {
	e := httperrors.NewFromErr(http.StatusNotFound, httperrors.TypeNotFound, account.ErrAccountNotFound)
	e.Detail = "hd-1--0"

	assert.Equal(t, "HTTPError 404 (NOT_FOUND): account not found - hd-1--0, account not found", e.Error())
}
