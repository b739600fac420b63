package httperrors

import (
	"fmt"
	"net/http"
)

// Public error types returned in HTTPError.Type.
const (
	TypeGeneric                  = "generic"
	TypeInvalidParams            = "INVALID_PARAMS"
	TypeNotFound                 = "NOT_FOUND"
	TypeBatchDestroyed           = "BATCH_DESTROYED"
	TypeBatchReset               = "BATCH_RESET"
	TypeHardware                 = "HARDWARE_ERROR"
	TypeUnsupportedAddressType   = "UNSUPPORTED_ADDRESS_TYPE"
	TypeCommunicationInterrupted = "COMMUNICATION_INTERRUPTED"
	TypeBatchAccountsFailed      = "BATCH_ACCOUNTS_FAILED"
	TypeTimeout                  = "TIMEOUT"
)

var (
	ErrInternalServerError = NewHTTPError(http.StatusInternalServerError, TypeGeneric, http.StatusText(http.StatusInternalServerError))
)

// HTTPError is the JSON body of every error response.
type HTTPError struct {
	Code   int    `json:"status"`
	Type   string `json:"type"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
	// Key is the message id of localised hardware errors
	Key      string `json:"key,omitempty"`
	Internal error  `json:"-"`
}

func NewHTTPError(code int, errorType string, title string) *HTTPError {
	return &HTTPError{
		Code:  code,
		Type:  errorType,
		Title: title,
	}
}

func NewFromErr(code int, errorType string, err error) *HTTPError {
	return &HTTPError{
		Code:     code,
		Type:     errorType,
		Title:    err.Error(),
		Internal: err,
	}
}

func (e *HTTPError) Error() string {
	var b []byte
	b = fmt.Appendf(b, "HTTPError %d (%s): %s", e.Code, e.Type, e.Title)

	if len(e.Detail) > 0 {
		b = fmt.Appendf(b, " - %s", e.Detail)
	}
	if e.Internal != nil {
		b = fmt.Appendf(b, ", %v", e.Internal)
	}

	return string(b)
}

func (e *HTTPError) Unwrap() error {
	return e.Internal
}
