package hardware

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Code is a device error code as reported by the hardware SDK.
type Code int

const (
	CodeUnknownError                    Code = 0
	CodeDeviceFwException               Code = 101
	CodeDeviceNotFound                  Code = 105
	CodeDeviceInterruptedFromOutside    Code = 107
	CodeDeviceInterruptedFromUser       Code = 109
	CodeDeviceCheckPassphraseStateError Code = 112
	CodeDeviceNotOpenedPassphrase       Code = 113
	CodeDeviceOpenedPassphrase          Code = 114
	CodeDeviceCheckUnlockTypeError      Code = 118
	CodeRuntimeError                    Code = 800
	CodePinInvalid                      Code = 801
	CodePinCancelled                    Code = 802
	CodeActionCancelled                 Code = 803
	CodeBridgeNetworkError              Code = 806
	CodeBridgeTimeoutError              Code = 807
	CodePollingTimeout                  Code = 809
	CodePollingStop                     Code = 810
)

const forbiddenKeyPath = "Failure_DataError,Forbidden key path"

// HardwareError is a structured device error. Key is the message id used to localise it.
type HardwareError struct {
	Code      Code   `json:"code"`
	Message   string `json:"message"`
	Key       string `json:"key"`
	ConnectID string `json:"connectId,omitempty"`
	DeviceID  string `json:"deviceId,omitempty"`
}

func (e *HardwareError) Error() string {
	return fmt.Sprintf("hardware error %d: %s", e.Code, e.Message)
}

// Is matches hardware errors of the same kind.
func (e *HardwareError) Is(target error) bool {
	t, ok := target.(*HardwareError)
	if !ok {
		return false
	}

	return t.Code == e.Code && t.Key == e.Key
}

var (
	ErrUnsupportedAddressType = &HardwareError{
		Code:    CodeRuntimeError,
		Message: "UnsupportedAddressTypeError",
		Key:     "feedback_hardware_unsupported_current_address_type",
	}

	ErrBatchAccountsFailed      = errors.New("SDK GetAllNetworkAccounts failed")
	ErrTableDestroyed           = errors.New("response table destroyed")
	ErrTableReset               = errors.New("response table reset")
	ErrCommunicationInterrupted = errors.New("device communication interrupted, please try again later")
	ErrBatchNotFound            = errors.New("hardware batch not found")
	ErrNotHardwareWallet        = errors.New("wallet is not a hardware wallet")
)

type knownError struct {
	message string
	key     string
}

var knownErrors = map[Code]knownError{
	CodeDeviceNotFound:                  {"DeviceNotFound", "hardware_device_not_find_error"},
	CodeDeviceInterruptedFromOutside:    {"UserCancelFromOutside", "hardware_user_cancel_error"},
	CodeDeviceInterruptedFromUser:       {"UserCancel", "hardware_user_cancel_error"},
	CodeDeviceCheckPassphraseStateError: {"InvalidPassphrase", "hardware_device_passphrase_state_error"},
	CodeDeviceNotOpenedPassphrase:       {"DeviceNotOpenedPassphrase", "hardware_not_opened_passphrase"},
	CodeDeviceOpenedPassphrase:          {"DeviceOpenedPassphrase", "hardware_opened_passphrase"},
	CodeDeviceCheckUnlockTypeError:      {"InvalidAttachPin", "hardware_device_pin_state_error"},
	CodeRuntimeError:                    {"UnknownMethod", "hardware_unknown_message_error"},
	CodePinInvalid:                      {"InvalidPIN", "enter_pin_invalid_pin"},
	CodePinCancelled:                    {"PinCancelled", "feedback_pin_verification_cancelled"},
	CodeActionCancelled:                 {"UserCancel", "hardware_user_cancel_error"},
	CodeBridgeNetworkError:              {"BridgeNetworkError", "update_bridge_network_error"},
	CodeBridgeTimeoutError:              {"BridgeTimeoutError", "update_bridge_timeout_error"},
	CodePollingTimeout:                  {"ConnectTimeoutError", "global_connection_failed_help_text"},
	CodePollingStop:                     {"ConnectPollingStopError", "feedback_hw_polling_time_out"},
}

const unknownErrorKey = "hardware_device_need_restart"

// ConvertDeviceError turns a raw device payload into a HardwareError. A nil payload
// converts to nil.
func ConvertDeviceError(p *Payload) *HardwareError {
	if p == nil {
		return nil
	}

	e := &HardwareError{
		Code:      p.Code,
		Message:   p.Error,
		Key:       unknownErrorKey,
		ConnectID: p.ConnectID,
		DeviceID:  p.DeviceID,
	}

	if known, ok := knownErrors[p.Code]; ok {
		e.Key = known.key
		if e.Message == "" {
			e.Message = known.message
		}
	}

	if e.Message == "" {
		e.Message = "UnknownHardwareError"
	}

	return e
}

// IsForbiddenKeyPath reports whether a device error message rejects the requested path.
func IsForbiddenKeyPath(message string) bool {
	return strings.Contains(message, forbiddenKeyPath)
}

// DeliveryError rejects a slot whose device item reported a failure. The item is kept
// so callers can still inspect it.
type DeliveryError struct {
	Item ResponseItem
	Err  error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("device item %s %s failed: %v", e.Item.Network, e.Item.Path, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
