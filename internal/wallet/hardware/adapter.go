package hardware

import (
	"context"

	"github.com/pkg/errors"
)

// PrepareParams describes the accounts one network builds from a batch.
type PrepareParams[T any] struct {
	HardwareNetworkID string
	Indexes           []int
	BuildPath         func(ctx context.Context, index int) (string, error)
	BuildResult       func(item ResponseItem, index int) (T, error)
	UseTweak          bool
	Table             *ResponseTable
}

// PrepareAccounts assembles one result per requested index from the device responses
// collected in params.Table. It returns nil, nil when the network has no hardware
// mapping or no table was given.
//
// Results are all or nothing: if any index has no successful response the call fails
// with the first device error among its own keys, falling back to the first device
// error of the whole table. Forbidden key paths map to ErrUnsupportedAddressType, and
// ErrBatchAccountsFailed is returned when no device error is known. The table is never
// destroyed here.
func PrepareAccounts[T any](ctx context.Context, params PrepareParams[T]) ([]T, error) {
	if params.HardwareNetworkID == "" || params.Table == nil {
		return nil, nil
	}

	var failure error

	results := make([]T, 0, len(params.Indexes))
	for _, index := range params.Indexes {
		path, err := params.BuildPath(ctx, index)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to build path for index %d", index)
		}

		item, err := params.Table.Await(ctx, Key{
			HardwareNetworkID: params.HardwareNetworkID,
			Path:              path,
			UseTweak:          params.UseTweak,
		})
		if err != nil {
			var deliveryErr *DeliveryError
			if errors.As(err, &deliveryErr) {
				if failure == nil {
					failure = itemFailure(deliveryErr.Item)
				}
				continue
			}
			return nil, err
		}

		if !item.Success || item.Payload == nil {
			continue
		}

		result, err := params.BuildResult(item, index)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to build result for index %d", index)
		}

		if setter, ok := any(result).(ExtraInfoSetter); ok {
			setter.SetHWExtraInfo(ExtraInfo{RootFingerprint: item.Payload.RootFingerprint})
		}

		results = append(results, result)
	}

	if len(results) == len(params.Indexes) {
		return results, nil
	}

	if failure != nil {
		return nil, failure
	}

	if item := params.Table.FirstError(); item != nil {
		return nil, itemFailure(*item)
	}

	return nil, ErrBatchAccountsFailed
}

// itemFailure returns the error a failed device item reports to callers, or nil if the
// item carries no device error.
func itemFailure(item ResponseItem) error {
	if !item.HasError() {
		return nil
	}

	if IsForbiddenKeyPath(item.Payload.Error) {
		return ErrUnsupportedAddressType
	}

	return ConvertDeviceError(item.Payload)
}
