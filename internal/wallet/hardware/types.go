package hardware

import (
	"context"

	"github.com/iamshubha/roy-dex-sub005/internal/wallet/account"
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/derive"
)

// Payload is the body of a device response item. It carries either key material or a
// structured device error.
type Payload struct {
	Error             string `json:"error,omitempty"`
	Code              Code   `json:"code,omitempty"`
	ConnectID         string `json:"connectId,omitempty"`
	DeviceID          string `json:"deviceId,omitempty"`
	Address           string `json:"address,omitempty"`
	PublicKey         string `json:"publicKey,omitempty"`
	ExtendedPublicKey string `json:"xpub,omitempty"`
	RootFingerprint   uint32 `json:"rootFingerprint,omitempty"`
}

// ResponseItem is one answer of a batched address request, delivered out of order.
type ResponseItem struct {
	Path     string   `json:"path"`
	Network  string   `json:"network"`
	UseTweak bool     `json:"useTweak,omitempty"`
	Success  bool     `json:"success"`
	Payload  *Payload `json:"payload,omitempty"`
}

// Key returns the correlation key of the item.
func (i ResponseItem) Key() Key {
	return Key{HardwareNetworkID: i.Network, Path: i.Path, UseTweak: i.UseTweak}
}

// HasError reports whether the item is a failure carrying a device error message.
func (i ResponseItem) HasError() bool {
	return !i.Success && i.Payload != nil && i.Payload.Error != ""
}

// Key identifies a pending response. Producer and consumer both derive it from the
// request, so it never depends on arrival order.
type Key struct {
	HardwareNetworkID string `json:"network"`
	Path              string `json:"path"`
	UseTweak          bool   `json:"useTweak,omitempty"`
}

// Observer receives correlation table events, e.g. for metrics.
type Observer interface {
	ItemDelivered(outcome string)
	TablePoisoned()
}

// Delivery outcomes reported to Observer.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeIgnored = "ignored"
)

// BundleParam is a single address request inside a batch.
type BundleParam struct {
	Network         string      `json:"network"`
	Path            string      `json:"path"`
	UseTweak        bool        `json:"useTweak,omitempty"`
	ShowOnOneKey    bool        `json:"showOnOneKey"`
	AddressEncoding string      `json:"addressEncoding,omitempty"`
	NetworkID       string      `json:"networkId"`
	DeriveType      derive.Type `json:"deriveType"`
	Index           int         `json:"index"`
}

// BundleRequest is the batched address request sent to a device.
type BundleRequest struct {
	ConnectID string        `json:"connectId"`
	DeviceID  string        `json:"deviceId"`
	Bundle    []BundleParam `json:"bundle"`
}

// Transport talks to the signing device. Items are handed to onItem as they arrive;
// a returned error fails the whole batch.
type Transport interface {
	AllNetworkGetAddress(ctx context.Context, req BundleRequest, onItem func(item ResponseItem)) error
}

// NetworkParams selects a network and derive type of a batch.
type NetworkParams struct {
	NetworkID  string      `json:"networkId"`
	DeriveType derive.Type `json:"deriveType"`
	UseTweak   bool        `json:"useTweak,omitempty"`
}

// StartParams describes a batched address request for a hardware wallet.
type StartParams struct {
	WalletID        string          `json:"walletId"`
	ConnectID       string          `json:"connectId"`
	DeviceID        string          `json:"deviceId"`
	Indexes         []int           `json:"indexes"`
	ExcludedIndexes map[int]bool    `json:"excludedIndexes,omitempty"`
	Networks        []NetworkParams `json:"networks"`
	ShowOnOneKey    bool            `json:"showOnOneKey"`
}

// Batch is a running batched request.
type Batch struct {
	ID       string         `json:"id"`
	WalletID string         `json:"walletId"`
	Request  BundleRequest  `json:"request"`
	Table    *ResponseTable `json:"-"`
}

// PrepareNetworkParams selects the accounts built from a batch for one network.
type PrepareNetworkParams struct {
	NetworkID  string      `json:"networkId"`
	DeriveType derive.Type `json:"deriveType"`
	Indexes    []int       `json:"indexes"`
	UseTweak   bool        `json:"useTweak,omitempty"`
	Save       bool        `json:"save"`
}

// ExtraInfo is attached to every account built from a device response.
type ExtraInfo struct {
	RootFingerprint uint32 `json:"rootFingerprint"`
}

// ExtraInfoSetter is implemented by results that carry ExtraInfo.
type ExtraInfoSetter interface {
	SetHWExtraInfo(info ExtraInfo)
}

// Prepared wraps a result type that cannot carry ExtraInfo itself.
type Prepared[T any] struct {
	Value       T         `json:"value"`
	HWExtraInfo ExtraInfo `json:"hwExtraInfo"`
}

func (p *Prepared[T]) SetHWExtraInfo(info ExtraInfo) {
	p.HWExtraInfo = info
}

// PreparedAccount is an account built from a device response.
type PreparedAccount struct {
	account.DBAccount
	HWExtraInfo ExtraInfo `json:"hwExtraInfo"`
}

func (a *PreparedAccount) SetHWExtraInfo(info ExtraInfo) {
	a.HWExtraInfo = info
}

// BatchService runs batched address requests against hardware wallets.
type BatchService interface {
	// Start builds the bundle for networks x indexes, registers a correlation table and
	// sends the bundle to the device in the background
	Start(ctx context.Context, params StartParams) (*Batch, error)

	// Get returns a running batch
	Get(id string) (*Batch, bool)

	// PrepareNetworkAccounts builds the accounts of one network from a batch's responses
	PrepareNetworkAccounts(ctx context.Context, id string, params PrepareNetworkParams) ([]*PreparedAccount, error)

	// Finish destroys the batch's table once every consumer is done
	Finish(ctx context.Context, id string) error
}
