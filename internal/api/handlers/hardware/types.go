package hardware

import (
	"github.com/iamshubha/roy-dex-sub005/internal/wallet/hardware"
	"github.com/kat-co/vala"
)

type PostBatchPayload struct {
	hardware.StartParams
}

func (p *PostBatchPayload) Validate() error {
	return vala.BeginValidation().Validate(
		vala.StringNotEmpty(p.WalletID, "walletId"),
		vala.GreaterThan(len(p.Networks), 0, "networks"),
		vala.GreaterThan(len(p.Indexes), 0, "indexes"),
	).Check()
}

type PostBatchItemsPayload struct {
	Items []hardware.ResponseItem `json:"items"`
}

func (p *PostBatchItemsPayload) Validate() error {
	return vala.BeginValidation().Validate(
		vala.GreaterThan(len(p.Items), 0, "items"),
	).Check()
}

type PostBatchAccountsPayload struct {
	hardware.PrepareNetworkParams
}

func (p *PostBatchAccountsPayload) Validate() error {
	return vala.BeginValidation().Validate(
		vala.StringNotEmpty(p.NetworkID, "networkId"),
		vala.StringNotEmpty(string(p.DeriveType), "deriveType"),
		vala.GreaterThan(len(p.Indexes), 0, "indexes"),
	).Check()
}

// BatchResponse describes a running batch and the state of its correlation table.
type BatchResponse struct {
	ID           string                 `json:"id"`
	WalletID     string                 `json:"walletId"`
	BundleLength int                    `json:"bundleLength"`
	Slots        int                    `json:"slots"`
	Error        string                 `json:"error,omitempty"`
	Request      hardware.BundleRequest `json:"request"`
}

func newBatchResponse(batch *hardware.Batch) *BatchResponse {
	res := &BatchResponse{
		ID:           batch.ID,
		WalletID:     batch.WalletID,
		BundleLength: batch.Table.BundleLength(),
		Slots:        batch.Table.Len(),
		Request:      batch.Request,
	}

	if err := batch.Table.Err(); err != nil {
		res.Error = err.Error()
	}

	return res
}

type PostBatchItemsResponse struct {
	Accepted int `json:"accepted"`
	Ignored  int `json:"ignored"`
}

type PostBatchAccountsResponse struct {
	Accounts []*hardware.PreparedAccount `json:"accounts"`
}
