package api

import (
	"github.com/confidsys/batchsettle/fhe"
	"github.com/confidsys/batchsettle/types"
)

// ContributionRequest is the body of a contribution submission. Cost and
// budget are public figures; the handle is the opaque ciphertext of the
// confidential amount.
type ContributionRequest struct {
	Cost   *types.BigInt `json:"cost"`
	Budget *types.BigInt `json:"budget"`
	Handle fhe.Handle    `json:"handle"`
}

// SettlementTriggerRequest is the body of a settlement trigger.
type SettlementTriggerRequest struct {
	BatchID uint64 `json:"batchId"`
}

// SettlementTriggerResponse returns the oracle token bound to the request.
type SettlementTriggerResponse struct {
	Token   string `json:"token"`
	BatchID uint64 `json:"batchId"`
}

// DecryptionResultRequest is the inbound oracle callback body for a token.
type DecryptionResultRequest struct {
	Cleartext *types.BigInt  `json:"cleartext"`
	Proof     types.HexBytes `json:"proof"`
}

// PauseRequest is the body of a pause flag change.
type PauseRequest struct {
	Paused bool `json:"paused"`
}

// CooldownRequest is the body of a cooldown change.
type CooldownRequest struct {
	Seconds uint64 `json:"seconds"`
}

// TransferAdminRequest is the body of an administrator handover.
type TransferAdminRequest struct {
	NewAdmin string `json:"newAdmin"`
}
