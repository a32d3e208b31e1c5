package storage

import (
	"bytes"

	"github.com/confidsys/batchsettle/fhe"
	"github.com/confidsys/batchsettle/types"
)

// Registry holds the actor model: the single administrator, the set of
// authorized providers, the pause flag and the cooldown applied to
// submissions and settlement requests.
type Registry struct {
	Admin           types.HexBytes   `json:"admin"`
	Providers       []types.HexBytes `json:"providers"`
	Paused          bool             `json:"paused"`
	CooldownSeconds uint64           `json:"cooldownSeconds"`
}

// IsAdmin reports whether the given actor is the administrator.
func (r *Registry) IsAdmin(actor []byte) bool {
	return bytes.Equal(r.Admin, actor)
}

// IsProvider reports whether the given actor is an authorized provider.
func (r *Registry) IsProvider(actor []byte) bool {
	for _, p := range r.Providers {
		if bytes.Equal(p, actor) {
			return true
		}
	}
	return false
}

// AddProvider authorizes an actor. Adding an existing provider is a no-op.
func (r *Registry) AddProvider(actor []byte) {
	if r.IsProvider(actor) {
		return
	}
	r.Providers = append(r.Providers, types.HexBytes(actor))
}

// RemoveProvider revokes an actor's authorization.
func (r *Registry) RemoveProvider(actor []byte) {
	for i, p := range r.Providers {
		if bytes.Equal(p, actor) {
			r.Providers = append(r.Providers[:i], r.Providers[i+1:]...)
			return
		}
	}
}

// Cooldown records when an actor last performed each rate-limited action,
// as unix timestamps. The zero value means the actor never acted.
type Cooldown struct {
	LastSubmission int64 `json:"lastSubmission"`
	LastSettlement int64 `json:"lastSettlement"`
}

// LedgerState is the head of the batch ledger: the last allocated batch id
// and the currently open one (zero when no batch is open).
type LedgerState struct {
	LastBatchID uint64 `json:"lastBatchId"`
	OpenBatchID uint64 `json:"openBatchId"`
}

// Batch is a bounded collection of contributions settled together. Totals
// are updated incrementally on every contribution.
type Batch struct {
	ID            uint64            `json:"id"`
	Status        types.BatchStatus `json:"status"`
	TotalCost     *types.BigInt     `json:"totalCost"`
	TotalBudget   *types.BigInt     `json:"totalBudget"`
	Contributions uint64            `json:"contributions"`
	CreatedAt     int64             `json:"createdAt"`
	ClosedAt      int64             `json:"closedAt,omitempty"`
}

// Contribution is a single confidential submission. Immutable once stored.
type Contribution struct {
	BatchID     uint64         `json:"batchId"`
	Index       uint64         `json:"index"`
	Provider    types.HexBytes `json:"provider"`
	Handle      fhe.Handle     `json:"handle"`
	Cost        *types.BigInt  `json:"cost"`
	Budget      *types.BigInt  `json:"budget"`
	SubmittedAt int64          `json:"submittedAt"`
}

// SettlementRequest binds an oracle token to the batch state committed at
// request time. Processed flips from false to true exactly once; no other
// field mutates after creation, except Result which is set on finalization.
type SettlementRequest struct {
	Token     string            `json:"token"`
	BatchID   uint64            `json:"batchId"`
	StateHash types.HexBytes    `json:"stateHash"`
	Aggregate fhe.Handle        `json:"aggregate"`
	Processed bool              `json:"processed"`
	CreatedAt int64             `json:"createdAt"`
	Result    *SettlementResult `json:"result,omitempty"`
}

// SettlementResult holds the figures derived on finalization.
type SettlementResult struct {
	DecryptedTotal *types.BigInt `json:"decryptedTotal"`
	Revenue        *types.BigInt `json:"revenue"`
	Profit         *types.BigInt `json:"profit"`
	FinalizedAt    int64         `json:"finalizedAt"`
}

// Notification kinds, one per mutating operation.
const (
	NotifyBatchOpened          = "batch_opened"
	NotifyBatchClosed          = "batch_closed"
	NotifyContributionRecorded = "contribution_recorded"
	NotifySettlementRequested  = "settlement_requested"
	NotifySettlementFinalized  = "settlement_finalized"
	NotifyProviderAuthorized   = "provider_authorized"
	NotifyProviderRevoked      = "provider_revoked"
	NotifyPauseChanged         = "pause_changed"
	NotifyCooldownChanged      = "cooldown_changed"
	NotifyAdminTransferred     = "admin_transferred"
)

// Notification is one record of the append-only observer feed. Only the
// fields relevant to the kind are set.
type Notification struct {
	Seq      uint64         `json:"seq"`
	Kind     string         `json:"kind"`
	Time     int64          `json:"time"`
	Actor    types.HexBytes `json:"actor,omitempty"`
	BatchID  uint64         `json:"batchId,omitempty"`
	Index    *uint64        `json:"index,omitempty"`
	Token    string         `json:"token,omitempty"`
	Total    *types.BigInt  `json:"total,omitempty"`
	Revenue  *types.BigInt  `json:"revenue,omitempty"`
	Profit   *types.BigInt  `json:"profit,omitempty"`
	Paused   *bool          `json:"paused,omitempty"`
	Cooldown *uint64        `json:"cooldown,omitempty"`
}
