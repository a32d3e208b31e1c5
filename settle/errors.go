package settle

import "errors"

// Sentinel errors of the settlement core. All of them are synchronous and
// non-retriable by the same call: the caller must re-satisfy the violated
// precondition and retry as a new call. No error leaves partial state.
var (
	ErrUnauthorized      = errors.New("caller not authorized")
	ErrPaused            = errors.New("system is paused")
	ErrCooldownActive    = errors.New("cooldown active")
	ErrBatchNotOpen      = errors.New("no batch is open")
	ErrBatchAlreadyOpen  = errors.New("a batch is already open")
	ErrBatchNotClosed    = errors.New("batch is not closed")
	ErrBatchNotFound     = errors.New("batch not found")
	ErrEmptyBatch        = errors.New("batch has no contributions")
	ErrUnknownToken      = errors.New("unknown settlement token")
	ErrReplayRejected    = errors.New("settlement result already processed")
	ErrIntegrityMismatch = errors.New("state commitment mismatch")
	ErrInvalidProof      = errors.New("invalid authenticity proof")
)
