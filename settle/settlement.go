package settle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.vocdoni.io/dvote/log"

	"github.com/confidsys/batchsettle/storage"
	"github.com/confidsys/batchsettle/types"
)

// RequestSettlement snapshots a closed batch's aggregate, asks the oracle to
// decrypt it and records the request under the returned token. It does not
// block on the decryption itself; the result arrives later through
// OnDecryptionResult. Any actor may trigger a settlement, subject to the
// settlement cooldown. A batch whose earlier request stalled can simply be
// requested again, yielding a new independent token.
func (e *Engine) RequestSettlement(ctx context.Context, caller common.Address, batchID uint64) (*storage.SettlementRequest, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	reg, err := e.stg.Registry()
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}
	if err := requireActive(reg); err != nil {
		return nil, err
	}

	cd, err := e.stg.Cooldown(caller.Bytes())
	if err != nil {
		return nil, err
	}
	if err := e.checkCooldown(reg, cd.LastSettlement); err != nil {
		return nil, err
	}

	batch, err := e.stg.Batch(batchID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrBatchNotFound
		}
		return nil, err
	}
	if batch.Status != types.BatchStatusClosed {
		return nil, ErrBatchNotClosed
	}
	if batch.Contributions == 0 {
		return nil, ErrEmptyBatch
	}

	handles, err := e.stg.ContributionHandles(batchID)
	if err != nil {
		return nil, err
	}
	aggregate, err := aggregateHandles(e.adder, handles)
	if err != nil {
		return nil, err
	}
	stateHash := commitment(handles, e.cfg.Identity)

	token, err := e.oracle.RequestDecryption(ctx, aggregate)
	if err != nil {
		return nil, fmt.Errorf("request decryption: %w", err)
	}

	now := e.now().Unix()
	req := &storage.SettlementRequest{
		Token:     token,
		BatchID:   batchID,
		StateHash: stateHash,
		Aggregate: aggregate,
		CreatedAt: now,
	}
	cd.LastSettlement = now

	note := &storage.Notification{
		Kind:    storage.NotifySettlementRequested,
		Time:    now,
		Actor:   caller.Bytes(),
		BatchID: batchID,
		Token:   token,
	}
	if err := e.stg.ApplySettlementRequest(req, caller.Bytes(), cd, note); err != nil {
		return nil, err
	}
	log.Infow("settlement requested", "batchId", batchID, "token", token)
	return req, nil
}

// OnDecryptionResult accepts a decryption result from the oracle. The token
// must reference a known, unprocessed request; the batch's commitment is
// re-derived and must equal the one stored at request time; the authenticity
// proof must verify over the token and cleartext. Only then is the request
// marked processed (irreversibly) and the derived figures computed: revenue
// as the configured multiple of the batch's total budget and profit as
// revenue minus total cost. A second result for the same token is always
// rejected with ErrReplayRejected and changes nothing.
func (e *Engine) OnDecryptionResult(token string, cleartext *big.Int, proof []byte) (*storage.SettlementRequest, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	req, err := e.stg.SettlementRequest(token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUnknownToken
		}
		return nil, err
	}
	if req.Processed {
		return nil, ErrReplayRejected
	}

	// Re-derive the commitment over the batch's current contributions. In
	// the expected workflow a closed batch never changes between request
	// and result, so this is an unconditional safety net, not a race fix.
	handles, err := e.stg.ContributionHandles(req.BatchID)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(commitment(handles, e.cfg.Identity), req.StateHash) {
		return nil, ErrIntegrityMismatch
	}

	if cleartext == nil || !e.verifier.VerifyAuthenticity(token, cleartext, proof) {
		return nil, ErrInvalidProof
	}

	batch, err := e.stg.Batch(req.BatchID)
	if err != nil {
		return nil, fmt.Errorf("load batch: %w", err)
	}

	revenue := new(big.Int).Mul(
		new(big.Int).SetUint64(e.cfg.RevenueFactor),
		batch.TotalBudget.MathBigInt(),
	)
	profit := new(big.Int).Sub(revenue, batch.TotalCost.MathBigInt())

	now := e.now().Unix()
	req.Processed = true
	req.Result = &storage.SettlementResult{
		DecryptedTotal: (*types.BigInt)(new(big.Int).Set(cleartext)),
		Revenue:        (*types.BigInt)(revenue),
		Profit:         (*types.BigInt)(profit),
		FinalizedAt:    now,
	}

	note := &storage.Notification{
		Kind:    storage.NotifySettlementFinalized,
		Time:    now,
		BatchID: req.BatchID,
		Token:   token,
		Total:   req.Result.DecryptedTotal,
		Revenue: req.Result.Revenue,
		Profit:  req.Result.Profit,
	}
	if err := e.stg.ApplySettlementResult(req, note); err != nil {
		return nil, err
	}
	log.Infow("settlement finalized",
		"batchId", req.BatchID,
		"token", token,
		"total", req.Result.DecryptedTotal.String(),
		"revenue", revenue.String(),
		"profit", profit.String(),
	)
	return req, nil
}
