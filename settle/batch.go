package settle

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.vocdoni.io/dvote/log"

	"github.com/confidsys/batchsettle/fhe"
	"github.com/confidsys/batchsettle/storage"
	"github.com/confidsys/batchsettle/types"
)

// OpenBatch allocates the next sequential batch id and opens it.
// Administrator only; fails with ErrBatchAlreadyOpen when a batch is
// already open.
func (e *Engine) OpenBatch(caller common.Address) (*storage.Batch, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	reg, err := e.stg.Registry()
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}
	if err := requireAdmin(reg, caller); err != nil {
		return nil, err
	}
	if err := requireActive(reg); err != nil {
		return nil, err
	}

	state, err := e.stg.LedgerState()
	if err != nil {
		return nil, err
	}
	if state.OpenBatchID != 0 {
		return nil, ErrBatchAlreadyOpen
	}

	now := e.now().Unix()
	batch := &storage.Batch{
		ID:          state.LastBatchID + 1,
		Status:      types.BatchStatusOpen,
		TotalCost:   types.NewBigInt(0),
		TotalBudget: types.NewBigInt(0),
		CreatedAt:   now,
	}
	state.LastBatchID = batch.ID
	state.OpenBatchID = batch.ID

	note := &storage.Notification{
		Kind:    storage.NotifyBatchOpened,
		Time:    now,
		Actor:   caller.Bytes(),
		BatchID: batch.ID,
	}
	if err := e.stg.ApplyBatchOpen(batch, state, note); err != nil {
		return nil, err
	}
	log.Infow("batch opened", "batchId", batch.ID)
	return batch, nil
}

// CloseBatch closes the currently open batch. Administrator only; fails
// with ErrBatchNotOpen when no batch is open.
func (e *Engine) CloseBatch(caller common.Address) (*storage.Batch, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	reg, err := e.stg.Registry()
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}
	if err := requireAdmin(reg, caller); err != nil {
		return nil, err
	}
	if err := requireActive(reg); err != nil {
		return nil, err
	}

	state, err := e.stg.LedgerState()
	if err != nil {
		return nil, err
	}
	if state.OpenBatchID == 0 {
		return nil, ErrBatchNotOpen
	}

	batch, err := e.stg.Batch(state.OpenBatchID)
	if err != nil {
		return nil, fmt.Errorf("load open batch: %w", err)
	}
	now := e.now().Unix()
	batch.Status = types.BatchStatusClosed
	batch.ClosedAt = now
	state.OpenBatchID = 0

	note := &storage.Notification{
		Kind:    storage.NotifyBatchClosed,
		Time:    now,
		Actor:   caller.Bytes(),
		BatchID: batch.ID,
	}
	if err := e.stg.ApplyBatchClose(batch, state, note); err != nil {
		return nil, err
	}
	log.Infow("batch closed", "batchId", batch.ID, "contributions", batch.Contributions)
	return batch, nil
}

// SubmitContribution appends a contribution to the open batch. Authorized
// providers only, subject to the submission cooldown. The contribution gets
// the next zero-based index of the batch and the batch totals are updated
// incrementally, all in one transaction.
func (e *Engine) SubmitContribution(caller common.Address, cost, budget *big.Int, handle fhe.Handle) (*storage.Contribution, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if handle.IsZero() {
		return nil, fmt.Errorf("empty ciphertext handle")
	}
	if cost == nil || budget == nil {
		return nil, fmt.Errorf("cost and budget are required")
	}

	reg, err := e.stg.Registry()
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}
	if err := requireProvider(reg, caller); err != nil {
		return nil, err
	}
	if err := requireActive(reg); err != nil {
		return nil, err
	}

	cd, err := e.stg.Cooldown(caller.Bytes())
	if err != nil {
		return nil, err
	}
	if err := e.checkCooldown(reg, cd.LastSubmission); err != nil {
		return nil, err
	}

	state, err := e.stg.LedgerState()
	if err != nil {
		return nil, err
	}
	if state.OpenBatchID == 0 {
		return nil, ErrBatchNotOpen
	}
	batch, err := e.stg.Batch(state.OpenBatchID)
	if err != nil {
		return nil, fmt.Errorf("load open batch: %w", err)
	}

	now := e.now().Unix()
	index := batch.Contributions
	contrib := &storage.Contribution{
		BatchID:     batch.ID,
		Index:       index,
		Provider:    caller.Bytes(),
		Handle:      handle,
		Cost:        (*types.BigInt)(new(big.Int).Set(cost)),
		Budget:      (*types.BigInt)(new(big.Int).Set(budget)),
		SubmittedAt: now,
	}
	batch.Contributions = index + 1
	batch.TotalCost.Add(batch.TotalCost, contrib.Cost)
	batch.TotalBudget.Add(batch.TotalBudget, contrib.Budget)
	cd.LastSubmission = now

	note := &storage.Notification{
		Kind:    storage.NotifyContributionRecorded,
		Time:    now,
		Actor:   caller.Bytes(),
		BatchID: batch.ID,
		Index:   &index,
	}
	if err := e.stg.ApplyContribution(batch, contrib, cd, note); err != nil {
		return nil, err
	}
	log.Debugw("contribution recorded", "batchId", batch.ID, "index", index, "provider", caller.Hex())
	return contrib, nil
}
