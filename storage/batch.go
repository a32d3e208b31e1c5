package storage

import (
	"errors"
	"fmt"

	"github.com/confidsys/batchsettle/fhe"
	"go.vocdoni.io/dvote/db/prefixeddb"
)

// contribKey builds the contribution key: batch id then index, both
// big-endian, so iterating a batch yields contributions in submission order.
func contribKey(batchID, index uint64) []byte {
	return append(uint64Key(batchID), uint64Key(index)...)
}

// LedgerState loads the batch ledger head. A fresh store gets the zero
// state (no batches yet), not an error.
func (s *Storage) LedgerState() (*LedgerState, error) {
	s.globalLock.Lock()
	defer s.globalLock.Unlock()

	state := &LedgerState{}
	err := s.getArtifact(ledgerStatePrefix, ledgerStateKey, state)
	switch {
	case err == nil, errors.Is(err, ErrNotFound):
		return state, nil
	default:
		return nil, fmt.Errorf("get ledger state: %w", err)
	}
}

// Batch loads a batch by id. Returns ErrNotFound if it does not exist.
func (s *Storage) Batch(id uint64) (*Batch, error) {
	s.globalLock.Lock()
	defer s.globalLock.Unlock()

	b := &Batch{}
	if err := s.getArtifact(batchPrefix, uint64Key(id), b); err != nil {
		return nil, err
	}
	return b, nil
}

// Contribution loads a single contribution by batch id and index.
func (s *Storage) Contribution(batchID, index uint64) (*Contribution, error) {
	s.globalLock.Lock()
	defer s.globalLock.Unlock()

	c := &Contribution{}
	if err := s.getArtifact(contribPrefix, contribKey(batchID, index), c); err != nil {
		return nil, err
	}
	return c, nil
}

// Contributions returns all contributions of a batch in submission order.
func (s *Storage) Contributions(batchID uint64) ([]*Contribution, error) {
	s.globalLock.Lock()
	defer s.globalLock.Unlock()

	rd := prefixeddb.NewPrefixedReader(s.db, contribPrefix)
	var res []*Contribution
	var decodeErr error
	if err := rd.Iterate(uint64Key(batchID), func(_, v []byte) bool {
		c := &Contribution{}
		if decodeErr = decodeArtifact(v, c); decodeErr != nil {
			return false
		}
		res = append(res, c)
		return true
	}); err != nil {
		return nil, fmt.Errorf("iterate contributions: %w", err)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode contribution: %w", decodeErr)
	}
	return res, nil
}

// ContributionHandles returns the ordered ciphertext handles of a batch,
// the exact input of the aggregate re-derivation.
func (s *Storage) ContributionHandles(batchID uint64) ([]fhe.Handle, error) {
	contribs, err := s.Contributions(batchID)
	if err != nil {
		return nil, err
	}
	handles := make([]fhe.Handle, len(contribs))
	for i, c := range contribs {
		handles[i] = c.Handle
	}
	return handles, nil
}

// ApplyBatchOpen stores a freshly opened batch together with the updated
// ledger head and the notification, atomically.
func (s *Storage) ApplyBatchOpen(batch *Batch, state *LedgerState, note *Notification) error {
	s.globalLock.Lock()
	defer s.globalLock.Unlock()

	tx := s.db.WriteTx()
	defer tx.Discard()

	if err := setArtifactTx(tx, batchPrefix, uint64Key(batch.ID), batch); err != nil {
		return fmt.Errorf("set batch: %w", err)
	}
	if err := setArtifactTx(tx, ledgerStatePrefix, ledgerStateKey, state); err != nil {
		return fmt.Errorf("set ledger state: %w", err)
	}
	if err := s.appendNotificationTx(tx, note); err != nil {
		return err
	}
	return tx.Commit()
}

// ApplyBatchClose stores the closed batch together with the updated ledger
// head and the notification, atomically.
func (s *Storage) ApplyBatchClose(batch *Batch, state *LedgerState, note *Notification) error {
	s.globalLock.Lock()
	defer s.globalLock.Unlock()

	tx := s.db.WriteTx()
	defer tx.Discard()

	if err := setArtifactTx(tx, batchPrefix, uint64Key(batch.ID), batch); err != nil {
		return fmt.Errorf("set batch: %w", err)
	}
	if err := setArtifactTx(tx, ledgerStatePrefix, ledgerStateKey, state); err != nil {
		return fmt.Errorf("set ledger state: %w", err)
	}
	if err := s.appendNotificationTx(tx, note); err != nil {
		return err
	}
	return tx.Commit()
}

// ApplyContribution stores the contribution, the batch with its updated
// totals, the provider's refreshed cooldown record and the notification in
// a single transaction.
func (s *Storage) ApplyContribution(batch *Batch, contrib *Contribution, cd *Cooldown, note *Notification) error {
	s.globalLock.Lock()
	defer s.globalLock.Unlock()

	tx := s.db.WriteTx()
	defer tx.Discard()

	if err := setArtifactTx(tx, contribPrefix, contribKey(contrib.BatchID, contrib.Index), contrib); err != nil {
		return fmt.Errorf("set contribution: %w", err)
	}
	if err := setArtifactTx(tx, batchPrefix, uint64Key(batch.ID), batch); err != nil {
		return fmt.Errorf("set batch: %w", err)
	}
	if err := setArtifactTx(tx, cooldownPrefix, contrib.Provider, cd); err != nil {
		return fmt.Errorf("set cooldown: %w", err)
	}
	if err := s.appendNotificationTx(tx, note); err != nil {
		return err
	}
	return tx.Commit()
}
