package storage

import (
	"fmt"
)

// SettlementRequest loads a settlement request by its oracle token.
// Returns ErrNotFound for unknown tokens.
func (s *Storage) SettlementRequest(token string) (*SettlementRequest, error) {
	s.globalLock.Lock()
	defer s.globalLock.Unlock()

	req := &SettlementRequest{}
	if err := s.getArtifact(settlementPrefix, []byte(token), req); err != nil {
		return nil, err
	}
	return req, nil
}

// ApplySettlementRequest stores a new settlement request, the caller's
// refreshed cooldown record and the notification in a single transaction.
func (s *Storage) ApplySettlementRequest(req *SettlementRequest, actor []byte, cd *Cooldown, note *Notification) error {
	s.globalLock.Lock()
	defer s.globalLock.Unlock()

	tx := s.db.WriteTx()
	defer tx.Discard()

	if err := setArtifactTx(tx, settlementPrefix, []byte(req.Token), req); err != nil {
		return fmt.Errorf("set settlement request: %w", err)
	}
	if err := setArtifactTx(tx, cooldownPrefix, actor, cd); err != nil {
		return fmt.Errorf("set cooldown: %w", err)
	}
	if err := s.appendNotificationTx(tx, note); err != nil {
		return err
	}
	return tx.Commit()
}

// ApplySettlementResult stores the finalized request (processed flag set,
// result figures attached) and the notification, atomically.
func (s *Storage) ApplySettlementResult(req *SettlementRequest, note *Notification) error {
	s.globalLock.Lock()
	defer s.globalLock.Unlock()

	tx := s.db.WriteTx()
	defer tx.Discard()

	if err := setArtifactTx(tx, settlementPrefix, []byte(req.Token), req); err != nil {
		return fmt.Errorf("set settlement request: %w", err)
	}
	if err := s.appendNotificationTx(tx, note); err != nil {
		return err
	}
	return tx.Commit()
}
