package storage

import (
	"errors"
	"fmt"
)

// Registry loads the actor registry. Returns ErrNotFound when the store has
// never been initialized.
func (s *Storage) Registry() (*Registry, error) {
	s.globalLock.Lock()
	defer s.globalLock.Unlock()

	reg := &Registry{}
	if err := s.getArtifact(registryPrefix, registryKey, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// ApplyRegistry stores the registry and, when note is not nil, appends the
// notification in the same transaction.
func (s *Storage) ApplyRegistry(reg *Registry, note *Notification) error {
	s.globalLock.Lock()
	defer s.globalLock.Unlock()

	tx := s.db.WriteTx()
	defer tx.Discard()

	if err := setArtifactTx(tx, registryPrefix, registryKey, reg); err != nil {
		return fmt.Errorf("set registry: %w", err)
	}
	if note != nil {
		if err := s.appendNotificationTx(tx, note); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Cooldown loads the cooldown record of an actor. An actor that never acted
// gets the zero record, not an error.
func (s *Storage) Cooldown(actor []byte) (*Cooldown, error) {
	s.globalLock.Lock()
	defer s.globalLock.Unlock()

	cd := &Cooldown{}
	err := s.getArtifact(cooldownPrefix, actor, cd)
	switch {
	case err == nil, errors.Is(err, ErrNotFound):
		return cd, nil
	default:
		return nil, fmt.Errorf("get cooldown: %w", err)
	}
}
