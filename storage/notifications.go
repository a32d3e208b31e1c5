package storage

import (
	"encoding/binary"
	"errors"
	"fmt"

	"go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/db/prefixeddb"
)

// appendNotificationTx assigns the next sequence number to the notification
// and writes it, plus the advanced counter, inside the given transaction.
// Sequence numbers start at 1. Callers hold the global lock.
func (s *Storage) appendNotificationTx(tx db.WriteTx, note *Notification) error {
	next := uint64(1)
	rd := prefixeddb.NewPrefixedReader(s.db, notifMetaPrefix)
	if data, err := rd.Get(notifSeqKey); err == nil && len(data) == 8 {
		next = binary.BigEndian.Uint64(data) + 1
	} else if err != nil && !errors.Is(err, db.ErrKeyNotFound) {
		return fmt.Errorf("get notification counter: %w", err)
	}
	note.Seq = next

	if err := setArtifactTx(tx, notifPrefix, uint64Key(next), note); err != nil {
		return fmt.Errorf("set notification: %w", err)
	}
	if err := prefixeddb.NewPrefixedWriteTx(tx, notifMetaPrefix).Set(notifSeqKey, uint64Key(next)); err != nil {
		return fmt.Errorf("set notification counter: %w", err)
	}
	return nil
}

// Notifications returns up to max notifications with sequence >= from, in
// order. A max of zero or less means no limit.
func (s *Storage) Notifications(from uint64, max int) ([]*Notification, error) {
	s.globalLock.Lock()
	defer s.globalLock.Unlock()

	rd := prefixeddb.NewPrefixedReader(s.db, notifPrefix)
	var res []*Notification
	var decodeErr error
	if err := rd.Iterate(nil, func(k, v []byte) bool {
		if len(k) == 8 && binary.BigEndian.Uint64(k) < from {
			return true
		}
		if max > 0 && len(res) >= max {
			return false
		}
		n := &Notification{}
		if decodeErr = decodeArtifact(v, n); decodeErr != nil {
			return false
		}
		res = append(res, n)
		return true
	}); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode notification: %w", decodeErr)
	}
	return res, nil
}
