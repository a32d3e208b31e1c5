// Package storage persists the authoritative settlement state: the actor
// registry, the per-actor cooldown ledger, the batch ledger with its
// contributions, the settlement requests and the append-only notification
// log. It is a prefixed key-value store; the following prefixes are used:
//   - 'r/' for the actor registry
//   - 'cd/' for per-actor cooldown records
//   - 'ls/' for the batch ledger head (last and open batch ids)
//   - 'b/' for batches
//   - 'c/' for contributions (batch id + index big-endian, so iteration
//     order is submission order)
//   - 'sr/' for settlement requests (keyed by oracle token)
//   - 'n/' for notifications (sequence big-endian)
//   - 'nm/' for the notification sequence counter
//
// Every Apply* method writes all its prefixes inside a single write
// transaction, so a public operation of the engine either lands completely
// or not at all.
package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/db/prefixeddb"
)

var (
	// Prefixes for the keys in the database.
	registryPrefix    = []byte("r/")
	cooldownPrefix    = []byte("cd/")
	ledgerStatePrefix = []byte("ls/")
	batchPrefix       = []byte("b/")
	contribPrefix     = []byte("c/")
	settlementPrefix  = []byte("sr/")
	notifPrefix       = []byte("n/")
	notifMetaPrefix   = []byte("nm/")
)

var (
	// Keys for the singleton artifacts.
	registryKey    = []byte("registry")
	ledgerStateKey = []byte("head")
	notifSeqKey    = []byte("seq")
)

// ErrNotFound is returned when the requested artifact does not exist.
var ErrNotFound = fmt.Errorf("artifact not found")

// Storage wraps the underlying database with typed accessors for the
// settlement artifacts.
type Storage struct {
	db         db.Database
	globalLock sync.Mutex
}

// New creates a new Storage instance.
func New(db db.Database) *Storage {
	return &Storage{db: db}
}

// Close closes the storage.
func (s *Storage) Close() {
	s.db.Close()
}

// getArtifact reads and decodes an artifact. Returns ErrNotFound if the key
// does not exist.
func (s *Storage) getArtifact(prefix, key []byte, out any) error {
	rd := prefixeddb.NewPrefixedReader(s.db, prefix)
	data, err := rd.Get(key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return ErrNotFound
		}
		return err
	}
	return decodeArtifact(data, out)
}

// setArtifactTx encodes and writes an artifact inside an existing write
// transaction.
func setArtifactTx(tx db.WriteTx, prefix, key []byte, artifact any) error {
	data, err := encodeArtifact(artifact)
	if err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}
	return prefixeddb.NewPrefixedWriteTx(tx, prefix).Set(key, data)
}

// uint64Key encodes an id as a fixed-width big-endian key, which keeps the
// lexicographic iteration order equal to the numeric order.
func uint64Key(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}
