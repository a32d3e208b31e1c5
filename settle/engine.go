package settle

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.vocdoni.io/dvote/log"

	"github.com/confidsys/batchsettle/fhe"
	"github.com/confidsys/batchsettle/storage"
	"github.com/confidsys/batchsettle/types"
)

const (
	// DefaultCooldownSeconds is applied when the configuration does not
	// set a cooldown.
	DefaultCooldownSeconds = 60
	// DefaultRevenueFactor is the default multiple of the total budget
	// used as revenue on finalization.
	DefaultRevenueFactor = 3
)

// Config holds the engine parameters.
type Config struct {
	// Admin is the initial administrator, used only when the storage has
	// never been initialized.
	Admin common.Address
	// Identity is the system-identity salt mixed into every state
	// commitment, so commitments from different deployments never collide.
	Identity types.HexBytes
	// RevenueFactor is the configured multiple of a batch's total budget
	// reported as revenue when a settlement finalizes.
	RevenueFactor uint64
	// CooldownSeconds is the initial submission/settlement cooldown.
	CooldownSeconds uint64
}

// Engine owns the authoritative settlement state and serializes every
// public operation.
type Engine struct {
	mu       sync.Mutex
	stg      *storage.Storage
	adder    fhe.Adder
	oracle   fhe.Oracle
	verifier fhe.ProofVerifier
	cfg      Config

	// now is the time source, replaced in tests.
	now func() time.Time
}

// New creates an engine over the given storage and collaborators. When the
// storage is fresh it initializes the actor registry with the configured
// administrator and cooldown.
func New(stg *storage.Storage, adder fhe.Adder, oracle fhe.Oracle, verifier fhe.ProofVerifier, cfg Config) (*Engine, error) {
	if stg == nil {
		return nil, fmt.Errorf("storage cannot be nil")
	}
	if adder == nil || oracle == nil || verifier == nil {
		return nil, fmt.Errorf("missing collaborator")
	}
	if cfg.RevenueFactor == 0 {
		cfg.RevenueFactor = DefaultRevenueFactor
	}
	if cfg.CooldownSeconds == 0 {
		cfg.CooldownSeconds = DefaultCooldownSeconds
	}

	e := &Engine{
		stg:      stg,
		adder:    adder,
		oracle:   oracle,
		verifier: verifier,
		cfg:      cfg,
		now:      time.Now,
	}

	if _, err := stg.Registry(); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("load registry: %w", err)
		}
		reg := &storage.Registry{
			Admin:           cfg.Admin.Bytes(),
			CooldownSeconds: cfg.CooldownSeconds,
		}
		if err := stg.ApplyRegistry(reg, nil); err != nil {
			return nil, fmt.Errorf("initialize registry: %w", err)
		}
		log.Infow("actor registry initialized", "admin", cfg.Admin.Hex(), "cooldown", cfg.CooldownSeconds)
	}

	return e, nil
}

// Registry returns the current actor registry.
func (e *Engine) Registry() (*storage.Registry, error) {
	return e.stg.Registry()
}

// Batch returns a batch by id. Returns ErrBatchNotFound if it does not exist.
func (e *Engine) Batch(id uint64) (*storage.Batch, error) {
	b, err := e.stg.Batch(id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrBatchNotFound
	}
	return b, err
}

// Contributions returns the ordered contributions of a batch.
func (e *Engine) Contributions(batchID uint64) ([]*storage.Contribution, error) {
	return e.stg.Contributions(batchID)
}

// SettlementRequest returns a settlement request by its oracle token.
// Returns ErrUnknownToken if it does not exist.
func (e *Engine) SettlementRequest(token string) (*storage.SettlementRequest, error) {
	req, err := e.stg.SettlementRequest(token)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrUnknownToken
	}
	return req, err
}

// Notifications returns up to max notifications with sequence >= from.
func (e *Engine) Notifications(from uint64, max int) ([]*storage.Notification, error) {
	return e.stg.Notifications(from, max)
}
