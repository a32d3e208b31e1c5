package fhe

import (
	"context"
	"math/big"
	"time"
)

// Adder composes two ciphertext handles into one representing the sum of
// their plaintexts. Implementations must be pure functions of their inputs:
// the same pair of handles always yields a bit-identical result, which the
// settlement core relies on to re-derive aggregates deterministically.
type Adder interface {
	Add(a, b Handle) (Handle, error)
}

// Oracle is the asynchronous decryption collaborator. RequestDecryption
// returns immediately with a token; the decrypted result arrives later as a
// Result on the channel returned by MonitorResults. At most one result per
// token is honored by the core, whatever the oracle delivers.
type Oracle interface {
	// RequestDecryption asks the oracle to decrypt the given aggregate
	// handle and returns the token identifying the request.
	RequestDecryption(ctx context.Context, aggregate Handle) (string, error)

	// MonitorResults emits decryption results as they become available.
	// The channel is closed when the context is cancelled.
	MonitorResults(ctx context.Context, interval time.Duration) (<-chan *Result, error)
}

// ProofVerifier validates that a cleartext is the genuine decryption result
// for the ciphertext set bound to a token.
type ProofVerifier interface {
	VerifyAuthenticity(token string, cleartext *big.Int, proof []byte) bool
}

// Result carries a completed decryption from the oracle back to the core.
type Result struct {
	Token     string   `json:"token"`
	Cleartext *big.Int `json:"cleartext"`
	Proof     []byte   `json:"proof"`
}
