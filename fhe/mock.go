package fhe

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
)

// mockHandleTag prefixes every mock handle so malformed inputs are caught
// early instead of being silently summed.
const mockHandleTag = 0x01

// MockCollaborator implements Adder, Oracle and ProofVerifier in-process.
// A mock handle is just the tagged big-endian plaintext, so addition is
// plain integer addition and "decryption" is decoding. Proofs are keccak256
// over a private secret, the token and the cleartext, which gives tests a
// verifier that actually rejects forged proofs.
type MockCollaborator struct {
	secret []byte

	mu      sync.Mutex
	results map[string]*Result
	pending []*Result
}

// NewMockCollaborator creates a mock collaborator with the given proof
// secret. Any non-empty byte string works; tests often use a short literal.
func NewMockCollaborator(secret []byte) *MockCollaborator {
	return &MockCollaborator{
		secret:  secret,
		results: make(map[string]*Result),
	}
}

// NewHandle encrypts (in mock terms: encodes) a plaintext value.
func NewHandle(value *big.Int) Handle {
	return append([]byte{mockHandleTag}, value.Bytes()...)
}

func decodeHandle(h Handle) (*big.Int, error) {
	if len(h) == 0 || h[0] != mockHandleTag {
		return nil, fmt.Errorf("malformed mock handle: %s", h)
	}
	return new(big.Int).SetBytes(h[1:]), nil
}

// Add implements Adder. It is deterministic, associative and commutative.
func (m *MockCollaborator) Add(a, b Handle) (Handle, error) {
	x, err := decodeHandle(a)
	if err != nil {
		return nil, err
	}
	y, err := decodeHandle(b)
	if err != nil {
		return nil, err
	}
	return NewHandle(x.Add(x, y)), nil
}

// RequestDecryption implements Oracle. The result is computed immediately
// but only delivered through MonitorResults, preserving the asynchronous
// shape of the real collaborator.
func (m *MockCollaborator) RequestDecryption(_ context.Context, aggregate Handle) (string, error) {
	cleartext, err := decodeHandle(aggregate)
	if err != nil {
		return "", err
	}
	token := uuid.NewString()
	res := &Result{
		Token:     token,
		Cleartext: cleartext,
		Proof:     m.proofFor(token, cleartext),
	}
	m.mu.Lock()
	m.results[token] = res
	m.pending = append(m.pending, res)
	m.mu.Unlock()
	return token, nil
}

// MonitorResults implements Oracle. Pending results are drained on every
// tick until the context is cancelled.
func (m *MockCollaborator) MonitorResults(ctx context.Context, interval time.Duration) (<-chan *Result, error) {
	ch := make(chan *Result)
	go func() {
		defer close(ch)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.mu.Lock()
				pending := m.pending
				m.pending = nil
				m.mu.Unlock()
				for _, res := range pending {
					select {
					case ch <- res:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()
	return ch, nil
}

// VerifyAuthenticity implements ProofVerifier.
func (m *MockCollaborator) VerifyAuthenticity(token string, cleartext *big.Int, proof []byte) bool {
	if cleartext == nil {
		return false
	}
	return bytes.Equal(proof, m.proofFor(token, cleartext))
}

// Result returns the computed result for a token, for tests that deliver
// the callback by hand instead of through MonitorResults.
func (m *MockCollaborator) Result(token string) (*Result, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.results[token]
	return res, ok
}

func (m *MockCollaborator) proofFor(token string, cleartext *big.Int) []byte {
	return crypto.Keccak256(m.secret, []byte(token), cleartext.Bytes())
}
