// Package settle implements the settlement core: the access and rate-limit
// guard, the batch ledger, the homomorphic aggregation of ciphertext handles
// and the request/verify/finalize settlement protocol over the asynchronous
// decryption oracle.
//
// All public operations of the Engine are serialized by a single mutex and
// persist through a single storage transaction, so every operation applies
// fully or not at all. The settlement trigger is non-blocking: it records a
// request keyed by the oracle token and returns; the matching decryption
// result arrives later as an independent call to OnDecryptionResult, which
// accepts at most one result per token and only after re-deriving the state
// commitment stored at request time.
package settle
