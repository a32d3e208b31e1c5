// Package fhe defines the opaque ciphertext handle exchanged with the
// external homomorphic-computation service, and the collaborator contracts
// the settlement core consumes: homomorphic addition, asynchronous
// decryption and authenticity verification. The core never inspects a
// handle's contents and never decrypts locally; both capabilities live
// behind these interfaces. A deterministic in-process mock is provided for
// tests and local operation.
package fhe
