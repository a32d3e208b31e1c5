package storage

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Artifact encoding/decoding. Deterministic CBOR so identical artifacts
// always produce identical bytes.
func encodeArtifact(a any) ([]byte, error) {
	encOpts := cbor.CoreDetEncOptions()
	em, err := encOpts.EncMode()
	if err != nil {
		return nil, fmt.Errorf("encode artifact: %w", err)
	}
	return em.Marshal(a)
}

func decodeArtifact(data []byte, out any) error {
	return cbor.Unmarshal(data, out)
}
