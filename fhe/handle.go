package fhe

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// Handle is an opaque reference to an encrypted value held by the external
// homomorphic-computation service. It supports composition through an Adder
// and byte-wise equality, nothing else; no structure may be assumed.
type Handle []byte

// Equal reports whether two handles reference the same ciphertext.
func (h Handle) Equal(other Handle) bool {
	return bytes.Equal(h, other)
}

// IsZero reports whether the handle is empty.
func (h Handle) IsZero() bool {
	return len(h) == 0
}

// String returns the hexadecimal representation with the "0x" prefix.
func (h Handle) String() string {
	return "0x" + hex.EncodeToString(h)
}

// MarshalJSON implements the json.Marshaler interface.
func (h Handle) MarshalJSON() ([]byte, error) {
	return []byte(`"` + h.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (h *Handle) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid JSON string: %q", data)
	}
	s := string(data[1 : len(data)-1])
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	dec, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	*h = dec
	return nil
}
