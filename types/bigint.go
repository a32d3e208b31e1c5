package types

import (
	"fmt"
	"math/big"

	"github.com/fxamacker/cbor/v2"
)

// BigInt wraps math/big.Int so it marshals as a base-10 string in both JSON
// and CBOR, keeping plaintext amounts readable on the wire and stable in the
// store. The zero value is ready to use.
type BigInt big.Int

// NewBigInt returns a BigInt holding the given int64 value.
func NewBigInt(x int64) *BigInt {
	return (*BigInt)(big.NewInt(x))
}

// MathBigInt converts b to a standard *big.Int.
func (b *BigInt) MathBigInt() *big.Int {
	return (*big.Int)(b)
}

// String returns the base-10 representation.
func (b *BigInt) String() string {
	return (*big.Int)(b).String()
}

// Add sets b to x+y and returns b.
func (b *BigInt) Add(x, y *BigInt) *BigInt {
	(*big.Int)(b).Add((*big.Int)(x), (*big.Int)(y))
	return b
}

// MarshalText implements encoding.TextMarshaler, which encoding/json uses.
func (b *BigInt) MarshalText() ([]byte, error) {
	return (*big.Int)(b).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *BigInt) UnmarshalText(data []byte) error {
	return (*big.Int)(b).UnmarshalText(data)
}

// MarshalCBOR implements cbor.Marshaler.
func (b *BigInt) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(b.String())
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (b *BigInt) UnmarshalCBOR(data []byte) error {
	var s string
	if err := cbor.Unmarshal(data, &s); err != nil {
		return err
	}
	if _, ok := (*big.Int)(b).SetString(s, 10); !ok {
		return fmt.Errorf("invalid base-10 integer: %q", s)
	}
	return nil
}
