package settle

import (
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/confidsys/batchsettle/fhe"
	"github.com/confidsys/batchsettle/types"
)

// aggregateHandles folds the ordered ciphertext handles of a batch into a
// single handle using the external homomorphic-add capability. It is a pure
// function of the ordered list: the same handles in the same order always
// yield a bit-identical result, which the settlement protocol relies on.
func aggregateHandles(adder fhe.Adder, handles []fhe.Handle) (fhe.Handle, error) {
	if len(handles) == 0 {
		return nil, ErrEmptyBatch
	}
	acc := handles[0]
	for _, h := range handles[1:] {
		var err error
		if acc, err = adder.Add(acc, h); err != nil {
			return nil, fmt.Errorf("homomorphic add: %w", err)
		}
	}
	return acc, nil
}

// commitment digests the ordered ciphertext handles plus the system
// identity salt. It binds a settlement request to the exact data the
// aggregate was computed over.
func commitment(handles []fhe.Handle, identity types.HexBytes) types.HexBytes {
	data := make([][]byte, 0, len(handles)+1)
	for _, h := range handles {
		data = append(data, h)
	}
	data = append(data, identity)
	return crypto.Keccak256(data...)
}
