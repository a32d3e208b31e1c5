package types

// BatchStatus is the lifecycle state of a contribution batch.
type BatchStatus uint8

const (
	// BatchStatusOpen accepts contributions.
	BatchStatusOpen BatchStatus = iota + 1
	// BatchStatusClosed accepts no more contributions and may be settled.
	BatchStatusClosed
)

// String returns a human readable representation of the batch status.
func (s BatchStatus) String() string {
	switch s {
	case BatchStatusOpen:
		return "open"
	case BatchStatusClosed:
		return "closed"
	default:
		return "unknown"
	}
}
