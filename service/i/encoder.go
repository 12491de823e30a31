package i

import "github.com/beka-birhanu/amazeing/encoder"

// Encoder serializes maze records for storage and transport.
type Encoder interface {
	Marshal(encoder.Record) ([]byte, error)
	Unmarshal([]byte) (encoder.Record, error)
}
