package cbor

import "math"

const (
	byteValueCount = math.MaxUint8 + 1
)
