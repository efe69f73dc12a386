package model

import "fmt"

// Field describes a bitfield in a 32-bit register: bits [High:Low] inclusive.
// A Field is constructed once (typically as a package-level var) and applied
// to a value via Encode, producing a shifted, masked contribution that is
// combined with other fields' contributions using bitwise OR.
type Field struct {
	high uint8
	low  uint8
}

// NewField builds a Field over bits [high:low]. It panics if the bounds are
// invalid — these are compile-time-known register layout constants, so a
// violation here is a programming error in this package, not a runtime input
// error.
func NewField(high, low uint8) Field {
	if high < low {
		panic(fmt.Sprintf("model: field high bit %d below low bit %d", high, low))
	}
	if high >= 32 {
		panic(fmt.Sprintf("model: field high bit %d does not fit a 32-bit register", high))
	}
	numBits := high - low + 1
	unshiftedMask := uint32(1)<<numBits - 1
	if (low != high) == (unshiftedMask == 1) {
		panic(fmt.Sprintf("model: field [%d:%d] mask %#x inconsistent with single-bit width", high, low, unshiftedMask))
	}
	return Field{high: high, low: low}
}

// Bit builds a single-bit Field at the given position.
func Bit(pos uint8) Field {
	return NewField(pos, pos)
}

// NumBits returns the number of bits this field occupies.
func (f Field) NumBits() uint8 {
	return f.high - f.low + 1
}

// UnshiftedMask returns the mask for this field's value before shifting.
func (f Field) UnshiftedMask() uint32 {
	return uint32(1)<<f.NumBits() - 1
}

// ShiftedMask returns the mask for this field's value after shifting into
// register position.
func (f Field) ShiftedMask() uint32 {
	return f.UnshiftedMask() << f.low
}

// Encode maps a logical value into its shifted, masked register contribution.
func (f Field) Encode(value uint32) uint32 {
	return (value << f.low) & f.ShiftedMask()
}

// EncodeBool encodes a boolean as a 1-bit field: 1 if true, 0 if false.
func (f Field) EncodeBool(value bool) uint32 {
	if value {
		return f.Encode(1)
	}
	return f.Encode(0)
}

// Extract recovers the logical value of this field from a register value.
func (f Field) Extract(register uint32) uint32 {
	return (register & f.ShiftedMask()) >> f.low
}

// Compose ORs together the encoded contributions of one or more fields. It
// exists so call sites read as a flat list of field applications, matching
// the "value = fieldA(x) | fieldB(y) | ..." idiom this register layout was
// originally expressed in.
func Compose(values ...uint32) uint32 {
	var result uint32
	for _, v := range values {
		result |= v
	}
	return result
}
