// Package wire implements the Wayland wire format: little-endian 32-bit
// words, length-prefixed strings and arrays, signed 24.8 fixed-point
// numbers, and the file-descriptor side channel that accompanies a message
// stream but never appears in it.
package wire

// Fixed is a signed 24.8 fixed-point number, as used for sub-pixel
// coordinates on the wire. The wire representation is a plain int32; no
// conversion is required for routing, only for interfaces that interpret
// the value.
type Fixed int32

// Float64 converts a Fixed to a float64.
func (f Fixed) Float64() float64 {
	return float64(f) / 256.0
}

// FixedFromFloat64 builds a Fixed from a float64.
func FixedFromFloat64(v float64) Fixed {
	return Fixed(v * 256.0)
}
