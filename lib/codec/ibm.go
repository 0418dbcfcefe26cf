package codec

/* ibm.go handles the IBM System/360 single precision float format. Each value
is a sign bit, a 7-bit base-16 exponent with a bias of 64, and a 24-bit
fraction with an implied radix point before its first bit:

   value = (-1)^sign * 0.fraction * 16^(exponent - 64)

IBM floats are never normalized through the host's float parser. Everything
is done with math.Ldexp so that every representable value is decoded exactly.
*/

import (
	"encoding/binary"
	"math"
)

const (
	ibmSignMask     = 0x80000000
	ibmExponentMask = 0x7f000000
	ibmFractionMask = 0x00ffffff
	ibmBias         = 64
	// ibmMax is the largest IBM float, (1 - 16^-6) * 16^63.
	ibmMax = 0x7fffffff
)

// IBMToFloat converts the bits of an IBM float to a float64. The conversion
// is exact.
func IBMToFloat(bits uint32) float64 {
	fraction := bits & ibmFractionMask
	if fraction == 0 {
		return 0
	}
	exponent := int((bits&ibmExponentMask)>>24) - ibmBias

	// fraction * 2^-24 * 16^exponent
	value := math.Ldexp(float64(fraction), 4*exponent-24)
	if bits&ibmSignMask != 0 {
		value = -value
	}
	return value
}

// ReadIBMFloat decodes a 4-byte big-endian IBM float.
func ReadIBMFloat(b []byte) (float64, error) {
	return ReadIBM(binary.BigEndian, b)
}

// ReadIBM is the same as ReadIBMFloat, but with an arbitrary byte order.
func ReadIBM(order binary.ByteOrder, b []byte) (float64, error) {
	if len(b) != 4 {
		return 0, &DecodeError{Field: "IBM float", Width: 4, Got: len(b)}
	}
	return IBMToFloat(order.Uint32(b)), nil
}

// FloatToIBM converts a float64 to the nearest IBM float. Values too large to
// represent saturate to the largest IBM float with the same sign, and values
// too small to represent become zero. NaNs are not representable and are
// converted to zero.
func FloatToIBM(f float64) uint32 {
	if f == 0 || math.IsNaN(f) {
		return 0
	}

	var sign uint32
	if f < 0 {
		sign = ibmSignMask
		f = -f
	}
	if math.IsInf(f, 1) {
		return sign | ibmMax
	}

	// f = m * 2^e with m in [0.5, 1). We want f = frac * 16^exp16 with frac
	// in [1/16, 1), so exp16 = ceil(e / 4).
	_, e := math.Frexp(f)
	exp16 := e / 4
	if e%4 > 0 {
		exp16++
	}

	fraction := math.Round(math.Ldexp(f, 24-4*exp16))
	if fraction >= 1<<24 {
		// Rounding carried into the next hex digit.
		fraction = math.Round(fraction / 16)
		exp16++
	}

	biased := exp16 + ibmBias
	switch {
	case biased > 127:
		return sign | ibmMax
	case biased < 0:
		// Denormalize. Anything shifted off the end is lost.
		shift := uint(-4 * biased)
		if shift >= 24 {
			return 0
		}
		return sign | uint32(fraction)>>shift
	}

	return sign | uint32(biased)<<24 | uint32(fraction)
}

// PutIBMFloat writes f as a big-endian IBM float into b, which must be 4
// bytes long.
func PutIBMFloat(b []byte, f float64) error {
	if len(b) != 4 {
		return &DecodeError{Field: "IBM float", Width: 4, Got: len(b)}
	}
	binary.BigEndian.PutUint32(b, FloatToIBM(f))
	return nil
}
