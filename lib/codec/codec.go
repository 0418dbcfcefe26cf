/*package codec contains the fixed-width decoders that everything else in the
SEG-Y reader is built on: big-endian integers of arbitrary width, IBM and IEEE
floats, and EBCDIC text. All of the functions in this package are pure.
*/
package codec

import (
	"encoding/binary"
	"fmt"
	"math"
)

// DecodeError is returned when a byte slice can't be decoded as the requested
// fixed-width value, usually because it has the wrong length.
type DecodeError struct {
	// Field is the name of the value being decoded, if known.
	Field string
	// Width is the number of bytes that were expected and Got is the number
	// of bytes that were supplied.
	Width, Got int
	// Reason is a free-form description used when the problem isn't the
	// length of the slice.
	Reason string
}

func (e *DecodeError) Error() string {
	name := e.Field
	if name == "" {
		name = "value"
	}
	if e.Reason != "" {
		return fmt.Sprintf("segy: cannot decode %s: %s", name, e.Reason)
	}
	return fmt.Sprintf("segy: cannot decode %s: expected %d bytes, got %d",
		name, e.Width, e.Got)
}

// ReadBigEndian decodes a big-endian integer that is width bytes wide. Widths
// of 1, 2, 3, 4, and 8 bytes are supported. If signed is true, the value is
// interpreted as two's complement. Unsigned 8-byte values larger than
// math.MaxInt64 wrap around.
func ReadBigEndian(b []byte, width int, signed bool) (int64, error) {
	return ReadInt(binary.BigEndian, b, width, signed)
}

// ReadInt is the same as ReadBigEndian, but with an arbitrary byte order.
func ReadInt(
	order binary.ByteOrder, b []byte, width int, signed bool,
) (int64, error) {
	if len(b) != width {
		return 0, &DecodeError{Width: width, Got: len(b)}
	}

	switch width {
	case 1:
		if signed {
			return int64(int8(b[0])), nil
		}
		return int64(b[0]), nil
	case 2:
		u := order.Uint16(b)
		if signed {
			return int64(int16(u)), nil
		}
		return int64(u), nil
	case 3:
		u := uint24(order, b)
		if signed && u&0x800000 != 0 {
			return int64(u) - 1<<24, nil
		}
		return int64(u), nil
	case 4:
		u := order.Uint32(b)
		if signed {
			return int64(int32(u)), nil
		}
		return int64(u), nil
	case 8:
		return int64(order.Uint64(b)), nil
	}

	return 0, &DecodeError{
		Width: width, Got: len(b),
		Reason: fmt.Sprintf("%d-byte integers are not supported", width),
	}
}

// PutBigEndian writes the lowest width bytes of v into b in big-endian order.
// It is the inverse of ReadBigEndian.
func PutBigEndian(b []byte, width int, v int64) error {
	return PutInt(binary.BigEndian, b, width, v)
}

// PutInt is the same as PutBigEndian, but with an arbitrary byte order.
func PutInt(order binary.ByteOrder, b []byte, width int, v int64) error {
	if len(b) != width {
		return &DecodeError{Width: width, Got: len(b)}
	}

	switch width {
	case 1:
		b[0] = byte(v)
	case 2:
		order.PutUint16(b, uint16(v))
	case 3:
		u := uint32(v) & 0xffffff
		if order == binary.BigEndian {
			b[0], b[1], b[2] = byte(u>>16), byte(u>>8), byte(u)
		} else {
			b[0], b[1], b[2] = byte(u), byte(u>>8), byte(u>>16)
		}
	case 4:
		order.PutUint32(b, uint32(v))
	case 8:
		order.PutUint64(b, uint64(v))
	default:
		return &DecodeError{
			Width: width, Got: len(b),
			Reason: fmt.Sprintf("%d-byte integers are not supported", width),
		}
	}
	return nil
}

func uint24(order binary.ByteOrder, b []byte) uint32 {
	if order == binary.BigEndian {
		return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
	}
	return uint32(b[2])<<16 | uint32(b[1])<<8 | uint32(b[0])
}

// ReadIEEEFloat decodes a big-endian IEEE 754 float. b must be either 4 or 8
// bytes long.
func ReadIEEEFloat(b []byte) (float64, error) {
	return ReadFloat(binary.BigEndian, b)
}

// ReadFloat is the same as ReadIEEEFloat, but with an arbitrary byte order.
func ReadFloat(order binary.ByteOrder, b []byte) (float64, error) {
	switch len(b) {
	case 4:
		return float64(math.Float32frombits(order.Uint32(b))), nil
	case 8:
		return math.Float64frombits(order.Uint64(b)), nil
	}
	return 0, &DecodeError{
		Width: 4, Got: len(b),
		Reason: fmt.Sprintf("IEEE floats must be 4 or 8 bytes, not %d", len(b)),
	}
}
