package segyio

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/phil-mansfield/segy/lib/codec"
)

// SampleFormat is the data sample format code stored in bytes 3225-3226 of a
// SEG-Y file.
type SampleFormat uint16

const (
	FormatIBM       SampleFormat = 1
	FormatInt32     SampleFormat = 2
	FormatInt16     SampleFormat = 3
	FormatFixedGain SampleFormat = 4
	FormatIEEE32    SampleFormat = 5
	FormatIEEE64    SampleFormat = 6
	FormatInt24     SampleFormat = 7
	FormatInt8      SampleFormat = 8
	FormatInt64     SampleFormat = 9
	FormatUint32    SampleFormat = 10
	FormatUint16    SampleFormat = 11
	FormatUint64    SampleFormat = 12
	FormatUint24    SampleFormat = 15
	FormatUint8     SampleFormat = 16
)

var formatNames = map[SampleFormat]string{
	FormatIBM:       "4-byte IBM float",
	FormatInt32:     "4-byte signed integer",
	FormatInt16:     "2-byte signed integer",
	FormatFixedGain: "4-byte fixed point with gain",
	FormatIEEE32:    "4-byte IEEE float",
	FormatIEEE64:    "8-byte IEEE float",
	FormatInt24:     "3-byte signed integer",
	FormatInt8:      "1-byte signed integer",
	FormatInt64:     "8-byte signed integer",
	FormatUint32:    "4-byte unsigned integer",
	FormatUint16:    "2-byte unsigned integer",
	FormatUint64:    "8-byte unsigned integer",
	FormatUint24:    "3-byte unsigned integer",
	FormatUint8:     "1-byte unsigned integer",
}

func (f SampleFormat) String() string {
	if name, ok := formatNames[f]; ok {
		return fmt.Sprintf("%s (%d)", name, uint16(f))
	}
	return fmt.Sprintf("unknown format (%d)", uint16(f))
}

// Size returns the number of bytes in a single sample.
func (f SampleFormat) Size() (int, error) {
	switch f {
	case FormatInt8, FormatUint8:
		return 1, nil
	case FormatInt16, FormatUint16:
		return 2, nil
	case FormatInt24, FormatUint24:
		return 3, nil
	case FormatIBM, FormatInt32, FormatFixedGain, FormatIEEE32, FormatUint32:
		return 4, nil
	case FormatIEEE64, FormatInt64, FormatUint64:
		return 8, nil
	}
	return 0, &DecodeError{
		Field:  "SampleFormatCode",
		Reason: fmt.Sprintf("%d is not a known sample format code", uint16(f)),
	}
}

// signed returns whether an integer format is two's complement.
func (f SampleFormat) signed() bool {
	switch f {
	case FormatUint8, FormatUint16, FormatUint24, FormatUint32, FormatUint64:
		return false
	}
	return true
}

// Decode decodes len(out) samples from b, which must contain exactly that
// many samples.
func (f SampleFormat) Decode(
	order binary.ByteOrder, b []byte, out []float64,
) error {
	size, err := f.Size()
	if err != nil {
		return err
	}
	if len(b) != size*len(out) {
		return &DecodeError{
			Field: "trace samples", Width: size * len(out), Got: len(b),
		}
	}

	switch f {
	case FormatIBM:
		for i := range out {
			out[i] = codec.IBMToFloat(order.Uint32(b[4*i:]))
		}
	case FormatIEEE32:
		for i := range out {
			out[i] = float64(math.Float32frombits(order.Uint32(b[4*i:])))
		}
	case FormatIEEE64:
		for i := range out {
			out[i] = math.Float64frombits(order.Uint64(b[8*i:]))
		}
	case FormatUint64:
		for i := range out {
			out[i] = float64(order.Uint64(b[8*i:]))
		}
	case FormatFixedGain:
		return &DecodeError{
			Field: "trace samples",
			Reason: "format 4 (fixed point with gain) is obsolete and " +
				"cannot be decoded",
		}
	default:
		signed := f.signed()
		for i := range out {
			v, err := codec.ReadInt(order, b[size*i:size*(i+1)], size, signed)
			if err != nil {
				return err
			}
			out[i] = float64(v)
		}
	}

	return nil
}

// Encode is the inverse of Decode. Integer formats round to the nearest
// integer and do not check for overflow.
func (f SampleFormat) Encode(
	order binary.ByteOrder, samples []float64, b []byte,
) error {
	size, err := f.Size()
	if err != nil {
		return err
	}
	if len(b) != size*len(samples) {
		return &DecodeError{
			Field: "trace samples", Width: size * len(samples), Got: len(b),
		}
	}

	switch f {
	case FormatIBM:
		for i, x := range samples {
			order.PutUint32(b[4*i:], codec.FloatToIBM(x))
		}
	case FormatIEEE32:
		for i, x := range samples {
			order.PutUint32(b[4*i:], math.Float32bits(float32(x)))
		}
	case FormatIEEE64:
		for i, x := range samples {
			order.PutUint64(b[8*i:], math.Float64bits(x))
		}
	case FormatUint64:
		for i, x := range samples {
			order.PutUint64(b[8*i:], uint64(math.Round(x)))
		}
	case FormatFixedGain:
		return &DecodeError{
			Field:  "trace samples",
			Reason: "format 4 (fixed point with gain) cannot be encoded",
		}
	default:
		for i, x := range samples {
			err := codec.PutInt(order, b[size*i:size*(i+1)], size,
				int64(math.Round(x)))
			if err != nil {
				return err
			}
		}
	}

	return nil
}
