package codec

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBigEndian(t *testing.T) {
	tests := []struct {
		b      []byte
		signed bool
		exp    int64
	}{
		{[]byte{0x7f}, true, 127},
		{[]byte{0xff}, true, -1},
		{[]byte{0xff}, false, 255},
		{[]byte{0x01, 0x00}, true, 256},
		{[]byte{0xff, 0xfe}, true, -2},
		{[]byte{0xff, 0xfe}, false, 65534},
		{[]byte{0x80, 0x00, 0x00}, true, -8388608},
		{[]byte{0x80, 0x00, 0x00}, false, 8388608},
		{[]byte{0x00, 0x00, 0x30, 0x39}, true, 12345},
		{[]byte{0xff, 0xff, 0xcf, 0xc7}, true, -12345},
		{[]byte{0xff, 0xff, 0xff, 0xff}, false, 4294967295},
		{[]byte{0, 0, 0, 0, 0, 0, 0x01, 0x00}, false, 256},
		{[]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, true, -1},
	}

	for i := range tests {
		v, err := ReadBigEndian(tests[i].b, len(tests[i].b), tests[i].signed)
		require.NoError(t, err)
		if v != tests[i].exp {
			t.Errorf("%d) Expected %x (signed = %v) to decode to %d, got %d",
				i, tests[i].b, tests[i].signed, tests[i].exp, v)
		}
	}
}

func TestReadBigEndianErrors(t *testing.T) {
	_, err := ReadBigEndian([]byte{1, 2, 3}, 4, true)
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, 4, decodeErr.Width)
	assert.Equal(t, 3, decodeErr.Got)

	_, err = ReadBigEndian(make([]byte, 5), 5, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "5-byte integers are not supported")
}

func TestIntRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 127, -128, 1000, -1000, 32767, -32768,
		8388607, -8388608, 2147483647, -2147483648, 1 << 40, -(1 << 40)}
	orders := []binary.ByteOrder{binary.BigEndian, binary.LittleEndian}

	for _, order := range orders {
		for _, width := range []int{1, 2, 3, 4, 8} {
			bits := uint(8 * width)
			for _, v := range values {
				if width < 8 && (v < -(1<<(bits-1)) || v >= 1<<(bits-1)) {
					continue
				}
				b := make([]byte, width)
				require.NoError(t, PutInt(order, b, width, v))
				got, err := ReadInt(order, b, width, true)
				require.NoError(t, err)
				assert.Equal(t, v, got, "width %d, order %s", width, order)
			}
		}
	}
}

func TestIBMToFloat(t *testing.T) {
	tests := []struct {
		bits uint32
		exp  float64
	}{
		{0x00000000, 0},
		{0x80000000, 0},
		{0x41100000, 1},
		{0xc1100000, -1},
		{0x40800000, 0.5},
		{0x3f800000, 0.03125},
		{0x42640000, 100},
		{0x4276a000, 118.625},
		{0xc276a000, -118.625},
		{0x7fffffff, math.Ldexp(1<<24-1, 228)},
	}

	for i := range tests {
		if v := IBMToFloat(tests[i].bits); v != tests[i].exp {
			t.Errorf("%d) Expected IBMToFloat(0x%08x) = %g, got %g",
				i, tests[i].bits, tests[i].exp, v)
		}
	}

	v, err := ReadIBMFloat([]byte{0xc2, 0x76, 0xa0, 0x00})
	require.NoError(t, err)
	assert.Equal(t, -118.625, v)

	_, err = ReadIBMFloat([]byte{0xc2, 0x76})
	assert.Error(t, err)
}

func TestFloatToIBM(t *testing.T) {
	tests := []struct {
		f   float64
		exp uint32
	}{
		{0, 0},
		{1, 0x41100000},
		{-1, 0xc1100000},
		{0.5, 0x40800000},
		{0.03125, 0x3f800000},
		{100, 0x42640000},
		{118.625, 0x4276a000},
		{-118.625, 0xc276a000},
		{math.Inf(1), 0x7fffffff},
		{math.Inf(-1), 0xffffffff},
		{1e300, 0x7fffffff},
		{math.NaN(), 0},
	}

	for i := range tests {
		if bits := FloatToIBM(tests[i].f); bits != tests[i].exp {
			t.Errorf("%d) Expected FloatToIBM(%g) = 0x%08x, got 0x%08x",
				i, tests[i].f, tests[i].exp, bits)
		}
	}
}

func TestIBMRoundTrip(t *testing.T) {
	// Every value here has at most 24 significant bits, so it is exactly
	// representable.
	values := []float64{1, -1, 3.5, -1234.5, 0.1875, 65535, -8388607,
		1.0 / 1024, 123456, -0.0078125}

	for _, v := range values {
		b := make([]byte, 4)
		require.NoError(t, PutIBMFloat(b, v))
		got, err := ReadIBMFloat(b)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}

	// Values which aren't exactly representable should still be close.
	for _, v := range []float64{0.1, math.Pi, -2.0 / 3} {
		got := IBMToFloat(FloatToIBM(v))
		assert.InEpsilon(t, v, got, 1e-6)
	}
}

func TestReadIEEEFloat(t *testing.T) {
	b4 := make([]byte, 4)
	binary.BigEndian.PutUint32(b4, math.Float32bits(-2.25))
	v, err := ReadIEEEFloat(b4)
	require.NoError(t, err)
	assert.Equal(t, -2.25, v)

	b8 := make([]byte, 8)
	binary.BigEndian.PutUint64(b8, math.Float64bits(1e-300))
	v, err = ReadIEEEFloat(b8)
	require.NoError(t, err)
	assert.Equal(t, 1e-300, v)

	_, err = ReadIEEEFloat(make([]byte, 6))
	assert.Error(t, err)
}

func TestEBCDIC(t *testing.T) {
	assert.Equal(t, []byte{0xc3, 0x40, 0xf1}, ASCIIToEBCDIC("C 1"))
	assert.Equal(t, "C 1", EBCDICToASCII([]byte{0xc3, 0x40, 0xf1}))

	text := "C 1 CLIENT: ACME SEISMIC  LINE: 1001-A  (X,Y) = 12.5; 40%"
	assert.Equal(t, text, EBCDICToASCII(ASCIIToEBCDIC(text)))

	// No EBCDIC equivalent.
	assert.Equal(t, []byte{0xc1, ebcdicQuestion}, ASCIIToEBCDIC("A世"))

	// 0x4a is a cent sign and 0x5f is a not sign, neither of which is ASCII.
	assert.Equal(t, "?A?", EBCDICToASCII([]byte{0x4a, 0xc1, 0x5f}))
	b := make([]byte, 3200)
	for i := range b {
		b[i] = byte(i)
	}
	assert.Len(t, EBCDICToASCII(b), 3200)

	assert.Equal(t, byte('~'), ToASCII('~'))
	assert.Equal(t, byte('?'), ToASCII('¢'))
}
