package segyio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/segy/lib/codec"
)

func TestWireStructSizes(t *testing.T) {
	if size := binary.Size(&BinaryHeader{}); size != BinaryHeaderSize {
		t.Errorf("Expected BinaryHeader to have size %d, got %d.",
			BinaryHeaderSize, size)
	}
	if size := binary.Size(&TraceHeader{}); size != TraceHeaderSize {
		t.Errorf("Expected TraceHeader to have size %d, got %d.",
			TraceHeaderSize, size)
	}
	if size := binary.Size(&ExtendedTraceHeader{}); size != TraceHeaderSize {
		t.Errorf("Expected ExtendedTraceHeader to have size %d, got %d.",
			TraceHeaderSize, size)
	}
}

func TestBinaryHeaderOffsets(t *testing.T) {
	hd := &BinaryHeader{
		SamplesPerTrace:         0x0102,
		SampleFormatCode:        0x0304,
		MeasurementSystem:       0x0506,
		ExtendedSamplesPerTrace: 0x0708090a,
		EndianConstant:          0x01020304,
		MajorSegyRevNo:          2,
		MinorSegyRevNo:          1,
		ExtendedTextHeaderCount: -1,
		FirstTraceOffset:        0x1112131415161718,
		TrailerRecords:          0x21222324,
	}
	buf := &bytes.Buffer{}
	require.NoError(t, binary.Write(buf, binary.BigEndian, hd))
	b := buf.Bytes()

	tests := []struct {
		offset int
		bytes  []byte
	}{
		{20, []byte{0x01, 0x02}},
		{24, []byte{0x03, 0x04}},
		{54, []byte{0x05, 0x06}},
		{68, []byte{0x07, 0x08, 0x09, 0x0a}},
		{96, []byte{0x01, 0x02, 0x03, 0x04}},
		{300, []byte{2, 1}},
		{304, []byte{0xff, 0xff}},
		{320, []byte{0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18}},
		{328, []byte{0x21, 0x22, 0x23, 0x24}},
	}

	for i := range tests {
		got := b[tests[i].offset : tests[i].offset+len(tests[i].bytes)]
		if !bytes.Equal(got, tests[i].bytes) {
			t.Errorf("%d) Expected bytes %x at offset %d, got %x.",
				i, tests[i].bytes, tests[i].offset, got)
		}
	}
}

func TestTraceHeaderOffsets(t *testing.T) {
	hd := &TraceHeader{
		CDP: 0x01020304, CoordinateScalar: 0x0506, SourceX: 0x0708090a,
		SampleCount: 0x0b0c, CdpX: 0x11121314, Inline: 0x21222324,
		SpScalar: 0x3132, HeaderName: [8]byte{'S', 'E', 'G', '0'},
	}
	buf := &bytes.Buffer{}
	require.NoError(t, binary.Write(buf, binary.BigEndian, hd))
	b := buf.Bytes()

	tests := []struct {
		offset int
		bytes  []byte
	}{
		{20, []byte{0x01, 0x02, 0x03, 0x04}},
		{70, []byte{0x05, 0x06}},
		{72, []byte{0x07, 0x08, 0x09, 0x0a}},
		{114, []byte{0x0b, 0x0c}},
		{180, []byte{0x11, 0x12, 0x13, 0x14}},
		{188, []byte{0x21, 0x22, 0x23, 0x24}},
		{200, []byte{0x31, 0x32}},
		{232, []byte("SEG0")},
	}

	for i := range tests {
		got := b[tests[i].offset : tests[i].offset+len(tests[i].bytes)]
		if !bytes.Equal(got, tests[i].bytes) {
			t.Errorf("%d) Expected bytes %x at offset %d, got %x.",
				i, tests[i].bytes, tests[i].offset, got)
		}
	}
	assert.Equal(t, "SEG0", hd.Name())
}

func readFakeHeader(t *testing.T, ff *FakeFile, opts *Options) (*FileHeader, error) {
	t.Helper()
	rd, err := ff.Reader()
	require.NoError(t, err)
	return ReadBinaryHeader(rd, opts)
}

func TestReadBinaryHeader(t *testing.T) {
	ff := NewFakeFile(FormatIEEE32, 100, 10)
	hd, err := readFakeHeader(t, ff, nil)
	require.NoError(t, err)

	assert.Equal(t, Revision{1, 0}, hd.Revision)
	assert.Equal(t, FormatIEEE32, hd.Format)
	assert.Equal(t, 100, hd.SamplesPerTrace)
	assert.Equal(t, 4000.0, hd.SampleInterval)
	assert.Equal(t, 0, hd.ExtendedTextHeaders)
	assert.Equal(t, 0, hd.ExtendedTraceHeaders)
	assert.True(t, hd.FixedLength)
	assert.Equal(t, 1, hd.MeasurementSystem)
	assert.Equal(t, binary.BigEndian, hd.ByteOrder)
	assert.Equal(t, ff.Binary, hd.Raw)
}

func TestReadBinaryHeaderRevisions(t *testing.T) {
	// Revision 1 files can have garbage in the revision 2 fields.
	ff := NewFakeFile(FormatIBM, 10, 1)
	ff.Binary.ExtendedSamplesPerTrace = 5000
	ff.Binary.MaxExtendedTraceHeaders = 3
	ff.Binary.FirstTraceOffset = 12
	hd, err := readFakeHeader(t, ff, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, hd.SamplesPerTrace)
	assert.Equal(t, 0, hd.ExtendedTraceHeaders)
	assert.Equal(t, int64(0), hd.FirstTraceOffset)
	assert.Zero(t, hd.Raw.ExtendedSamplesPerTrace)

	// But revision 2 files use them.
	ff.Binary.MajorSegyRevNo = 2
	ff.Binary.FirstTraceOffset = 0
	hd, err = readFakeHeader(t, ff, nil)
	require.NoError(t, err)
	assert.Equal(t, Revision{2, 0}, hd.Revision)
	assert.Equal(t, 5000, hd.SamplesPerTrace)
	assert.Equal(t, 3, hd.ExtendedTraceHeaders)

	// Revision 0 doesn't have extended text headers.
	ff = NewFakeFile(FormatIBM, 10, 1)
	ff.Binary.MajorSegyRevNo = 0
	ff.Binary.ExtendedTextHeaderCount = 4
	hd, err = readFakeHeader(t, ff, nil)
	require.NoError(t, err)
	assert.Equal(t, Revision{0, 0}, hd.Revision)
	assert.Equal(t, 0, hd.ExtendedTextHeaders)
	assert.False(t, hd.FixedLength)
}

func TestReadBinaryHeaderUnknownRevision(t *testing.T) {
	ff := NewFakeFile(FormatIBM, 10, 1)
	ff.Binary.MajorSegyRevNo = 7
	ff.Binary.MinorSegyRevNo = 3
	ff.Binary.MaxExtendedTraceHeaders = 2

	buf := &bytes.Buffer{}
	logger := zerolog.New(buf)
	hd, err := readFakeHeader(t, ff, &Options{Logger: &logger})
	require.NoError(t, err)
	assert.Equal(t, Revision{1, 0}, hd.Revision)
	assert.Equal(t, 0, hd.ExtendedTraceHeaders)
	assert.Equal(t, uint8(7), hd.Raw.MajorSegyRevNo)
	assert.Contains(t, buf.String(), "Unrecognized SEG-Y revision")
	assert.Contains(t, buf.String(), `"level":"warn"`)

	_, err = readFakeHeader(t, ff, &Options{Strictness: CrashOnError})
	var revErr *InvalidRevisionError
	require.True(t, errors.As(err, &revErr))
	assert.Equal(t, uint8(7), revErr.Major)
	assert.Equal(t, uint8(3), revErr.Minor)
}

func TestReadBinaryHeaderByteOrder(t *testing.T) {
	ff := NewFakeFile(FormatIEEE32, 100, 2)
	ff.Binary.MajorSegyRevNo = 2
	ff.Binary.EndianConstant = endianNative
	ff.Order = binary.LittleEndian

	hd, err := readFakeHeader(t, ff, nil)
	require.NoError(t, err)
	assert.Equal(t, binary.LittleEndian, hd.ByteOrder)
	assert.Equal(t, 100, hd.SamplesPerTrace)
	assert.Equal(t, FormatIEEE32, hd.Format)

	// Forcing the byte order works even without the endian constant.
	ff.Binary.EndianConstant = 0
	ff.Binary.MajorSegyRevNo = 1
	hd, err = readFakeHeader(t, ff, &Options{ByteOrder: binary.LittleEndian})
	require.NoError(t, err)
	assert.Equal(t, binary.LittleEndian, hd.ByteOrder)
	assert.Equal(t, 100, hd.SamplesPerTrace)

	// Mixed byte orders aren't supported.
	ff.Binary.MajorSegyRevNo = 2
	ff.Binary.EndianConstant = 0x02010403
	_, err = readFakeHeader(t, ff, nil)
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "EndianConstant", decodeErr.Field)
}

func TestApplyOverride(t *testing.T) {
	ff := NewFakeFile(FormatIBM, 100, 1)
	hd, err := readFakeHeader(t, ff, nil)
	require.NoError(t, err)

	tests := []struct {
		field string
		value float64
		check func(hd *FileHeader) bool
	}{
		{"SamplesPerTrace", 50,
			func(hd *FileHeader) bool { return hd.SamplesPerTrace == 50 }},
		{"SAMPLES_PER_TRACE", 60,
			func(hd *FileHeader) bool { return hd.SamplesPerTrace == 60 }},
		{"sample_format_code", 5,
			func(hd *FileHeader) bool { return hd.Format == FormatIEEE32 }},
		{"ExtendedTraceHeaderCount", 2,
			func(hd *FileHeader) bool { return hd.ExtendedTraceHeaders == 2 }},
		{"AdditionalTextHeaderCount", 3,
			func(hd *FileHeader) bool { return hd.ExtendedTextHeaders == 3 }},
		{"SWEEP_LENTGH", 7,
			func(hd *FileHeader) bool { return hd.Raw.SweepLength == 7 }},
		{"TraceSortCode", -5,
			func(hd *FileHeader) bool { return hd.Raw.TraceSortCode == -5 }},
		{"ExtendedSampleInterval", 0.5,
			func(hd *FileHeader) bool { return hd.SampleInterval == 0.5 }},
		{"FirstTraceOffset", 1 << 40,
			func(hd *FileHeader) bool { return hd.FirstTraceOffset == 1<<40 }},
	}

	for i := range tests {
		out, err := ApplyOverride(hd, tests[i].field, tests[i].value)
		if err != nil {
			t.Errorf("%d) Unexpected error overriding %s: %s",
				i, tests[i].field, err.Error())
			continue
		}
		if !tests[i].check(out) {
			t.Errorf("%d) Overriding %s with %g had no effect.",
				i, tests[i].field, tests[i].value)
		}
	}

	// The original header is never changed.
	assert.Equal(t, ff.Binary, hd.Raw)
	assert.Equal(t, 100, hd.SamplesPerTrace)

	v, err := hd.Field("samples_per_trace")
	require.NoError(t, err)
	assert.Equal(t, 100.0, v)
}

func TestApplyOverrideErrors(t *testing.T) {
	ff := NewFakeFile(FormatIBM, 100, 1)
	hd, err := readFakeHeader(t, ff, nil)
	require.NoError(t, err)

	_, err = ApplyOverride(hd, "NoSuchField", 1)
	var fieldErr *UnknownFieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "NoSuchField", fieldErr.Field)

	tests := []struct {
		field string
		value float64
	}{
		{"SamplesPerTrace", 70000},
		{"SamplesPerTrace", -1},
		{"SamplesPerTrace", 1.5},
		{"TraceSortCode", 40000},
		{"MajorSegyRevNo", 256},
		{"JobID", 1e20},
	}
	for i := range tests {
		_, err := ApplyOverride(hd, tests[i].field, tests[i].value)
		var argErr *InvalidArgumentError
		if !errors.As(err, &argErr) {
			t.Errorf("%d) Expected an *InvalidArgumentError overriding %s "+
				"with %g, got %v.", i, tests[i].field, tests[i].value, err)
		}
	}

	_, err = ApplyOverride(hd, "ExtendedTextHeaderCount", -2)
	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestBinaryHeaderFields(t *testing.T) {
	fields := BinaryHeaderFields()
	assert.Equal(t, "JobID", fields[0])
	assert.Equal(t, "TrailerRecords", fields[len(fields)-1])
	assert.Contains(t, fields, "MaxExtendedTraceHeaders")
	assert.NotContains(t, fields, "_")
}

func TestApplyOverrideExtendedCounterpart(t *testing.T) {
	ff := NewFakeFile(FormatIEEE32, 100, 1)
	ff.Binary.MajorSegyRevNo = 2
	ff.Binary.ExtendedSamplesPerTrace = 100
	ff.Binary.ExtendedSampleInterval = 4000
	hd, err := readFakeHeader(t, ff, nil)
	require.NoError(t, err)

	out, err := ApplyOverride(hd, "SamplesPerTrace", 50)
	require.NoError(t, err)
	assert.Equal(t, 50, out.SamplesPerTrace)
	assert.Equal(t, uint16(50), out.Raw.SamplesPerTrace)
	assert.Equal(t, uint32(50), out.Raw.ExtendedSamplesPerTrace)

	out, err = ApplyOverride(out, "SampleInterval", 2000)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, out.SampleInterval)
	assert.Equal(t, 2000.0, out.Raw.ExtendedSampleInterval)

	// Unset extended fields stay unset.
	ff.Binary.ExtendedSamplesPerTrace = 0
	hd, err = readFakeHeader(t, ff, nil)
	require.NoError(t, err)
	out, err = ApplyOverride(hd, "SamplesPerTrace", 50)
	require.NoError(t, err)
	assert.Equal(t, 50, out.SamplesPerTrace)
	assert.Equal(t, uint32(0), out.Raw.ExtendedSamplesPerTrace)
}

func TestBinaryEdits(t *testing.T) {
	ff := NewFakeFile(FormatIBM, 10, 1)
	ff.Binary.SamplesPerTrace = 0
	ff.Binary.SampleInterval = 0
	ff.Binary.JobID = 10
	ff.Binary.LineNo = codec.FloatToIBM(2000)

	hd, err := readFakeHeader(t, ff, &Options{BinaryEdits: HeaderEdits{
		"samples_per_trace": {Offset: 0, Width: 4, Signed: true},
		"SampleInterval":    {Offset: 4, Width: 4, IBM: true},
	}})
	require.NoError(t, err)
	assert.Equal(t, 10, hd.SamplesPerTrace)
	assert.Equal(t, uint16(10), hd.Raw.SamplesPerTrace)
	assert.Equal(t, 2000.0, hd.SampleInterval)
	// Fields that weren't edited are read from their usual location.
	assert.Equal(t, int32(10), hd.Raw.JobID)

	var fieldErr *UnknownFieldError
	_, err = readFakeHeader(t, ff, &Options{BinaryEdits: HeaderEdits{
		"NoSuchField": {Offset: 0, Width: 4},
	}})
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "NoSuchField", fieldErr.Field)

	invalid := []FieldSpec{
		{Offset: 0, Width: 5},
		{Offset: 0, Width: 0},
		{Offset: 398, Width: 4},
		{Offset: -1, Width: 2},
		{Offset: 0, Width: 2, IBM: true},
	}
	for i := range invalid {
		_, err := readFakeHeader(t, ff, &Options{BinaryEdits: HeaderEdits{
			"SamplesPerTrace": invalid[i],
		}})
		var argErr *InvalidArgumentError
		if !errors.As(err, &argErr) {
			t.Errorf("%d) Expected an *InvalidArgumentError for %+v, got %v.",
				i, invalid[i], err)
		}
	}

	// 100000 doesn't fit in SamplesPerTrace.
	ff.Binary.JobID = 100000
	_, err = readFakeHeader(t, ff, &Options{BinaryEdits: HeaderEdits{
		"SamplesPerTrace": {Offset: 0, Width: 4, Signed: true},
	}})
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "SamplesPerTrace", decodeErr.Field)
}
