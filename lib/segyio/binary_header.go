package segyio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"reflect"
	"strings"
)

const (
	// TextHeaderSize is the size of the primary and every extended text
	// header.
	TextHeaderSize = 3200
	// BinaryHeaderSize is the size of the binary file header.
	BinaryHeaderSize = 400

	// Values of EndianConstant as read with the wrong and right byte orders.
	endianNative  = 0x01020304
	endianSwapped = 0x04030201
)

// CheckStrictness controls how unrecognized header values are handled.
type CheckStrictness int

const (
	// WarnOnError logs a warning and falls back to a sensible default.
	WarnOnError CheckStrictness = iota
	// CrashOnError returns an error.
	CrashOnError
)

// Revision is a SEG-Y format revision number.
type Revision struct {
	Major, Minor uint8
}

func (r Revision) String() string { return fmt.Sprintf("%d.%d", r.Major, r.Minor) }

// BinaryHeader has the same layout as the raw 400-byte binary file header.
// Fields that were only added in revision 2 are zero in files with earlier
// revisions.
type BinaryHeader struct {
	JobID                   int32
	LineNo                  uint32
	ReelNo                  uint32
	DataTracesPerEnsemble   uint16
	AuxTracesPerEnsemble    uint16
	SampleInterval          uint16
	OriginalSampleInterval  uint16
	SamplesPerTrace         uint16
	OriginalSamplesPerTrace uint16
	SampleFormatCode        uint16
	EnsembleFold            uint16
	TraceSortCode           int16
	VerticalSumCode         uint16
	SweepFreqStart          uint16
	SweepFreqEnd            uint16
	SweepLength             uint16
	SweepType               uint16
	TraceNoSweepChannel     uint16
	SweepTraceTaperStart    uint16
	SweepTraceTaperEnd      uint16
	TaperType               uint16
	CorrelatedDataTraces    uint16
	BinaryGainRecovered     uint16
	AmplitudeRecoveryMethod uint16
	MeasurementSystem       uint16
	ImpulseSignalPolarity   uint16
	VibratoryPolarityCode   uint16

	ExtendedDataTracesPerEnsemble   uint32
	ExtendedAuxTracesPerEnsemble    uint32
	ExtendedSamplesPerTrace         uint32
	ExtendedSampleInterval          float64
	ExtendedOriginalSampleInterval  float64
	ExtendedOriginalSamplesPerTrace uint32
	ExtendedEnsembleFold            uint32
	EndianConstant                  uint32
	_                               [200]byte

	MajorSegyRevNo          uint8
	MinorSegyRevNo          uint8
	FixedLengthTraceFlag    uint16
	ExtendedTextHeaderCount int16
	MaxExtendedTraceHeaders uint32
	TimeBasisCode           uint16
	TracesInStream          uint64
	FirstTraceOffset        uint64
	TrailerRecords          int32
	_                       [68]byte
}

// FileHeader is the binary header of an open file along with the values
// derived from it. A FileHeader is never modified after it is created:
// ApplyOverride returns a new one.
type FileHeader struct {
	// Raw is the binary header after edits and overrides have been applied.
	Raw BinaryHeader

	Revision Revision
	Format   SampleFormat
	// SamplesPerTrace and SampleInterval (in microseconds, or the
	// equivalent for depth data) prefer the revision 2 extended fields
	// when they are set.
	SamplesPerTrace int
	SampleInterval  float64
	// ExtendedTextHeaders is -1 if the count is variable and has not been
	// resolved yet.
	ExtendedTextHeaders  int
	ExtendedTraceHeaders int
	TrailerRecords       int
	FirstTraceOffset     int64
	FixedLength          bool
	MeasurementSystem    int
	ByteOrder            binary.ByteOrder

	strictness CheckStrictness
}

// ReadBinaryHeader reads and interprets the binary header of a SEG-Y file.
// Only the ByteOrder, BinaryEdits, Strictness, and Logger fields of opts are
// used; opts may be nil.
func ReadBinaryHeader(r io.ReaderAt, opts *Options) (*FileHeader, error) {
	opts = opts.withDefaults()
	log := opts.logger()

	b := make([]byte, BinaryHeaderSize)
	if _, err := r.ReadAt(b, TextHeaderSize); err != nil {
		return nil, fmt.Errorf("could not read the %d-byte binary header "+
			"at byte %d: %w", BinaryHeaderSize, TextHeaderSize, err)
	}

	// The revision bytes are single bytes, so they don't depend on the
	// byte order.
	major, minor := b[300], b[301]
	if !knownRevision(major) {
		if opts.Strictness == CrashOnError {
			return nil, &InvalidRevisionError{major, minor}
		}
		log.Warn().Uint8("major", major).Uint8("minor", minor).
			Msg("Unrecognized SEG-Y revision, reading the file as revision 1.0.")
	}

	order := opts.ByteOrder
	forced := order != nil
	if !forced {
		order = binary.BigEndian
	}

	raw := &BinaryHeader{}
	if err := decodeBinaryHeader(b, order, raw); err != nil {
		return nil, err
	}

	rev := revisionOf(raw)
	if rev.Major >= 2 && raw.EndianConstant != 0 {
		switch raw.EndianConstant {
		case endianNative:
		case endianSwapped:
			if forced {
				log.Warn().Uint32("endian_constant", raw.EndianConstant).
					Msg("The endian constant disagrees with the requested " +
						"byte order. Using the requested byte order anyway.")
				break
			}
			order = swapOrder(order)
			if err := decodeBinaryHeader(b, order, raw); err != nil {
				return nil, err
			}
		default:
			return nil, &DecodeError{
				Field: "EndianConstant",
				Reason: fmt.Sprintf("0x%08x describes a mixed byte order, "+
					"which is not supported", raw.EndianConstant),
			}
		}
	}

	if rev.Major < 2 {
		clearRevision2Fields(raw)
	}
	if rev.Major < 1 {
		// Revision 0 left bytes 3501-3506 unassigned.
		raw.FixedLengthTraceFlag = 0
		raw.ExtendedTextHeaderCount = 0
	}

	if len(opts.BinaryEdits) > 0 {
		edits, err := compileEdits("binary header", binaryHeaderFields,
			BinaryHeaderSize, opts.BinaryEdits)
		if err != nil {
			return nil, err
		}
		if err := applyEdits(b, order, edits, raw); err != nil {
			return nil, err
		}
	}

	return deriveFileHeader(*raw, order, opts.Strictness)
}

func decodeBinaryHeader(
	b []byte, order binary.ByteOrder, raw *BinaryHeader,
) error {
	err := binary.Read(bytes.NewReader(b), order, raw)
	if err != nil {
		return fmt.Errorf("could not decode the binary header: %w", err)
	}
	return nil
}

func knownRevision(major uint8) bool { return major <= 2 }

// revisionOf returns the revision used to interpret raw. Unknown revisions
// are interpreted as 1.0.
func revisionOf(raw *BinaryHeader) Revision {
	if !knownRevision(raw.MajorSegyRevNo) {
		return Revision{1, 0}
	}
	return Revision{raw.MajorSegyRevNo, raw.MinorSegyRevNo}
}

func swapOrder(order binary.ByteOrder) binary.ByteOrder {
	if order == binary.BigEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

func clearRevision2Fields(raw *BinaryHeader) {
	raw.ExtendedDataTracesPerEnsemble = 0
	raw.ExtendedAuxTracesPerEnsemble = 0
	raw.ExtendedSamplesPerTrace = 0
	raw.ExtendedSampleInterval = 0
	raw.ExtendedOriginalSampleInterval = 0
	raw.ExtendedOriginalSamplesPerTrace = 0
	raw.ExtendedEnsembleFold = 0
	raw.EndianConstant = 0
	raw.MaxExtendedTraceHeaders = 0
	raw.TimeBasisCode = 0
	raw.TracesInStream = 0
	raw.FirstTraceOffset = 0
	raw.TrailerRecords = 0
}

// deriveFileHeader computes every derived field of a FileHeader from raw.
func deriveFileHeader(
	raw BinaryHeader, order binary.ByteOrder, strictness CheckStrictness,
) (*FileHeader, error) {
	rev := revisionOf(&raw)
	hd := &FileHeader{
		Raw:                  raw,
		Revision:             rev,
		Format:               SampleFormat(raw.SampleFormatCode),
		SamplesPerTrace:      int(raw.SamplesPerTrace),
		SampleInterval:       float64(raw.SampleInterval),
		ExtendedTextHeaders:  int(raw.ExtendedTextHeaderCount),
		ExtendedTraceHeaders: int(raw.MaxExtendedTraceHeaders),
		TrailerRecords:       int(raw.TrailerRecords),
		FirstTraceOffset:     int64(raw.FirstTraceOffset),
		FixedLength:          raw.FixedLengthTraceFlag == 1,
		MeasurementSystem:    int(raw.MeasurementSystem),
		ByteOrder:            order,
		strictness:           strictness,
	}

	if raw.ExtendedSamplesPerTrace != 0 {
		hd.SamplesPerTrace = int(raw.ExtendedSamplesPerTrace)
	}
	if raw.ExtendedSampleInterval != 0 {
		hd.SampleInterval = raw.ExtendedSampleInterval
	}

	if hd.ExtendedTextHeaders < -1 {
		return nil, &DecodeError{
			Field: "ExtendedTextHeaderCount",
			Reason: fmt.Sprintf("%d extended text headers is not valid",
				hd.ExtendedTextHeaders),
		}
	}
	if hd.FirstTraceOffset < 0 {
		return nil, &DecodeError{
			Field: "FirstTraceOffset",
			Reason: fmt.Sprintf("%d doesn't fit in a signed 64-bit offset",
				raw.FirstTraceOffset),
		}
	}
	// -1 means a variable number of trailer records, which can't be
	// located without scanning the traces.
	if hd.TrailerRecords < 0 {
		hd.TrailerRecords = 0
	}

	return hd, nil
}

// withExtendedTextHeaders returns a copy of hd with a resolved extended text
// header count.
func (hd *FileHeader) withExtendedTextHeaders(n int) *FileHeader {
	out := *hd
	out.ExtendedTextHeaders = n
	return &out
}

// overrideAliases maps normalized names that don't match a field of
// BinaryHeader to the field they refer to.
var overrideAliases = map[string]string{
	"extendedtraceheadercount":  "MaxExtendedTraceHeaders",
	"additionaltextheadercount": "ExtendedTextHeaderCount",
	"sweeplentgh":               "SweepLength",
}

// binaryHeaderFields maps normalized field names to struct field indices.
var binaryHeaderFields = func() map[string]int {
	t := reflect.TypeOf(BinaryHeader{})
	m := fieldIndices(t)
	for alias, name := range overrideAliases {
		f, _ := t.FieldByName(name)
		m[alias] = f.Index[0]
	}
	return m
}()

// normalizeFieldName lets SamplesPerTrace, samplespertrace, and
// SAMPLES_PER_TRACE refer to the same field.
func normalizeFieldName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", ""))
}

// BinaryHeaderFields returns the names of every field that can be
// overridden, in header order.
func BinaryHeaderFields() []string {
	t := reflect.TypeOf(BinaryHeader{})
	out := []string{}
	for i := 0; i < t.NumField(); i++ {
		if name := t.Field(i).Name; name != "_" {
			out = append(out, name)
		}
	}
	return out
}

// Field returns the value of a raw binary header field as a float64. Names
// are matched the same way as in ApplyOverride.
func (hd *FileHeader) Field(name string) (float64, error) {
	idx, ok := binaryHeaderFields[normalizeFieldName(name)]
	if !ok {
		return 0, &UnknownFieldError{Field: name}
	}
	return numericField(reflect.ValueOf(hd.Raw).Field(idx)), nil
}

// extendedCounterparts maps the indices of binary header fields to the
// revision 2 fields which take precedence over them when non-zero.
var extendedCounterparts = func() map[int]int {
	t := reflect.TypeOf(BinaryHeader{})
	index := func(name string) int {
		f, _ := t.FieldByName(name)
		return f.Index[0]
	}
	return map[int]int{
		index("SamplesPerTrace"):         index("ExtendedSamplesPerTrace"),
		index("SampleInterval"):          index("ExtendedSampleInterval"),
		index("DataTracesPerEnsemble"):   index("ExtendedDataTracesPerEnsemble"),
		index("AuxTracesPerEnsemble"):    index("ExtendedAuxTracesPerEnsemble"),
		index("OriginalSampleInterval"):  index("ExtendedOriginalSampleInterval"),
		index("OriginalSamplesPerTrace"): index("ExtendedOriginalSamplesPerTrace"),
		index("EnsembleFold"):            index("ExtendedEnsembleFold"),
	}
}()

// ApplyOverride returns a copy of hd with the named field replaced by value.
// hd itself is never modified. Field names are case-insensitive and ignore
// underscores. The byte order is kept as it was, so overriding
// EndianConstant has no effect on decoding.
//
// Overriding a field whose revision 2 extended counterpart is set (e.g.
// SamplesPerTrace when ExtendedSamplesPerTrace is non-zero) sets the
// extended field to the same value, so the override is always used.
func ApplyOverride(
	hd *FileHeader, field string, value float64,
) (*FileHeader, error) {
	idx, ok := binaryHeaderFields[normalizeFieldName(field)]
	if !ok {
		return nil, &UnknownFieldError{Field: field}
	}

	raw := hd.Raw
	v := reflect.ValueOf(&raw).Elem().Field(idx)
	invalid := func(reason string) error {
		return &InvalidArgumentError{
			Name: fmt.Sprintf("override of %s", field), Value: value,
			Reason: reason,
		}
	}

	if reason := setNumericField(v, value); reason != "" {
		return nil, invalid(reason)
	}
	if ext, ok := extendedCounterparts[idx]; ok {
		ev := reflect.ValueOf(&raw).Elem().Field(ext)
		if numericField(ev) != 0 {
			if reason := setNumericField(ev, value); reason != "" {
				return nil, invalid(reason)
			}
		}
	}

	if !knownRevision(raw.MajorSegyRevNo) && hd.strictness == CrashOnError {
		return nil, &InvalidRevisionError{raw.MajorSegyRevNo,
			raw.MinorSegyRevNo}
	}

	return deriveFileHeader(raw, hd.ByteOrder, hd.strictness)
}
