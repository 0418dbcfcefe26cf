package segyio

import (
	"fmt"

	"github.com/phil-mansfield/segy/lib/codec"
)

// DecodeError is returned when bytes in the file can't be interpreted, e.g.
// because a sample format code is unknown or the endian constant describes a
// mixed byte order.
type DecodeError = codec.DecodeError

// EncodingDetectionError is returned when the encoding of a text header can't
// be determined automatically. The caller needs to pass an explicit
// TextEncoding in Options.
type EncodingDetectionError struct {
	// Header is the index of the text header, 0 being the primary header.
	Header int
	// Fraction of printable characters under each decoding.
	ASCIIPrintable, EBCDICPrintable float64
}

func (e *EncodingDetectionError) Error() string {
	return fmt.Sprintf("segy: cannot detect the encoding of text header %d: "+
		"%.1f%% of it is printable as ASCII and %.1f%% as EBCDIC. Set the "+
		"text encoding explicitly.", e.Header,
		100*e.ASCIIPrintable, 100*e.EBCDICPrintable)
}

// UnknownFieldError is returned when an override or header edit names a field
// that doesn't exist.
type UnknownFieldError struct {
	// Header is "binary header" or "trace header". Empty means the binary
	// header.
	Header string
	Field  string
}

func (e *UnknownFieldError) Error() string {
	header := e.Header
	if header == "" {
		header = "binary header"
	}
	return fmt.Sprintf("segy: the %s has no field named '%s'", header, e.Field)
}

// InvalidRevisionError is returned for unrecognized SEG-Y revisions when the
// CrashOnError strictness is used.
type InvalidRevisionError struct {
	Major, Minor uint8
}

func (e *InvalidRevisionError) Error() string {
	return fmt.Sprintf("segy: the binary header declares SEG-Y revision "+
		"%d.%d, but only revisions 0, 1, and 2 are supported", e.Major, e.Minor)
}

// IndexError is returned when a trace index is out of range.
type IndexError struct {
	Index, Count int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("segy: trace index %d is out of range for a file "+
		"with %d traces", e.Index, e.Count)
}

// EmptySurveyError is returned when geometry is requested for a file with no
// traces.
type EmptySurveyError struct {
	Name string
}

func (e *EmptySurveyError) Error() string {
	if e.Name == "" {
		return "segy: cannot compute geometry, the file has no traces"
	}
	return fmt.Sprintf("segy: cannot compute geometry, %s has no traces",
		e.Name)
}

// ClosedResourceError is returned by every operation on a closed file and on
// the handles and iterators which came from it.
type ClosedResourceError struct {
	Op string
}

func (e *ClosedResourceError) Error() string {
	return fmt.Sprintf("segy: %s called on a closed file", e.Op)
}

// InvalidArgumentError is returned when an argument is outside of its valid
// range, such as a non-positive stride or an override value that doesn't fit
// in its field.
type InvalidArgumentError struct {
	Name   string
	Value  interface{}
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("segy: invalid %s, %v: %s", e.Name, e.Value, e.Reason)
}

// FrozenHeaderError is returned when an override is attempted after traces
// have already been read with the old header.
type FrozenHeaderError struct {
	Field string
}

func (e *FrozenHeaderError) Error() string {
	return fmt.Sprintf("segy: cannot override '%s', traces have already been "+
		"read using the current binary header", e.Field)
}
