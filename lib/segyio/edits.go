package segyio

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/phil-mansfield/segy/lib/codec"
)

// FieldSpec gives the location of a header field for files which don't store
// it where the standard says to.
type FieldSpec struct {
	// Offset is the zero-based byte offset of the field within its header.
	Offset int
	// Width is 1, 2, 3, 4, or 8.
	Width  int
	Signed bool
	// IBM reads the field as a 4-byte IBM float. Values stored in integer
	// fields are rounded.
	IBM bool
}

// HeaderEdits maps header field names to the locations they are read from.
// Names are matched the same way as in ApplyOverride.
type HeaderEdits map[string]FieldSpec

// fieldEdit is a validated HeaderEdits entry.
type fieldEdit struct {
	name  string
	index int
	spec  FieldSpec
}

// fieldIndices maps the normalized names of every numeric field of t to
// their struct indices.
func fieldIndices(t reflect.Type) map[string]int {
	m := map[string]int{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Name != "_" && f.Type.Kind() != reflect.Array {
			m[normalizeFieldName(f.Name)] = i
		}
	}
	return m
}

var traceHeaderFields = fieldIndices(reflect.TypeOf(TraceHeader{}))

// compileEdits checks that every edit names a field in fields and fits in a
// header of the given size. Edits are returned in name order so that errors
// are reproducible.
func compileEdits(
	header string, fields map[string]int, size int, edits HeaderEdits,
) ([]fieldEdit, error) {
	names := make([]string, 0, len(edits))
	for name := range edits {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]fieldEdit, 0, len(edits))
	for _, name := range names {
		idx, ok := fields[normalizeFieldName(name)]
		if !ok {
			return nil, &UnknownFieldError{Header: header, Field: name}
		}

		spec := edits[name]
		invalid := func(reason string) error {
			return &InvalidArgumentError{
				Name:  fmt.Sprintf("location of %s %s", header, name),
				Value: spec, Reason: reason,
			}
		}
		switch {
		case spec.IBM && spec.Width != 4:
			return nil, invalid("IBM floats are 4 bytes wide")
		case spec.Width != 1 && spec.Width != 2 && spec.Width != 3 &&
			spec.Width != 4 && spec.Width != 8:
			return nil, invalid("the width must be 1, 2, 3, 4, or 8 bytes")
		case spec.Offset < 0 || spec.Offset+spec.Width > size:
			return nil, invalid(fmt.Sprintf("the %s is only %d bytes long",
				header, size))
		}

		out = append(out, fieldEdit{name, idx, spec})
	}
	return out, nil
}

// applyEdits reads each edited field out of the raw header b and stores it
// in dst, which must be a pointer to the decoded header.
func applyEdits(
	b []byte, order binary.ByteOrder, edits []fieldEdit, dst interface{},
) error {
	v := reflect.ValueOf(dst).Elem()
	for _, e := range edits {
		field := b[e.spec.Offset : e.spec.Offset+e.spec.Width]

		var value float64
		if e.spec.IBM {
			x, err := codec.ReadIBM(order, field)
			if err != nil {
				return err
			}
			value = x
			if v.Field(e.index).Kind() != reflect.Float64 {
				value = math.Round(value)
			}
		} else {
			n, err := codec.ReadInt(order, field, e.spec.Width, e.spec.Signed)
			if err != nil {
				return err
			}
			value = float64(n)
		}

		if reason := setNumericField(v.Field(e.index), value); reason != "" {
			return &DecodeError{
				Field:  e.name,
				Reason: fmt.Sprintf("%g at byte %d: %s", value, e.spec.Offset,
					reason),
			}
		}
	}
	return nil
}

// setNumericField stores value in v. It returns a description of the problem
// if value can't be represented by v's type.
func setNumericField(v reflect.Value, value float64) string {
	switch v.Kind() {
	case reflect.Float64:
		v.SetFloat(value)
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if math.Trunc(value) != value || math.IsInf(value, 0) {
			return "the field is an integer"
		} else if value < math.MinInt64 || value >= math.MaxInt64 ||
			v.OverflowInt(int64(value)) {
			return fmt.Sprintf("out of range for %s", v.Type())
		}
		v.SetInt(int64(value))
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if math.Trunc(value) != value || math.IsInf(value, 0) {
			return "the field is an integer"
		} else if value < 0 || value >= math.MaxUint64 ||
			v.OverflowUint(uint64(value)) {
			return fmt.Sprintf("out of range for %s", v.Type())
		}
		v.SetUint(uint64(value))
	default:
		panic(fmt.Sprintf("Internal error: field of kind %s is not numeric",
			v.Kind()))
	}
	return ""
}

// numericField returns the value of a numeric struct field as a float64.
func numericField(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float64:
		return v.Float()
	}
	panic(fmt.Sprintf("Internal error: field of kind %s is not numeric",
		v.Kind()))
}

// TraceHeaderFields returns the names of every numeric trace header field, in
// header order.
func TraceHeaderFields() []string {
	t := reflect.TypeOf(TraceHeader{})
	out := []string{}
	for i := 0; i < t.NumField(); i++ {
		if f := t.Field(i); f.Type.Kind() != reflect.Array {
			out = append(out, f.Name)
		}
	}
	return out
}

// traceFieldIndex returns the struct index of a trace header field, or -1 if
// name is empty.
func traceFieldIndex(name string) (int, error) {
	if name == "" {
		return -1, nil
	}
	idx, ok := traceHeaderFields[normalizeFieldName(name)]
	if !ok {
		return 0, &UnknownFieldError{Header: "trace header", Field: name}
	}
	return idx, nil
}

// Field returns the value of a trace header field as a float64. Names are
// matched the same way as in ApplyOverride.
func (hd *TraceHeader) Field(name string) (float64, error) {
	idx, ok := traceHeaderFields[normalizeFieldName(name)]
	if !ok {
		return 0, &UnknownFieldError{Header: "trace header", Field: name}
	}
	return numericField(reflect.ValueOf(hd).Elem().Field(idx)), nil
}
