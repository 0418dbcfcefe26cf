package segyio

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/phil-mansfield/segy/lib/thread"
)

// NavLocation selects which coordinate pair of the trace header is used for
// navigation.
type NavLocation int

const (
	// NavCDP uses CdpX and CdpY, the common midpoint.
	NavCDP NavLocation = iota
	// NavSource uses SourceX and SourceY.
	NavSource
	// NavGroup uses GroupX and GroupY, the receiver group.
	NavGroup
)

func (loc NavLocation) String() string {
	switch loc {
	case NavCDP:
		return "CDP"
	case NavSource:
		return "SOURCE"
	case NavGroup:
		return "GROUP"
	}
	return fmt.Sprintf("NavLocation(%d)", int(loc))
}

// ParseNavLocation converts "cdp", "source", or "group" (in any case) to a
// NavLocation.
func ParseNavLocation(s string) (NavLocation, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "CDP":
		return NavCDP, nil
	case "SOURCE":
		return NavSource, nil
	case "GROUP":
		return NavGroup, nil
	}
	return NavCDP, &InvalidArgumentError{
		Name: "navigation location", Value: s,
		Reason: "must be one of 'cdp', 'source', or 'group'",
	}
}

// NavOptions controls how navigation is sampled.
type NavOptions struct {
	// Stride is the distance between sampled traces. Must be at least 1.
	Stride int
	// Location is the coordinate pair that's sampled.
	Location NavLocation
	// Raw skips the coordinate and shot point scalars.
	Raw bool
	// IncludeLast samples the last trace even if the stride skips it.
	IncludeLast bool
	// Workers is the number of goroutines reading headers. Values below 1
	// use one per thread.
	Workers int
	// Fields reads navigation from other trace header fields.
	Fields NavFields
}

// NavFields names the trace header fields that navigation is read from.
// Empty names use the standard field. X and Y take precedence over Location
// and are scaled by CoordinateScalar, and ShotPoint is scaled by SpScalar.
type NavFields struct {
	X, Y      string
	ShotPoint string
	CDP       string
	Inline    string
	Crossline string
}

// navFieldIndices holds the struct indices of NavFields, with -1 for the
// standard field.
type navFieldIndices struct {
	x, y, sp, cdp, inline, crossline int
}

func (fields NavFields) indices() (navFieldIndices, error) {
	out := navFieldIndices{}
	targets := []struct {
		name string
		idx  *int
	}{
		{fields.X, &out.x}, {fields.Y, &out.y},
		{fields.ShotPoint, &out.sp}, {fields.CDP, &out.cdp},
		{fields.Inline, &out.inline}, {fields.Crossline, &out.crossline},
	}
	for _, t := range targets {
		idx, err := traceFieldIndex(t.name)
		if err != nil {
			return out, err
		}
		*t.idx = idx
	}
	return out, nil
}

// NavSample is the navigation read from a single trace.
type NavSample struct {
	// Trace is the index of the trace in the file and TraceNo is the trace
	// sequence number within the line from its header.
	Trace   int
	TraceNo int32
	// ShotPoint is scaled by the shot point scalar.
	ShotPoint float64
	CDP       int32
	Inline    int32
	Crossline int32
	// X and Y are scaled by the coordinate scalar.
	X, Y float64
}

// StrideForCount returns the stride which samples roughly count traces out
// of traceCount. Combine it with NavOptions.IncludeLast to always get the
// end of the line.
func StrideForCount(traceCount, count int) (int, error) {
	if count < 1 {
		return 0, &InvalidArgumentError{
			Name: "sample count", Value: count, Reason: "must be at least 1",
		}
	}
	stride := traceCount / count
	if stride < 1 {
		stride = 1
	}
	return stride, nil
}

// navIndices returns the trace indices sampled with the given options.
func navIndices(traceCount int, opts NavOptions) []int {
	out := make([]int, 0, (traceCount+opts.Stride-1)/opts.Stride+1)
	for i := 0; i < traceCount; i += opts.Stride {
		out = append(out, i)
	}
	if opts.IncludeLast && out[len(out)-1] != traceCount-1 {
		out = append(out, traceCount-1)
	}
	return out
}

// SampleNav reads navigation from every Stride-th trace, starting with trace
// 0. Samples are returned in trace order.
func (f *File) SampleNav(opts NavOptions) ([]NavSample, error) {
	if err := f.checkOpen("SampleNav"); err != nil {
		return nil, err
	}
	if opts.Stride < 1 {
		return nil, &InvalidArgumentError{
			Name: "stride", Value: opts.Stride, Reason: "must be at least 1",
		}
	}

	fields, err := opts.Fields.indices()
	if err != nil {
		return nil, err
	}

	n := f.TraceCount()
	if n == 0 {
		return nil, &EmptySurveyError{f.name}
	}

	idx := navIndices(n, opts)
	out := make([]NavSample, len(idx))
	workers := thread.Workers(opts.Workers, len(idx))

	err = thread.Range(len(idx), workers, func(start, end int) error {
		for j := start; j < end; j++ {
			hd, err := f.ReadTraceHeader(idx[j])
			if err != nil {
				return err
			}
			out[j] = navSample(idx[j], hd, opts, fields)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func navSample(
	i int, hd *TraceHeader, opts NavOptions, fields navFieldIndices,
) NavSample {
	x, y := hd.Coordinates(opts.Location, opts.Raw)
	s := NavSample{
		Trace: i, TraceNo: hd.TraceNoLine,
		ShotPoint: hd.ShotPoint(opts.Raw), CDP: hd.CDP,
		Inline: hd.Inline, Crossline: hd.Crossline,
		X: x, Y: y,
	}

	v := reflect.ValueOf(hd).Elem()
	scaled := func(idx int, scalar int16) float64 {
		val := numericField(v.Field(idx))
		if opts.Raw {
			return val
		}
		return ApplyScalar(val, scalar)
	}
	if fields.x >= 0 {
		s.X = scaled(fields.x, hd.CoordinateScalar)
	}
	if fields.y >= 0 {
		s.Y = scaled(fields.y, hd.CoordinateScalar)
	}
	if fields.sp >= 0 {
		s.ShotPoint = scaled(fields.sp, hd.SpScalar)
	}
	if fields.cdp >= 0 {
		s.CDP = int32(numericField(v.Field(fields.cdp)))
	}
	if fields.inline >= 0 {
		s.Inline = int32(numericField(v.Field(fields.inline)))
	}
	if fields.crossline >= 0 {
		s.Crossline = int32(numericField(v.Field(fields.crossline)))
	}
	return s
}

// SampledNav2D returns the navigation of every stride-th trace of a 2D line.
func (f *File) SampledNav2D(stride int, loc NavLocation) ([]NavSample, error) {
	return f.SampleNav(NavOptions{Stride: stride, Location: loc})
}

// SampledNav3D returns the convex hull of the navigation of every stride-th
// trace of a 3D survey.
func (f *File) SampledNav3D(stride int, loc NavLocation) (*Geometry, error) {
	samples, err := f.SampleNav(NavOptions{Stride: stride, Location: loc})
	if err != nil {
		return nil, err
	}
	return HullGeometry(samples), nil
}
