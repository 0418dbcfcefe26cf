package lib

/* run.go contains the output of segy's "text", "binary", "traces", and "nav"
modes. */

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/phil-mansfield/segy/lib/format"
	"github.com/phil-mansfield/segy/lib/segyio"
)

// PrintText prints every text header in f.
func PrintText(w io.Writer, f *segyio.File) error {
	ths, err := f.TextHeaders()
	if err != nil {
		return err
	}
	for i := 0; i < ths.Len(); i++ {
		th, err := ths.At(i)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "# Text header %d (%s)\n", i, th.Encoding)
		fmt.Fprintln(w, th.String())
	}
	return nil
}

// PrintBinary prints every field of the binary header in f, followed by the
// layout derived from it.
func PrintBinary(w io.Writer, f *segyio.File) error {
	hd := f.Header()
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	for _, name := range segyio.BinaryHeaderFields() {
		v, err := hd.Field(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%g\n", name, v)
	}
	fmt.Fprintf(tw, "\t\n")
	fmt.Fprintf(tw, "Revision\t%s\n", hd.Revision)
	fmt.Fprintf(tw, "Format\t%s\n", hd.Format)
	fmt.Fprintf(tw, "ByteOrder\t%s\n", hd.ByteOrder)
	fmt.Fprintf(tw, "Layout\t%s\n", f.Layout())
	return tw.Flush()
}

// PrintTraces prints a summary line for every trace selected by the trace
// format string traces.
func PrintTraces(w io.Writer, f *segyio.File, traces string, raw bool) error {
	idx, err := format.ExpandTraceFormat(traces, f.TraceCount())
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Trace\tTraceNo\tCDP\tSP\tInline\tXline\tX\tY\t"+
		"Min\tMax\tRMS\t")
	for _, i := range idx {
		tr, err := f.ReadTrace(i)
		if err != nil {
			return err
		}
		hd := tr.Header
		x, y := hd.Coordinates(segyio.NavCDP, raw)
		stats := tr.Stats()
		fmt.Fprintf(tw, "%d\t%d\t%d\t%g\t%d\t%d\t%.2f\t%.2f\t%.4g\t%.4g\t%.4g\t\n",
			i, hd.TraceNoLine, hd.CDP, hd.ShotPoint(raw), hd.Inline,
			hd.Crossline, x, y, stats.Min, stats.Max, stats.RMS)
	}
	return tw.Flush()
}

// NavOptions converts args into navigation sampling options for a file with
// traceCount traces. If Count is set, it takes precedence over Stride and
// the last trace is always included.
func (args *Args) NavOptions(traceCount int) (segyio.NavOptions, error) {
	opts := segyio.NavOptions{
		Stride: args.Stride, Location: args.Nav, Raw: args.Raw,
		Workers: args.Workers, Fields: args.NavFields,
	}
	if args.Count > 0 {
		stride, err := segyio.StrideForCount(traceCount, args.Count)
		if err != nil {
			return opts, err
		}
		opts.Stride, opts.IncludeLast = stride, true
	}
	return opts, nil
}

// SurveyGeometry samples the navigation of f and reduces it to the outline
// of a survey of the kind given in args.
func SurveyGeometry(f *segyio.File, args *Args) (*segyio.Geometry, error) {
	opts, err := args.NavOptions(f.TraceCount())
	if err != nil {
		return nil, err
	}

	// Plain stride sampling is exactly what the survey types do.
	if args.Count == 0 && !args.Raw && args.NavFields == (segyio.NavFields{}) {
		return segyio.NewSurvey(f, args.Survey).Geometry(opts.Stride,
			opts.Location)
	}

	samples, err := f.SampleNav(opts)
	if err != nil {
		return nil, err
	}
	if args.Survey == segyio.Kind3D {
		return segyio.HullGeometry(samples), nil
	}
	return segyio.LineGeometry(samples), nil
}

// PrintNav prints the survey geometry of f in the output format given in
// args.
func PrintNav(w io.Writer, f *segyio.File, args *Args) error {
	g, err := SurveyGeometry(f, args)
	if err != nil {
		return err
	}

	switch args.Output {
	case GeoJSONOutput:
		b, err := g.GeoJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(b))
	case TableOutput:
		tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "Trace\tTraceNo\tSP\tCDP\tX\tY\t")
		for _, s := range g.Samples {
			fmt.Fprintf(tw, "%d\t%d\t%g\t%d\t%.2f\t%.2f\t\n",
				s.Trace, s.TraceNo, s.ShotPoint, s.CDP, s.X, s.Y)
		}
		return tw.Flush()
	default:
		s, err := g.WKT()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, s)
	}
	return nil
}
