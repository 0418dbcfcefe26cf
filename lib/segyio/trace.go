package segyio

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Trace is a fully decoded trace.
type Trace struct {
	Index  int
	Offset TraceOffset
	Header *TraceHeader
	// Extended is nil unless the file is revision 2 or later and declares
	// at least one extended trace header.
	Extended *ExtendedTraceHeader
	Samples  []float64
}

// TraceStats summarizes the samples of a trace.
type TraceStats struct {
	Min, Max, Mean, StdDev, RMS float64
}

// Stats computes summary statistics of the trace's samples. All fields are
// zero for traces without samples.
func (t *Trace) Stats() TraceStats {
	x := t.Samples
	if len(x) == 0 {
		return TraceStats{}
	}
	mean, std := stat.MeanStdDev(x, nil)
	if len(x) == 1 {
		std = 0
	}
	return TraceStats{
		Min: floats.Min(x), Max: floats.Max(x),
		Mean: mean, StdDev: std,
		RMS: math.Sqrt(floats.Dot(x, x) / float64(len(x))),
	}
}

// TraceHandle refers to a single trace without reading it. Its fields are
// computed from the layout, and the trace itself is only read by its
// methods. A handle is only valid while its file is open.
type TraceHandle struct {
	Index  int
	Offset TraceOffset

	f       *File
	hd      *FileHeader
	samples *io.SectionReader
}

// Handle returns a handle to the i-th trace.
func (f *File) Handle(i int) (*TraceHandle, error) {
	if err := f.checkOpen("Handle"); err != nil {
		return nil, err
	}

	hd, layout := f.freeze()
	off, err := layout.TraceByteOffset(i)
	if err != nil {
		return nil, err
	}

	return &TraceHandle{
		Index: i, Offset: off, f: f, hd: hd,
		samples: io.NewSectionReader(f.r, off.Samples, off.SampleBytes),
	}, nil
}

// SampleReader returns a reader over the raw, undecoded sample bytes.
func (h *TraceHandle) SampleReader() *io.SectionReader {
	return io.NewSectionReader(h.samples, 0, h.samples.Size())
}

// Header reads the trace header.
func (h *TraceHandle) Header() (*TraceHeader, error) {
	if err := h.f.checkOpen("TraceHandle.Header"); err != nil {
		return nil, err
	}

	b := make([]byte, TraceHeaderSize)
	if _, err := h.f.r.ReadAt(b, h.Offset.Header); err != nil {
		return nil, fmt.Errorf("could not read the header of trace %d at "+
			"byte %d: %w", h.Index, h.Offset.Header, err)
	}
	hd, err := decodeTraceHeader(b, h.hd.ByteOrder)
	if err != nil {
		return nil, err
	}
	if err := applyEdits(b, h.hd.ByteOrder, h.f.traceEdits, hd); err != nil {
		return nil, fmt.Errorf("trace %d: %w", h.Index, err)
	}
	return hd, nil
}

// ExtendedHeader reads the first extended trace header. It returns nil
// without an error if the trace doesn't have one.
func (h *TraceHandle) ExtendedHeader() (*ExtendedTraceHeader, error) {
	if err := h.f.checkOpen("TraceHandle.ExtendedHeader"); err != nil {
		return nil, err
	}
	if h.hd.Revision.Major < 2 || h.hd.ExtendedTraceHeaders < 1 {
		return nil, nil
	}

	b := make([]byte, TraceHeaderSize)
	off := h.Offset.Header + TraceHeaderSize
	if _, err := h.f.r.ReadAt(b, off); err != nil {
		return nil, fmt.Errorf("could not read the extended header of "+
			"trace %d at byte %d: %w", h.Index, off, err)
	}
	return decodeExtendedTraceHeader(b, h.hd.ByteOrder)
}

// Samples reads and decodes the trace's samples.
func (h *TraceHandle) Samples() ([]float64, error) {
	if err := h.f.checkOpen("TraceHandle.Samples"); err != nil {
		return nil, err
	}

	b := make([]byte, h.Offset.SampleBytes)
	if _, err := h.samples.ReadAt(b, 0); err != nil && len(b) > 0 {
		return nil, fmt.Errorf("could not read the samples of trace %d at "+
			"byte %d: %w", h.Index, h.Offset.Samples, err)
	}

	size, err := h.hd.Format.Size()
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(b)/size)
	if err := h.hd.Format.Decode(h.hd.ByteOrder, b, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Read reads the whole trace.
func (h *TraceHandle) Read() (*Trace, error) {
	hd, err := h.Header()
	if err != nil {
		return nil, err
	}
	ext, err := h.ExtendedHeader()
	if err != nil {
		return nil, err
	}
	samples, err := h.Samples()
	if err != nil {
		return nil, err
	}
	return &Trace{
		Index: h.Index, Offset: h.Offset,
		Header: hd, Extended: ext, Samples: samples,
	}, nil
}

// ReadTrace reads the i-th trace.
func (f *File) ReadTrace(i int) (*Trace, error) {
	h, err := f.Handle(i)
	if err != nil {
		return nil, err
	}
	return h.Read()
}

// ReadTraceHeader reads only the header of the i-th trace.
func (f *File) ReadTraceHeader(i int) (*TraceHeader, error) {
	h, err := f.Handle(i)
	if err != nil {
		return nil, err
	}
	return h.Header()
}

// TraceIterator reads traces in order, starting from trace 0. It keeps its
// own position, so it doesn't interfere with other reads from the same file.
//
//	it := f.Traces()
//	for it.Next() {
//		tr := it.Trace()
//		...
//	}
//	if err := it.Err(); err != nil { ... }
type TraceIterator struct {
	f     *File
	next  int
	trace *Trace
	err   error
}

// Traces returns an iterator over every trace in the file.
func (f *File) Traces() *TraceIterator {
	return &TraceIterator{f: f}
}

// Next advances to the next trace. It returns false once every trace has
// been read or an error occurs.
func (it *TraceIterator) Next() bool {
	if it.err != nil {
		return false
	}
	if err := it.f.checkOpen("TraceIterator.Next"); err != nil {
		it.err, it.trace = err, nil
		return false
	}
	if it.next >= it.f.TraceCount() {
		it.trace = nil
		return false
	}

	it.trace, it.err = it.f.ReadTrace(it.next)
	if it.err != nil {
		it.trace = nil
		return false
	}
	it.next++
	return true
}

// Trace returns the current trace.
func (it *TraceIterator) Trace() *Trace { return it.trace }

// Err returns the error that stopped the iteration, if any.
func (it *TraceIterator) Err() error { return it.err }

// Reset moves the iterator back to the first trace and clears its error.
func (it *TraceIterator) Reset() {
	it.next, it.trace, it.err = 0, nil, nil
}
