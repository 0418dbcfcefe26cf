package segyio

import (
	"fmt"
)

// TraceOffset gives the location of a single trace in the file.
type TraceOffset struct {
	// Header is the offset of the standard trace header. The extended trace
	// headers, if any, follow it directly.
	Header int64
	// Samples is the offset of the first sample and SampleBytes is the size
	// of the sample block.
	Samples, SampleBytes int64
}

// Layout computes the byte offsets of traces. It assumes that every trace
// has the same length and the same number of extended trace headers, which
// lets any trace be found without scanning the file.
type Layout struct {
	// BaseOffset is the offset of the first trace header.
	BaseOffset int64
	// BlockSize is the size of a trace's headers and samples together.
	BlockSize int64
	// SampleSize is the size of a single sample.
	SampleSize int
	// ExtendedTraceHeaders is the number of extended headers per trace.
	ExtendedTraceHeaders int
	// TraceCount is the number of complete traces in the file.
	TraceCount int
	// Remainder is the number of bytes between the last complete trace and
	// the trailer records. It's zero for well-formed files.
	Remainder int64
}

// NewLayout computes the trace layout of a file with the given header and
// size. hd must have a resolved extended text header count.
func NewLayout(hd *FileHeader, fileSize int64) (*Layout, error) {
	sampleSize, err := hd.Format.Size()
	if err != nil {
		return nil, err
	}
	if hd.ExtendedTextHeaders < 0 {
		return nil, &InvalidArgumentError{
			Name: "ExtendedTextHeaders", Value: hd.ExtendedTextHeaders,
			Reason: "the variable text header count must be resolved " +
				"before trace offsets can be computed",
		}
	} else if hd.SamplesPerTrace < 0 {
		return nil, &InvalidArgumentError{
			Name: "SamplesPerTrace", Value: hd.SamplesPerTrace,
			Reason: "must be non-negative",
		}
	}

	base := int64(TextHeaderSize)*int64(1+hd.ExtendedTextHeaders) +
		BinaryHeaderSize
	if hd.Revision.Major >= 2 && hd.FirstTraceOffset != 0 {
		base = hd.FirstTraceOffset
	}

	block := int64(TraceHeaderSize)*int64(1+hd.ExtendedTraceHeaders) +
		int64(hd.SamplesPerTrace)*int64(sampleSize)

	l := &Layout{
		BaseOffset: base, BlockSize: block, SampleSize: sampleSize,
		ExtendedTraceHeaders: hd.ExtendedTraceHeaders,
	}

	data := fileSize - base - int64(hd.TrailerRecords)*TextHeaderSize
	if data > 0 {
		l.TraceCount = int(data / block)
		l.Remainder = data % block
	}

	return l, nil
}

// TraceByteOffset returns the location of the i-th trace.
func (l *Layout) TraceByteOffset(i int) (TraceOffset, error) {
	if i < 0 || i >= l.TraceCount {
		return TraceOffset{}, &IndexError{i, l.TraceCount}
	}

	hdOffset := l.BaseOffset + int64(i)*l.BlockSize
	samplesOffset := hdOffset +
		int64(TraceHeaderSize)*int64(1+l.ExtendedTraceHeaders)

	return TraceOffset{
		Header:      hdOffset,
		Samples:     samplesOffset,
		SampleBytes: hdOffset + l.BlockSize - samplesOffset,
	}, nil
}

// Samples returns the number of samples in each trace.
func (l *Layout) Samples() int {
	if l.SampleSize == 0 {
		return 0
	}
	headers := int64(TraceHeaderSize) * int64(1+l.ExtendedTraceHeaders)
	return int((l.BlockSize - headers) / int64(l.SampleSize))
}

func (l *Layout) String() string {
	return fmt.Sprintf("Layout{BaseOffset: %d, BlockSize: %d, "+
		"TraceCount: %d, Remainder: %d}",
		l.BaseOffset, l.BlockSize, l.TraceCount, l.Remainder)
}
