package segyio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"strings"

	"github.com/phil-mansfield/segy/lib/codec"
)

// FakeTrace is a single trace in a FakeFile.
type FakeTrace struct {
	Header TraceHeader
	// Extended is written as the first extended trace header, if the binary
	// header declares any.
	Extended *ExtendedTraceHeader
	Samples  []float64
}

// FakeFile builds SEG-Y files in memory for testing purposes. Fields can be
// changed freely before Bytes is called, including to values that make the
// file invalid.
type FakeFile struct {
	// Text holds the lines of the primary text header. Lines are padded or
	// truncated to 80 characters.
	Text []string
	// ExtendedText holds the content of each extended text header.
	ExtendedText []string
	Encoding     TextEncoding
	Binary       BinaryHeader
	Order        binary.ByteOrder
	Traces       []FakeTrace
	// Trailer holds the content of each trailer record.
	Trailer []string
}

// NewFakeFile creates a revision 1 FakeFile with nTraces traces of the given
// format and length. Trace i has sample j = 10*i + j, TraceNoLine = i + 1,
// CDP = 1000 + i, and CDP coordinates (100*i, 50*i) with no scalar.
func NewFakeFile(format SampleFormat, samples, nTraces int) *FakeFile {
	ff := &FakeFile{
		Text: []string{
			"C 1 CLIENT: SEGY TEST SUITE",
			"C 2 LINE: FAKE-001",
		},
		Encoding: EncodingEBCDIC,
		Order:    binary.BigEndian,
		Traces:   make([]FakeTrace, nTraces),
	}
	for i := 3; i <= textLineCount; i++ {
		ff.Text = append(ff.Text, fmt.Sprintf("C%2d", i))
	}

	ff.Binary.JobID = 1
	ff.Binary.LineNo = 1
	ff.Binary.SampleInterval = 4000
	ff.Binary.SamplesPerTrace = uint16(samples)
	ff.Binary.SampleFormatCode = uint16(format)
	ff.Binary.MeasurementSystem = 1
	ff.Binary.MajorSegyRevNo = 1
	ff.Binary.FixedLengthTraceFlag = 1

	for i := range ff.Traces {
		tr := &ff.Traces[i]
		tr.Header.TraceNoLine = int32(i + 1)
		tr.Header.TraceNoFile = int32(i + 1)
		tr.Header.CDP = int32(1000 + i)
		tr.Header.SpNo = int32(i + 1)
		tr.Header.CdpX = int32(100 * i)
		tr.Header.CdpY = int32(50 * i)
		tr.Header.SampleCount = uint16(samples)
		tr.Header.SampleInterval = 4000
		tr.Samples = make([]float64, samples)
		for j := range tr.Samples {
			tr.Samples[j] = float64(10*i + j)
		}
	}

	return ff
}

// Bytes encodes the file.
func (ff *FakeFile) Bytes() ([]byte, error) {
	order := ff.Order
	if order == nil {
		order = binary.BigEndian
	}

	buf := &bytes.Buffer{}
	buf.Write(ff.encodeText(strings.Join(padLines(ff.Text), "")))
	if err := binary.Write(buf, order, &ff.Binary); err != nil {
		return nil, err
	}
	for _, text := range ff.ExtendedText {
		buf.Write(ff.encodeText(text))
	}

	if off := int(ff.Binary.FirstTraceOffset); off > buf.Len() {
		buf.Write(make([]byte, off-buf.Len()))
	}

	format := SampleFormat(ff.Binary.SampleFormatCode)
	size, err := format.Size()
	if err != nil {
		return nil, err
	}
	extended := int(ff.Binary.MaxExtendedTraceHeaders)

	for i := range ff.Traces {
		tr := &ff.Traces[i]
		if err := binary.Write(buf, order, &tr.Header); err != nil {
			return nil, err
		}
		for j := 0; j < extended; j++ {
			if j == 0 && tr.Extended != nil {
				if err := binary.Write(buf, order, tr.Extended); err != nil {
					return nil, err
				}
			} else {
				buf.Write(make([]byte, TraceHeaderSize))
			}
		}

		b := make([]byte, size*len(tr.Samples))
		if err := format.Encode(order, tr.Samples, b); err != nil {
			return nil, err
		}
		buf.Write(b)
	}

	for _, text := range ff.Trailer {
		buf.Write(ff.encodeText(text))
	}

	return buf.Bytes(), nil
}

// Reader returns a reader over the encoded file.
func (ff *FakeFile) Reader() (*bytes.Reader, error) {
	b, err := ff.Bytes()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(b), nil
}

// WriteFile writes the encoded file to path.
func (ff *FakeFile) WriteFile(path string) error {
	b, err := ff.Bytes()
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// encodeText pads or truncates text to a full text header and encodes it.
func (ff *FakeFile) encodeText(text string) []byte {
	if len(text) < TextHeaderSize {
		text += strings.Repeat(" ", TextHeaderSize-len(text))
	}
	text = text[:TextHeaderSize]
	if ff.Encoding == EncodingASCII {
		return []byte(text)
	}
	return codec.ASCIIToEBCDIC(text)
}

func padLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if len(line) > textLineLength {
			line = line[:textLineLength]
		}
		out[i] = line + strings.Repeat(" ", textLineLength-len(line))
	}
	return out
}
