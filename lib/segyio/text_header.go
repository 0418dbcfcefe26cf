package segyio

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/phil-mansfield/segy/lib/codec"
)

const (
	textLineLength = 80
	textLineCount  = 40
	// A text encoding is only accepted on printability grounds if at least
	// this fraction of its characters are printable.
	printableThreshold = 0.95
	// endTextStanza marks the last extended text header when the count is
	// variable.
	endTextStanza = "((SEG: EndText))"
)

// TextEncoding is the character encoding of a text header.
type TextEncoding int

const (
	EncodingAuto TextEncoding = iota
	EncodingEBCDIC
	EncodingASCII
)

func (enc TextEncoding) String() string {
	switch enc {
	case EncodingAuto:
		return "auto"
	case EncodingEBCDIC:
		return "ebcdic"
	case EncodingASCII:
		return "ascii"
	}
	return fmt.Sprintf("TextEncoding(%d)", int(enc))
}

// ParseTextEncoding converts "auto", "ebcdic", or "ascii" (in any case) to a
// TextEncoding.
func ParseTextEncoding(s string) (TextEncoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return EncodingAuto, nil
	case "ebcdic":
		return EncodingEBCDIC, nil
	case "ascii":
		return EncodingASCII, nil
	}
	return EncodingAuto, &InvalidArgumentError{
		Name: "text encoding", Value: s,
		Reason: "must be one of 'auto', 'ebcdic', or 'ascii'",
	}
}

// TextHeader is a single decoded 3200-byte text header.
type TextHeader struct {
	Index    int
	Encoding TextEncoding
	Raw      []byte
	lines    []string
}

// Line returns the i-th 80-character line of the header, 0 <= i < 40.
func (th *TextHeader) Line(i int) string { return th.lines[i] }

// Lines returns all 40 lines of the header.
func (th *TextHeader) Lines() []string { return th.lines }

func (th *TextHeader) String() string { return strings.Join(th.lines, "\n") }

// TextHeaders gives lazy access to the primary text header and the extended
// text headers after the binary header.
type TextHeaders struct {
	r     io.ReaderAt
	count int
	enc   TextEncoding
}

// ReadTextHeaders returns the count text headers in r: the primary header
// plus count - 1 extended headers. Nothing is read until At is called.
func ReadTextHeaders(r io.ReaderAt, count int, enc TextEncoding) *TextHeaders {
	return &TextHeaders{r, count, enc}
}

// Len returns the number of text headers, including the primary header.
func (ths *TextHeaders) Len() int { return ths.count }

// At reads and decodes the i-th text header. Index 0 is the primary header.
func (ths *TextHeaders) At(i int) (*TextHeader, error) {
	if i < 0 || i >= ths.count {
		return nil, &IndexError{i, ths.count}
	}

	b := make([]byte, TextHeaderSize)
	if _, err := ths.r.ReadAt(b, textHeaderOffset(i)); err != nil {
		return nil, fmt.Errorf("could not read text header %d: %w", i, err)
	}

	enc := ths.enc
	if enc == EncodingAuto {
		var err error
		enc, err = DetectEncoding(b)
		if err != nil {
			err.(*EncodingDetectionError).Header = i
			return nil, err
		}
	}

	lines := make([]string, textLineCount)
	for j := range lines {
		lines[j] = DecodeText(b[j*textLineLength:(j+1)*textLineLength], enc)
	}

	return &TextHeader{Index: i, Encoding: enc, Raw: b, lines: lines}, nil
}

// textHeaderOffset returns the offset of the i-th text header. Extended
// headers come after the binary header.
func textHeaderOffset(i int) int64 {
	if i == 0 {
		return 0
	}
	return int64(TextHeaderSize+BinaryHeaderSize) + int64(i-1)*TextHeaderSize
}

// DecodeText decodes b with the given encoding, which must not be
// EncodingAuto. Unprintable ASCII characters are kept and anything outside of
// ASCII becomes '?', so the result has as many bytes as b.
func DecodeText(b []byte, enc TextEncoding) string {
	if enc == EncodingEBCDIC {
		return codec.EBCDICToASCII(b)
	}
	out := make([]byte, len(b))
	for i, c := range b {
		out[i] = codec.ToASCII(rune(c))
	}
	return string(out)
}

// DetectEncoding guesses whether a text header is EBCDIC or ASCII. Card
// images, lines starting with 'C', are checked first. If that's
// inconclusive, the encoding under which almost everything is printable
// wins.
func DetectEncoding(b []byte) (TextEncoding, error) {
	lines := len(b) / textLineLength
	asciiCards, ebcdicCards := 0, 0
	for i := 0; i < lines; i++ {
		switch b[i*textLineLength] {
		case 'C':
			asciiCards++
		case 0xc3:
			ebcdicCards++
		}
	}

	half := (lines + 1) / 2
	if lines > 0 {
		if ebcdicCards >= half && ebcdicCards > asciiCards {
			return EncodingEBCDIC, nil
		} else if asciiCards >= half && asciiCards > ebcdicCards {
			return EncodingASCII, nil
		}
	}

	ascii, ebcdic := printableFractions(b)
	if ebcdic >= printableThreshold && ascii < printableThreshold {
		return EncodingEBCDIC, nil
	} else if ascii >= printableThreshold && ebcdic < printableThreshold {
		return EncodingASCII, nil
	}

	return EncodingAuto, &EncodingDetectionError{
		ASCIIPrintable: ascii, EBCDICPrintable: ebcdic,
	}
}

func printableFractions(b []byte) (ascii, ebcdic float64) {
	if len(b) == 0 {
		return 0, 0
	}
	nASCII, nEBCDIC := 0, 0
	for _, c := range b {
		if codec.IsPrintable(rune(c)) {
			nASCII++
		}
		if codec.IsPrintable(codec.EBCDIC.DecodeByte(c)) {
			nEBCDIC++
		}
	}
	n := float64(len(b))
	return float64(nASCII) / n, float64(nEBCDIC) / n
}

var (
	endTextASCII  = []byte(endTextStanza)
	endTextEBCDIC = codec.ASCIIToEBCDIC(endTextStanza)
)

// countExtendedTextHeaders resolves a variable extended text header count by
// scanning the headers after the binary header for the EndText stanza. The
// stanza's header is the last one.
func countExtendedTextHeaders(r io.ReaderAt, size int64) (int, error) {
	b := make([]byte, TextHeaderSize)
	for i := 1; ; i++ {
		off := textHeaderOffset(i)
		if off+TextHeaderSize > size {
			return 0, &DecodeError{
				Field: "ExtendedTextHeaderCount",
				Reason: fmt.Sprintf("the count is variable, but no %s "+
					"stanza was found in the %d headers before the end of "+
					"the file", endTextStanza, i-1),
			}
		}

		if _, err := r.ReadAt(b, off); err != nil {
			return 0, fmt.Errorf("could not read extended text header %d: %w",
				i, err)
		}
		if bytes.Contains(b, endTextASCII) || bytes.Contains(b, endTextEBCDIC) {
			return i, nil
		}
	}
}
