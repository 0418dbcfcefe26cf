package segyio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/phil-mansfield/segy/lib/compress"
)

// HeaderOverride maps binary header field names to replacement values. Names
// are matched the same way as in ApplyOverride.
type HeaderOverride map[string]float64

// Options controls how a file is opened. The zero value is valid.
type Options struct {
	// TextEncoding is the encoding of the text headers. EncodingAuto
	// detects it separately for each header.
	TextEncoding TextEncoding
	// Overrides replace binary header fields that are known to be wrong.
	Overrides HeaderOverride
	// BinaryEdits and TraceEdits read header fields from non-standard
	// locations. Edits are applied before Overrides.
	BinaryEdits HeaderEdits
	TraceEdits  HeaderEdits
	// ByteOrder forces a byte order. If nil, files are big-endian unless a
	// revision 2 endian constant says otherwise.
	ByteOrder binary.ByteOrder
	// Strictness controls what happens when the header has values that
	// can't be interpreted.
	Strictness CheckStrictness
	// Logger is used for warnings and debugging output. If nil, the global
	// zerolog logger is used.
	Logger *zerolog.Logger
}

func (opts *Options) withDefaults() *Options {
	if opts == nil {
		return &Options{}
	}
	return opts
}

func (opts *Options) logger() *zerolog.Logger {
	if opts.Logger == nil {
		return &log.Logger
	}
	return opts.Logger
}

// File is an open SEG-Y file. The binary header is parsed when the file is
// opened. Everything else is read on demand with positioned reads, so a File
// can be used from multiple goroutines at once.
type File struct {
	name   string
	r      io.ReaderAt
	closer io.Closer
	size   int64
	opts   Options
	log    *zerolog.Logger
	// traceEdits are applied to every trace header that's read.
	traceEdits []fieldEdit

	// mu guards hd and layout, which can only change until frozen is set.
	mu     sync.Mutex
	hd     *FileHeader
	layout *Layout
	frozen atomic.Bool

	closed atomic.Bool
}

// Open opens the SEG-Y file at path.
func Open(path string, opts *Options) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("The file %s cannot be opened: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("The file %s cannot be accessed: %w", path, err)
	} else if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("The file %s is a directory, not a SEG-Y file.",
			path)
	}

	file, err := newFile(path, f, f, info.Size(), opts)
	if err != nil {
		f.Close()
		return nil, err
	}
	return file, nil
}

// OpenCompressed opens a zstd-compressed SEG-Y file. The file is
// decompressed into memory.
func OpenCompressed(path string, opts *Options) (*File, error) {
	b, err := compress.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return newFile(path, bytes.NewReader(b), nil, int64(len(b)), opts)
}

// NewReader reads a SEG-Y file of the given size from r. Closing the File
// does not close r.
func NewReader(r io.ReaderAt, size int64, opts *Options) (*File, error) {
	return newFile("", r, nil, size, opts)
}

// NewReadSeeker reads a SEG-Y file from a stream that can seek but doesn't
// support positioned reads. Reads are serialized. Closing the File does not
// close rs.
func NewReadSeeker(rs io.ReadSeeker, opts *Options) (*File, error) {
	r := &lockedReaderAt{rs: rs}
	size, err := r.size()
	if err != nil {
		return nil, err
	}
	return newFile("", r, nil, size, opts)
}

func newFile(
	name string, r io.ReaderAt, closer io.Closer, size int64, opts *Options,
) (*File, error) {
	opts = opts.withDefaults()
	f := &File{
		name: name, closer: closer, size: size,
		opts: *opts, log: opts.logger(),
	}
	f.r = &closableReaderAt{r, &f.closed}

	if size < TextHeaderSize+BinaryHeaderSize {
		return nil, fmt.Errorf("%s has %d bytes, but a SEG-Y file needs at "+
			"least %d bytes for its text and binary headers.",
			f.displayName(), size, TextHeaderSize+BinaryHeaderSize)
	}

	hd, err := ReadBinaryHeader(f.r, opts)
	if err != nil {
		return nil, err
	}
	f.traceEdits, err = compileEdits("trace header", traceHeaderFields,
		TraceHeaderSize, opts.TraceEdits)
	if err != nil {
		return nil, err
	}

	// Sorted so that errors are reproducible.
	fields := make([]string, 0, len(opts.Overrides))
	for field := range opts.Overrides {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		hd, err = ApplyOverride(hd, field, opts.Overrides[field])
		if err != nil {
			return nil, err
		}
	}

	hd, layout, err := f.resolve(hd)
	if err != nil {
		return nil, err
	}
	f.hd, f.layout = hd, layout

	f.log.Debug().Str("file", f.displayName()).
		Stringer("revision", hd.Revision).
		Stringer("format", hd.Format).
		Int("samples", hd.SamplesPerTrace).
		Int("traces", layout.TraceCount).
		Int64("trace_block", layout.BlockSize).
		Msg("Opened SEG-Y file.")

	return f, nil
}

// resolve fills in a variable extended text header count and computes the
// layout for hd.
func (f *File) resolve(hd *FileHeader) (*FileHeader, *Layout, error) {
	if hd.ExtendedTextHeaders < 0 {
		n, err := countExtendedTextHeaders(f.r, f.size)
		if err != nil {
			return nil, nil, err
		}
		hd = hd.withExtendedTextHeaders(n)
	}

	layout, err := NewLayout(hd, f.size)
	if err != nil {
		return nil, nil, err
	}
	if layout.Remainder != 0 {
		f.log.Debug().Str("file", f.displayName()).
			Int64("remainder", layout.Remainder).
			Msg("File has trailing bytes that don't make up a whole trace.")
	}
	return hd, layout, nil
}

func (f *File) displayName() string {
	if f.name == "" {
		return "<reader>"
	}
	return f.name
}

func (f *File) checkOpen(op string) error {
	if f.closed.Load() {
		return &ClosedResourceError{op}
	}
	return nil
}

// Name returns the path the file was opened with, or "" for readers.
func (f *File) Name() string { return f.name }

// Size returns the size of the file in bytes.
func (f *File) Size() int64 { return f.size }

// Header returns the current binary file header.
func (f *File) Header() *FileHeader {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hd
}

// Layout returns the trace layout implied by the current header.
func (f *File) Layout() *Layout {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.layout
}

// TraceCount returns the number of traces in the file.
func (f *File) TraceCount() int { return f.Layout().TraceCount }

// freeze ends the override window and returns the header and layout that
// every trace read will use from now on.
func (f *File) freeze() (*FileHeader, *Layout) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frozen.Store(true)
	return f.hd, f.layout
}

// Override replaces a binary header field. This is only allowed until the
// first trace is read. Overriding a field recomputes the layout, so
// overriding e.g. SamplesPerTrace changes every trace offset.
func (f *File) Override(field string, value float64) error {
	if err := f.checkOpen("Override"); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.frozen.Load() {
		return &FrozenHeaderError{field}
	}

	hd, err := ApplyOverride(f.hd, field, value)
	if err != nil {
		return err
	}
	hd, layout, err := f.resolve(hd)
	if err != nil {
		return err
	}
	f.hd, f.layout = hd, layout
	return nil
}

// TextHeaders returns the primary and extended text headers. They are
// decoded lazily.
func (f *File) TextHeaders() (*TextHeaders, error) {
	if err := f.checkOpen("TextHeaders"); err != nil {
		return nil, err
	}
	hd := f.Header()
	return ReadTextHeaders(f.r, 1+hd.ExtendedTextHeaders, f.opts.TextEncoding), nil
}

// Close releases the file. Every later operation on the file or on handles
// and iterators created from it returns a *ClosedResourceError. Closing twice
// is not an error.
//
// The accessors which don't read from the file (Name, Size, Header, Layout
// and TraceCount) keep returning the metadata read before Close.
func (f *File) Close() error {
	if f.closed.Swap(true) {
		return nil
	}
	if f.closer != nil {
		return f.closer.Close()
	}
	return nil
}
