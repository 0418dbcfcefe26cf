/*package compress handles zstd-compressed SEG-Y files. SEG-Y files are often
archived compressed, and traces can only be read with random access once the
file has been decompressed, so everything here works on whole files.
*/
package compress

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/DataDog/zstd"
)

// magic is the zstd frame magic number, 0xFD2FB528, as it appears on disk.
var magic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// IsCompressed returns true if b starts with a zstd frame.
func IsCompressed(b []byte) bool { return bytes.HasPrefix(b, magic) }

// Compress compresses b with the given zstd level. Level 1 is fastest.
func Compress(b []byte, level int) ([]byte, error) {
	out, err := zstd.CompressLevel(nil, b, level)
	if err != nil {
		return nil, fmt.Errorf("zstd compression failed: %w", err)
	}
	return out, nil
}

// Decompress decompresses a zstd frame.
func Decompress(b []byte) ([]byte, error) {
	out, err := zstd.Decompress(nil, b)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	return out, nil
}

// ReadFile reads the file at path and decompresses it if it is compressed.
// Uncompressed files are returned as-is.
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("The file %s cannot be opened: %w", path, err)
	}
	defer f.Close()

	b, err := readAllAndClose(NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("The file %s cannot be decompressed: %w",
			path, err)
	}
	return b, nil
}

// readAllAndClose reads rc to the end and closes it. The zstd reader only
// frees its decompression context when it's closed.
func readAllAndClose(rc io.ReadCloser) ([]byte, error) {
	b, err := io.ReadAll(rc)
	if cerr := rc.Close(); err == nil {
		err = cerr
	}
	return b, err
}

// NewReader returns a reader which decompresses r if it starts with a zstd
// frame and passes it through unchanged otherwise.
func NewReader(r io.Reader) io.ReadCloser {
	head := make([]byte, len(magic))
	n, err := io.ReadFull(r, head)
	head = head[:n]
	rest := io.MultiReader(bytes.NewReader(head), r)
	if err != nil || !IsCompressed(head) {
		return io.NopCloser(rest)
	}
	return zstd.NewReader(rest)
}

// WriteFile compresses b and writes it to path.
func WriteFile(path string, b []byte, level int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	wr := zstd.NewWriterLevel(f, level)
	if _, err := wr.Write(b); err != nil {
		f.Close()
		return err
	}
	if err := wr.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
