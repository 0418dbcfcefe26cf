package segyio

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

// lockedReaderAt turns an io.ReadSeeker into an io.ReaderAt. Each read is a
// seek followed by a read, so the pair is done under a mutex.
type lockedReaderAt struct {
	mu sync.Mutex
	rs io.ReadSeeker
}

func (r *lockedReaderAt) ReadAt(p []byte, off int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.rs.Seek(off, io.SeekStart); err != nil {
		return 0, err
	}
	n, err := io.ReadFull(r.rs, p)
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return n, err
}

// size returns the total length of the underlying stream.
func (r *lockedReaderAt) size() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, err := r.rs.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, fmt.Errorf("could not find the size of the input: %w", err)
	}
	return n, nil
}

// closableReaderAt fails every read after the file it belongs to is closed.
type closableReaderAt struct {
	r      io.ReaderAt
	closed *atomic.Bool
}

func (r *closableReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if r.closed.Load() {
		return 0, &ClosedResourceError{"ReadAt"}
	}
	return r.r.ReadAt(p, off)
}
