// Package scratch manages the scoped temporary directory the chunk
// pipeline uses to bound memory to one resident chunk at a time: each
// chunk's encoded bytes are flushed to a scratch file immediately and
// streamed back out when the container is assembled.
package scratch

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// Dir is a scoped temporary directory, created by New and removed
// entirely by Close, regardless of whether the caller's work succeeded.
type Dir struct {
	path string
	next int
}

// New creates a fresh scratch directory under the OS default temp
// location.
func New() (*Dir, error) {
	path, err := os.MkdirTemp("", "climenc-*")
	if err != nil {
		return nil, err
	}
	return &Dir{path: path}, nil
}

// WriteChunk persists data to a new scratch file and returns its path and
// size.
func (d *Dir) WriteChunk(data []byte) (string, int64, error) {
	name := filepath.Join(d.path, "chunk-"+strconv.Itoa(d.next)+".bin")
	d.next++
	if err := os.WriteFile(name, data, 0o600); err != nil {
		return "", 0, err
	}
	return name, int64(len(data)), nil
}

// CopyChunk streams a previously written scratch file's contents to w.
func (d *Dir) CopyChunk(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}

// Close removes the scratch directory and everything in it.
func (d *Dir) Close() error {
	return os.RemoveAll(d.path)
}
