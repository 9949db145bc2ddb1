// Package bitio implements CLIM's big-endian (most-significant-bit-first)
// bit-level output, the bit order the container format requires for every
// variable-width field it defines.
package bitio

import (
	"bytes"
	"errors"

	"github.com/icza/bitio"
)

// ErrBitsOutOfRange is returned by WriteUint when bits is outside [1, 64].
var ErrBitsOutOfRange = errors.New("bitio: bits out of range")

// Writer is an append-only big-endian bit buffer. It accumulates
// variable-width unsigned integers and can be padded to a byte boundary on
// demand; the underlying github.com/icza/bitio.Writer already buffers
// partial bytes across calls, so writes never implicitly realign until
// Align or Bytes is called.
type Writer struct {
	buf  *bytes.Buffer
	w    *bitio.Writer
	bits int
	err  error
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	buf := new(bytes.Buffer)
	return &Writer{buf: buf, w: bitio.NewWriter(buf)}
}

// WriteUint appends the low bits of value, most-significant-bit first.
func (w *Writer) WriteUint(value uint64, bits int) error {
	if w.err != nil {
		return w.err
	}
	if bits < 1 || bits > 64 {
		w.err = ErrBitsOutOfRange
		return w.err
	}
	if err := w.w.WriteBits(value, uint8(bits)); err != nil {
		w.err = err
		return err
	}
	w.bits += bits
	return nil
}

// Align zero-pads the stream to the next byte boundary. It is a no-op if
// the writer is already byte-aligned.
func (w *Writer) Align() error {
	if w.err != nil {
		return w.err
	}
	pad := (8 - w.bits%8) % 8
	if pad == 0 {
		return nil
	}
	if err := w.w.WriteBits(0, uint8(pad)); err != nil {
		w.err = err
		return err
	}
	w.bits += pad
	return nil
}

// BitLen returns the number of bits written so far.
func (w *Writer) BitLen() int {
	return w.bits
}

// Bytes aligns the writer to a byte boundary and returns the accumulated
// bytes. A []byte cannot represent a fractional byte, so this always
// aligns regardless of any caller-chosen alignment policy applied earlier
// in the stream; see internal/encoding for how the configurable alignment
// points fit around this.
func (w *Writer) Bytes() ([]byte, error) {
	if err := w.Align(); err != nil {
		return nil, err
	}
	if w.err != nil {
		return nil, w.err
	}
	out := make([]byte, w.buf.Len())
	copy(out, w.buf.Bytes())
	return out, nil
}

// Err returns the first error encountered during writing, if any.
func (w *Writer) Err() error {
	return w.err
}
