// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package codec reads and writes the fixed-layout little-endian blobs
// carried in lock args and cell data.
package codec

import (
	"encoding/binary"

	"github.com/clerkb/clerk/clerk"
)

// Reader decodes a blob field by field. The first failure sticks;
// subsequent reads return zero values.
type Reader struct {
	buf []byte
	off int
	err error
}

// NewReader creates a reader over data. data is not copied.
func NewReader(data []byte) *Reader {
	return &Reader{buf: data}
}

func (r *Reader) take(n int, field string) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || len(r.buf)-r.off < n {
		r.err = clerk.Reject(clerk.MalformedArgs, "%s: need %d bytes, have %d", field, n, len(r.buf)-r.off)
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

// Uint8 reads one byte.
func (r *Reader) Uint8(field string) uint8 {
	if b := r.take(1, field); b != nil {
		return b[0]
	}
	return 0
}

// Uint16 reads a little-endian uint16.
func (r *Reader) Uint16(field string) uint16 {
	if b := r.take(2, field); b != nil {
		return binary.LittleEndian.Uint16(b)
	}
	return 0
}

// Uint32 reads a little-endian uint32.
func (r *Reader) Uint32(field string) uint32 {
	if b := r.take(4, field); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

// Uint64 reads a little-endian uint64.
func (r *Reader) Uint64(field string) uint64 {
	if b := r.take(8, field); b != nil {
		return binary.LittleEndian.Uint64(b)
	}
	return 0
}

// Bytes reads n bytes into a fresh slice.
func (r *Reader) Bytes(n int, field string) []byte {
	if b := r.take(n, field); b != nil {
		return append(make([]byte, 0, n), b...)
	}
	return nil
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

// Err returns the first read failure.
func (r *Reader) Err() error {
	return r.err
}

// Done returns the first read failure, or a MalformedArgs rejection if
// unread bytes remain. Every blob has exactly one valid length.
func (r *Reader) Done() error {
	if r.err != nil {
		return r.err
	}
	if rest := r.Remaining(); rest != 0 {
		return clerk.Reject(clerk.MalformedArgs, "%d trailing bytes", rest)
	}
	return nil
}

// Writer encodes a blob field by field.
type Writer struct {
	buf []byte
}

// NewWriter creates a writer with the given capacity hint.
func NewWriter(size int) *Writer {
	return &Writer{buf: make([]byte, 0, size)}
}

// Uint8 appends one byte.
func (w *Writer) Uint8(v uint8) *Writer {
	w.buf = append(w.buf, v)
	return w
}

// Uint16 appends a little-endian uint16.
func (w *Writer) Uint16(v uint16) *Writer {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
	return w
}

// Uint32 appends a little-endian uint32.
func (w *Writer) Uint32(v uint32) *Writer {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
	return w
}

// Uint64 appends a little-endian uint64.
func (w *Writer) Uint64(v uint64) *Writer {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
	return w
}

// Raw appends b verbatim.
func (w *Writer) Raw(b []byte) *Writer {
	w.buf = append(w.buf, b...)
	return w
}

// Bytes returns the encoded blob.
func (w *Writer) Bytes() []byte {
	return w.buf
}
