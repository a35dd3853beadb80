package vxg

import (
	"io"
	"math/bits"
)

// bitWriter packs values LSB-first into a byte stream.
type bitWriter struct {
	buf []byte
	acc uint64
	n   uint8
}

func newBitWriter(sizeHint int) *bitWriter {
	return &bitWriter{buf: make([]byte, 0, sizeHint)}
}

func (w *bitWriter) writeBits(v uint64, width uint8) {
	w.acc |= (v & (1<<width - 1)) << w.n
	w.n += width
	for w.n >= 8 {
		w.buf = append(w.buf, byte(w.acc))
		w.acc >>= 8
		w.n -= 8
	}
}

// bytes flushes any partial byte and returns the stream.
func (w *bitWriter) bytes() []byte {
	if w.n > 0 {
		w.buf = append(w.buf, byte(w.acc))
		w.acc = 0
		w.n = 0
	}
	return w.buf
}

type bitReader struct {
	data []byte
	acc  uint64
	n    uint8
	pos  int
}

func newBitReader(b []byte) *bitReader { return &bitReader{data: b} }

func (r *bitReader) readBits(width uint8) (uint64, error) {
	for r.n < width {
		if r.pos >= len(r.data) {
			return 0, io.ErrUnexpectedEOF
		}
		r.acc |= uint64(r.data[r.pos]) << r.n
		r.n += 8
		r.pos++
	}
	v := r.acc & (1<<width - 1)
	r.acc >>= width
	r.n -= width
	return v, nil
}

// indexBits is the number of bits needed to address n cells.
func indexBits(n int) uint8 {
	if n <= 1 {
		return 1
	}
	return uint8(bits.Len(uint(n - 1)))
}
