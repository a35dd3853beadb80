package vxg

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/pixelito/voxmesh/voxel"
)

const (
	encDense  = 0 // typeBits per cell
	encSparse = 1 // count, then (rank, type) per occupied cell
	encBitmap = 2 // occupancy bitmap, then types of occupied cells

	encCompressed = 0x80
)

// typeBits is the per-voxel width used by every encoding.
const typeBits = 4

type encoded struct {
	encoding uint8
	payload  []byte
}

// stream returns the grid cells in Morton order.
func stream(g *voxel.Grid) []voxel.Type {
	out := make([]voxel.Type, 0, g.Len())
	for _, i := range mortonOrder(g.Width(), g.Height(), g.Depth()) {
		out = append(out, g.AtIndex(i))
	}
	return out
}

func encodeDense(cells []voxel.Type) []byte {
	bw := newBitWriter(len(cells)/2 + 1)
	for _, t := range cells {
		bw.writeBits(uint64(t), typeBits)
	}
	return bw.bytes()
}

func encodeSparse(cells []voxel.Type) []byte {
	count := 0
	for _, t := range cells {
		if t != voxel.Empty {
			count++
		}
	}
	ib := indexBits(len(cells))
	bw := newBitWriter(4 + count*int(ib+typeBits)/8)
	bw.writeBits(uint64(count), 32)
	for rank, t := range cells {
		if t == voxel.Empty {
			continue
		}
		bw.writeBits(uint64(rank), ib)
		bw.writeBits(uint64(t), typeBits)
	}
	return bw.bytes()
}

func encodeBitmap(cells []voxel.Type) []byte {
	bitmap := make([]byte, (len(cells)+7)/8)
	bw := newBitWriter(len(cells) / 2)
	for i, t := range cells {
		if t == voxel.Empty {
			continue
		}
		bitmap[i>>3] |= 1 << (uint(i) & 7)
		bw.writeBits(uint64(t), typeBits)
	}
	return append(bitmap, bw.bytes()...)
}

func zlibCompress(b []byte) []byte {
	var buf bytes.Buffer
	zw, _ := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	_, _ = zw.Write(b)
	_ = zw.Close()
	return buf.Bytes()
}

// zlibDecompress inflates b, failing once the output passes limit bytes.
func zlibDecompress(b []byte, limit int) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	out, err := io.ReadAll(io.LimitReader(zr, int64(limit)+1))
	if err != nil {
		return nil, err
	}
	if len(out) > limit {
		return nil, fmt.Errorf("%w: inflates past %d bytes", ErrCorrupt, limit)
	}
	return out, nil
}

// payloadBounds returns the smallest and largest raw payload an encoding can
// produce for n cells.
func payloadBounds(encoding uint8, n int) (lo, hi int, ok bool) {
	typeBytes := (n*typeBits + 7) / 8
	switch encoding {
	case encDense:
		return typeBytes, typeBytes, true
	case encSparse:
		return 4, (32 + n*int(indexBits(n)+typeBits) + 7) / 8, true
	case encBitmap:
		return (n + 7) / 8, (n+7)/8 + typeBytes, true
	}
	return 0, 0, false
}

// bestEncoding picks the smallest payload among the raw and compressed
// versions of every encoding.
func bestEncoding(cells []voxel.Type) encoded {
	candidates := []encoded{
		{encDense, encodeDense(cells)},
		{encSparse, encodeSparse(cells)},
		{encBitmap, encodeBitmap(cells)},
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if len(c.payload) < len(best.payload) {
			best = c
		}
	}
	for _, c := range candidates {
		zb := zlibCompress(c.payload)
		if len(zb) < len(best.payload) {
			best = encoded{c.encoding | encCompressed, zb}
		}
	}
	return best
}

func decodeDense(payload []byte, n int) ([]voxel.Type, error) {
	br := newBitReader(payload)
	cells := make([]voxel.Type, n)
	for i := range cells {
		v, err := br.readBits(typeBits)
		if err != nil {
			return nil, err
		}
		cells[i] = voxel.Type(v)
	}
	return cells, nil
}

func decodeSparse(payload []byte, n int) ([]voxel.Type, error) {
	br := newBitReader(payload)
	cells := make([]voxel.Type, n)
	count, err := br.readBits(32)
	if err != nil {
		return nil, err
	}
	if count > uint64(n) {
		return nil, ErrCorrupt
	}
	ib := indexBits(n)
	for i := uint64(0); i < count; i++ {
		rank, err := br.readBits(ib)
		if err != nil {
			return nil, err
		}
		t, err := br.readBits(typeBits)
		if err != nil {
			return nil, err
		}
		if rank >= uint64(n) {
			return nil, ErrCorrupt
		}
		cells[rank] = voxel.Type(t)
	}
	return cells, nil
}

func decodeBitmap(payload []byte, n int) ([]voxel.Type, error) {
	size := (n + 7) / 8
	if len(payload) < size {
		return nil, io.ErrUnexpectedEOF
	}
	bitmap := payload[:size]
	br := newBitReader(payload[size:])
	cells := make([]voxel.Type, n)
	for i := range cells {
		if bitmap[i>>3]>>(uint(i)&7)&1 == 0 {
			continue
		}
		t, err := br.readBits(typeBits)
		if err != nil {
			return nil, err
		}
		cells[i] = voxel.Type(t)
	}
	return cells, nil
}
