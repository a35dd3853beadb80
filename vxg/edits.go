package vxg

import (
	"errors"
	"fmt"

	"github.com/pixelito/voxmesh/voxel"
)

var ErrDimsMismatch = errors.New("vxg: grid dimensions differ")

// Edit sets one cell of a grid. Type Empty clears the cell.
type Edit struct {
	Index uint32 // flat grid index
	Type  voxel.Type
}

// EncodeEdits packs edits for a grid of n cells into a bit stream: a 32-bit
// entry count, then per entry an index of indexBits(n) bits and a 4-bit type.
func EncodeEdits(n int, edits []Edit) []byte {
	ib := indexBits(n)
	bw := newBitWriter(4 + len(edits)*int(ib+typeBits)/8)
	bw.writeBits(uint64(len(edits)), 32)
	for _, e := range edits {
		bw.writeBits(uint64(e.Index), ib)
		bw.writeBits(uint64(e.Type), typeBits)
	}
	return bw.bytes()
}

// DecodeEdits unpacks a stream produced by EncodeEdits. An empty stream holds
// no edits.
func DecodeEdits(n int, data []byte) ([]Edit, error) {
	if len(data) == 0 {
		return nil, nil
	}
	ib := indexBits(n)
	br := newBitReader(data)
	count, err := br.readBits(32)
	if err != nil {
		return nil, fmt.Errorf("vxg: edit count: %w", err)
	}
	edits := make([]Edit, 0, min(count, uint64(n)))
	for i := uint64(0); i < count; i++ {
		idx, err := br.readBits(ib)
		if err != nil {
			return nil, fmt.Errorf("vxg: edit %d: %w", i, err)
		}
		t, err := br.readBits(typeBits)
		if err != nil {
			return nil, fmt.Errorf("vxg: edit %d: %w", i, err)
		}
		if idx >= uint64(n) {
			return nil, fmt.Errorf("%w: edit index %d out of range", ErrCorrupt, idx)
		}
		if !voxel.Type(t).Valid() {
			return nil, fmt.Errorf("%w: edit %d has unknown type %d", ErrCorrupt, i, t)
		}
		edits = append(edits, Edit{Index: uint32(idx), Type: voxel.Type(t)})
	}
	return edits, nil
}

// ApplyEdits decodes data and applies every edit to g in order.
func ApplyEdits(g *voxel.Grid, data []byte) error {
	edits, err := DecodeEdits(g.Len(), data)
	if err != nil {
		return err
	}
	for _, e := range edits {
		if err := g.SetIndex(int(e.Index), e.Type); err != nil {
			return err
		}
	}
	return nil
}

// Diff returns the edits that turn a into b, in ascending index order.
func Diff(a, b *voxel.Grid) ([]Edit, error) {
	if a.Dims() != b.Dims() {
		return nil, fmt.Errorf("%w: %v vs %v", ErrDimsMismatch, a.Dims(), b.Dims())
	}
	var edits []Edit
	for i := 0; i < a.Len(); i++ {
		if t := b.AtIndex(i); a.AtIndex(i) != t {
			edits = append(edits, Edit{Index: uint32(i), Type: t})
		}
	}
	return edits, nil
}
