// Package vxg stores voxel grids on disk.
//
// A .vxg file holds one grid; a .vxgpack bundles several, and an edit stream
// records sparse changes to apply to an existing grid.
package vxg

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/pixelito/voxmesh/voxel"
)

const (
	magic      = "VXGR"
	version    = 1
	headerSize = 17
	maxDim     = 0xFFFF

	// maxCells bounds W*H*D so a header alone cannot force a huge allocation.
	maxCells = 1 << 24
)

var (
	ErrNotVXG      = errors.New("vxg: not a .vxg file")
	ErrVersion     = errors.New("vxg: unsupported version")
	ErrEncoding    = errors.New("vxg: unknown encoding")
	ErrCorrupt     = errors.New("vxg: corrupt payload")
	ErrTooLarge    = errors.New("vxg: grid too large")
	ErrUnsupported = errors.New("vxg: unsupported bits per voxel")
)

// Header is the fixed part of a .vxg file.
type Header struct {
	Version  uint8
	Encoding uint8
	BPV      uint8 // bits per voxel
	W, H, D  uint16
	PLen     uint32
}

// Encode serialises g, choosing the most compact encoding.
func Encode(g *voxel.Grid) ([]byte, error) {
	if g.Width() > maxDim || g.Height() > maxDim || g.Depth() > maxDim || g.Len() > maxCells {
		return nil, fmt.Errorf("%w: %v", ErrTooLarge, g.Dims())
	}
	enc := bestEncoding(stream(g))
	hdr := Header{
		Version:  version,
		Encoding: enc.encoding,
		BPV:      typeBits,
		W:        uint16(g.Width()),
		H:        uint16(g.Height()),
		D:        uint16(g.Depth()),
		PLen:     uint32(len(enc.payload)),
	}
	var buf bytes.Buffer
	buf.Grow(headerSize + len(enc.payload))
	buf.WriteString(magic)
	_ = binary.Write(&buf, binary.LittleEndian, hdr)
	buf.Write(enc.payload)
	return buf.Bytes(), nil
}

// ParseHeader validates the header of a .vxg file and returns it with the
// payload.
func ParseHeader(data []byte) (Header, []byte, error) {
	var hdr Header
	if len(data) < headerSize || string(data[:4]) != magic {
		return hdr, nil, ErrNotVXG
	}
	if err := binary.Read(bytes.NewReader(data[4:headerSize]), binary.LittleEndian, &hdr); err != nil {
		return hdr, nil, err
	}
	if hdr.Version != version {
		return hdr, nil, fmt.Errorf("%w: %d", ErrVersion, hdr.Version)
	}
	if hdr.BPV != typeBits {
		return hdr, nil, fmt.Errorf("%w: %d", ErrUnsupported, hdr.BPV)
	}
	if uint64(len(data)-headerSize) != uint64(hdr.PLen) {
		return hdr, nil, fmt.Errorf("%w: payload is %d bytes, header says %d", ErrCorrupt, len(data)-headerSize, hdr.PLen)
	}
	return hdr, data[headerSize:], nil
}

// Decode parses a .vxg file.
func Decode(data []byte) (*voxel.Grid, error) {
	hdr, payload, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	cells64 := uint64(hdr.W) * uint64(hdr.H) * uint64(hdr.D)
	if cells64 > maxCells {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrTooLarge, hdr.W, hdr.H, hdr.D)
	}
	n := int(cells64)
	lo, hi, ok := payloadBounds(hdr.Encoding&^encCompressed, n)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrEncoding, hdr.Encoding)
	}
	if hdr.Encoding&encCompressed != 0 {
		payload, err = zlibDecompress(payload, hi)
		if err != nil {
			return nil, fmt.Errorf("vxg: inflate: %w", err)
		}
	}
	if len(payload) < lo || len(payload) > hi {
		return nil, fmt.Errorf("%w: %d payload bytes for %d cells", ErrCorrupt, len(payload), n)
	}
	g, err := voxel.New(int(hdr.W), int(hdr.H), int(hdr.D))
	if err != nil {
		return nil, err
	}
	var cells []voxel.Type
	switch hdr.Encoding &^ encCompressed {
	case encDense:
		cells, err = decodeDense(payload, n)
	case encSparse:
		cells, err = decodeSparse(payload, n)
	case encBitmap:
		cells, err = decodeBitmap(payload, n)
	}
	if err != nil {
		return nil, fmt.Errorf("vxg: decode: %w", err)
	}
	for rank, i := range mortonOrder(g.Width(), g.Height(), g.Depth()) {
		if err := g.SetIndex(i, cells[rank]); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Save writes g to filename.
func Save(g *voxel.Grid, filename string) error {
	data, err := Encode(g)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}

// Load reads a grid from filename.
func Load(filename string) (*voxel.Grid, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	g, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return g, nil
}
