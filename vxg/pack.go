package vxg

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pixelito/voxmesh/voxel"
)

// Compression selects how the content section of a pack is compressed.
type Compression uint8

const (
	CompNone Compression = 0
	CompZlib Compression = 1
	CompZstd Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompNone:
		return "none"
	case CompZlib:
		return "zlib"
	case CompZstd:
		return "zstd"
	}
	return fmt.Sprintf("compression(%d)", uint8(c))
}

const (
	packMagic   = "VXGPACK"
	packVersion = 1
)

var (
	ErrNotPack     = errors.New("vxg: not a .vxgpack file")
	ErrChecksum    = errors.New("vxg: pack entry checksum mismatch")
	ErrNoEntry     = errors.New("vxg: no such pack entry")
	ErrDuplicateID = errors.New("vxg: duplicate pack entry name")
)

// PackEntry is a named grid inside a pack. Data holds the entry's .vxg bytes.
type PackEntry struct {
	Name   string
	Digest uint64
	Data   []byte
}

// Pack bundles several grids. Entries whose .vxg bytes are identical share
// one blob on disk.
type Pack struct {
	Entries []PackEntry
}

// Add encodes g and appends it under name.
func (p *Pack) Add(name string, g *voxel.Grid) error {
	for _, e := range p.Entries {
		if e.Name == name {
			return fmt.Errorf("%w: %s", ErrDuplicateID, name)
		}
	}
	data, err := Encode(g)
	if err != nil {
		return err
	}
	p.Entries = append(p.Entries, PackEntry{Name: name, Digest: xxhash.Sum64(data), Data: data})
	return nil
}

// Grid decodes the entry called name.
func (p *Pack) Grid(name string) (*voxel.Grid, error) {
	for _, e := range p.Entries {
		if e.Name == name {
			return Decode(e.Data)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoEntry, name)
}

// blobs deduplicates entry payloads and returns the blob list together with
// each entry's blob index.
func (p *Pack) blobs() ([][]byte, []uint32) {
	var blobs [][]byte
	refs := make([]uint32, len(p.Entries))
	byDigest := make(map[uint64][]uint32)
	for i, e := range p.Entries {
		ref := uint32(len(blobs))
		found := false
		for _, cand := range byDigest[e.Digest] {
			if bytes.Equal(blobs[cand], e.Data) {
				ref, found = cand, true
				break
			}
		}
		if !found {
			blobs = append(blobs, e.Data)
			byDigest[e.Digest] = append(byDigest[e.Digest], ref)
		}
		refs[i] = ref
	}
	return blobs, refs
}

// Marshal serialises the pack with the given compression.
func (p *Pack) Marshal(comp Compression) ([]byte, error) {
	var content bytes.Buffer
	blobs, refs := p.blobs()

	_ = binary.Write(&content, binary.LittleEndian, uint32(len(p.Entries)))
	for i, e := range p.Entries {
		nb := []byte(e.Name)
		if len(nb) > 0xFFFF {
			return nil, fmt.Errorf("vxg: entry name too long: %.32s...", e.Name)
		}
		_ = binary.Write(&content, binary.LittleEndian, uint16(len(nb)))
		content.Write(nb)
		_ = binary.Write(&content, binary.LittleEndian, xxhash.Sum64(e.Data))
		_ = binary.Write(&content, binary.LittleEndian, refs[i])
	}
	_ = binary.Write(&content, binary.LittleEndian, uint32(len(blobs)))
	for _, b := range blobs {
		_ = binary.Write(&content, binary.LittleEndian, uint32(len(b)))
		content.Write(b)
	}

	var body []byte
	switch comp {
	case CompNone:
		body = content.Bytes()
	case CompZlib:
		var buf bytes.Buffer
		zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
		if err != nil {
			return nil, err
		}
		if _, err := zw.Write(content.Bytes()); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		body = buf.Bytes()
	case CompZstd:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		body = enc.EncodeAll(content.Bytes(), nil)
		_ = enc.Close()
	default:
		return nil, fmt.Errorf("vxg: unsupported compression %v", comp)
	}

	var out bytes.Buffer
	out.Grow(len(packMagic) + 2 + len(body))
	out.WriteString(packMagic)
	out.WriteByte(packVersion)
	out.WriteByte(byte(comp))
	out.Write(body)
	return out.Bytes(), nil
}

// UnmarshalPack parses a .vxgpack and verifies every entry's checksum.
func UnmarshalPack(data []byte) (*Pack, Compression, error) {
	hl := len(packMagic) + 2
	if len(data) < hl || string(data[:len(packMagic)]) != packMagic {
		return nil, 0, ErrNotPack
	}
	if v := data[len(packMagic)]; v != packVersion {
		return nil, 0, fmt.Errorf("%w: pack version %d", ErrVersion, v)
	}
	comp := Compression(data[len(packMagic)+1])
	body := data[hl:]

	switch comp {
	case CompNone:
	case CompZlib:
		zr, err := zlib.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, 0, err
		}
		defer zr.Close()
		if body, err = io.ReadAll(zr); err != nil {
			return nil, 0, err
		}
	case CompZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, 0, err
		}
		defer dec.Close()
		if body, err = dec.DecodeAll(body, nil); err != nil {
			return nil, 0, err
		}
	default:
		return nil, 0, fmt.Errorf("vxg: unsupported compression %v", comp)
	}

	r := bytes.NewReader(body)
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, 0, err
	}
	type header struct {
		name   string
		digest uint64
		ref    uint32
	}
	headers := make([]header, 0, min(n, 1<<16))
	seen := make(map[string]struct{}, min(n, 1<<16))
	for i := uint32(0); i < n; i++ {
		var nameLen uint16
		if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
			return nil, 0, err
		}
		name := make([]byte, nameLen)
		if _, err := io.ReadFull(r, name); err != nil {
			return nil, 0, err
		}
		var h header
		h.name = string(name)
		if _, dup := seen[h.name]; dup {
			return nil, 0, fmt.Errorf("%w: %s", ErrDuplicateID, h.name)
		}
		seen[h.name] = struct{}{}
		if err := binary.Read(r, binary.LittleEndian, &h.digest); err != nil {
			return nil, 0, err
		}
		if err := binary.Read(r, binary.LittleEndian, &h.ref); err != nil {
			return nil, 0, err
		}
		headers = append(headers, h)
	}

	var nBlobs uint32
	if err := binary.Read(r, binary.LittleEndian, &nBlobs); err != nil {
		return nil, 0, err
	}
	blobs := make([][]byte, 0, min(nBlobs, 1<<16))
	for i := uint32(0); i < nBlobs; i++ {
		var size uint32
		if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
			return nil, 0, err
		}
		if int64(size) > int64(r.Len()) {
			return nil, 0, io.ErrUnexpectedEOF
		}
		b := make([]byte, size)
		if _, err := io.ReadFull(r, b); err != nil {
			return nil, 0, err
		}
		blobs = append(blobs, b)
	}

	pack := &Pack{Entries: make([]PackEntry, 0, len(headers))}
	for _, h := range headers {
		if h.ref >= uint32(len(blobs)) {
			return nil, 0, fmt.Errorf("%w: entry %s references blob %d of %d", ErrCorrupt, h.name, h.ref, len(blobs))
		}
		b := blobs[h.ref]
		if xxhash.Sum64(b) != h.digest {
			return nil, 0, fmt.Errorf("%w: %s", ErrChecksum, h.name)
		}
		pack.Entries = append(pack.Entries, PackEntry{Name: h.name, Digest: h.digest, Data: b})
	}
	return pack, comp, nil
}

// BlobCount returns how many distinct payloads Marshal would store.
func (p *Pack) BlobCount() int {
	blobs, _ := p.blobs()
	return len(blobs)
}
