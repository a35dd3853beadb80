// Package export writes meshes as binary glTF.
package export

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pixelito/voxmesh/voxel"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

var (
	ErrEmptyMesh  = errors.New("export: mesh has no quads")
	ErrEmptyScene = errors.New("export: scene has no meshes")
)

const generator = "voxmesh"

// Scene collects meshes into one glTF document, one node per mesh, all sharing
// a single opaque material that samples the block atlas through TEXCOORD_0.
type Scene struct {
	doc *gltf.Document
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	doc := gltf.NewDocument()
	doc.Asset.Generator = generator
	doc.Materials = []*gltf.Material{{
		Name: "atlas",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			MetallicFactor:  gltf.Float(0),
			RoughnessFactor: gltf.Float(1),
		},
		AlphaMode: gltf.AlphaOpaque,
	}}
	return &Scene{doc: doc}
}

// Add appends m as a named node placed at offset.
func (s *Scene) Add(name string, m *voxel.Mesh, offset [3]float64) error {
	if m.QuadCount() == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyMesh, name)
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("export: %s: %w", name, err)
	}

	positions := make([][3]float32, m.VertexCount())
	uvs := make([][2]float32, m.VertexCount())
	for i := range positions {
		positions[i] = [3]float32{m.Positions[3*i], m.Positions[3*i+1], m.Positions[3*i+2]}
		uvs[i] = [2]float32{m.TexCoords[2*i], m.TexCoords[2*i+1]}
	}
	indices := make([]uint32, len(m.Indices))
	copy(indices, m.Indices)

	posAccessor := modeler.WritePosition(s.doc, positions)
	uvAccessor := modeler.WriteTextureCoord(s.doc, uvs)
	indicesAccessor := modeler.WriteIndices(s.doc, indices)

	prim := &gltf.Primitive{
		Attributes: gltf.PrimitiveAttributes{
			gltf.POSITION:   posAccessor,
			gltf.TEXCOORD_0: uvAccessor,
		},
		Indices:  gltf.Index(indicesAccessor),
		Material: gltf.Index(0),
	}
	s.doc.Meshes = append(s.doc.Meshes, &gltf.Mesh{Name: name, Primitives: []*gltf.Primitive{prim}})
	node := &gltf.Node{Name: name, Mesh: gltf.Index(len(s.doc.Meshes) - 1), Translation: offset}
	s.doc.Nodes = append(s.doc.Nodes, node)
	s.doc.Scenes[0].Nodes = append(s.doc.Scenes[0].Nodes, len(s.doc.Nodes)-1)
	return nil
}

// Len returns the number of meshes added so far.
func (s *Scene) Len() int { return len(s.doc.Meshes) }

// Bytes encodes the scene as GLB.
func (s *Scene) Bytes() ([]byte, error) {
	if s.Len() == 0 {
		return nil, ErrEmptyScene
	}
	var out bytes.Buffer
	enc := gltf.NewEncoder(&out)
	enc.AsBinary = true
	if err := enc.Encode(s.doc); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Save writes the scene to path as GLB.
func (s *Scene) Save(path string) error {
	if s.Len() == 0 {
		return ErrEmptyScene
	}
	return gltf.SaveBinary(s.doc, path)
}

// GLB encodes a single mesh as a GLB document.
func GLB(m *voxel.Mesh, name string) ([]byte, error) {
	s := NewScene()
	if err := s.Add(name, m, [3]float64{}); err != nil {
		return nil, err
	}
	return s.Bytes()
}

// SaveGLB writes a single mesh to path as GLB.
func SaveGLB(m *voxel.Mesh, name, path string) error {
	s := NewScene()
	if err := s.Add(name, m, [3]float64{}); err != nil {
		return err
	}
	return s.Save(path)
}
