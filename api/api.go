package api

import (
	"bytes"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/voxelsplace/sierpinski/meshpack"
	"github.com/voxelsplace/sierpinski/sierpinski"
)

// NewDocument returns an empty glTF document with the shared material every
// mesh primitive points at.
func NewDocument(generator string) *gltf.Document {
	doc := gltf.NewDocument()
	doc.Asset.Generator = generator
	pbr := &gltf.PBRMetallicRoughness{MetallicFactor: gltf.Float(0), RoughnessFactor: gltf.Float(1)}
	doc.Materials = []*gltf.Material{{Name: "Sierpinski", PBRMetallicRoughness: pbr, AlphaMode: gltf.AlphaOpaque, DoubleSided: true}}
	return doc
}

// AddMesh writes m into doc as a new mesh with its own node in the default
// scene. Every vertex is shifted by offset. Each face gets its own three
// corners so that every corner carries that face's flat normal.
func AddMesh(doc *gltf.Document, name string, m *sierpinski.Mesh, offset sierpinski.Point3) {
	positions, normals, indices := faceBuffers(m, offset)

	posAccessor := modeler.WritePosition(doc, positions)
	normalAccessor := modeler.WriteNormal(doc, normals)
	indicesAccessor := modeler.WriteIndices(doc, indices)

	prim := &gltf.Primitive{
		Attributes: map[string]int{
			gltf.POSITION: posAccessor,
			gltf.NORMAL:   normalAccessor,
		},
		Indices:  gltf.Index(indicesAccessor),
		Material: gltf.Index(0),
	}
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: name, Primitives: []*gltf.Primitive{prim}})
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: name, Mesh: gltf.Index(len(doc.Meshes) - 1)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
}

// faceBuffers un-indexes m: corner 3i+k is corner k of face i. Degenerate
// faces get a zero normal.
func faceBuffers(m *sierpinski.Mesh, offset sierpinski.Point3) (positions, normals [][3]float32, indices []uint32) {
	positions = make([][3]float32, 0, 3*len(m.Faces))
	normals = make([][3]float32, 0, 3*len(m.Faces))
	indices = make([]uint32, 0, 3*len(m.Faces))
	for i := range m.Faces {
		tri := m.Triangle(i)
		var n [3]float32
		if cross := tri.Normal(); r3.Norm(cross) > 0 {
			u := r3.Unit(cross)
			n = [3]float32{float32(u.X), float32(u.Y), float32(u.Z)}
		}
		for _, v := range tri {
			v = r3.Add(v, offset)
			indices = append(indices, uint32(len(positions)))
			positions = append(positions, [3]float32{float32(v.X), float32(v.Y), float32(v.Z)})
			normals = append(normals, n)
		}
	}
	return positions, normals, indices
}

// EncodeGLB serialises doc as binary glTF.
func EncodeGLB(doc *gltf.Document) ([]byte, error) {
	var out bytes.Buffer
	enc := gltf.NewEncoder(&out)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// MeshToGLB returns m as a single-node .glb.
func MeshToGLB(m *sierpinski.Mesh, name string) ([]byte, error) {
	doc := NewDocument("Sierpinski -> GLB")
	AddMesh(doc, name, m, sierpinski.Point3{})
	return EncodeGLB(doc)
}

// GenerateGLB builds the default tetrahedron at level and returns it as .glb.
func GenerateGLB(level int) ([]byte, error) {
	mesh, err := sierpinski.Generate(sierpinski.DefaultCorners(), level)
	if err != nil {
		return nil, err
	}
	return MeshToGLB(mesh, EntryName(level))
}

// EntryName is the mesh/entry name used for a generated level.
func EntryName(level int) string {
	return fmt.Sprintf("SierpinskiTetrahedron_L%d", level)
}

// BuildPack generates one entry per level inside corners.
func BuildPack(corners sierpinski.Tetrahedron, levels []int) (*meshpack.Pack, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("no levels")
	}
	pack := &meshpack.Pack{Entries: make([]meshpack.Entry, 0, len(levels))}
	for _, level := range levels {
		mesh, err := sierpinski.Generate(corners, level)
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", level, err)
		}
		pack.Entries = append(pack.Entries, meshpack.Entry{
			Name:    EntryName(level),
			Level:   level,
			Corners: corners,
			Mesh:    mesh,
		})
	}
	return pack, nil
}

// PackLevels builds a pack of the default tetrahedron at each level.
func PackLevels(levels []int, comp meshpack.Compression) ([]byte, error) {
	pack, err := BuildPack(sierpinski.DefaultCorners(), levels)
	if err != nil {
		return nil, err
	}
	return pack.Marshal(comp)
}

// PackToDocument lays the entries of pack out side by side on the X/Y
// grid, one node per entry.
func PackToDocument(pack *meshpack.Pack) (*gltf.Document, error) {
	n := len(pack.Entries)
	if n == 0 {
		return nil, fmt.Errorf("empty pack: no entries")
	}
	doc := NewDocument("SIERPACK -> GLB")
	cols := int(math.Ceil(math.Sqrt(float64(n))))

	// one cell is as wide as the largest entry
	var step float64
	for _, e := range pack.Entries {
		size := e.Mesh.Bounds().Size()
		step = math.Max(step, math.Max(size.X, size.Y))
	}
	for i, e := range pack.Entries {
		r := i / cols
		c := i % cols
		AddMesh(doc, e.Name, e.Mesh, sierpinski.Point3{X: float64(c) * step, Y: float64(r) * step})
	}
	return doc, nil
}

// UnpackToGLB returns a map of entry name -> .glb bytes from a pack blob.
func UnpackToGLB(packBytes []byte) (map[string][]byte, error) {
	pack, _, err := meshpack.Unmarshal(packBytes)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(pack.Entries))
	for _, e := range pack.Entries {
		b, err := MeshToGLB(e.Mesh, e.Name)
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", e.Name, err)
		}
		out[e.Name] = b
	}
	return out, nil
}
