package sierpinski

import (
	"iter"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Face is a triangle given by three vertex indices.
type Face [3]uint32

// Mesh holds a vertex buffer and the triangles indexing into it.
type Mesh struct {
	Vertices []Point3
	Faces    []Face
}

// one face per omitted corner: 3, 2, 1, 0
var tetraFaces = [4]Face{
	{0, 1, 2},
	{0, 1, 3},
	{0, 2, 3},
	{1, 2, 3},
}

func (m *Mesh) VertexCount() int { return len(m.Vertices) }

func (m *Mesh) FaceCount() int { return len(m.Faces) }

// Triangle returns the corner positions of face i.
func (m *Mesh) Triangle(i int) r3.Triangle {
	f := m.Faces[i]
	return r3.Triangle{m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]}
}

// Bounds returns the axis-aligned bounding box of all vertices.
// An empty mesh has a zero Box.
func (m *Mesh) Bounds() r3.Box {
	if len(m.Vertices) == 0 {
		return r3.Box{}
	}
	lo := Point3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi := Point3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, v := range m.Vertices {
		lo.X, hi.X = math.Min(lo.X, v.X), math.Max(hi.X, v.X)
		lo.Y, hi.Y = math.Min(lo.Y, v.Y), math.Max(hi.Y, v.Y)
		lo.Z, hi.Z = math.Min(lo.Z, v.Z), math.Max(hi.Z, v.Z)
	}
	return r3.Box{Min: lo, Max: hi}
}

// Append copies other's vertices and faces onto the end of m, shifting
// other's face indices past m's existing vertices.
func (m *Mesh) Append(other *Mesh) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, f := range other.Faces {
		m.Faces = append(m.Faces, Face{f[0] + base, f[1] + base, f[2] + base})
	}
}

// Builder assembles tetrahedra into a Mesh. Every tetrahedron gets four
// fresh vertices; nothing is merged.
type Builder struct {
	mesh *Mesh
}

func NewBuilder() *Builder {
	return &Builder{mesh: &Mesh{}}
}

// Grow reserves room for n more tetrahedra.
func (b *Builder) Grow(n int) {
	if n <= 0 {
		return
	}
	m := b.mesh
	if free := cap(m.Vertices) - len(m.Vertices); free < 4*n {
		v := make([]Point3, len(m.Vertices), len(m.Vertices)+4*n)
		copy(v, m.Vertices)
		m.Vertices = v
	}
	if free := cap(m.Faces) - len(m.Faces); free < 4*n {
		f := make([]Face, len(m.Faces), len(m.Faces)+4*n)
		copy(f, m.Faces)
		m.Faces = f
	}
}

// Add appends t's corners and its four faces.
func (b *Builder) Add(t Tetrahedron) {
	m := b.mesh
	baseIdx := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, t[:]...)
	for _, f := range tetraFaces {
		m.Faces = append(m.Faces, Face{baseIdx + f[0], baseIdx + f[1], baseIdx + f[2]})
	}
}

// Mesh returns the mesh built so far. The Builder keeps appending to it.
func (b *Builder) Mesh() *Mesh { return b.mesh }

// Build consumes seq into a new Mesh.
func Build(seq iter.Seq[Tetrahedron]) *Mesh {
	b := NewBuilder()
	for t := range seq {
		b.Add(t)
	}
	return b.Mesh()
}
