package sierpinski

import (
	"encoding/binary"
	"math"

	xxhash "github.com/cespare/xxhash/v2"
)

// WeldTolerance is the default grid size used to decide that two vertices
// coincide.
const WeldTolerance = 1e-9

// cell is a quantized position. Components whose quantized value would not
// fit an int64 hold their exact float bits instead, flagged in raw.
type cell struct {
	q   [3]int64
	raw uint8
}

// maxCell keeps quantized components well inside int64.
const maxCell = 1 << 62

func quantize(p Point3, tol float64) cell {
	var c cell
	for i, v := range [3]float64{p.X, p.Y, p.Z} {
		q := math.Round(v / tol)
		if math.Abs(q) >= maxCell || math.IsNaN(q) {
			c.q[i] = int64(math.Float64bits(v))
			c.raw |= 1 << i
			continue
		}
		c.q[i] = int64(q)
	}
	return c
}

func (c cell) hash() uint64 {
	var b [25]byte
	binary.LittleEndian.PutUint64(b[0:], uint64(c.q[0]))
	binary.LittleEndian.PutUint64(b[8:], uint64(c.q[1]))
	binary.LittleEndian.PutUint64(b[16:], uint64(c.q[2]))
	b[24] = c.raw
	return xxhash.Sum64(b[:])
}

// Weld returns a copy of m in which vertices falling in the same tol-sized
// cell share one index. Coordinates too large to quantize at tol only match
// exactly. The first occurrence keeps its position. m is not
// modified. A non-positive tol uses WeldTolerance.
func Weld(m *Mesh, tol float64) *Mesh {
	if tol <= 0 {
		tol = WeldTolerance
	}
	out := &Mesh{
		Vertices: make([]Point3, 0, len(m.Vertices)),
		Faces:    make([]Face, 0, len(m.Faces)),
	}
	index := make(map[uint64][]uint32, len(m.Vertices))
	cells := make([]cell, 0, len(m.Vertices))
	remap := make([]uint32, len(m.Vertices))

	for i, v := range m.Vertices {
		c := quantize(v, tol)
		h := c.hash()
		found := false
		for _, idx := range index[h] {
			if cells[idx] == c {
				remap[i] = idx
				found = true
				break
			}
		}
		if found {
			continue
		}
		idx := uint32(len(out.Vertices))
		out.Vertices = append(out.Vertices, v)
		cells = append(cells, c)
		index[h] = append(index[h], idx)
		remap[i] = idx
	}
	for _, f := range m.Faces {
		out.Faces = append(out.Faces, Face{remap[f[0]], remap[f[1]], remap[f[2]]})
	}
	return out
}
