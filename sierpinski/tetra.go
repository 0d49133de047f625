// Package sierpinski builds Sierpinski tetrahedron meshes: four corners are
// repeatedly split into their four corner sub-tetrahedra and every leaf is
// emitted into an indexed triangle mesh.
package sierpinski

import (
	"iter"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Point3 is a 3D coordinate.
type Point3 = r3.Vec

// Tetrahedron is an ordered set of four corners (v1, v2, v3, v4).
type Tetrahedron [4]Point3

// Midpoint returns the exact component-wise average of a and b.
func Midpoint(a, b Point3) Point3 {
	return r3.Scale(0.5, r3.Add(a, b))
}

func finite(p Point3) bool {
	for _, c := range [3]float64{p.X, p.Y, p.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Children returns the four corner sub-tetrahedra of t. Each keeps one of
// t's corners and replaces the other three with the edge midpoints to it.
// The central octahedron is not part of the result.
func Children(t Tetrahedron) [4]Tetrahedron {
	v1, v2, v3, v4 := t[0], t[1], t[2], t[3]
	m12 := Midpoint(v1, v2)
	m13 := Midpoint(v1, v3)
	m14 := Midpoint(v1, v4)
	m23 := Midpoint(v2, v3)
	m24 := Midpoint(v2, v4)
	m34 := Midpoint(v3, v4)
	return [4]Tetrahedron{
		{v1, m12, m13, m14},
		{m12, v2, m23, m24},
		{m13, m23, v3, m34},
		{m14, m24, m34, v4},
	}
}

// Subdivide yields the leaf tetrahedra of t after level rounds of corner
// subdivision, depth first in v1..v4 branch order. Level 0 yields t itself.
// A negative level yields nothing; callers validate levels beforehand.
func Subdivide(t Tetrahedron, level int) iter.Seq[Tetrahedron] {
	return func(yield func(Tetrahedron) bool) {
		if level < 0 {
			return
		}
		walk(t, level, yield)
	}
}

func walk(t Tetrahedron, level int, yield func(Tetrahedron) bool) bool {
	if level == 0 {
		return yield(t)
	}
	for _, c := range Children(t) {
		if !walk(c, level-1, yield) {
			return false
		}
	}
	return true
}

// Leaves collects Subdivide(t, level) into a slice.
func Leaves(t Tetrahedron, level int) []Tetrahedron {
	out := make([]Tetrahedron, 0, LeafCount(level))
	for leaf := range Subdivide(t, level) {
		out = append(out, leaf)
	}
	return out
}

// LeafCount returns 4^level, or 0 for a negative level.
func LeafCount(level int) int {
	if level < 0 {
		return 0
	}
	return 1 << (2 * uint(level))
}
