package sierpinski

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultLevel is the recursion level used when none is given.
	DefaultLevel = 2
	// MaxLevel bounds generation at 4^10 leaves (4Mi vertices).
	MaxLevel = 10
)

var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrResourceExhausted = errors.New("resource exhausted")
)

// DefaultCorners returns the unit tetrahedron centred on the origin with its
// apex on +Z.
func DefaultCorners() Tetrahedron {
	return Tetrahedron{
		{X: 0, Y: 0, Z: 1},
		{X: 0.9428, Y: 0, Z: -0.3333},
		{X: -0.4714, Y: 0.8165, Z: -0.3333},
		{X: -0.4714, Y: -0.8165, Z: -0.3333},
	}
}

// Validate reports whether corners and level can be generated.
func Validate(corners Tetrahedron, level int) error {
	if level < 0 {
		return fmt.Errorf("level %d is negative: %w", level, ErrInvalidArgument)
	}
	if level > MaxLevel {
		return fmt.Errorf("level %d exceeds %d: %w", level, MaxLevel, ErrResourceExhausted)
	}
	for i, c := range corners {
		if !finite(c) {
			return fmt.Errorf("corner v%d %v is not finite: %w", i+1, c, ErrInvalidArgument)
		}
	}
	return nil
}

// Generate builds the Sierpinski tetrahedron of the given level inside
// corners. The mesh holds 4*4^level vertices and as many faces. On error no
// mesh is returned.
func Generate(corners Tetrahedron, level int) (*Mesh, error) {
	if err := Validate(corners, level); err != nil {
		return nil, err
	}
	b := NewBuilder()
	b.Grow(LeafCount(level))
	for t := range Subdivide(corners, level) {
		b.Add(t)
	}
	return b.Mesh(), nil
}

// GenerateParallel is Generate with the four top-level branches built on up
// to workers goroutines. Branch meshes are joined in v1..v4 order, so the
// result is identical to Generate's.
func GenerateParallel(ctx context.Context, corners Tetrahedron, level, workers int) (*Mesh, error) {
	if err := Validate(corners, level); err != nil {
		return nil, err
	}
	if level == 0 || workers <= 1 {
		return Generate(corners, level)
	}

	var parts [4]*Mesh
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, child := range Children(corners) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b := NewBuilder()
			b.Grow(LeafCount(level - 1))
			for t := range Subdivide(child, level-1) {
				b.Add(t)
			}
			parts[i] = b.Mesh()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("generate level %d: %w", level, err)
	}

	n := 4 * LeafCount(level)
	mesh := &Mesh{
		Vertices: make([]Point3, 0, n),
		Faces:    make([]Face, 0, n),
	}
	for _, p := range parts {
		mesh.Append(p)
	}
	return mesh, nil
}
