package utils

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/qmuntal/gltf"

	"github.com/voxelsplace/sierpinski/api"
	"github.com/voxelsplace/sierpinski/sierpinski"
)

// GenerateOptions selects what a Run* helper generates.
type GenerateOptions struct {
	Corners sierpinski.Tetrahedron
	Level   int
	Workers int  // >1 builds the top-level branches concurrently
	Weld    bool // merge coincident vertices after generation
}

// DefaultOptions generates the default tetrahedron at DefaultLevel.
func DefaultOptions() GenerateOptions {
	return GenerateOptions{Corners: sierpinski.DefaultCorners(), Level: sierpinski.DefaultLevel}
}

// Generate runs the generator described by opts.
func Generate(ctx context.Context, opts GenerateOptions) (*sierpinski.Mesh, error) {
	var (
		mesh *sierpinski.Mesh
		err  error
	)
	if opts.Workers > 1 {
		mesh, err = sierpinski.GenerateParallel(ctx, opts.Corners, opts.Level, opts.Workers)
	} else {
		mesh, err = sierpinski.Generate(opts.Corners, opts.Level)
	}
	if err != nil {
		return nil, err
	}
	if opts.Weld {
		mesh = sierpinski.Weld(mesh, sierpinski.WeldTolerance)
	}
	return mesh, nil
}

// RunGLB generates a mesh and writes it to outPath as .glb. A progress line
// goes to w.
func RunGLB(ctx context.Context, opts GenerateOptions, outPath string, w io.Writer) error {
	mesh, err := Generate(ctx, opts)
	if err != nil {
		return err
	}
	doc := api.NewDocument("Sierpinski -> GLB")
	api.AddMesh(doc, api.EntryName(opts.Level), mesh, sierpinski.Point3{})
	if err := gltf.SaveBinary(doc, outPath); err != nil {
		return fmt.Errorf("failed to save GLB: %w", err)
	}
	if fi, err := os.Stat(outPath); err == nil {
		fmt.Fprintf(w, ".glb saved: %d vertices, %d faces (%d bytes)\n", mesh.VertexCount(), mesh.FaceCount(), fi.Size())
	} else {
		fmt.Fprintln(w, ".glb saved.")
	}
	return nil
}
