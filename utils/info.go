package utils

import (
	"fmt"
	"io"
	"os"

	"github.com/voxelsplace/sierpinski/meshpack"
)

// RunInfo prints a summary of every entry in a pack.
func RunInfo(packFile string, w io.Writer) error {
	data, err := os.ReadFile(packFile)
	if err != nil {
		return err
	}
	pack, comp, err := meshpack.Unmarshal(data)
	if err != nil {
		return fmt.Errorf("%s: %w", packFile, err)
	}
	fmt.Fprintf(w, "%s: %d entries, %s, %d bytes\n", packFile, len(pack.Entries), comp, len(data))
	for _, e := range pack.Entries {
		b := e.Mesh.Bounds()
		fmt.Fprintf(w, "  %-28s level %-2d %8d vertices %8d faces  min (%.4f, %.4f, %.4f) max (%.4f, %.4f, %.4f)\n",
			e.Name, e.Level, e.Mesh.VertexCount(), e.Mesh.FaceCount(),
			b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
	}
	return nil
}
