package utils

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/voxelsplace/sierpinski/api"
	"github.com/voxelsplace/sierpinski/meshpack"
)

// RunPack generates one mesh per level and writes them to outputFile as a
// single pack. Levels are generated concurrently; entries keep the order of
// levels. Timing goes to w.
func RunPack(ctx context.Context, opts GenerateOptions, levels []int, comp meshpack.Compression, outputFile string, w io.Writer) error {
	if len(levels) == 0 {
		return fmt.Errorf("no levels provided")
	}
	pack := &meshpack.Pack{Entries: make([]meshpack.Entry, len(levels))}

	g, ctx := errgroup.WithContext(ctx)
	for i, level := range levels {
		g.Go(func() error {
			o := opts
			o.Level = level
			mesh, err := Generate(ctx, o)
			if err != nil {
				return fmt.Errorf("level %d: %w", level, err)
			}
			pack.Entries[i] = meshpack.Entry{
				Name:    api.EntryName(level),
				Level:   level,
				Corners: opts.Corners,
				Mesh:    mesh,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	start := time.Now()
	data, err := pack.Marshal(comp)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Compression (%s) took %d ms\n", comp, time.Since(start).Milliseconds())
	return os.WriteFile(outputFile, data, 0o644)
}

// LoadPack reads and parses a pack file.
func LoadPack(packFile string) (*meshpack.Pack, error) {
	data, err := os.ReadFile(packFile)
	if err != nil {
		return nil, err
	}
	pack, _, err := meshpack.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", packFile, err)
	}
	return pack, nil
}

// RunUnpack writes every entry of a pack into outputDir as <name>.glb.
func RunUnpack(packFile, outputDir string) error {
	pack, err := LoadPack(packFile)
	if err != nil {
		return err
	}
	// names are unique in a pack but may still share a base name
	paths := make([]string, len(pack.Entries))
	owner := make(map[string]string, len(pack.Entries))
	for i, e := range pack.Entries {
		paths[i] = filepath.Join(outputDir, filepath.Base(e.Name)+".glb")
		if prev, ok := owner[paths[i]]; ok {
			return fmt.Errorf("entries %q and %q both unpack to %s", prev, e.Name, paths[i])
		}
		owner[paths[i]] = e.Name
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	var g errgroup.Group
	for i, e := range pack.Entries {
		g.Go(func() error {
			b, err := api.MeshToGLB(e.Mesh, e.Name)
			if err != nil {
				return fmt.Errorf("entry %s: %w", e.Name, err)
			}
			return os.WriteFile(paths[i], b, 0o644)
		})
	}
	return g.Wait()
}
