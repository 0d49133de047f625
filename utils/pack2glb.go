package utils

import (
	"github.com/qmuntal/gltf"

	"github.com/voxelsplace/sierpinski/api"
)

// RunPackToGLB converts a pack into a single .glb with one mesh/node per
// entry, laid out on a grid so they don't overlap.
func RunPackToGLB(inPackPath, outGlbPath string) error {
	pack, err := LoadPack(inPackPath)
	if err != nil {
		return err
	}
	doc, err := api.PackToDocument(pack)
	if err != nil {
		return err
	}
	return gltf.SaveBinary(doc, outGlbPath)
}
