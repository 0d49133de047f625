package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/voxelsplace/sierpinski/sierpinski"
)

// ParseCorners parses "x,y,z;x,y,z;x,y,z;x,y,z" into a Tetrahedron.
func ParseCorners(s string) (sierpinski.Tetrahedron, error) {
	var t sierpinski.Tetrahedron
	points := strings.Split(strings.Trim(s, "[] "), ";")
	if len(points) != 4 {
		return t, fmt.Errorf("expected 4 corners, got %d", len(points))
	}
	for i, p := range points {
		parts := strings.Split(p, ",")
		if len(parts) != 3 {
			return t, fmt.Errorf("corner %d: expected 3 coordinates, got %d", i+1, len(parts))
		}
		var xyz [3]float64
		for k, part := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return t, fmt.Errorf("corner %d: failed to parse '%s': %w", i+1, part, err)
			}
			xyz[k] = v
		}
		t[i] = sierpinski.Point3{X: xyz[0], Y: xyz[1], Z: xyz[2]}
	}
	return t, nil
}
