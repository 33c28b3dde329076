// Package debug provides debug visualization utilities.
package debug

import (
	"refsketch/pkg/lineart"
	gomath "refsketch/pkg/math"
	"refsketch/pkg/mesh"
)

// DefaultBoundsPadding keeps the wireframe clear of the outline shell.
const DefaultBoundsPadding = 0.05

// MeshBounds returns the axis aligned bounds of the mesh positions.
func MeshBounds(m *mesh.Mesh) (gomath.Vec3, gomath.Vec3, error) {
	positions, err := m.Float32x3(mesh.AttrPosition)
	if err != nil {
		return gomath.Vec3{}, gomath.Vec3{}, err
	}

	if len(positions) == 0 {
		return gomath.Vec3{}, gomath.Vec3{}, nil
	}

	min := gomath.Vec3FromArray(positions[0])
	max := min
	for _, p := range positions[1:] {
		if p[0] < min.X {
			min.X = p[0]
		}
		if p[1] < min.Y {
			min.Y = p[1]
		}
		if p[2] < min.Z {
			min.Z = p[2]
		}
		if p[0] > max.X {
			max.X = p[0]
		}
		if p[1] > max.Y {
			max.Y = p[1]
		}
		if p[2] > max.Z {
			max.Z = p[2]
		}
	}
	return min, max, nil
}

// BoundsWireframe returns the 12 edges of the padded bounding box as line
// segments ready for the line pass.
func BoundsWireframe(min, max gomath.Vec3, padding float32) []lineart.Segment {
	lo := gomath.Vec3{X: min.X - padding, Y: min.Y - padding, Z: min.Z - padding}
	hi := gomath.Vec3{X: max.X + padding, Y: max.Y + padding, Z: max.Z + padding}

	corner := func(x, y, z bool) gomath.Vec3 {
		v := lo
		if x {
			v.X = hi.X
		}
		if y {
			v.Y = hi.Y
		}
		if z {
			v.Z = hi.Z
		}
		return v
	}

	return []lineart.Segment{
		// Bottom face
		{A: corner(false, false, false), B: corner(true, false, false)},
		{A: corner(true, false, false), B: corner(true, false, true)},
		{A: corner(true, false, true), B: corner(false, false, true)},
		{A: corner(false, false, true), B: corner(false, false, false)},
		// Top face
		{A: corner(false, true, false), B: corner(true, true, false)},
		{A: corner(true, true, false), B: corner(true, true, true)},
		{A: corner(true, true, true), B: corner(false, true, true)},
		{A: corner(false, true, true), B: corner(false, true, false)},
		// Vertical edges
		{A: corner(false, false, false), B: corner(false, true, false)},
		{A: corner(true, false, false), B: corner(true, true, false)},
		{A: corner(true, false, true), B: corner(true, true, true)},
		{A: corner(false, false, true), B: corner(false, true, true)},
	}
}
