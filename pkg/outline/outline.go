// Package outline computes angle-weighted smoothed vertex normals and uses
// them to extrude a triangle mesh into an outline shell. The shell is meant
// to be rendered with front-face culling and an unlit flat color behind the
// original mesh, which keeps the effect renderer-agnostic.
package outline

import (
	"fmt"

	"refsketch/pkg/math"
	"refsketch/pkg/mesh"
)

// DefaultThickness is the default extrusion distance.
const DefaultThickness = 0.02

// accumScale is applied to edge vectors before the angle measurement so that
// very small triangles keep a meaningful subtended angle in float64.
const accumScale = 1e8

// SmoothNormals computes one smoothed normal per distinct vertex position,
// weighted by the angle each triangle subtends at that position, and stores
// the result as the mesh's outline-normal attribute (same length and order
// as the position attribute).
//
// Accumulation is keyed by position rather than index, so all indices that
// share bit-identical coordinates receive the same normal. That is what makes
// the extruded shell seamless across duplicated vertices at mesh seams.
func SmoothNormals(m *mesh.Mesh) error {
	if m.Topology() != mesh.TriangleList {
		return fmt.Errorf("%w: %v", mesh.ErrUnsupportedTopology, m.Topology())
	}
	positions, err := m.Float32x3(mesh.AttrPosition)
	if err != nil {
		return err
	}

	acc := make(map[mesh.PositionKey]math.DVec3, len(positions))

	n := m.TriangleCount() * 3
	for i := 0; i < n; i += 3 {
		i0, i1, i2 := m.Index(i), m.Index(i+1), m.Index(i+2)
		for _, c := range [3][3]int{{i0, i1, i2}, {i1, i2, i0}, {i2, i0, i1}} {
			corner := math.Vec3FromArray(positions[c[0]])
			next := math.Vec3FromArray(positions[c[1]])
			prev := math.Vec3FromArray(positions[c[2]])

			v1 := math.DVec3FromVec3(next.Sub(corner)).Scale(accumScale)
			v2 := math.DVec3FromVec3(prev.Sub(corner)).Scale(accumScale)
			weight := v1.AngleBetween(v2)
			contribution := v1.Cross(v2).NormalizeOrZero().Scale(weight)

			key := mesh.MakePositionKey(positions[c[0]])
			acc[key] = acc[key].Add(contribution)
		}
	}

	normals := make([][3]float32, len(positions))
	for i, p := range positions {
		// Positions never seen as a triangle corner stay at the zero vector.
		normals[i] = acc[mesh.MakePositionKey(p)].NormalizeOrZero().Vec3().Array()
	}
	m.SetAttribute(mesh.AttrOutlineNormal, mesh.NewFloat32x3(normals))
	return nil
}

// MoveAlongNormals replaces every position with position + outlineNormal *
// thickness. Thickness zero is the identity; negative thickness erodes
// instead of expanding. The mesh must already carry the outline-normal
// attribute produced by SmoothNormals.
func MoveAlongNormals(m *mesh.Mesh, thickness float32) error {
	positions, err := m.Float32x3(mesh.AttrPosition)
	if err != nil {
		return err
	}
	normals, err := m.Float32x3(mesh.AttrOutlineNormal)
	if err != nil {
		return err
	}
	if len(normals) != len(positions) {
		return fmt.Errorf("%w: %q has %d values for %d positions",
			mesh.ErrInvalidAttributeFormat, mesh.AttrOutlineNormal, len(normals), len(positions))
	}

	moved := make([][3]float32, len(positions))
	for i, p := range positions {
		n := normals[i]
		moved[i] = [3]float32{
			p[0] + n[0]*thickness,
			p[1] + n[1]*thickness,
			p[2] + n[2]*thickness,
		}
	}
	m.SetAttribute(mesh.AttrPosition, mesh.NewFloat32x3(moved))
	return nil
}

// GenerateOutlineMesh runs SmoothNormals and MoveAlongNormals on a copy of
// the input, leaving the source mesh untouched, and returns the shell mesh.
func GenerateOutlineMesh(m *mesh.Mesh, thickness float32) (*mesh.Mesh, error) {
	shell := m.Clone()
	if err := SmoothNormals(shell); err != nil {
		return nil, err
	}
	if err := MoveAlongNormals(shell, thickness); err != nil {
		return nil, err
	}
	return shell, nil
}
