// Package lineart detects geometrically sharp edges of a triangle mesh by
// dihedral angle. Edge topology is inferred from the unordered index buffer
// by hashing exact vertex positions, so edges match up across duplicated
// vertices at mesh seams.
package lineart

import (
	"errors"
	"fmt"
	gomath "math"

	"refsketch/pkg/math"
	"refsketch/pkg/mesh"
)

// ErrNonManifoldEdge reports edges shared by more than two triangles. The
// adjacency returned alongside it is still usable; the extra occurrences are
// ignored.
var ErrNonManifoldEdge = errors.New("non-manifold edge")

// Default sharp-angle interval in radians. A 90 degree wall edge falls
// inside it; the flat 180 degree join between the two triangles of a quad
// does not.
const (
	DefaultLowAngle  = float32(gomath.Pi / 4)
	DefaultHighAngle = float32(3 * gomath.Pi / 4)
)

// Edge is an unordered pair of vertex positions, canonicalized so that
// (a, b) and (b, a) hash identically.
type Edge struct {
	A, B mesh.PositionKey
}

// MakeEdge canonicalizes the endpoint pair.
func MakeEdge(a, b mesh.PositionKey) Edge {
	if b.Less(a) {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Opposites holds up to two "opposite corner" points of an edge: the third
// vertex of each triangle containing it. Count is 1 for boundary edges and
// 2 for manifold interior edges.
type Opposites struct {
	First  [3]float32
	Second [3]float32
	Count  int
}

// Adjacency maps each canonical edge to its opposite corner points.
type Adjacency map[Edge]Opposites

// Segment is a line segment between two points in mesh space.
type Segment struct {
	A, B math.Vec3
}

// BuildAdjacency scans all triangles and records, for each edge, the
// opposite corner of every triangle containing it.
//
// A repeated occurrence with the same opposite point (a duplicate or
// degenerate triangle) leaves the edge a boundary edge instead of failing.
// A third occurrence with a distinct opposite point marks the edge
// non-manifold: scanning continues, the extra point is dropped, and the
// returned error wraps ErrNonManifoldEdge with the offending edge count.
func BuildAdjacency(m *mesh.Mesh) (Adjacency, error) {
	if m.Topology() != mesh.TriangleList {
		return nil, fmt.Errorf("%w: %v", mesh.ErrUnsupportedTopology, m.Topology())
	}
	positions, err := m.Float32x3(mesh.AttrPosition)
	if err != nil {
		return nil, err
	}

	adj := make(Adjacency)
	nonManifold := 0

	n := m.TriangleCount() * 3
	for i := 0; i < n; i += 3 {
		var corners [3][3]float32
		var keys [3]mesh.PositionKey
		for j := 0; j < 3; j++ {
			corners[j] = positions[m.Index(i+j)]
			keys[j] = mesh.MakePositionKey(corners[j])
		}

		for j := 0; j < 3; j++ {
			edge := MakeEdge(keys[j], keys[(j+1)%3])
			opposite := corners[(j+2)%3]

			rec, seen := adj[edge]
			switch {
			case !seen:
				adj[edge] = Opposites{First: opposite, Count: 1}
			case rec.Count == 1:
				if rec.First == opposite {
					// Duplicate triangle; the edge stays a boundary edge.
					continue
				}
				rec.Second = opposite
				rec.Count = 2
				adj[edge] = rec
			default:
				if opposite == rec.First || opposite == rec.Second {
					continue
				}
				nonManifold++
			}
		}
	}

	if nonManifold > 0 {
		return adj, fmt.Errorf("%w: %d edge occurrence(s) beyond two triangles",
			ErrNonManifoldEdge, nonManifold)
	}
	return adj, nil
}

// DihedralAngle returns the angle between the two triangles sharing the
// edge, in [0, pi]. ok is false for boundary edges, which have no defined
// angle.
func DihedralAngle(edge Edge, opp Opposites) (angle float32, ok bool) {
	if opp.Count != 2 {
		return 0, false
	}
	a := math.Vec3FromArray(edge.A.Position())
	b := math.Vec3FromArray(edge.B.Position())
	t1 := tangentOfEdge(a, b, math.Vec3FromArray(opp.First))
	t2 := tangentOfEdge(a, b, math.Vec3FromArray(opp.Second))
	return t1.AngleBetween(t2), true
}

// tangentOfEdge is the direction perpendicular to the edge ab, lying in the
// plane containing the edge and the point x.
func tangentOfEdge(a, b, x math.Vec3) math.Vec3 {
	ab := b.Sub(a)
	normal := ab.Cross(x.Sub(a)).Normalize()
	return normal.Cross(ab).Normalize()
}

// SharpEdges returns the edges whose dihedral angle lies strictly inside
// (low, high). Boundary edges are always excluded. The result order is
// unspecified and must be treated as a set.
func SharpEdges(adj Adjacency, low, high float32) []Segment {
	var segments []Segment
	for edge, opp := range adj {
		angle, ok := DihedralAngle(edge, opp)
		if !ok {
			continue
		}
		if low < angle && angle < high {
			segments = append(segments, Segment{
				A: math.Vec3FromArray(edge.A.Position()),
				B: math.Vec3FromArray(edge.B.Position()),
			})
		}
	}
	return segments
}

// SharpEdgeLines builds the adjacency for a mesh and filters it in one call.
// When the mesh contains non-manifold edges the segments from the usable
// adjacency are still returned alongside the error.
func SharpEdgeLines(m *mesh.Mesh, low, high float32) ([]Segment, error) {
	adj, err := BuildAdjacency(m)
	if adj == nil {
		return nil, err
	}
	return SharpEdges(adj, low, high), err
}
