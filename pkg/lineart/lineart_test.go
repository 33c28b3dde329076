package lineart

import (
	"errors"
	gomath "math"
	"testing"

	"refsketch/pkg/mesh"
)

func triangleListMesh(positions [][3]float32, indices []uint16) *mesh.Mesh {
	m := mesh.New(mesh.TriangleList)
	m.SetAttribute(mesh.AttrPosition, mesh.NewFloat32x3(positions))
	if indices != nil {
		m.SetIndices(mesh.Indices{U16: indices})
	}
	return m
}

// cubeMesh is a unit cube: 8 shared corners, 6 quad faces each split into 2
// triangles, outward winding. 12 cube edges at 90 degrees, 6 face diagonals
// at 180 degrees.
func cubeMesh() *mesh.Mesh {
	return triangleListMesh([][3]float32{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}, []uint16{
		0, 2, 1, 0, 3, 2,
		4, 5, 6, 4, 6, 7,
		0, 1, 5, 0, 5, 4,
		3, 7, 6, 3, 6, 2,
		0, 4, 7, 0, 7, 3,
		1, 2, 6, 1, 6, 5,
	})
}

// tetrahedronMesh is a closed manifold with 4 faces and 6 interior edges.
func tetrahedronMesh() *mesh.Mesh {
	return triangleListMesh([][3]float32{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1},
	}, []uint16{
		0, 2, 1,
		0, 1, 3,
		0, 3, 2,
		1, 2, 3,
	})
}

func TestMakeEdgeCanonical(t *testing.T) {
	a := mesh.MakePositionKey([3]float32{0, 0, 0})
	b := mesh.MakePositionKey([3]float32{1, 2, 3})
	if MakeEdge(a, b) != MakeEdge(b, a) {
		t.Error("MakeEdge must be order-independent")
	}
}

func TestBuildAdjacencyClosedMesh(t *testing.T) {
	for _, tc := range []struct {
		name  string
		m     *mesh.Mesh
		edges int
	}{
		{"cube", cubeMesh(), 18},
		{"tetrahedron", tetrahedronMesh(), 6},
	} {
		t.Run(tc.name, func(t *testing.T) {
			adj, err := BuildAdjacency(tc.m)
			if err != nil {
				t.Fatalf("BuildAdjacency() error = %v", err)
			}
			if len(adj) != tc.edges {
				t.Errorf("edge count = %d, want %d", len(adj), tc.edges)
			}
			for edge, opp := range adj {
				if opp.Count != 2 {
					t.Errorf("closed mesh edge %v has %d opposite point(s), want 2", edge, opp.Count)
				}
			}
		})
	}
}

func TestBuildAdjacencySingleTriangle(t *testing.T) {
	m := triangleListMesh([][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, nil)
	adj, err := BuildAdjacency(m)
	if err != nil {
		t.Fatalf("BuildAdjacency() error = %v", err)
	}
	if len(adj) != 3 {
		t.Fatalf("edge count = %d, want 3", len(adj))
	}
	for edge, opp := range adj {
		if opp.Count != 1 {
			t.Errorf("isolated triangle edge %v should be a boundary edge, got %d opposites", edge, opp.Count)
		}
	}
	if got := SharpEdges(adj, 0, gomath.Pi); len(got) != 0 {
		t.Errorf("boundary edges must never be sharp, got %d segments", len(got))
	}
}

func TestBuildAdjacencyDuplicateTriangle(t *testing.T) {
	// The same triangle listed twice must not fail and must leave its edges
	// as boundary edges.
	m := triangleListMesh(
		[][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		[]uint16{0, 1, 2, 0, 1, 2},
	)
	adj, err := BuildAdjacency(m)
	if err != nil {
		t.Fatalf("BuildAdjacency() error = %v", err)
	}
	for edge, opp := range adj {
		if opp.Count != 1 {
			t.Errorf("duplicated triangle edge %v has %d opposites, want 1", edge, opp.Count)
		}
	}
}

func TestBuildAdjacencyNonManifold(t *testing.T) {
	// Three triangles fanning off one shared edge.
	m := triangleListMesh(
		[][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {0, -1, 0}},
		[]uint16{0, 1, 2, 0, 1, 3, 0, 1, 4},
	)
	adj, err := BuildAdjacency(m)
	if !errors.Is(err, ErrNonManifoldEdge) {
		t.Fatalf("BuildAdjacency() error = %v, want ErrNonManifoldEdge", err)
	}
	if adj == nil {
		t.Fatal("adjacency should still be returned alongside the error")
	}

	shared := MakeEdge(
		mesh.MakePositionKey([3]float32{0, 0, 0}),
		mesh.MakePositionKey([3]float32{1, 0, 0}),
	)
	if got := adj[shared].Count; got != 2 {
		t.Errorf("non-manifold edge kept %d opposites, want the first 2", got)
	}
}

func TestBuildAdjacencyErrors(t *testing.T) {
	strip := mesh.New(mesh.TriangleStrip)
	strip.SetAttribute(mesh.AttrPosition, mesh.NewFloat32x3(make([][3]float32, 3)))
	if _, err := BuildAdjacency(strip); !errors.Is(err, mesh.ErrUnsupportedTopology) {
		t.Errorf("BuildAdjacency(strip) error = %v, want ErrUnsupportedTopology", err)
	}

	if _, err := BuildAdjacency(mesh.New(mesh.TriangleList)); !errors.Is(err, mesh.ErrMissingAttribute) {
		t.Errorf("BuildAdjacency(no positions) error = %v, want ErrMissingAttribute", err)
	}
}

func TestSharpEdgesCube(t *testing.T) {
	adj, err := BuildAdjacency(cubeMesh())
	if err != nil {
		t.Fatal(err)
	}

	segments := SharpEdges(adj, DefaultLowAngle, DefaultHighAngle)
	if len(segments) != 12 {
		t.Fatalf("sharp edge count = %d, want the 12 cube edges", len(segments))
	}

	// Every sharp segment must be an axis-aligned unit edge, never a face
	// diagonal.
	for _, s := range segments {
		if got := s.A.Distance(s.B); gomath.Abs(float64(got-1)) > 1e-6 {
			t.Errorf("segment %v-%v has length %v, want 1 (diagonal leaked in?)", s.A, s.B, got)
		}
	}
}

func TestSharpEdgesFullInterval(t *testing.T) {
	// On a closed mesh with no coplanar faces, (0, pi) selects exactly the
	// non-boundary edges regardless of angle.
	adj, err := BuildAdjacency(tetrahedronMesh())
	if err != nil {
		t.Fatal(err)
	}
	if got := SharpEdges(adj, 0, gomath.Pi); len(got) != 6 {
		t.Errorf("SharpEdges(0, pi) = %d segments, want all 6 interior edges", len(got))
	}
}

func TestSharpEdgesEmptyInterval(t *testing.T) {
	for _, m := range []*mesh.Mesh{cubeMesh(), tetrahedronMesh()} {
		adj, err := BuildAdjacency(m)
		if err != nil {
			t.Fatal(err)
		}
		if got := SharpEdges(adj, DefaultLowAngle, DefaultLowAngle); len(got) != 0 {
			t.Errorf("empty open interval returned %d segments, want 0", len(got))
		}
	}
}

func TestDihedralAngleRightAngleFold(t *testing.T) {
	// Two triangles folded at 90 degrees along the shared edge (0,0,0)-(1,0,0).
	m := triangleListMesh(
		[][3]float32{{0, 0, 0}, {1, 0, 0}, {0.5, 0, 1}, {0.5, 1, 0}},
		[]uint16{0, 1, 2, 1, 0, 3},
	)
	adj, err := BuildAdjacency(m)
	if err != nil {
		t.Fatal(err)
	}

	shared := MakeEdge(
		mesh.MakePositionKey([3]float32{0, 0, 0}),
		mesh.MakePositionKey([3]float32{1, 0, 0}),
	)
	angle, ok := DihedralAngle(shared, adj[shared])
	if !ok {
		t.Fatal("shared edge should have two opposite points")
	}
	if gomath.Abs(float64(angle)-gomath.Pi/2) > 1e-5 {
		t.Errorf("dihedral angle = %v, want pi/2", angle)
	}

	segments := SharpEdges(adj, DefaultLowAngle, DefaultHighAngle)
	if len(segments) != 1 {
		t.Errorf("sharp segments = %d, want 1 (the fold)", len(segments))
	}
}
