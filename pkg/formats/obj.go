// Package formats provides parsers for 3D reference model file formats.
// OBJ (Wavefront) parser producing triangle-list meshes.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"refsketch/pkg/mesh"
)

// OBJ format errors.
var (
	ErrInvalidOBJVertex = errors.New("invalid OBJ vertex record")
	ErrInvalidOBJFace   = errors.New("invalid OBJ face record")
	ErrEmptyOBJ         = errors.New("OBJ contains no faces")
)

// objCorner identifies a face corner by its v/vt/vn triple (0-based, -1 when
// the component is absent). Corners with an identical triple share one output
// vertex, so positions duplicated only across differing triples stay
// bit-identical and the engine's position-keyed hashing can merge them.
type objCorner struct {
	v, vt, vn int
}

// ParseOBJ parses Wavefront OBJ data into a triangle-list mesh.
//
// Faces with more than three corners are fan-triangulated at load time; the
// resulting mesh is always a pure triangle list. Negative (relative) indices
// are resolved against the element counts seen so far. Texture coordinates
// and normals are carried over only when every face corner references one.
func ParseOBJ(data []byte) (*mesh.Mesh, error) {
	var (
		vs  [][3]float32
		vts [][2]float32
		vns [][3]float32

		positions [][3]float32
		texcoords [][2]float32
		normals   [][3]float32
		indices   []uint32

		corners = make(map[objCorner]uint32)
		hasVT   = true
		hasVN   = true
	)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			p, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidOBJVertex, lineNo, err)
			}
			vs = append(vs, p)

		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("%w: line %d: vt needs 2 components", ErrInvalidOBJVertex, lineNo)
			}
			u, err1 := parseFloat(fields[1])
			v, err2 := parseFloat(fields[2])
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("%w: line %d", ErrInvalidOBJVertex, lineNo)
			}
			vts = append(vts, [2]float32{u, v})

		case "vn":
			n, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidOBJVertex, lineNo, err)
			}
			vns = append(vns, n)

		case "f":
			refs := fields[1:]
			if len(refs) < 3 {
				return nil, fmt.Errorf("%w: line %d: face needs at least 3 corners", ErrInvalidOBJFace, lineNo)
			}
			face := make([]uint32, len(refs))
			for i, ref := range refs {
				corner, err := parseCorner(ref, len(vs), len(vts), len(vns))
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidOBJFace, lineNo, err)
				}
				if corner.vt < 0 {
					hasVT = false
				}
				if corner.vn < 0 {
					hasVN = false
				}

				idx, seen := corners[corner]
				if !seen {
					idx = uint32(len(positions))
					corners[corner] = idx
					positions = append(positions, vs[corner.v])
					if corner.vt >= 0 {
						texcoords = append(texcoords, vts[corner.vt])
					} else {
						texcoords = append(texcoords, [2]float32{})
					}
					if corner.vn >= 0 {
						normals = append(normals, vns[corner.vn])
					} else {
						normals = append(normals, [3]float32{})
					}
				}
				face[i] = idx
			}
			// Fan triangulation keeps the engine triangle-list only.
			for k := 2; k < len(face); k++ {
				indices = append(indices, face[0], face[k-1], face[k])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}
	if len(indices) == 0 {
		return nil, ErrEmptyOBJ
	}

	m := mesh.New(mesh.TriangleList)
	m.SetAttribute(mesh.AttrPosition, mesh.NewFloat32x3(positions))
	if hasVT {
		m.SetAttribute(mesh.AttrTexCoord, mesh.NewFloat32x2(texcoords))
	}
	if hasVN {
		m.SetAttribute(mesh.AttrNormal, mesh.NewFloat32x3(normals))
	}
	m.SetIndices(makeIndices(indices, len(positions)))
	return m, nil
}

// makeIndices picks the narrowest index width the vertex count permits.
func makeIndices(indices []uint32, vertexCount int) mesh.Indices {
	if vertexCount <= 1<<16 {
		u16 := make([]uint16, len(indices))
		for i, v := range indices {
			u16[i] = uint16(v)
		}
		return mesh.Indices{U16: u16}
	}
	return mesh.Indices{U32: indices}
}

// parseCorner resolves one "v", "v/vt", "v//vn" or "v/vt/vn" reference.
// OBJ indices are 1-based; negative values count back from the latest
// element.
func parseCorner(ref string, nv, nvt, nvn int) (objCorner, error) {
	parts := strings.SplitN(ref, "/", 3)
	corner := objCorner{v: -1, vt: -1, vn: -1}

	v, err := resolveIndex(parts[0], nv)
	if err != nil {
		return corner, err
	}
	corner.v = v

	if len(parts) > 1 && parts[1] != "" {
		vt, err := resolveIndex(parts[1], nvt)
		if err != nil {
			return corner, err
		}
		corner.vt = vt
	}
	if len(parts) > 2 && parts[2] != "" {
		vn, err := resolveIndex(parts[2], nvn)
		if err != nil {
			return corner, err
		}
		corner.vn = vn
	}
	return corner, nil
}

func resolveIndex(s string, count int) (int, error) {
	raw, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad index %q", s)
	}
	var idx int
	switch {
	case raw > 0:
		idx = raw - 1
	case raw < 0:
		idx = count + raw
	default:
		return 0, errors.New("index 0 is not valid in OBJ")
	}
	if idx < 0 || idx >= count {
		return 0, fmt.Errorf("index %d out of range (have %d)", raw, count)
	}
	return idx, nil
}

func parseFloat(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	return float32(f), err
}

func parseFloats3(fields []string) ([3]float32, error) {
	var out [3]float32
	if len(fields) < 3 {
		return out, errors.New("need 3 components")
	}
	for i := 0; i < 3; i++ {
		f, err := parseFloat(fields[i])
		if err != nil {
			return out, fmt.Errorf("bad component %q", fields[i])
		}
		out[i] = f
	}
	return out, nil
}

// EncodeOBJ writes a triangle-list mesh back out as OBJ text (positions and
// faces only). Used by the lineart tool to export outline shells.
func EncodeOBJ(m *mesh.Mesh) ([]byte, error) {
	if m.Topology() != mesh.TriangleList {
		return nil, fmt.Errorf("%w: %v", mesh.ErrUnsupportedTopology, m.Topology())
	}
	positions, err := m.Float32x3(mesh.AttrPosition)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	for _, p := range positions {
		fmt.Fprintf(w, "v %g %g %g\n", p[0], p[1], p[2])
	}
	n := m.TriangleCount() * 3
	for i := 0; i < n; i += 3 {
		fmt.Fprintf(w, "f %d %d %d\n", m.Index(i)+1, m.Index(i+1)+1, m.Index(i+2)+1)
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
