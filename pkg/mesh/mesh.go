// Package mesh provides a generic indexed triangle-list mesh with typed
// vertex attributes, consumed and produced by the outline and lineart
// packages.
package mesh

import "fmt"

// Attribute names used by the engine.
const (
	AttrPosition      = "position"
	AttrNormal        = "normal"
	AttrTexCoord      = "texcoord"
	AttrOutlineNormal = "outline_normal"
)

// Topology is the primitive topology of a mesh. Only TriangleList is
// processed by the engine; the other values exist so callers get a proper
// ErrUnsupportedTopology instead of silent misinterpretation.
type Topology int

const (
	TriangleList Topology = iota
	TriangleStrip
	TriangleFan
	LineList
	PointList
)

// String returns a human-readable topology name.
func (t Topology) String() string {
	switch t {
	case TriangleList:
		return "TriangleList"
	case TriangleStrip:
		return "TriangleStrip"
	case TriangleFan:
		return "TriangleFan"
	case LineList:
		return "LineList"
	case PointList:
		return "PointList"
	default:
		return fmt.Sprintf("Topology(%d)", int(t))
	}
}

// Format is the component layout of a vertex attribute.
type Format int

const (
	Float32x2 Format = iota
	Float32x3
	Float32x4
)

// String returns a human-readable format name.
func (f Format) String() string {
	switch f {
	case Float32x2:
		return "Float32x2"
	case Float32x3:
		return "Float32x3"
	case Float32x4:
		return "Float32x4"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Attribute holds per-vertex values in exactly one of the supported formats.
type Attribute struct {
	format Format
	v2     [][2]float32
	v3     [][3]float32
	v4     [][4]float32
}

// NewFloat32x2 creates a two-component attribute.
func NewFloat32x2(values [][2]float32) Attribute {
	return Attribute{format: Float32x2, v2: values}
}

// NewFloat32x3 creates a three-component attribute.
func NewFloat32x3(values [][3]float32) Attribute {
	return Attribute{format: Float32x3, v3: values}
}

// NewFloat32x4 creates a four-component attribute.
func NewFloat32x4(values [][4]float32) Attribute {
	return Attribute{format: Float32x4, v4: values}
}

// Format returns the component layout of the attribute.
func (a Attribute) Format() Format {
	return a.format
}

// Len returns the number of vertices the attribute covers.
func (a Attribute) Len() int {
	switch a.format {
	case Float32x2:
		return len(a.v2)
	case Float32x4:
		return len(a.v4)
	default:
		return len(a.v3)
	}
}

// Float32x2 returns the values of a two-component attribute, or nil if the
// attribute has another format.
func (a Attribute) Float32x2() [][2]float32 {
	if a.format != Float32x2 {
		return nil
	}
	return a.v2
}

// Float32x3 returns the values of a three-component attribute, or nil if the
// attribute has another format.
func (a Attribute) Float32x3() [][3]float32 {
	if a.format != Float32x3 {
		return nil
	}
	return a.v3
}

// Float32x4 returns the values of a four-component attribute, or nil if the
// attribute has another format.
func (a Attribute) Float32x4() [][4]float32 {
	if a.format != Float32x4 {
		return nil
	}
	return a.v4
}

func (a Attribute) clone() Attribute {
	c := Attribute{format: a.format}
	switch a.format {
	case Float32x2:
		c.v2 = append([][2]float32(nil), a.v2...)
	case Float32x4:
		c.v4 = append([][4]float32(nil), a.v4...)
	default:
		c.v3 = append([][3]float32(nil), a.v3...)
	}
	return c
}

// Indices is an index buffer in either 16- or 32-bit width.
// At most one of U16 and U32 is set.
type Indices struct {
	U16 []uint16
	U32 []uint32
}

// Len returns the number of indices.
func (ix Indices) Len() int {
	if ix.U16 != nil {
		return len(ix.U16)
	}
	return len(ix.U32)
}

// At returns the index at position i.
func (ix Indices) At(i int) int {
	if ix.U16 != nil {
		return int(ix.U16[i])
	}
	return int(ix.U32[i])
}

func (ix Indices) clone() Indices {
	return Indices{
		U16: append([]uint16(nil), ix.U16...),
		U32: append([]uint32(nil), ix.U32...),
	}
}

// Mesh is an ordered sequence of vertex positions with optional parallel
// attributes and an optional index buffer. Without indices the face list is
// the implicit identity sequence over consecutive vertices.
type Mesh struct {
	topology Topology
	attrs    map[string]Attribute
	indices  *Indices
}

// New creates an empty mesh with the given topology.
func New(topology Topology) *Mesh {
	return &Mesh{
		topology: topology,
		attrs:    make(map[string]Attribute),
	}
}

// Topology returns the primitive topology.
func (m *Mesh) Topology() Topology {
	return m.topology
}

// SetAttribute stores a per-vertex attribute, replacing any previous value.
func (m *Mesh) SetAttribute(name string, a Attribute) {
	m.attrs[name] = a
}

// Attribute returns the named attribute.
func (m *Mesh) Attribute(name string) (Attribute, bool) {
	a, ok := m.attrs[name]
	return a, ok
}

// Float32x3 returns the values of a required three-component attribute.
// Returns ErrMissingAttribute if absent, ErrInvalidAttributeFormat if the
// attribute has another component layout.
func (m *Mesh) Float32x3(name string) ([][3]float32, error) {
	a, ok := m.attrs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingAttribute, name)
	}
	if a.format != Float32x3 {
		return nil, fmt.Errorf("%w: %q should be %v, got %v",
			ErrInvalidAttributeFormat, name, Float32x3, a.format)
	}
	return a.v3, nil
}

// SetIndices stores the index buffer. Passing the zero value removes it,
// restoring implicit sequential indexing.
func (m *Mesh) SetIndices(ix Indices) {
	if ix.U16 == nil && ix.U32 == nil {
		m.indices = nil
		return
	}
	m.indices = &ix
}

// Indices returns the index buffer, or nil when indexing is implicit.
func (m *Mesh) Indices() *Indices {
	return m.indices
}

// VertexCount returns the length of the position attribute, or 0 if the mesh
// has no positions yet.
func (m *Mesh) VertexCount() int {
	a, ok := m.attrs[AttrPosition]
	if !ok {
		return 0
	}
	return a.Len()
}

// IndexCount returns the number of indices, falling back to the vertex count
// when indexing is implicit.
func (m *Mesh) IndexCount() int {
	if m.indices != nil {
		return m.indices.Len()
	}
	return m.VertexCount()
}

// Index resolves the i-th index, honoring implicit sequential indexing.
func (m *Mesh) Index(i int) int {
	if m.indices != nil {
		return m.indices.At(i)
	}
	return i
}

// TriangleCount returns the number of complete triangles in the face list.
func (m *Mesh) TriangleCount() int {
	return m.IndexCount() / 3
}

// Clone returns a deep copy sharing no storage with the original.
func (m *Mesh) Clone() *Mesh {
	c := New(m.topology)
	for name, a := range m.attrs {
		c.attrs[name] = a.clone()
	}
	if m.indices != nil {
		ix := m.indices.clone()
		c.indices = &ix
	}
	return c
}
