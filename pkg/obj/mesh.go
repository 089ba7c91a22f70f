package obj

import (
	"github.com/Faultbox/objviewer/pkg/math"
)

// Missing marks a face slot whose texture coordinate or normal index was omitted.
const Missing = -1

// Face is a triangle referencing the mesh attribute arrays by 0-based index.
type Face struct {
	VertexIndex   [3]int
	TexCoordIndex [3]int // Missing when the face group omits vt
	NormalIndex   [3]int // Missing when the face group omits vn
}

// Mesh is a parsed OBJ triangle mesh. It is not modified after Parse returns;
// accessors hand out copies.
type Mesh struct {
	positions [][3]float32
	texCoords [][2]float32
	normals   [][3]float32
	faces     []Face

	// Per face-vertex tangent frame, only populated when texcoords exist.
	tangents   [][3]float32
	bitangents [][3]float32
}

// Positions returns the raw vertex positions in file order.
func (m *Mesh) Positions() [][3]float32 {
	return append([][3]float32(nil), m.positions...)
}

// TexCoords returns the raw texture coordinates in file order.
func (m *Mesh) TexCoords() [][2]float32 {
	return append([][2]float32(nil), m.texCoords...)
}

// Normals returns the raw normals in file order.
func (m *Mesh) Normals() [][3]float32 {
	return append([][3]float32(nil), m.normals...)
}

// Faces returns the triangle list.
func (m *Mesh) Faces() []Face {
	return append([]Face(nil), m.faces...)
}

// FaceCount returns the number of triangles.
func (m *Mesh) FaceCount() int {
	return len(m.faces)
}

// VertexCount returns the number of vertices in the expanded, non-indexed
// buffers: three per face, not the number of unique positions.
func (m *Mesh) VertexCount() int {
	return 3 * len(m.faces)
}

// HasTexCoords reports whether the file declared any texture coordinates.
func (m *Mesh) HasTexCoords() bool {
	return len(m.texCoords) > 0
}

// HasNormals reports whether the file declared any normals.
func (m *Mesh) HasNormals() bool {
	return len(m.normals) > 0
}

// VertexData returns positions in face-traversal order, 3 floats per vertex.
func (m *Mesh) VertexData() []float32 {
	out := make([]float32, 0, 3*m.VertexCount())
	for _, f := range m.faces {
		for _, idx := range f.VertexIndex {
			p := m.positions[idx]
			out = append(out, p[0], p[1], p[2])
		}
	}
	return out
}

// TexCoordData returns texture coordinates in face-traversal order, 2 floats per
// vertex. Vertices without a texture coordinate get (0, 0).
func (m *Mesh) TexCoordData() []float32 {
	out := make([]float32, 2*m.VertexCount())
	for fi, f := range m.faces {
		for k, idx := range f.TexCoordIndex {
			if idx == Missing {
				continue
			}
			o := (fi*3 + k) * 2
			copy(out[o:o+2], m.texCoords[idx][:])
		}
	}
	return out
}

// NormalData returns normals in face-traversal order, 3 floats per vertex.
// Vertices without a normal get (0, 0, 0).
func (m *Mesh) NormalData() []float32 {
	out := make([]float32, 3*m.VertexCount())
	for fi, f := range m.faces {
		for k, idx := range f.NormalIndex {
			if idx == Missing {
				continue
			}
			o := (fi*3 + k) * 3
			copy(out[o:o+3], m.normals[idx][:])
		}
	}
	return out
}

// TangentData returns per-vertex tangents, 3 floats per vertex. It is zero-filled
// when the mesh has no texture coordinates.
func (m *Mesh) TangentData() []float32 {
	return flatten3(m.tangents, m.VertexCount())
}

// BitangentData returns per-vertex bitangents, 3 floats per vertex.
func (m *Mesh) BitangentData() []float32 {
	return flatten3(m.bitangents, m.VertexCount())
}

// Bounds returns the axis-aligned box around every position referenced by a face.
// An empty mesh has zero bounds.
func (m *Mesh) Bounds() (lo, hi math.Vec3) {
	if len(m.faces) == 0 {
		return math.Vec3{}, math.Vec3{}
	}
	lo = m.vec(m.faces[0].VertexIndex[0])
	hi = lo
	for _, f := range m.faces {
		for _, idx := range f.VertexIndex {
			v := m.vec(idx)
			lo = lo.Min(v)
			hi = hi.Max(v)
		}
	}
	return lo, hi
}

func flatten3(src [][3]float32, vertexCount int) []float32 {
	out := make([]float32, 3*vertexCount)
	for i := 0; i < len(src) && i < vertexCount; i++ {
		copy(out[i*3:i*3+3], src[i][:])
	}
	return out
}

// buildTangents computes a flat tangent frame per face from its positions and
// texture coordinates. Faces missing a texcoord or with degenerate UVs keep a
// zero frame.
func (m *Mesh) buildTangents() {
	if len(m.texCoords) == 0 {
		return
	}
	m.tangents = make([][3]float32, m.VertexCount())
	m.bitangents = make([][3]float32, m.VertexCount())

	for fi, f := range m.faces {
		if f.TexCoordIndex[0] == Missing || f.TexCoordIndex[1] == Missing || f.TexCoordIndex[2] == Missing {
			continue
		}

		p0, p1, p2 := m.vec(f.VertexIndex[0]), m.vec(f.VertexIndex[1]), m.vec(f.VertexIndex[2])
		uv0, uv1, uv2 := m.texCoords[f.TexCoordIndex[0]], m.texCoords[f.TexCoordIndex[1]], m.texCoords[f.TexCoordIndex[2]]

		edge1 := p1.Sub(p0)
		edge2 := p2.Sub(p0)
		du1, dv1 := uv1[0]-uv0[0], uv1[1]-uv0[1]
		du2, dv2 := uv2[0]-uv0[0], uv2[1]-uv0[1]

		det := du1*dv2 - dv1*du2
		if det == 0 {
			continue
		}
		invDet := 1 / det

		t := edge1.Scale(dv2).Sub(edge2.Scale(dv1)).Scale(invDet).Normalize()
		b := edge2.Scale(du1).Sub(edge1.Scale(du2)).Scale(invDet).Normalize()

		for k := 0; k < 3; k++ {
			m.tangents[fi*3+k] = t.Array()
			m.bitangents[fi*3+k] = b.Array()
		}
	}
}

func (m *Mesh) vec(idx int) math.Vec3 {
	p := m.positions[idx]
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}
