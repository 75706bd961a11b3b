package stl

import (
	vm "local/vector_math"
	"math"
	"slices"
)

// Triangle is a single record of the file: one face normal and its three corners.
type Triangle struct {
	Normal   vm.Vec3
	Vertices [3]vm.Vec3
}

// Mesh is the immutable result of an import. Normals and vertices are stored as
// parallel flat buffers of 3*TriangleCount entries, the face normal being
// repeated for each of its three vertices so both can be used directly as
// per-vertex attribute streams of a triangle list.
type Mesh struct {
	header   string
	count    int
	normals  []vm.Vec3
	vertices []vm.Vec3
	bounds   vm.Box
	center   vm.Vec3
	radius   float32
}

func newMesh(header string, normals, vertices []vm.Vec3, bounds vm.Box) *Mesh {
	m := &Mesh{
		header:   header,
		count:    len(vertices) / 3,
		normals:  normals,
		vertices: vertices,
		bounds:   bounds,
		center:   bounds.Center(),
	}
	m.radius = boundingRadius(m.center, vertices)
	return m
}

// boundingRadius returns the largest distance from c to any of the points.
func boundingRadius(c vm.Vec3, points []vm.Vec3) float32 {
	rsq := 0.0
	for _, p := range points {
		if d := c.SqDist(p); d > rsq {
			rsq = d
		}
	}
	return float32(math.Sqrt(rsq))
}

func (m *Mesh) TriangleCount() int {
	return m.count
}

// Vertices returns a copy of the flat vertex buffer.
func (m *Mesh) Vertices() []vm.Vec3 {
	return slices.Clone(m.vertices)
}

// Normals returns a copy of the flat per-vertex normal buffer.
func (m *Mesh) Normals() []vm.Vec3 {
	return slices.Clone(m.normals)
}

func (m *Mesh) Vertex(index int) vm.Vec3 {
	return m.vertices[index]
}

func (m *Mesh) Normal(index int) vm.Vec3 {
	return m.normals[index]
}

func (m *Mesh) Triangle(index int) Triangle {
	base := 3 * index
	return Triangle{
		Normal:   m.normals[base],
		Vertices: [3]vm.Vec3{m.vertices[base], m.vertices[base+1], m.vertices[base+2]},
	}
}

// Center is the midpoint of the axis-aligned bounding box of all vertices.
func (m *Mesh) Center() vm.Vec3 {
	return m.center
}

// Radius is the largest distance between Center and any vertex.
func (m *Mesh) Radius() float32 {
	return m.radius
}

func (m *Mesh) Bounds() vm.Box {
	return m.bounds
}

// Header returns the file preamble with its padding trimmed. Its content is
// not interpreted.
func (m *Mesh) Header() string {
	return m.header
}

// Release drops the vertex and normal buffers. The mesh reports no triangles
// afterwards while Center and Radius keep their values. Safe on a nil mesh.
func (m *Mesh) Release() {
	if m == nil {
		return
	}
	m.normals = nil
	m.vertices = nil
	m.count = 0
}
