// Package mesh provides loading, saving and connected-component analysis of
// triangle meshes in STL and OBJ formats.
package mesh

import (
	"math"

	"github.com/philipparndt/meshclean/pkg/geometry"
)

// MinVolume is the floor applied to enclosed volumes before ratio
// computations. Thin open shells report volumes at or near zero; clamping
// keeps area/volume ratios finite.
const MinVolume = 1e-12

// Mesh represents a triangle mesh
type Mesh struct {
	Name      string
	Triangles []geometry.Triangle
}

// New creates an empty mesh
func New(name string) *Mesh {
	return &Mesh{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// AddTriangle adds a triangle to the mesh
func (m *Mesh) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the mesh
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// BoundingBox calculates the axis-aligned bounding box of the mesh
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, triangle := range m.Triangles {
		bbox.Extend(triangle.V1)
		bbox.Extend(triangle.V2)
		bbox.Extend(triangle.V3)
	}
	return bbox
}

// Area returns the total surface area of the mesh
func (m *Mesh) Area() float64 {
	total := 0.0
	for _, triangle := range m.Triangles {
		total += triangle.Area()
	}
	return total
}

// Volume returns the volume enclosed by the mesh surface, computed as the
// magnitude of the summed signed tetrahedron volumes. The result is only
// meaningful for watertight meshes; open shells report values near zero.
func (m *Mesh) Volume() float64 {
	total := 0.0
	for _, triangle := range m.Triangles {
		total += triangle.SignedVolume()
	}
	return math.Abs(total)
}

// IsWatertight reports whether every edge of the mesh is shared by exactly
// two triangles, i.e. the surface is closed with no boundary edges.
func (m *Mesh) IsWatertight() bool {
	if len(m.Triangles) == 0 {
		return false
	}

	index := newVertexIndex()
	edges := make(map[edgeKey]int)
	for _, triangle := range m.Triangles {
		a := index.id(triangle.V1)
		b := index.id(triangle.V2)
		c := index.id(triangle.V3)
		edges[newEdgeKey(a, b)]++
		edges[newEdgeKey(b, c)]++
		edges[newEdgeKey(c, a)]++
	}

	for _, count := range edges {
		if count != 2 {
			return false
		}
	}
	return true
}

// edgeKey identifies an undirected edge by its vertex ids
type edgeKey struct {
	a, b int
}

func newEdgeKey(a, b int) edgeKey {
	if b < a {
		a, b = b, a
	}
	return edgeKey{a: a, b: b}
}

// vertexIndex assigns stable ids to vertices, merging vertices with exactly
// equal coordinates.
type vertexIndex struct {
	ids map[geometry.Vector3]int
}

func newVertexIndex() *vertexIndex {
	return &vertexIndex{ids: make(map[geometry.Vector3]int)}
}

func (vi *vertexIndex) id(v geometry.Vector3) int {
	if id, ok := vi.ids[v]; ok {
		return id
	}
	id := len(vi.ids)
	vi.ids[v] = id
	return id
}
