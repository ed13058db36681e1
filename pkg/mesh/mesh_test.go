package mesh

import (
	"math"
	"testing"

	"github.com/philipparndt/meshclean/pkg/geometry"
)

// cubeMesh builds a closed axis-aligned cube with outward-facing windings
func cubeMesh(origin geometry.Vector3, size float64) *Mesh {
	p := func(x, y, z float64) geometry.Vector3 {
		return origin.Add(geometry.NewVector3(x, y, z).Mul(size))
	}

	p000, p100 := p(0, 0, 0), p(1, 0, 0)
	p010, p110 := p(0, 1, 0), p(1, 1, 0)
	p001, p101 := p(0, 0, 1), p(1, 0, 1)
	p011, p111 := p(0, 1, 1), p(1, 1, 1)

	faces := [][3]geometry.Vector3{
		{p000, p010, p110}, {p000, p110, p100}, // bottom
		{p001, p101, p111}, {p001, p111, p011}, // top
		{p000, p100, p101}, {p000, p101, p001}, // front
		{p110, p010, p011}, {p110, p011, p111}, // back
		{p000, p001, p011}, {p000, p011, p010}, // left
		{p100, p110, p111}, {p100, p111, p101}, // right
	}

	m := New("cube")
	for _, f := range faces {
		triangle := geometry.Triangle{V1: f[0], V2: f[1], V3: f[2]}
		triangle.Normal = triangle.CalculateNormal()
		m.AddTriangle(triangle)
	}
	return m
}

// openTriangle builds a single free-floating triangle (not watertight)
func openTriangle(origin geometry.Vector3, size float64) *Mesh {
	m := New("triangle")
	triangle := geometry.Triangle{
		V1: origin,
		V2: origin.Add(geometry.NewVector3(size, 0, 0)),
		V3: origin.Add(geometry.NewVector3(0, size, 0)),
	}
	triangle.Normal = triangle.CalculateNormal()
	m.AddTriangle(triangle)
	return m
}

// merge combines meshes into one triangle soup
func merge(name string, meshes ...*Mesh) *Mesh {
	combined := New(name)
	for _, m := range meshes {
		combined.Triangles = append(combined.Triangles, m.Triangles...)
	}
	return combined
}

func TestCubeArea(t *testing.T) {
	m := cubeMesh(geometry.NewVector3(0, 0, 0), 2)

	area := m.Area()
	expected := 24.0 // 6 faces of 2x2

	if math.Abs(area-expected) > 1e-9 {
		t.Errorf("Area failed: expected %v, got %v", expected, area)
	}
}

func TestCubeVolume(t *testing.T) {
	// Offset from the origin so the signed tetrahedron sum actually
	// exercises cancellation
	m := cubeMesh(geometry.NewVector3(10, -3, 7), 2)

	volume := m.Volume()
	expected := 8.0

	if math.Abs(volume-expected) > 1e-9 {
		t.Errorf("Volume failed: expected %v, got %v", expected, volume)
	}
}

func TestPlanarShellZeroVolume(t *testing.T) {
	// A flat shell in the z=0 plane encloses nothing; this is the
	// degenerate case the ratio epsilon guards against
	m := openTriangle(geometry.NewVector3(1, 1, 0), 5)

	if m.Volume() != 0 {
		t.Errorf("expected zero volume for planar shell, got %v", m.Volume())
	}
	if m.Area() == 0 {
		t.Error("planar shell should still have surface area")
	}
}

func TestIsWatertight(t *testing.T) {
	cube := cubeMesh(geometry.NewVector3(0, 0, 0), 1)
	if !cube.IsWatertight() {
		t.Error("cube should be watertight")
	}

	tri := openTriangle(geometry.NewVector3(0, 0, 0), 1)
	if tri.IsWatertight() {
		t.Error("single triangle should not be watertight")
	}

	empty := New("")
	if empty.IsWatertight() {
		t.Error("empty mesh should not be watertight")
	}
}

func TestBoundingBox(t *testing.T) {
	m := cubeMesh(geometry.NewVector3(1, 2, 3), 2)

	bbox := m.BoundingBox()
	if bbox.Min != geometry.NewVector3(1, 2, 3) {
		t.Errorf("bounding box min: got %v", bbox.Min)
	}
	if bbox.Max != geometry.NewVector3(3, 4, 5) {
		t.Errorf("bounding box max: got %v", bbox.Max)
	}
}
