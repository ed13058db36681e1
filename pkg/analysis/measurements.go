package analysis

import (
	"fmt"
	"math"

	"github.com/philipparndt/meshclean/pkg/geometry"
	"github.com/philipparndt/meshclean/pkg/mesh"
)

// Result contains measurements of a mesh
type Result struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	Volume        float64
	Watertight    bool
	TriangleCount int
	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
}

// ComponentInfo describes one connected component of a mesh
type ComponentInfo struct {
	Index         int
	TriangleCount int
	Area          float64
	Volume        float64
	Ratio         float64 // area / max(volume, epsilon)
	Watertight    bool
}

// AnalyzeMesh measures a mesh: bounds, area, enclosed volume and edge stats
func AnalyzeMesh(m *mesh.Mesh) *Result {
	result := &Result{
		BoundingBox:   m.BoundingBox(),
		SurfaceArea:   m.Area(),
		Volume:        m.Volume(),
		Watertight:    m.IsWatertight(),
		TriangleCount: m.TriangleCount(),
	}
	result.Dimensions = result.BoundingBox.Size()

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0

	for _, triangle := range m.Triangles {
		for _, length := range triangle.EdgeLengths() {
			totalLength += length
			if length < minLength {
				minLength = length
			}
			if length > maxLength {
				maxLength = length
			}
		}
	}

	result.EdgeCount = 3 * result.TriangleCount
	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}

	return result
}

// AnalyzeComponents splits a mesh into connected components and reports the
// area/volume ratio used by the component-selection heuristic.
func AnalyzeComponents(m *mesh.Mesh) []ComponentInfo {
	components := m.Split(false)
	infos := make([]ComponentInfo, len(components))
	for i, component := range components {
		area := component.Area()
		volume := component.Volume()
		clamped := volume
		if clamped < mesh.MinVolume {
			clamped = mesh.MinVolume
		}
		infos[i] = ComponentInfo{
			Index:         i,
			TriangleCount: component.TriangleCount(),
			Area:          area,
			Volume:        volume,
			Ratio:         area / clamped,
			Watertight:    component.IsWatertight(),
		}
	}
	return infos
}

// FormatVector formats a vector for display
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
