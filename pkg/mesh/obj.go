package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/meshclean/pkg/geometry"
)

// ParseOBJ reads a Wavefront OBJ file and returns a Mesh. Only geometry is
// kept: v and f records are read, texture coordinates, normals, materials
// and groups are skipped. Polygon faces are fan-triangulated.
func ParseOBJ(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return parseOBJ(file)
}

func parseOBJ(reader io.Reader) (*Mesh, error) {
	m := New("")
	var vertices []geometry.Vector3

	scanner := bufio.NewScanner(reader)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "o", "g":
			if m.Name == "" && len(fields) > 1 {
				m.Name = strings.Join(fields[1:], " ")
			}

		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex with %d coordinates", lineNo, len(fields)-1)
			}
			x, _ := strconv.ParseFloat(fields[1], 64)
			y, _ := strconv.ParseFloat(fields[2], 64)
			z, _ := strconv.ParseFloat(fields[3], 64)
			vertices = append(vertices, geometry.NewVector3(x, y, z))

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face with %d vertices", lineNo, len(fields)-1)
			}
			indices := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				idx, err := parseFaceIndex(ref, len(vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				indices = append(indices, idx)
			}
			// Fan triangulation for polygons
			for i := 1; i < len(indices)-1; i++ {
				triangle := geometry.Triangle{
					V1: vertices[indices[0]],
					V2: vertices[indices[i]],
					V3: vertices[indices[i+1]],
				}
				triangle.Normal = triangle.CalculateNormal()
				m.AddTriangle(triangle)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ: %w", err)
	}

	return m, nil
}

// parseFaceIndex resolves a face vertex reference ("7", "7/1", "7/1/2",
// "7//2", or negative relative indices) to a zero-based vertex index.
func parseFaceIndex(ref string, vertexCount int) (int, error) {
	if slash := strings.IndexByte(ref, '/'); slash >= 0 {
		ref = ref[:slash]
	}
	idx, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("invalid face index %q", ref)
	}
	if idx < 0 {
		idx = vertexCount + idx
	} else {
		idx-- // OBJ indices are one-based
	}
	if idx < 0 || idx >= vertexCount {
		return 0, fmt.Errorf("face index %q out of range", ref)
	}
	return idx, nil
}

// WriteOBJ serializes the mesh as an indexed Wavefront OBJ. Vertices with
// exactly equal coordinates are emitted once and shared between faces.
func WriteOBJ(m *Mesh, w io.Writer) error {
	bw := bufio.NewWriter(w)

	if m.Name != "" {
		fmt.Fprintf(bw, "o %s\n", m.Name)
	}

	index := newVertexIndex()
	var faces [][3]int
	var ordered []geometry.Vector3
	for _, triangle := range m.Triangles {
		var face [3]int
		for i, v := range [3]geometry.Vector3{triangle.V1, triangle.V2, triangle.V3} {
			before := len(index.ids)
			id := index.id(v)
			if len(index.ids) > before {
				ordered = append(ordered, v)
			}
			face[i] = id + 1 // one-based
		}
		faces = append(faces, face)
	}

	for _, v := range ordered {
		fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	for _, face := range faces {
		fmt.Fprintf(bw, "f %d %d %d\n", face[0], face[1], face[2])
	}

	return bw.Flush()
}
