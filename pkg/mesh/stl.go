package mesh

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/meshclean/pkg/geometry"
)

const stlHeaderSize = 80

// ParseSTL reads an STL file and returns a Mesh
// It automatically detects whether the file is ASCII or binary format
func ParseSTL(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// Read first few bytes to determine format
	header := make([]byte, 6)
	n, err := file.Read(header)
	if err != nil {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}

	// Reset file pointer
	if _, err := file.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("failed to reset file pointer: %w", err)
	}

	// ASCII files start with "solid"
	if n >= 5 && strings.HasPrefix(string(header[:5]), "solid") {
		return parseASCIISTL(file)
	}

	return parseBinarySTL(file)
}

func parseASCIISTL(reader io.Reader) (*Mesh, error) {
	scanner := bufio.NewScanner(reader)
	m := New("")

	var currentNormal geometry.Vector3
	var vertices []geometry.Vector3

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)

		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				m.Name = strings.Join(fields[1:], " ")
			}

		case "facet":
			if len(fields) >= 5 && fields[1] == "normal" {
				x, _ := strconv.ParseFloat(fields[2], 64)
				y, _ := strconv.ParseFloat(fields[3], 64)
				z, _ := strconv.ParseFloat(fields[4], 64)
				currentNormal = geometry.NewVector3(x, y, z)
			}

		case "vertex":
			if len(fields) >= 4 {
				x, _ := strconv.ParseFloat(fields[1], 64)
				y, _ := strconv.ParseFloat(fields[2], 64)
				z, _ := strconv.ParseFloat(fields[3], 64)
				vertices = append(vertices, geometry.NewVector3(x, y, z))
			}

		case "endfacet":
			if len(vertices) == 3 {
				m.AddTriangle(geometry.NewTriangle(
					currentNormal,
					vertices[0],
					vertices[1],
					vertices[2],
				))
			}
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}

	return m, nil
}

func parseBinarySTL(reader io.Reader) (*Mesh, error) {
	m := New("")

	header := make([]byte, stlHeaderSize)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Extract name from header (if present)
	headerStr := string(bytes.TrimRight(header, "\x00"))
	if len(headerStr) > 0 {
		m.Name = headerStr
	}

	var triangleCount uint32
	if err := binary.Read(reader, binary.LittleEndian, &triangleCount); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", err)
	}

	for i := uint32(0); i < triangleCount; i++ {
		var facet stlFacet
		if err := binary.Read(reader, binary.LittleEndian, &facet); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		m.AddTriangle(facet.toTriangle())
	}

	return m, nil
}

// stlFacet is the 50-byte binary STL triangle record
type stlFacet struct {
	Normal     [3]float32
	V1, V2, V3 [3]float32
	Attribute  uint16
}

func (f stlFacet) toTriangle() geometry.Triangle {
	toVec := func(v [3]float32) geometry.Vector3 {
		return geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2]))
	}
	return geometry.NewTriangle(toVec(f.Normal), toVec(f.V1), toVec(f.V2), toVec(f.V3))
}

func newSTLFacet(t geometry.Triangle) stlFacet {
	normal := t.Normal
	if normal.Length() == 0 {
		normal = t.CalculateNormal()
	}
	toF32 := func(v geometry.Vector3) [3]float32 {
		return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
	}
	return stlFacet{
		Normal: toF32(normal),
		V1:     toF32(t.V1),
		V2:     toF32(t.V2),
		V3:     toF32(t.V3),
	}
}

// WriteSTL serializes the mesh in binary STL format
func WriteSTL(m *Mesh, w io.Writer) error {
	// A binary header starting with "solid" would be misdetected as ASCII
	header := make([]byte, stlHeaderSize)
	if !strings.HasPrefix(m.Name, "solid") {
		copy(header, m.Name)
	}
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	count := uint32(len(m.Triangles))
	if err := binary.Write(w, binary.LittleEndian, count); err != nil {
		return fmt.Errorf("failed to write triangle count: %w", err)
	}

	for i, triangle := range m.Triangles {
		facet := newSTLFacet(triangle)
		if err := binary.Write(w, binary.LittleEndian, &facet); err != nil {
			return fmt.Errorf("failed to write triangle %d: %w", i, err)
		}
	}

	return nil
}
