package mesh

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/meshclean/pkg/geometry"
)

const asciiFixture = `solid test cube
  facet normal 0 0 -1
    outer loop
      vertex 0 0 0
      vertex 0 1 0
      vertex 1 1 0
    endloop
  endfacet
  facet normal 0 0 -1
    outer loop
      vertex 0 0 0
      vertex 1 1 0
      vertex 1 0 0
    endloop
  endfacet
endsolid test cube
`

func TestParseASCIISTL(t *testing.T) {
	m, err := parseASCIISTL(strings.NewReader(asciiFixture))
	if err != nil {
		t.Fatalf("parseASCIISTL: %v", err)
	}

	if m.Name != "test cube" {
		t.Errorf("name: expected %q, got %q", "test cube", m.Name)
	}
	if m.TriangleCount() != 2 {
		t.Fatalf("expected 2 triangles, got %d", m.TriangleCount())
	}
	if m.Triangles[0].V2 != geometry.NewVector3(0, 1, 0) {
		t.Errorf("unexpected vertex: %v", m.Triangles[0].V2)
	}
	if m.Triangles[1].Normal != geometry.NewVector3(0, 0, -1) {
		t.Errorf("unexpected normal: %v", m.Triangles[1].Normal)
	}
}

func TestBinarySTLRoundTrip(t *testing.T) {
	original := cubeMesh(geometry.NewVector3(0, 0, 0), 1)
	original.Name = "roundtrip"

	var buf bytes.Buffer
	if err := WriteSTL(original, &buf); err != nil {
		t.Fatalf("WriteSTL: %v", err)
	}

	parsed, err := parseBinarySTL(&buf)
	if err != nil {
		t.Fatalf("parseBinarySTL: %v", err)
	}

	if parsed.Name != "roundtrip" {
		t.Errorf("name: expected %q, got %q", "roundtrip", parsed.Name)
	}
	if parsed.TriangleCount() != original.TriangleCount() {
		t.Fatalf("triangle count: expected %d, got %d",
			original.TriangleCount(), parsed.TriangleCount())
	}
	if math.Abs(parsed.Volume()-original.Volume()) > 1e-6 {
		t.Errorf("volume changed in round trip: %v vs %v",
			original.Volume(), parsed.Volume())
	}
}

func TestLoadDetectsBinarySTL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cube.stl")

	if err := Export(cubeMesh(geometry.NewVector3(0, 0, 0), 2), path); err != nil {
		t.Fatalf("Export: %v", err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.TriangleCount() != 12 {
		t.Errorf("expected 12 triangles, got %d", m.TriangleCount())
	}
}

func TestLoadDetectsASCIISTL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plate.stl")
	if err := os.WriteFile(path, []byte(asciiFixture), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.TriangleCount() != 2 {
		t.Errorf("expected 2 triangles, got %d", m.TriangleCount())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.stl")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.gltf")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestExportCreatesParentDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deep", "cube.stl")

	if err := Export(cubeMesh(geometry.NewVector3(0, 0, 0), 1), path); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cube.ply")

	if err := Export(cubeMesh(geometry.NewVector3(0, 0, 0), 1), path); err == nil {
		t.Error("expected error for unsupported export format")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("failed export should not leave a file behind")
	}
}
