package mesh

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads a mesh file, selecting the parser from the file extension.
// Supported formats: .stl (ASCII and binary), .obj
func Load(path string) (*Mesh, error) {
	switch normalizeExt(path) {
	case "stl":
		return ParseSTL(path)
	case "obj":
		return ParseOBJ(path)
	}
	return nil, fmt.Errorf("unsupported mesh format %q", filepath.Ext(path))
}

// Export writes the mesh to path in the format implied by the extension,
// creating parent directories as needed. The file is written to a temporary
// sibling and renamed into place so a failed export leaves nothing behind.
func Export(m *Mesh, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ext := normalizeExt(path)
	switch ext {
	case "stl", "obj":
	default:
		return fmt.Errorf("unsupported mesh format %q", filepath.Ext(path))
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	switch ext {
	case "stl":
		err = WriteSTL(m, tmp)
	case "obj":
		err = WriteOBJ(m, tmp)
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

func normalizeExt(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
