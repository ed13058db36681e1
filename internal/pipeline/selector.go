// Package pipeline implements the batch run: file discovery, per-file
// processing and main-component selection.
package pipeline

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/philipparndt/meshclean/pkg/mesh"
)

// Method selects how the main component is chosen from a split mesh
type Method string

const (
	// MethodFirst keeps the first component, which is usually the model
	MethodFirst Method = "first"
	// MethodRatio keeps the component with the lowest surface-area-to-volume
	// ratio. Supports tend to be slender, hence a higher ratio.
	MethodRatio Method = "ratio"
)

// ErrNoComponents is returned when selection is attempted on an empty list
var ErrNoComponents = errors.New("no components provided")

// ParseMethod validates a method name from user input
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(s))); m {
	case MethodFirst, MethodRatio:
		return m, nil
	}
	return "", fmt.Errorf("unknown method %q (valid: %s, %s)", s, MethodFirst, MethodRatio)
}

// SelectMainComponent chooses one component from a non-empty list.
// Unrecognised methods fall back to first for compatibility with callers
// that pass method names through unvalidated.
func SelectMainComponent(components []*mesh.Mesh, method Method) (*mesh.Mesh, error) {
	if len(components) == 0 {
		return nil, ErrNoComponents
	}

	if method == MethodRatio {
		best := components[0]
		bestRatio := math.Inf(1)
		for _, component := range components {
			// guard against zero or tiny volumes
			volume := component.Volume()
			if volume < mesh.MinVolume {
				volume = mesh.MinVolume
			}
			ratio := component.Area() / volume
			if ratio < bestRatio {
				bestRatio = ratio
				best = component
			}
		}
		return best, nil
	}

	return components[0], nil
}
