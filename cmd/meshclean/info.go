package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/meshclean/pkg/analysis"
	"github.com/philipparndt/meshclean/pkg/mesh"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Display information about a mesh file",
	Long: `Show dimensions, surface area, enclosed volume and the per-component
area/volume ratios used by the component-selection heuristic.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	m, err := mesh.Load(filename)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", filename, err)
	}

	result := analysis.AnalyzeMesh(m)

	fmt.Println("Mesh Information")
	fmt.Println("================")
	if m.Name != "" {
		fmt.Printf("Name: %s\n", m.Name)
	}
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Model Statistics:")
	fmt.Printf("  Triangles: %d\n", result.TriangleCount)
	fmt.Printf("  Surface Area: %.6f square units\n", result.SurfaceArea)
	fmt.Printf("  Volume: %.6f cubic units\n", result.Volume)
	fmt.Printf("  Watertight: %v\n\n", result.Watertight)

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Printf("  Center: %s\n", analysis.FormatVector(result.BoundingBox.Center()))
	fmt.Printf("  Dimensions: %s\n", analysis.FormatVector(result.Dimensions))
	fmt.Printf("  Diagonal: %.6f units\n\n", result.BoundingBox.Diagonal())

	fmt.Println("Edge Lengths:")
	fmt.Printf("  Minimum: %.6f units\n", result.MinEdgeLength)
	fmt.Printf("  Maximum: %.6f units\n", result.MaxEdgeLength)
	fmt.Printf("  Average: %.6f units\n\n", result.AvgEdgeLength)

	components := analysis.AnalyzeComponents(m)
	fmt.Printf("Components: %d\n", len(components))
	if len(components) == 0 {
		return nil
	}

	best := 0
	for i, c := range components {
		if c.Ratio < components[best].Ratio {
			best = i
		}
	}
	for _, c := range components {
		marker := " "
		if c.Index == best {
			marker = "*"
		}
		fmt.Printf("  %s [%d] triangles=%d area=%.4f volume=%.4f ratio=%.4f watertight=%v\n",
			marker, c.Index, c.TriangleCount, c.Area, c.Volume, c.Ratio, c.Watertight)
	}
	if len(components) > 1 {
		fmt.Println("\n  * = component the ratio method would keep")
	}

	return nil
}
