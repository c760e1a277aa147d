package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

var infoCmd = &cobra.Command{
	Use:   "info [scene]",
	Short: "Display statistics about a scene file",
	Long:  "Show primitive, light, and material counts plus the scene bounding box.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	scenePath := args[0]

	sc, err := loaders.LoadScene(scenePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
		os.Exit(1)
	}

	spheres, triangles := 0, 0
	materials := make(map[material.Material]bool)
	for _, prim := range sc.Primitives() {
		switch prim.Kind {
		case geometry.KindSphere:
			spheres++
		case geometry.KindTriangle:
			triangles++
		}
		materials[prim.Material] = true
	}

	fmt.Println("Scene Information")
	fmt.Println("=================")
	fmt.Printf("File: %s\n\n", scenePath)

	fmt.Println("Contents:")
	fmt.Printf("  Spheres: %d\n", spheres)
	fmt.Printf("  Triangles: %d\n", triangles)
	fmt.Printf("  Lights: %d\n", len(sc.Lights()))
	fmt.Printf("  Distinct materials: %d\n\n", len(materials))

	bounds := sc.Bounds()
	size := bounds.Size()
	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: (%.6f, %.6f, %.6f)\n", bounds.Min.X, bounds.Min.Y, bounds.Min.Z)
	fmt.Printf("  Max: (%.6f, %.6f, %.6f)\n", bounds.Max.X, bounds.Max.Y, bounds.Max.Z)
	fmt.Printf("  Size: (%.6f, %.6f, %.6f)\n", size.X, size.Y, size.Z)
}
