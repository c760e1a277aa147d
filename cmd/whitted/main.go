package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "whitted",
	Short: "A Whitted-style recursive ray tracer",
	Long: `whitted renders Wavefront-dialect scene files with recursive
reflection and refraction, writing tone-mapped PNG images. It also bundles
a radiance-film tone mapper, scene statistics, and an HTTP render service.`,
	Version: "1.0.0",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
