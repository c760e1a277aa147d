package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

var tonemapOutput string

var tonemapCmd = &cobra.Command{
	Use:   "tonemap [radiance-file]",
	Short: "Tone map a saved radiance film to PNG",
	Long: `Tonemap converts a radiance film written by render --hdr into a PNG
without re-tracing the scene.`,
	Args: cobra.ExactArgs(1),
	Run:  runTonemap,
}

func init() {
	rootCmd.AddCommand(tonemapCmd)
	tonemapCmd.Flags().StringVarP(&tonemapOutput, "output", "o", "render.png", "output PNG path")
}

func runTonemap(cmd *cobra.Command, args []string) {
	file, err := os.Open(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	film, err := renderer.ReadRadiance(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading radiance film: %v\n", err)
		os.Exit(1)
	}

	if err := writePNG(tonemapOutput, renderer.Tonemap(film)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Tone mapped %s to %s\n", args[0], tonemapOutput)
}
