package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/df07/go-whitted-raytracer/internal/server"
	"github.com/df07/go-whitted-raytracer/internal/upload"
	"github.com/df07/go-whitted-raytracer/internal/watch"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

var (
	renderOutput  string
	renderWidth   int
	renderHeight  int
	renderFOV     float64
	renderFrom    string
	renderTo      string
	renderDepth   int
	renderWorkers int
	renderHDR     string
	renderPreview uint
	renderUpload  string
	renderWatch   bool
)

var renderCmd = &cobra.Command{
	Use:   "render [scene]",
	Short: "Render a scene file to a PNG image",
	Long: `Render traces a Wavefront-dialect scene file and writes the tone-mapped
result as a PNG. The raw radiance film can be kept alongside it for later
re-tone-mapping, and a downscaled preview or an S3 upload can be produced
in the same run.`,
	Args: cobra.ExactArgs(1),
	Run:  runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "render.png", "output PNG path")
	renderCmd.Flags().IntVar(&renderWidth, "width", 512, "image width in pixels")
	renderCmd.Flags().IntVar(&renderHeight, "height", 512, "image height in pixels")
	renderCmd.Flags().Float64Var(&renderFOV, "fov", 60, "vertical field of view in degrees")
	renderCmd.Flags().StringVar(&renderFrom, "from", "0,0,0", "camera position as x,y,z")
	renderCmd.Flags().StringVar(&renderTo, "to", "0,0,-1", "camera target as x,y,z")
	renderCmd.Flags().IntVar(&renderDepth, "depth", 5, "maximum recursion depth")
	renderCmd.Flags().IntVar(&renderWorkers, "workers", 0, "render workers, 0 uses all CPUs")
	renderCmd.Flags().StringVar(&renderHDR, "hdr", "", "also write the radiance film to this path")
	renderCmd.Flags().UintVar(&renderPreview, "preview", 0, "also write a preview downscaled to this width")
	renderCmd.Flags().StringVar(&renderUpload, "upload", "", "publish the image to S3 under this key")
	renderCmd.Flags().BoolVar(&renderWatch, "watch", false, "re-render when the scene or its materials change")
}

func runRender(cmd *cobra.Command, args []string) {
	scenePath := args[0]

	options, err := buildRenderOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := renderOnce(scenePath, options); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if renderWatch {
		if err := watchAndRender(scenePath, options); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

// buildRenderOptions converts the command flags into renderer options
func buildRenderOptions() (renderer.Options, error) {
	lookFrom, err := parseVec3(renderFrom)
	if err != nil {
		return renderer.Options{}, fmt.Errorf("--from: %w", err)
	}
	lookTo, err := parseVec3(renderTo)
	if err != nil {
		return renderer.Options{}, fmt.Errorf("--to: %w", err)
	}
	if lookFrom == lookTo {
		return renderer.Options{}, fmt.Errorf("--from and --to must differ")
	}
	if renderFOV <= 0 || renderFOV >= 180 {
		return renderer.Options{}, fmt.Errorf("--fov must be between 0 and 180 degrees")
	}
	if renderWidth < 1 || renderHeight < 1 {
		return renderer.Options{}, fmt.Errorf("image dimensions must be positive")
	}
	if renderDepth < 1 {
		return renderer.Options{}, fmt.Errorf("--depth must be positive")
	}

	return renderer.Options{
		Camera: renderer.CameraOptions{
			LookFrom: lookFrom,
			LookTo:   lookTo,
			FOV:      renderFOV * math.Pi / 180,
			Width:    renderWidth,
			Height:   renderHeight,
		},
		MaxDepth: renderDepth,
		Workers:  renderWorkers,
	}, nil
}

// renderOnce loads the scene, traces it, and writes every requested output
func renderOnce(scenePath string, options renderer.Options) error {
	sc, err := loaders.LoadScene(scenePath)
	if err != nil {
		return err
	}

	film := renderer.NewRenderer(sc, options, nil).Render()
	img := renderer.Tonemap(film)

	if err := writePNG(renderOutput, img); err != nil {
		return err
	}
	fmt.Printf("Render saved as %s\n", renderOutput)

	if renderHDR != "" {
		if err := writeRadiance(renderHDR, film); err != nil {
			return err
		}
		fmt.Printf("Radiance film saved as %s\n", renderHDR)
	}

	if renderPreview > 0 {
		previewPath := previewName(renderOutput)
		if err := writePNG(previewPath, renderer.Preview(img, renderPreview)); err != nil {
			return err
		}
		fmt.Printf("Preview saved as %s\n", previewPath)
	}

	if renderUpload != "" {
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("encoding PNG for upload: %w", err)
		}
		url, err := publish(buf.Bytes(), renderUpload)
		if err != nil {
			return err
		}
		fmt.Printf("Published to %s\n", url)
	}
	return nil
}

// watchAndRender blocks until interrupted, re-rendering whenever the scene
// file or a material library next to it changes
func watchAndRender(scenePath string, options renderer.Options) error {
	watcher, err := watch.NewWatcher(500*time.Millisecond, func(path string) {
		fmt.Printf("Change detected in %s, re-rendering...\n", path)
		if err := renderOnce(scenePath, options); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	})
	if err != nil {
		return err
	}
	defer watcher.Close()

	files := []string{scenePath}
	if libraries, err := filepath.Glob(filepath.Join(filepath.Dir(scenePath), "*.mtl")); err == nil {
		files = append(files, libraries...)
	}
	if err := watcher.Add(files...); err != nil {
		return err
	}
	watcher.Start()

	fmt.Println("Watching for changes, press Ctrl+C to stop...")
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop
	return nil
}

// publish uploads PNG bytes using the S3 settings from the environment
func publish(data []byte, key string) (string, error) {
	cfg := server.LoadConfig()
	if !cfg.S3.Configured() {
		return "", fmt.Errorf("S3 is not configured; set S3_ACCESS_KEY and S3_BUCKET")
	}
	uploader, err := upload.NewUploader(cfg.S3)
	if err != nil {
		return "", err
	}
	return uploader.PutPNG(context.Background(), data, key)
}

// writePNG saves an image, creating the output directory when needed
func writePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("saving PNG: %w", err)
	}
	return nil
}

// writeRadiance saves the raw film for later re-tone-mapping
func writeRadiance(path string, film *renderer.Film) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	if err := film.WriteRadiance(file); err != nil {
		return fmt.Errorf("saving radiance film: %w", err)
	}
	return nil
}

// previewName derives the preview path from the main output,
// e.g. "out/render.png" becomes "out/render_preview.png"
func previewName(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_preview" + ext
}

// parseVec3 reads a comma-separated "x,y,z" triple
func parseVec3(s string) (core.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return core.Vec3{}, fmt.Errorf("expected x,y,z, got %q", s)
	}

	var values [3]float64
	for i, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("invalid coordinate %q", part)
		}
		values[i] = value
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}
