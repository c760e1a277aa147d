package renderer

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

// Printf writes a log message to stdout
func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Options configures a render
type Options struct {
	Camera   CameraOptions
	MaxDepth int // maximum recursion depth for the integrator
	Workers  int // number of render workers; values <= 0 use all CPUs
}

// ProgressFunc receives row completion updates during a render. It may be
// called concurrently from multiple workers.
type ProgressFunc func(completedRows, totalRows int)

// Renderer traces every pixel of a scene into a film of radiance values
type Renderer struct {
	scene      *scene.Scene
	options    Options
	integrator integrator.Integrator
	logger     core.Logger
	progress   ProgressFunc
}

// NewRenderer creates a renderer for the given scene and options
func NewRenderer(s *scene.Scene, options Options, logger core.Logger) *Renderer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Renderer{
		scene:      s,
		options:    options,
		integrator: integrator.NewWhitted(s, options.MaxDepth),
		logger:     logger,
	}
}

// SetProgress registers a callback invoked as rows complete
func (r *Renderer) SetProgress(progress ProgressFunc) {
	r.progress = progress
}

// Render traces the whole image and returns the film of unbounded radiance.
// Rows are handed to workers over a channel; every pixel is a pure function
// of the read-only scene, so workers share nothing but the row queue.
func (r *Renderer) Render() *Film {
	width := r.options.Camera.Width
	height := r.options.Camera.Height

	camera := NewCamera(r.options.Camera)
	film := NewFilm(width, height)

	workers := r.options.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	start := time.Now()
	r.logger.Printf("Rendering %dx%d with %d workers...\n", width, height, workers)

	rows := make(chan int, height)
	for row := 0; row < height; row++ {
		rows <- row
	}
	close(rows)

	var completed int64
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for row := range rows {
				for col := 0; col < width; col++ {
					ray := camera.GetRay(row, col)
					film.Set(row, col, r.integrator.RayColor(ray))
				}
				done := atomic.AddInt64(&completed, 1)
				if r.progress != nil {
					r.progress(int(done), height)
				}
			}
		}()
	}
	wg.Wait()

	r.logger.Printf("Render completed in %v\n", time.Since(start))
	return film
}
