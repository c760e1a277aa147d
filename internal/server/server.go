package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"io/fs"
	"log"
	"math"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/internal/upload"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	renderTimeout = 60 * time.Second
	maxDimension  = 4096
)

// RenderRequest is the JSON body of POST /render
type RenderRequest struct {
	Scene    string     `json:"scene"`
	Width    int        `json:"width"`
	Height   int        `json:"height"`
	FOV      float64    `json:"fov"` // vertical field of view in degrees
	LookFrom [3]float64 `json:"lookFrom"`
	LookTo   [3]float64 `json:"lookTo"`
	MaxDepth int        `json:"maxDepth"`
	Upload   bool       `json:"upload"`
}

// Server renders scenes from a configured directory over HTTP
type Server struct {
	config   Config
	uploader *upload.Uploader // nil when S3 is not configured
	hub      *Hub
}

// serviceLogger routes renderer output through the standard log
type serviceLogger struct{}

func (serviceLogger) Printf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

// New creates the service, wiring the S3 uploader when configured
func New(config Config) (*Server, error) {
	s := &Server{config: config, hub: NewHub()}
	if config.S3.Configured() {
		uploader, err := upload.NewUploader(config.S3)
		if err != nil {
			return nil, err
		}
		s.uploader = uploader
	}
	return s, nil
}

// Routes returns the service handler
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/render", s.handleRender)
	mux.HandleFunc("/scenes", s.handleScenes)
	mux.HandleFunc("/ws", s.hub.ServeWS)
	return mux
}

// ListenAndServe runs the service on the configured address
func (s *Server) ListenAndServe() error {
	log.Printf("Render service listening on %s", s.config.Address)
	return http.ListenAndServe(s.config.Address, s.Routes())
}

// handleRender traces one scene and answers with PNG bytes, or with the
// public URL when the request asks for an upload
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if s.config.PostKey != "" && r.Header.Get("X-Render-Key") != s.config.PostKey {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	applyDefaults(&req)
	if err := validate(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Upload && s.uploader == nil {
		http.Error(w, "Upload is not configured", http.StatusBadRequest)
		return
	}

	scenePath := filepath.Join(s.config.SceneDir, req.Scene+".obj")
	sc, err := loaders.LoadScene(scenePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.Error(w, "Scene not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Scene load failed: %v", err), http.StatusBadRequest)
		return
	}

	start := time.Now()
	data, err := s.renderWithTimeout(req, sc)
	if err != nil {
		log.Printf("Render of %s failed: %v", req.Scene, err)
		http.Error(w, "Render failed", http.StatusGatewayTimeout)
		return
	}
	elapsed := time.Since(start)
	log.Printf("Rendered %s (%dx%d) in %v", req.Scene, req.Width, req.Height, elapsed)

	if req.Upload {
		key := fmt.Sprintf("renders/%s_%dx%d_%d.png", req.Scene, req.Width, req.Height, time.Now().Unix())
		url, err := s.uploader.PutPNG(r.Context(), data, key)
		if err != nil {
			log.Printf("Upload of %s failed: %v", key, err)
			http.Error(w, "Upload failed", http.StatusInternalServerError)
			return
		}
		s.hub.Broadcast(Event{Type: "done", Scene: req.Scene, Elapsed: elapsed.String(), URL: url})

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"url": url})
		return
	}

	s.hub.Broadcast(Event{Type: "done", Scene: req.Scene, Elapsed: elapsed.String()})
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(data)
}

// handleScenes lists the renderable scenes in the scene directory
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	scenes, err := loaders.DiscoverScenes(s.config.SceneDir)
	if err != nil {
		http.Error(w, "Scene listing failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string][]loaders.SceneInfo{"scenes": scenes})
}

// renderWithTimeout traces the scene on its own goroutine, abandoning the
// result if it exceeds the render deadline
func (s *Server) renderWithTimeout(req RenderRequest, sc *scene.Scene) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), renderTimeout)
	defer cancel()

	type result struct {
		data []byte
		err  error
	}
	resChan := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				resChan <- result{nil, fmt.Errorf("panic in renderer: %v", r)}
			}
		}()

		options := renderer.Options{
			Camera: renderer.CameraOptions{
				LookFrom: core.NewVec3(req.LookFrom[0], req.LookFrom[1], req.LookFrom[2]),
				LookTo:   core.NewVec3(req.LookTo[0], req.LookTo[1], req.LookTo[2]),
				FOV:      req.FOV * math.Pi / 180,
				Width:    req.Width,
				Height:   req.Height,
			},
			MaxDepth: req.MaxDepth,
		}

		rend := renderer.NewRenderer(sc, options, serviceLogger{})
		rend.SetProgress(func(completedRows, totalRows int) {
			s.hub.Broadcast(Event{
				Type:          "progress",
				Scene:         req.Scene,
				CompletedRows: completedRows,
				TotalRows:     totalRows,
			})
		})
		film := rend.Render()

		var buf bytes.Buffer
		if err := png.Encode(&buf, renderer.Tonemap(film)); err != nil {
			resChan <- result{nil, err}
			return
		}
		resChan <- result{data: buf.Bytes()}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("render timeout")
	case res := <-resChan:
		return res.data, res.err
	}
}

// applyDefaults fills unset request fields with the service defaults
func applyDefaults(req *RenderRequest) {
	if req.Width == 0 {
		req.Width = 512
	}
	if req.Height == 0 {
		req.Height = 512
	}
	if req.FOV == 0 {
		req.FOV = 60
	}
	if req.MaxDepth == 0 {
		req.MaxDepth = 5
	}
	// An unset camera looks down the negative z axis from the origin.
	if req.LookFrom == ([3]float64{}) && req.LookTo == ([3]float64{}) {
		req.LookTo = [3]float64{0, 0, -1}
	}
}

// validate rejects requests the renderer cannot serve
func validate(req RenderRequest) error {
	if req.Scene == "" {
		return fmt.Errorf("scene name is required")
	}
	if filepath.Base(req.Scene) != req.Scene || strings.HasPrefix(req.Scene, ".") {
		return fmt.Errorf("invalid scene name %q", req.Scene)
	}
	if req.Width < 1 || req.Width > maxDimension || req.Height < 1 || req.Height > maxDimension {
		return fmt.Errorf("image dimensions must be between 1 and %d", maxDimension)
	}
	if req.FOV <= 0 || req.FOV >= 180 {
		return fmt.Errorf("fov must be between 0 and 180 degrees")
	}
	if req.MaxDepth < 1 {
		return fmt.Errorf("maxDepth must be positive")
	}
	if req.LookFrom == req.LookTo {
		return fmt.Errorf("lookFrom and lookTo must differ")
	}
	return nil
}
