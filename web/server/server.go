package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-raytracer/pkg/renderer"
	"github.com/df07/go-raytracer/pkg/scene"
)

// Request limits
const (
	minImageWidth  = 16
	maxImageWidth  = 2000
	maxSamples     = 10000
	maxBounceDepth = 1000
)

// Server handles web requests for the raytracer
type Server struct {
	port int
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string `json:"scene"`   // Scene name (e.g., "cornell-box")
	Width   int    `json:"width"`   // Image width
	Height  int    `json:"height"`  // Image height, 0 = follow the camera aspect ratio
	Samples int    `json:"samples"` // Samples per pixel, 0 = scene default
	Depth   int    `json:"depth"`   // Maximum bounce depth, -1 = scene default
	Seed    int64  `json:"seed"`    // Base random seed
	SeedSet bool   `json:"-"`       // Seed came from the query; otherwise the scene's seed is kept
	Workers int    `json:"workers"` // Parallel workers, 0 = CPU count
}

// Handler returns the HTTP routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/scenes", s.handleScenes)
	mux.HandleFunc("GET /api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("GET /api/render", s.handleRender)
	mux.HandleFunc("GET /api/render/stream", s.handleRenderStream)
	mux.HandleFunc("GET /api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"scenes": scene.ListScenes()})
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := scene.Lookup(sceneName, 0)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}

	// Return the scene's render options with validation limits
	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"samplesPerPixel": sceneObj.Options.SamplesPerPixel,
			"maxDepth":        sceneObj.Options.MaxDepth,
			"seed":            sceneObj.Options.Seed,
			"aspectRatio":     sceneObj.CameraConfig.AspectRatio,
		},
		"limits": map[string]interface{}{
			"width": map[string]int{
				"min": minImageWidth,
				"max": maxImageWidth,
			},
			"samples": map[string]int{
				"min": 1,
				"max": maxSamples,
			},
			"depth": map[string]int{
				"min": 0,
				"max": maxBounceDepth,
			},
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	values := r.URL.Query()
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 400, minImageWidth, maxImageWidth); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 0, 1, maxImageWidth); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(values, "depth", -1, 0, maxBounceDepth); err != nil {
		return nil, err
	}
	if req.Workers, err = parseIntParam(values, "workers", 0, 1, 256); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(values, "seed", 42, 0, 1<<31-1)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)
	req.SeedSet = values.Has("seed")

	// Performance warning
	if req.Width > 800 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// renderSetup is a scene with the image size and options resolved for a request
type renderSetup struct {
	scene         *scene.Scene
	width, height int
	options       renderer.RenderOptions
}

// prepareRender looks up the scene and overlays request settings on its defaults
func prepareRender(req *RenderRequest) (*renderSetup, error) {
	sceneObj, err := scene.Lookup(req.Scene, req.Seed)
	if err != nil {
		return nil, err
	}

	height := req.Height
	if height == 0 {
		height = sceneObj.ImageHeight(req.Width)
	}

	opts := sceneObj.Options
	if req.Samples > 0 {
		opts.SamplesPerPixel = req.Samples
	}
	if req.Depth >= 0 {
		opts.MaxDepth = req.Depth
	}
	if req.SeedSet {
		opts.Seed = req.Seed
	}

	return &renderSetup{scene: sceneObj, width: req.Width, height: height, options: opts}, nil
}

// statusForError maps lookup and render errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, scene.ErrUnknownScene):
		return http.StatusNotFound
	case errors.Is(err, renderer.ErrInvalidOptions), errors.Is(err, renderer.ErrImageSize):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
