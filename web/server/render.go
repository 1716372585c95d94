package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/imageio"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// ProgressUpdate is sent via SSE while a streamed render runs
type ProgressUpdate struct {
	Fraction  float64 `json:"fraction"`
	ElapsedMs int64   `json:"elapsedMs"`
}

// CompleteUpdate is the final SSE event of a streamed render
type CompleteUpdate struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Stats     Stats  `json:"stats"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels     int   `json:"totalPixels"`
	TotalSamples    int   `json:"totalSamples"`
	SamplesPerPixel int   `json:"samplesPerPixel"`
	MaxDepth        int   `json:"maxDepth"`
	Workers         int   `json:"workers"`
	DurationMs      int64 `json:"durationMs"`
}

func statsFromRender(rs renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:     rs.TotalPixels,
		TotalSamples:    rs.TotalSamples,
		SamplesPerPixel: rs.SamplesPerPixel,
		MaxDepth:        rs.MaxDepth,
		Workers:         rs.Workers,
		DurationMs:      rs.Duration.Milliseconds(),
	}
}

// renderImage runs a parallel render for the setup
func renderImage(setup *renderSetup, workers int, logger core.Logger) (*renderer.Image, renderer.RenderStats, error) {
	config := renderer.DefaultParallelConfig()
	config.NumWorkers = workers
	raytracer := renderer.NewParallelRaytracer(setup.scene.Camera, setup.scene.World, config, logger)

	img := renderer.NewImage(setup.width, setup.height)
	stats, err := raytracer.Render(setup.options, img)
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}
	return img, stats, nil
}

// handleRender renders a scene and responds with the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	format := imageio.FormatPNG
	if name := r.URL.Query().Get("format"); name != "" {
		if format, err = imageio.ParseFormat(name); err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	setup, err := prepareRender(req)
	if err != nil {
		writeJSONError(w, statusForError(err), err.Error())
		return
	}

	img, stats, err := renderImage(setup, req.Workers, renderer.NewDefaultLogger())
	if err != nil {
		writeJSONError(w, statusForError(err), fmt.Sprintf("Render error: %v", err))
		return
	}

	var buf bytes.Buffer
	if err := imageio.Encode(&buf, img, format); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	contentType := "image/png"
	if format == imageio.FormatPPM {
		contentType = "image/x-portable-pixmap"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleRenderStream renders a scene while streaming progress and console output via SSE
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	setup, err := prepareRender(req)
	if err != nil {
		s.sendSSEError(w, err.Error())
		return
	}

	// Render logs are forwarded as console events from the progress callback,
	// which runs on this goroutine
	consoleChan := make(chan ConsoleMessage, 64)
	logger := NewWebLogger(consoleChan)
	startTime := time.Now()

	setup.options.Progress = func(fraction float64) {
		s.drainConsole(w, consoleChan)
		s.sendSSEUpdate(w, "progress", ProgressUpdate{
			Fraction:  fraction,
			ElapsedMs: time.Since(startTime).Milliseconds(),
		})
	}

	img, stats, err := renderImage(setup, req.Workers, logger)
	s.drainConsole(w, consoleChan)
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("Render error: %v", err))
		return
	}

	imageData, err := s.imageToBase64PNG(img)
	if err != nil {
		s.sendSSEError(w, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	s.sendSSEUpdate(w, "complete", CompleteUpdate{
		ImageData: imageData,
		Width:     img.Width(),
		Height:    img.Height(),
		Stats:     statsFromRender(stats),
	})
}

// drainConsole forwards queued console messages without blocking
func (s *Server) drainConsole(w http.ResponseWriter, consoleChan <-chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			s.sendSSEUpdate(w, "console", msg)
		default:
			return
		}
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img *renderer.Image) (string, error) {
	var buf bytes.Buffer
	if err := imageio.Encode(&buf, img, imageio.FormatPNG); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// sendSSEUpdate sends a JSON payload as a named SSE event
func (s *Server) sendSSEUpdate(w http.ResponseWriter, event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.sendSSEEvent(w, event, string(data))
}

// sendSSEError sends an error via SSE
func (s *Server) sendSSEError(w http.ResponseWriter, message string) error {
	return s.sendSSEEvent(w, "error", message)
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if flusher, ok := w.(http.Flusher); ok {
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
		flusher.Flush()
		return nil
	}
	return fmt.Errorf("streaming not supported")
}
