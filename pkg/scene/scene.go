package scene

import (
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering.
// It is read-only once built; renders may share it between goroutines.
type Scene struct {
	Name         string
	Camera       *renderer.Camera
	CameraConfig renderer.CameraConfig
	World        *geometry.List         // Objects in the scene
	Options      renderer.RenderOptions // Recommended render settings
}

// New creates a scene from a camera configuration and a populated world
func New(name string, cameraConfig renderer.CameraConfig, world *geometry.List, options renderer.RenderOptions) *Scene {
	return &Scene{
		Name:         name,
		Camera:       renderer.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
		World:        world,
		Options:      options,
	}
}

// ImageHeight returns the image height matching the camera aspect ratio for the given width
func (s *Scene) ImageHeight(width int) int {
	if s.CameraConfig.AspectRatio <= 0 {
		return width
	}
	return max(1, int(float64(width)/s.CameraConfig.AspectRatio))
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}
