package scene

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownScene is returned when a scene name is not registered
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Name used to look the scene up
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
}

type builtinScene struct {
	info  SceneInfo
	build func(seed int64) *Scene
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{
			ID:          "default",
			DisplayName: "Default Scene",
			Description: "Spheres of every material on a ground plane, with a hollow glass sphere",
		},
		build: func(int64) *Scene { return NewDefaultScene() },
	},
	{
		info: SceneInfo{
			ID:          "random-spheres",
			DisplayName: "Random Spheres",
			Description: "Grid of small random spheres around three large ones",
		},
		build: NewRandomSpheresScene,
	},
	{
		info: SceneInfo{
			ID:          "cornell-box",
			DisplayName: "Cornell Box",
			Description: "Rectangle walls around diffuse, metal and glass spheres",
		},
		build: func(int64) *Scene { return NewCornellBoxScene() },
	},
	{
		info: SceneInfo{
			ID:          "single-sphere",
			DisplayName: "Single Sphere",
			Description: "One diffuse sphere under the sky",
		},
		build: func(int64) *Scene { return NewSingleSphereScene() },
	},
}

// ListScenes returns the built-in scenes sorted by ID
func ListScenes() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtinScenes))
	for _, s := range builtinScenes {
		infos = append(infos, s.info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	return infos
}

// Lookup builds the named built-in scene. The seed only affects generated scenes.
func Lookup(name string, seed int64) (*Scene, error) {
	for _, s := range builtinScenes {
		if s.info.ID == name {
			return s.build(seed), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}
