package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// ErrInvalidScene is returned when a scene description cannot be built
var ErrInvalidScene = errors.New("invalid scene description")

// CameraDescription mirrors renderer.CameraConfig.
// Vectors are objects with x, y and z fields.
type CameraDescription struct {
	LookFrom      core.Vec3 `json:"look_from"`
	LookAt        core.Vec3 `json:"look_at"`
	Up            core.Vec3 `json:"up"`
	VFov          float64   `json:"vfov"`
	AspectRatio   float64   `json:"aspect_ratio"`
	Aperture      float64   `json:"aperture"`
	FocusDistance float64   `json:"focus_distance"`
}

// MaterialType enumerates supported material kinds
type MaterialType string

const (
	MaterialLambertian MaterialType = "lambertian"
	MaterialMetal      MaterialType = "metal"
	MaterialDielectric MaterialType = "dielectric"
)

// MaterialDescription describes surface properties. Objects refer to it by ID,
// so one material can be shared by many objects.
type MaterialDescription struct {
	ID     string       `json:"id"`
	Type   MaterialType `json:"type"`
	Albedo core.Vec3    `json:"albedo"` // lambertian and metal
	Fuzz   float64      `json:"fuzz"`   // metal
	IOR    float64      `json:"ior"`    // dielectric
}

// ObjectType enumerates supported geometric primitives
type ObjectType string

const (
	ObjectSphere    ObjectType = "sphere"
	ObjectPlane     ObjectType = "plane"
	ObjectRectangle ObjectType = "rectangle"
)

// ObjectDescription is a single shape in the scene
type ObjectDescription struct {
	Type       ObjectType  `json:"type"`
	MaterialID string      `json:"material_id"`
	Center     core.Vec3   `json:"center"`   // sphere
	Radius     float64     `json:"radius"`   // sphere, negative for hollow
	Point      core.Vec3   `json:"point"`    // plane
	Normal     core.Vec3   `json:"normal"`   // plane and rectangle
	Vertices   []core.Vec3 `json:"vertices"` // rectangle, exactly four
}

// SettingsDescription holds the recommended render settings
type SettingsDescription struct {
	SamplesPerPixel int   `json:"samples_per_pixel"`
	MaxDepth        int   `json:"max_depth"`
	Seed            int64 `json:"seed"`
}

// Description is the JSON form of a scene
type Description struct {
	Name      string                `json:"name"`
	Camera    CameraDescription     `json:"camera"`
	Materials []MaterialDescription `json:"materials"`
	Objects   []ObjectDescription   `json:"objects"`
	Settings  SettingsDescription   `json:"settings"`
}

// Load reads a Scene from a JSON file.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads a JSON scene description and builds the scene
func Decode(r io.Reader) (*Scene, error) {
	var desc Description
	if err := json.NewDecoder(r).Decode(&desc); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return desc.Build()
}

// Save writes a scene description to a JSON file.
func Save(path string, desc *Description) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create scene: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(desc); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	return nil
}

// Build turns the description into a renderable scene
func (d *Description) Build() (*Scene, error) {
	materials := make(map[string]material.Material, len(d.Materials))
	for i, md := range d.Materials {
		if md.ID == "" {
			return nil, fmt.Errorf("%w: material %d has no id", ErrInvalidScene, i)
		}
		if _, exists := materials[md.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate material id %q", ErrInvalidScene, md.ID)
		}
		mat, err := md.build()
		if err != nil {
			return nil, err
		}
		materials[md.ID] = mat
	}

	world := geometry.NewList()
	for i, od := range d.Objects {
		mat, ok := materials[od.MaterialID]
		if !ok {
			return nil, fmt.Errorf("%w: object %d refers to unknown material %q", ErrInvalidScene, i, od.MaterialID)
		}
		shape, err := od.build(mat)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		world.Add(shape)
	}

	cameraConfig := renderer.CameraConfig{
		LookFrom:      d.Camera.LookFrom,
		LookAt:        d.Camera.LookAt,
		Up:            d.Camera.Up,
		VFov:          d.Camera.VFov,
		AspectRatio:   d.Camera.AspectRatio,
		Aperture:      d.Camera.Aperture,
		FocusDistance: d.Camera.FocusDistance,
	}
	if cameraConfig.LookFrom.Equals(cameraConfig.LookAt) {
		return nil, fmt.Errorf("%w: camera look_from equals look_at", ErrInvalidScene)
	}
	if cameraConfig.Up.NearZero() {
		cameraConfig.Up = core.NewVec3(0, 1, 0)
	}
	if cameraConfig.VFov <= 0 {
		cameraConfig.VFov = renderer.DefaultCameraConfig().VFov
	}
	if cameraConfig.AspectRatio <= 0 {
		cameraConfig.AspectRatio = renderer.DefaultCameraConfig().AspectRatio
	}

	options := renderer.DefaultRenderOptions()
	if d.Settings.SamplesPerPixel > 0 {
		options.SamplesPerPixel = d.Settings.SamplesPerPixel
	}
	if d.Settings.MaxDepth > 0 {
		options.MaxDepth = d.Settings.MaxDepth
	}
	if d.Settings.Seed != 0 {
		options.Seed = d.Settings.Seed
	}

	name := d.Name
	if name == "" {
		name = "custom"
	}
	return New(name, cameraConfig, world, options), nil
}

func (md MaterialDescription) build() (material.Material, error) {
	switch md.Type {
	case MaterialLambertian:
		return material.NewLambertian(md.Albedo), nil
	case MaterialMetal:
		return material.NewMetal(md.Albedo, md.Fuzz), nil
	case MaterialDielectric:
		if md.IOR <= 0 {
			return nil, fmt.Errorf("%w: material %q needs a positive ior", ErrInvalidScene, md.ID)
		}
		return material.NewDielectric(md.IOR), nil
	default:
		return nil, fmt.Errorf("%w: material %q has unknown type %q", ErrInvalidScene, md.ID, md.Type)
	}
}

func (od ObjectDescription) build(mat material.Material) (geometry.Shape, error) {
	switch od.Type {
	case ObjectSphere:
		if od.Radius == 0 {
			return nil, fmt.Errorf("%w: sphere radius must be non-zero", ErrInvalidScene)
		}
		return geometry.NewSphere(od.Center, od.Radius, mat), nil
	case ObjectPlane:
		if od.Normal.NearZero() {
			return nil, fmt.Errorf("%w: plane needs a normal", ErrInvalidScene)
		}
		return geometry.NewPlane(od.Point, od.Normal, mat), nil
	case ObjectRectangle:
		if len(od.Vertices) != 4 {
			return nil, fmt.Errorf("%w: rectangle needs 4 vertices, got %d", ErrInvalidScene, len(od.Vertices))
		}
		if od.Normal.NearZero() {
			return nil, fmt.Errorf("%w: rectangle needs a normal", ErrInvalidScene)
		}
		var vertices [4]core.Vec3
		copy(vertices[:], od.Vertices)
		return geometry.NewRectangle(vertices, od.Normal, mat), nil
	default:
		return nil, fmt.Errorf("%w: unknown object type %q", ErrInvalidScene, od.Type)
	}
}
