package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/integrator"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractMaterialInfo extracts detailed material information with type assertions
func (s *Server) extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo extracts geometry information into the properties map
func (s *Server) extractGeometryInfo(shape geometry.Shape, properties map[string]interface{}) string {
	switch g := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(g.Center)
		properties["radius"] = g.Radius
		return "sphere"

	case *geometry.Plane:
		properties["point"] = vecArray(g.Point)
		properties["normal"] = vecArray(g.Normal)
		return "plane"

	case *geometry.Rectangle:
		vertices := make([][3]float64, len(g.Vertices))
		for i, v := range g.Vertices {
			vertices[i] = vecArray(v)
		}
		properties["vertices"] = vertices
		properties["normal"] = vecArray(g.Normal)
		return "rectangle"

	default:
		return "unknown"
	}
}

// inspectPixel traces a ray through the center of pixel (x, y) and reports the nearest shape.
// Row 0 is the top of the image.
func (s *Server) inspectPixel(sc *scene.Scene, width, height, x, y int) InspectResponse {
	u := (float64(x) + 0.5) / float64(width)
	v := (float64(height-1-y) + 0.5) / float64(height)
	ray := sc.Camera.GetRay(u, v, core.NewSeededSampler(0))

	var closestShape geometry.Shape
	var closestHit material.HitRecord
	closest := math.Inf(1)
	for _, shape := range sc.World.Shapes {
		if hit, ok := shape.Hit(ray, integrator.ShadowAcneEpsilon, closest); ok {
			closest = hit.T
			closestHit = hit
			closestShape = shape
		}
	}

	if closestShape == nil {
		return InspectResponse{Hit: false}
	}

	materialType, properties := s.extractMaterialInfo(closestHit.Material)
	geometryType := s.extractGeometryInfo(closestShape, properties)

	return InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecArray(closestHit.Point),
		Normal:       vecArray(closestHit.Normal),
		Distance:     closestHit.T,
		FrontFace:    closestHit.FrontFace,
		Properties:   properties,
	}
}

// handleInspect reports the object under a pixel of a scene render
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	setup, err := prepareRender(req)
	if err != nil {
		writeJSONError(w, statusForError(err), err.Error())
		return
	}

	values := r.URL.Query()
	x, err := parseIntParam(values, "x", -1, 0, setup.width-1)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	y, err := parseIntParam(values, "y", -1, 0, setup.height-1)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if x < 0 || y < 0 {
		writeJSONError(w, http.StatusBadRequest, "x and y are required")
		return
	}

	writeJSON(w, http.StatusOK, s.inspectPixel(setup.scene, setup.width, setup.height, x, y))
}
