// Package render produces node-index images of a scene from a camera.
// Both backends report the same semantics: the scene index of the nearest
// node surface within [Near, Far] along each pixel's centre ray, or
// raster.Unknown.
package render

import (
	"fmt"

	"panocam/internal/camera"
	"panocam/internal/raster"
	"panocam/internal/scene"
)

// Backend names accepted by New.
const (
	BackendRaster  = "raster"
	BackendRaycast = "raycast"
)

// Renderer renders a node-index image. Implementations are synchronous
// and must not retain the returned image.
type Renderer interface {
	Render(cam camera.Camera, width, height int) *raster.IndexImage
}

// New returns the renderer for a backend name.
func New(backend string, s *scene.Scene) (Renderer, error) {
	switch backend {
	case BackendRaster, "":
		return NewRasterizer(s), nil
	case BackendRaycast:
		return NewRayCaster(s), nil
	default:
		return nil, fmt.Errorf("render: unknown backend %q", backend)
	}
}
