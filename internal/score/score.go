// Package score rates a camera pose by how well it covers scene objects.
package score

import (
	"math"

	"panocam/internal/camera"
	"panocam/internal/render"
	"panocam/internal/scene"
)

const (
	// ObjectPrefix marks nodes that are candidate objects.
	ObjectPrefix = "Model#"

	// CategoryKey is the inherited info key carrying the structural class.
	CategoryKey = "empty_struct_obj"

	// ObjectCategory is the CategoryKey value for regular objects; other
	// values mark structure (walls, floors) or empty nodes.
	ObjectCategory = "2"
)

// IsObject reports whether a node is scored as an object: its name carries
// ObjectPrefix and, when an inherited category is present, it is ObjectCategory.
func IsObject(n *scene.Node) bool {
	if !n.HasPrefix(ObjectPrefix) {
		return false
	}
	if cat, ok := n.InheritedInfo(CategoryKey); ok && cat != ObjectCategory {
		return false
	}
	return true
}

// Oracle renders node-index images and converts them into coverage scores.
// For a fixed scene, renderer, pose and resolution the score is exact and
// repeatable.
type Oracle struct {
	Scene    *scene.Scene
	Renderer render.Renderer

	Width  int
	Height int

	// MinVisibleObjects: a view needs strictly more qualifying objects
	// than this to score above zero.
	MinVisibleObjects int

	// MinVisibleFraction of the image an object must exceed to qualify.
	MinVisibleFraction float64
}

// MinPixelCount returns the per-object pixel threshold.
func (o *Oracle) MinPixelCount() int {
	return int(o.MinVisibleFraction * float64(o.Width*o.Height))
}

// Tally renders cam and returns pixel counts indexed by scene node.
func (o *Oracle) Tally(cam camera.Camera) []int {
	img := o.Renderer.Render(cam, o.Width, o.Height)
	return img.Counts(o.Scene.NNodes())
}

// Score returns the coverage score of cam. When room is non-nil only
// objects under room are counted. The result is 0 when fewer than
// MinVisibleObjects+1 objects qualify.
func (o *Oracle) Score(cam camera.Camera, room *scene.Node) float64 {
	if o.Width*o.Height == 0 {
		return 0
	}
	minPixels := o.MinPixelCount()
	if minPixels == 0 {
		return 0
	}
	return o.scoreCounts(o.Tally(cam), room, minPixels)
}

func (o *Oracle) scoreCounts(counts []int, room *scene.Node, minPixels int) float64 {
	sum := 0.0
	visible := 0
	for i, n := range o.Scene.Nodes() {
		if !IsObject(n) {
			continue
		}
		if room != nil && !n.IsDescendantOf(room) {
			continue
		}
		if counts[i] <= minPixels {
			continue
		}
		// Integer ratio: an object just over the threshold adds ln(1) = 0.
		sum += math.Log(float64(counts[i] / minPixels))
		visible++
	}
	if visible <= o.MinVisibleObjects {
		return 0
	}
	return sum
}
