// Package placement runs the greedy panorama search over every room of a
// scene.
package placement

import (
	"errors"
	"math/rand"

	"github.com/rs/zerolog"

	"panocam/internal/camera"
	"panocam/internal/config"
	"panocam/internal/grid"
	"panocam/internal/mask"
	"panocam/internal/mathutil"
	"panocam/internal/scene"
	"panocam/internal/score"
)

const (
	// RoomPrefix marks nodes processed as rooms.
	RoomPrefix = "Room#"

	// MinPositiveViews is the number of positively scored directions a
	// panorama needs to be kept.
	MinPositiveViews = 2

	// RejectRadiusFraction scales the cleared disk after a rejected panorama.
	RejectRadiusFraction = 0.2

	// Clip planes relative to the scene's diagonal radius.
	NearFactor = 0.01
	FarFactor  = 100.0
)

// Reasons reported for skipped rooms.
const (
	ReasonEmpty    = "empty bounding box"
	ReasonTooShort = "shorter than eye height"
	ReasonTooSmall = "too small for obstacle clearance"
)

// RoomResult summarises the search in one room.
type RoomResult struct {
	Room       string
	Skipped    bool
	Reason     string
	Panoramas  int
	Rejected   int
	Iterations int
	// FreeRegions counts the disconnected placeable areas of the initial
	// field.
	FreeRegions int
	Cameras     []camera.Camera
}

// Placer holds everything the search needs. Rand drives viewpoint jitter;
// when nil a source seeded from Config.Seed is created on first use.
type Placer struct {
	Scene  *scene.Scene
	Oracle *score.Oracle
	Config config.Config
	Rand   *rand.Rand
	Log    zerolog.Logger

	// OnField, when set, receives each room's field right after it is built.
	OnField func(room *scene.Node, field *grid.Grid)

	// OnIteration, when set, is called after the field update of every
	// iteration.
	OnIteration func(room *scene.Node, field *grid.Grid)
}

// IsRoom reports whether n is a room node.
func IsRoom(n *scene.Node) bool {
	return n.HasPrefix(RoomPrefix)
}

// PlaceScene searches every room in scene order and returns per-room
// results together with all accepted cameras.
func (p *Placer) PlaceScene() ([]RoomResult, []camera.Camera) {
	var results []RoomResult
	var cams []camera.Camera
	for _, n := range p.Scene.Nodes() {
		if !IsRoom(n) {
			continue
		}
		r := p.PlaceRoom(n)
		results = append(results, r)
		cams = append(cams, r.Cameras...)
	}

	skipped := 0
	for _, r := range results {
		if r.Skipped {
			skipped++
		}
	}
	p.Log.Info().
		Int("rooms", len(results)).
		Int("skipped", skipped).
		Int("cameras", len(cams)).
		Msg("placement done")
	return results, cams
}

// PlaceRoom runs the search inside one room until its field is exhausted.
func (p *Placer) PlaceRoom(room *scene.Node) RoomResult {
	res := RoomResult{Room: room.Name()}
	cfg := p.Config

	box := room.BBox()
	switch {
	case box.IsEmpty():
		return p.skip(res, ReasonEmpty)
	case box.Size()[1] < cfg.EyeHeight:
		return p.skip(res, ReasonTooShort)
	}

	field, err := mask.Build(room, mask.Params{MinObstacleDistance: cfg.MinObstacleDistance})
	if err != nil {
		if errors.Is(err, mask.ErrRoomTooSmall) {
			return p.skip(res, ReasonTooSmall)
		}
		return p.skip(res, err.Error())
	}
	_, regions := field.Regions(func(v float64) bool { return v > 0 })
	res.FreeRegions = len(regions)
	if p.OnField != nil {
		p.OnField(room, field)
	}

	rng := p.source()
	xfov, yfov := camera.FOV(cfg.Width, cfg.Height, cfg.FocalLength)
	radius := p.Scene.DiagonalRadius()
	near, far := NearFactor*radius, FarFactor*radius
	spacing := cfg.MinPanoramaSpacing * field.WorldToGridScale()
	cell := field.GridToWorldScale()

	for {
		ix, iy, _, ok := field.MaxCell()
		if !ok {
			break
		}
		res.Iterations++

		// Field coordinates are (Z, X).
		pos := field.WorldPosition(ix, iy)
		pos[0] += rng.Float64() * cell
		pos[1] += rng.Float64() * cell
		eye := mathutil.Vec3{pos[1], box.Min[1] + cfg.EyeHeight, pos[0]}

		cams := camera.NewPanorama(eye, cfg.DirectionsPerPanorama, 0, cfg.DownwardTilt, xfov, yfov, near, far)
		positive := 0
		for d := range cams {
			cams[d].Name = camera.PanoramaName(room.Name(), res.Panoramas, d)
			cams[d].Score = p.Oracle.Score(cams[d], room)
			if cams[d].Score > 0 {
				positive++
			}
		}

		if positive >= MinPositiveViews {
			res.Cameras = append(res.Cameras, cams...)
			res.Panoramas++
			field.FillCircle(ix, iy, spacing, 0)
			p.Log.Debug().
				Str("room", res.Room).
				Int("panorama", res.Panoramas-1).
				Int("positive", positive).
				Floats64("eye", eye[:]).
				Msg("panorama accepted")
		} else {
			res.Rejected++
			field.FillCircle(ix, iy, RejectRadiusFraction*spacing, 0)
			p.Log.Debug().
				Str("room", res.Room).
				Int("positive", positive).
				Floats64("eye", eye[:]).
				Msg("panorama rejected")
		}

		if p.OnIteration != nil {
			p.OnIteration(room, field)
		}
	}

	p.Log.Info().
		Str("room", res.Room).
		Int("panoramas", res.Panoramas).
		Int("rejected", res.Rejected).
		Int("iterations", res.Iterations).
		Int("free_regions", res.FreeRegions).
		Msg("room done")
	return res
}

func (p *Placer) skip(res RoomResult, reason string) RoomResult {
	res.Skipped = true
	res.Reason = reason
	p.Log.Info().Str("room", res.Room).Str("reason", reason).Msg("skipping room")
	return res
}

func (p *Placer) source() *rand.Rand {
	if p.Rand == nil {
		p.Rand = rand.New(rand.NewSource(p.Config.Seed))
	}
	return p.Rand
}
