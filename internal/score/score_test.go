package score

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panocam/internal/camera"
	"panocam/internal/mathutil"
	"panocam/internal/raster"
	"panocam/internal/render"
	"panocam/internal/scene"
)

// fixedRenderer paints the given pixel counts per node index, row-major.
type fixedRenderer struct {
	counts map[int]int
	calls  int
}

func (f *fixedRenderer) Render(_ camera.Camera, w, h int) *raster.IndexImage {
	f.calls++
	img := raster.NewIndexImage(w, h)
	p := 0
	for idx := 0; idx < w*h; idx++ {
		n, ok := f.counts[idx]
		if !ok {
			continue
		}
		for i := 0; i < n && p < len(img.Pix); i++ {
			img.Pix[p] = int32(idx)
			p++
		}
	}
	return img
}

type fixture struct {
	scene *scene.Scene
	room  *scene.Node
	other *scene.Node
	objs  []*scene.Node
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	root := scene.NewNode("House#0")
	room := root.AddChild(scene.NewNode("Room#0_1"))
	other := root.AddChild(scene.NewNode("Room#0_2"))
	f := fixture{room: room, other: other}
	for _, name := range []string{"Model#a", "Model#b", "Model#c"} {
		f.objs = append(f.objs, room.AddChild(scene.NewNode(name)))
	}
	f.objs = append(f.objs, other.AddChild(scene.NewNode("Model#d")))
	room.AddChild(scene.NewNode("Wall#0_1_0"))

	s, err := scene.New(root)
	require.NoError(t, err)
	f.scene = s
	return f
}

func newOracle(s *scene.Scene, r render.Renderer) *Oracle {
	return &Oracle{
		Scene:              s,
		Renderer:           r,
		Width:              10,
		Height:             10,
		MinVisibleObjects:  2,
		MinVisibleFraction: 0.05,
	}
}

func TestIsObject(t *testing.T) {
	root := scene.NewNode("House#0")
	structure := root.AddChild(scene.NewNode("Model#wall")).SetInfo(CategoryKey, "1")
	plain := root.AddChild(scene.NewNode("Model#chair"))
	tagged := root.AddChild(scene.NewNode("Model#sofa")).SetInfo(CategoryKey, "2")
	group := root.AddChild(scene.NewNode("Group")).SetInfo(CategoryKey, "0")
	inheritsStructure := group.AddChild(scene.NewNode("Model#inner"))
	room := root.AddChild(scene.NewNode("Room#1"))
	_, err := scene.New(root)
	require.NoError(t, err)

	assert.False(t, IsObject(structure))
	assert.True(t, IsObject(plain))
	assert.True(t, IsObject(tagged))
	assert.False(t, IsObject(inheritsStructure))
	assert.False(t, IsObject(room))
}

func TestScoreSumsLogRatios(t *testing.T) {
	f := newFixture(t)
	r := &fixedRenderer{counts: map[int]int{
		f.objs[0].Index(): 20, // ratio 4
		f.objs[1].Index(): 10, // ratio 2
		f.objs[2].Index(): 15, // ratio 3
	}}
	o := newOracle(f.scene, r)
	require.Equal(t, 5, o.MinPixelCount())

	got := o.Score(camera.Camera{}, f.room)
	assert.InDelta(t, math.Log(4)+math.Log(2)+math.Log(3), got, 1e-12)
}

func TestScoreForcedToZeroWithTooFewObjects(t *testing.T) {
	f := newFixture(t)
	r := &fixedRenderer{counts: map[int]int{
		f.objs[0].Index(): 60,
		f.objs[1].Index(): 30,
	}}
	o := newOracle(f.scene, r)
	assert.Zero(t, o.Score(camera.Camera{}, f.room))

	o.MinVisibleObjects = 1
	assert.InDelta(t, math.Log(12)+math.Log(6), o.Score(camera.Camera{}, f.room), 1e-12)
}

func TestScoreThresholdIsStrict(t *testing.T) {
	f := newFixture(t)
	r := &fixedRenderer{counts: map[int]int{
		f.objs[0].Index(): 5, // == threshold, does not qualify
		f.objs[1].Index(): 6,
		f.objs[2].Index(): 7,
	}}
	o := newOracle(f.scene, r)
	assert.Zero(t, o.Score(camera.Camera{}, f.room))

	o.MinVisibleObjects = 1
	// Both qualify but 6/5 and 7/5 truncate to 1.
	assert.Zero(t, o.Score(camera.Camera{}, f.room))
}

func TestScoreRoomRestriction(t *testing.T) {
	f := newFixture(t)
	r := &fixedRenderer{counts: map[int]int{
		f.objs[0].Index(): 20,
		f.objs[1].Index(): 20,
		f.objs[3].Index(): 20, // other room
	}}
	o := newOracle(f.scene, r)
	assert.Zero(t, o.Score(camera.Camera{}, f.room))
	assert.InDelta(t, 3*math.Log(4), o.Score(camera.Camera{}, nil), 1e-12)
}

func TestScoreZeroThreshold(t *testing.T) {
	f := newFixture(t)
	r := &fixedRenderer{counts: map[int]int{f.objs[0].Index(): 50}}
	o := newOracle(f.scene, r)
	o.MinVisibleFraction = 0.001
	assert.Zero(t, o.Score(camera.Camera{}, nil))
	assert.Zero(t, r.calls, "nothing rendered when the pixel threshold is zero")
}

func TestScoreDeterministicWithRenderer(t *testing.T) {
	root := scene.NewNode("House#0")
	room := root.AddChild(scene.NewNode("Room#0_1"))
	for i, z := range []float64{-1.5, 0, 1.5} {
		room.AddChild(scene.NewNode("Model#" + string(rune('a'+i)))).
			AddBox(mathutil.Vec3{3, -0.5, z - 0.5}, mathutil.Vec3{4, 0.5, z + 0.5})
	}
	s, err := scene.New(root)
	require.NoError(t, err)

	xfov, yfov := camera.FOV(64, 48, 32)
	cam := camera.LookDir(mathutil.Vec3{}, mathutil.PosX, xfov, yfov, 0.01, 100)

	for _, backend := range []string{render.BackendRaster, render.BackendRaycast} {
		r, err := render.New(backend, s)
		require.NoError(t, err)
		o := &Oracle{Scene: s, Renderer: r, Width: 64, Height: 48, MinVisibleObjects: 2, MinVisibleFraction: 0.01}

		first := o.Score(cam, room)
		assert.Positive(t, first, backend)
		assert.Equal(t, first, o.Score(cam, room), backend)
	}
}
