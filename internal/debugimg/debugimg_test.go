package debugimg

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/webp"

	"panocam/internal/grid"
	"panocam/internal/mathutil"
	"panocam/internal/raster"
)

func testGrid() *grid.Grid {
	g := grid.New(4, 3, grid.Box2{Max: mathutil.Vec2{3, 2}})
	g.SetValue(1, 1, 2)
	g.SetValue(2, 1, 4)
	return g
}

func TestField(t *testing.T) {
	img := Field(testGrid())
	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())
	assert.Equal(t, uint8(0), img.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(255), img.GrayAt(2, 1).Y)
	assert.Greater(t, img.GrayAt(1, 1).Y, uint8(0))
	assert.Less(t, img.GrayAt(1, 1).Y, uint8(255))
}

func TestFieldAllBlocked(t *testing.T) {
	g := grid.New(2, 2, grid.Box2{Max: mathutil.Vec2{1, 1}})
	img := Field(g)
	for _, p := range img.Pix {
		assert.Zero(t, p)
	}
}

func TestIndex(t *testing.T) {
	im := raster.NewIndexImage(2, 1)
	im.Set(1, 0, 7)
	img := Index(im)
	assert.Equal(t, color.NRGBA{A: 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, IndexColor(7), img.NRGBAAt(1, 0))
	assert.NotEqual(t, IndexColor(7), IndexColor(8))
}

func TestUpscale(t *testing.T) {
	up := Upscale(Field(testGrid()), 3)
	assert.Equal(t, image.Rect(0, 0, 12, 9), up.Bounds())
	r, _, _, _ := up.At(7, 4).RGBA()
	assert.Equal(t, uint32(0xffff), r)

	same := Field(testGrid())
	assert.Same(t, same, Upscale(same, 1))
}

func TestSaveWebP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "field.webp")
	require.NoError(t, Save(path, Field(testGrid()), FormatWebP, 2))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := webp.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Width)
	assert.Equal(t, 6, cfg.Height)
}

func TestEncodeTGA(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Field(testGrid()), FormatTGA))

	img, err := tga.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())
}

func TestEncodeUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Encode(&buf, Field(testGrid()), "bmp"))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Room_0_1_field.webp", FileName("Room#0_1", "field", ""))
	assert.Equal(t, "Room_0_1_field.tga", FileName("Room#0_1", "field", FormatTGA))
}
