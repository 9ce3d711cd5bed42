// Package debugimg turns desirability fields and node-index images into
// viewable images and writes them as WebP or TGA.
package debugimg

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"

	"panocam/internal/grid"
	"panocam/internal/raster"
)

// Supported output formats.
const (
	FormatWebP = "webp"
	FormatTGA  = "tga"
)

// Field renders g as greyscale, normalised by its maximum. Blocked cells are
// black. Image x follows grid x and image y follows grid y.
func Field(g *grid.Grid) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.XRes(), g.YRes()))
	_, _, peak, ok := g.MaxCell()
	if !ok {
		return img
	}
	for y := 0; y < g.YRes(); y++ {
		for x := 0; x < g.XRes(); x++ {
			v := g.Value(x, y)
			if v <= 0 {
				continue
			}
			img.Pix[img.PixOffset(x, y)] = uint8(v/peak*254 + 1.5)
		}
	}
	return img
}

// Index renders a node-index image in false colour. Unknown pixels are
// black; every node index maps to a fixed opaque colour.
func Index(im *raster.IndexImage) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, im.Width, im.Height))
	for y := 0; y < im.Height; y++ {
		for x := 0; x < im.Width; x++ {
			idx := im.At(x, y)
			if idx == raster.Unknown {
				img.SetNRGBA(x, y, color.NRGBA{A: 255})
				continue
			}
			img.SetNRGBA(x, y, IndexColor(idx))
		}
	}
	return img
}

// IndexColor hashes a node index to a bright colour.
func IndexColor(idx int32) color.NRGBA {
	h := uint32(idx)*2654435761 + 0x9e3779b9
	return color.NRGBA{
		R: uint8(h>>24) | 0x40,
		G: uint8(h>>16) | 0x40,
		B: uint8(h>>8) | 0x40,
		A: 255,
	}
}

// Upscale enlarges img by an integer factor with nearest-neighbour sampling
// so individual cells stay visible.
func Upscale(img image.Image, scale int) image.Image {
	if scale <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case FormatWebP, "":
		return nativewebp.Encode(w, img, nil)
	case FormatTGA:
		return tga.Encode(w, img)
	default:
		return fmt.Errorf("debugimg: unknown format %q", format)
	}
}

// Save upscales img and writes it to path, creating parent directories.
func Save(path string, img image.Image, format string, scale int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("debugimg: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("debugimg: %w", err)
	}
	defer f.Close()

	if err := Encode(f, Upscale(img, scale), format); err != nil {
		return fmt.Errorf("debugimg: encode %s: %w", path, err)
	}
	return f.Close()
}

// FileName builds a file name for a room-level dump, replacing characters
// that are awkward in paths.
func FileName(room, suffix, format string) string {
	if format == "" {
		format = FormatWebP
	}
	safe := make([]rune, 0, len(room))
	for _, r := range room {
		switch r {
		case '#', '/', '\\', ':', ' ':
			safe = append(safe, '_')
		default:
			safe = append(safe, r)
		}
	}
	return fmt.Sprintf("%s_%s.%s", string(safe), suffix, format)
}
