package raster

import "math"

// Unknown marks a pixel where no scene node is visible.
const Unknown int32 = -1

// IndexImage is a node-index image: one scene node index per pixel, or
// Unknown. Row 0 is the top row.
type IndexImage struct {
	Width  int
	Height int
	Pix    []int32 // len = W*H
}

// NewIndexImage allocates an image filled with Unknown.
func NewIndexImage(w, h int) *IndexImage {
	pix := make([]int32, w*h)
	for i := range pix {
		pix[i] = Unknown
	}
	return &IndexImage{Width: w, Height: h, Pix: pix}
}

func (im *IndexImage) At(x, y int) int32 {
	return im.Pix[y*im.Width+x]
}

func (im *IndexImage) Set(x, y int, v int32) {
	im.Pix[y*im.Width+x] = v
}

// Counts tallies pixels per node index into a slice of length n. Unknown
// and out-of-range indices are ignored.
func (im *IndexImage) Counts(n int) []int {
	counts := make([]int, n)
	for _, v := range im.Pix {
		if v < 0 || int(v) >= n {
			continue
		}
		counts[v]++
	}
	return counts
}

// FrameBuffer holds the rendering target as flat slices for cache locality.
// ZBuf stores inverse depth, so larger is nearer; it starts at -inf.
type FrameBuffer struct {
	Width  int
	Height int
	Index  []int32   // node index per pixel, len = W*H
	ZBuf   []float64 // 1/depth per pixel, len = W*H
}

// NewFrameBuffer allocates an Unknown index buffer and -inf z-buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	n := w * h
	zbuf := make([]float64, n)
	index := make([]int32, n)
	for i := range zbuf {
		zbuf[i] = math.Inf(-1)
		index[i] = Unknown
	}
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Index:  index,
		ZBuf:   zbuf,
	}
}

// Image returns the index channel as an IndexImage sharing the buffer.
func (fb *FrameBuffer) Image() *IndexImage {
	return &IndexImage{Width: fb.Width, Height: fb.Height, Pix: fb.Index}
}
