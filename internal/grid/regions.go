package grid

// Regions labels the 8-connected groups of cells for which keep returns
// true. labels holds a region id per cell (-1 for cells not kept) and
// sizes holds the cell count of each region, in scan order.
func (g *Grid) Regions(keep func(float64) bool) (labels []int, sizes []int) {
	w, h := g.xres, g.yres
	labels = make([]int, w*h)
	for i := range labels {
		labels[i] = -1
	}

	dx := [8]int{-1, 0, 1, -1, 1, -1, 0, 1}
	dy := [8]int{-1, -1, -1, 0, 0, 1, 1, 1}
	queue := make([]int, 0, 256)

	for start, v := range g.values {
		if labels[start] >= 0 || !keep(v) {
			continue
		}
		id := len(sizes)
		labels[start] = id
		queue = append(queue[:0], start)
		size := 0

		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]
			size++

			cx, cy := curr%w, curr/w
			for d := 0; d < 8; d++ {
				nx, ny := cx+dx[d], cy+dy[d]
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				ni := ny*w + nx
				if labels[ni] < 0 && keep(g.values[ni]) {
					labels[ni] = id
					queue = append(queue, ni)
				}
			}
		}
		sizes = append(sizes, size)
	}
	return labels, sizes
}
