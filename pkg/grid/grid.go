package grid

// GetGridCoords converts a linear cell index into column and row for a grid
// that is cols cells wide.
func GetGridCoords(index, cols int) (x, y int) {
	return index % cols, index / cols
}

// GetIndex is the inverse of GetGridCoords.
func GetIndex(x, y, cols int) int {
	return y*cols + x
}

// PixelOrigin returns the top-left pixel of cell (x, y) for cells of the
// given size.
func PixelOrigin(x, y, cellW, cellH int) (px, py int) {
	return x * cellW, y * cellH
}
