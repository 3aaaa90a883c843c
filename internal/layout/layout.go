// Package layout computes the thumbnail grid geometry.
package layout

import "math"

const (
	// MinThumbnailWidth is the narrowest a grid column may get.
	MinThumbnailWidth = 300
	// RowHeight is the minimum height of a grid row.
	RowHeight = 300
	// Margin around the grid, inside and outside the window frame.
	Margin = 20
)

// Columns returns how many columns of at least minWidth fit in width.
// It is never less than 1 and never more than math.MaxInt32.
func Columns(width, minWidth float64) int {
	if minWidth <= 0 || math.IsNaN(width) || math.IsNaN(minWidth) || width < minWidth {
		return 1
	}
	if math.IsInf(width, 1) {
		return 1
	}

	// converting an out of range float is implementation-defined
	if q := width / minWidth; q < math.MaxInt32 {
		return int(q)
	}
	return math.MaxInt32
}

// CellWidth is the width each of columns gets out of width.
func CellWidth(width float64, columns int) int {
	if columns < 1 {
		columns = 1
	}
	if width <= 0 || math.IsNaN(width) {
		return 0
	}
	if w := width / float64(columns); w < math.MaxInt32 {
		return int(w)
	}
	return math.MaxInt32
}

// Padding between a thumbnail and the edge of its cell.
const Padding = 12

// ThumbnailSize is the edge of the square box a thumbnail is fitted into
// for a cell of the given width. It stays between 64 and RowHeight.
func ThumbnailSize(cellWidth int) int {
	size := cellWidth - 2*Padding
	if size > RowHeight {
		size = RowHeight
	}
	if size < 64 {
		size = 64
	}
	return size
}
