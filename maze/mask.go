package maze

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

const (
	minMaskDimension  = 7 // Below this on either axis no mask is placed.
	smallMaskMaxWidth = 8 // Widths up to this use the 5x5 emblem.
)

// Emblem offsets are (column, row) deltas from the grid centre.
var (
	emblem7x5 = []CellPosition{
		{Col: -3, Row: -2}, {Col: -1, Row: -2}, {Col: 1, Row: -2}, {Col: 2, Row: -2}, {Col: 3, Row: -2},
		{Col: -3, Row: -1}, {Col: -1, Row: -1}, {Col: 3, Row: -1},
		{Col: -3, Row: 0}, {Col: -2, Row: 0}, {Col: -1, Row: 0}, {Col: 1, Row: 0}, {Col: 2, Row: 0}, {Col: 3, Row: 0},
		{Col: -1, Row: 1}, {Col: 1, Row: 1},
		{Col: -1, Row: 2}, {Col: 1, Row: 2}, {Col: 2, Row: 2}, {Col: 3, Row: 2},
	}

	emblem5x5 = []CellPosition{
		{Col: -2, Row: -2}, {Col: 1, Row: -2}, {Col: 2, Row: -2},
		{Col: -2, Row: -1}, {Col: 2, Row: -1},
		{Col: -2, Row: 0}, {Col: -1, Row: 0}, {Col: 1, Row: 0}, {Col: 2, Row: 0},
		{Col: -1, Row: 1}, {Col: 1, Row: 1},
		{Col: -1, Row: 2}, {Col: 1, Row: 2}, {Col: 2, Row: 2},
	}
)

// ComputeMask returns the cells covered by the "42" emblem centred in a width x height grid.
// The set is empty when the grid is smaller than 7 cells on either axis.
func ComputeMask(width, height int) (mapset.Set[CellPosition], error) {
	if width <= 0 || height <= 0 {
		return mapset.Set[CellPosition]{}, fmt.Errorf("%w: width and height must be positive to place the mask, got %dx%d", ErrConfiguration, width, height)
	}

	blocked := mapset.New[CellPosition]()
	if width < minMaskDimension || height < minMaskDimension {
		return blocked, nil
	}

	pattern := emblem7x5
	if width <= smallMaskMaxWidth {
		pattern = emblem5x5
	}

	center := CellPosition{Row: height / 2, Col: width / 2}
	for _, off := range pattern {
		pos := CellPosition{Row: center.Row + off.Row, Col: center.Col + off.Col}
		if pos.Row >= 0 && pos.Row < height && pos.Col >= 0 && pos.Col < width {
			blocked.Put(pos)
		}
	}

	return blocked, nil
}
