package maze

import "github.com/zyedidia/generic/mapset"

// Stats summarises the shape of a carved maze.
type Stats struct {
	Reachable   int `json:"reachable" bson:"reachable"`     // Cells connected to the entry through open walls.
	Passages    int `json:"passages" bson:"passages"`       // Open walls between reachable cells, each counted once.
	DeadEnds    int `json:"dead_ends" bson:"deadEnds"`      // Reachable cells with exactly one open side.
	Loops       int `json:"loops" bson:"loops"`             // Independent cycles; zero for a perfect maze.
	Blocked     int `json:"blocked" bson:"blocked"`         // Cells covered by the mask.
	Unreachable int `json:"unreachable" bson:"unreachable"` // Unblocked cells never connected to the entry.
}

// Analyze walks the maze from entry and counts its passages, dead ends and loops.
func Analyze(m *Maze, entry CellPosition, blocked mapset.Set[CellPosition]) Stats {
	stats := Stats{Blocked: blocked.Size()}
	if !m.InBound(entry) {
		stats.Unreachable = m.Width*m.Height - stats.Blocked
		return stats
	}

	visited := mapset.New[CellPosition]()
	visited.Put(entry)
	stack := []CellPosition{entry}

	for len(stack) > 0 {
		cell := pop(&stack)
		stats.Reachable++

		if m.OpenWallCount(cell) == 1 {
			stats.DeadEnds++
		}

		for _, d := range Directions {
			if !m.CanMove(cell, d) {
				continue
			}
			// East and south cover every passage exactly once.
			if d == East || d == South {
				stats.Passages++
			}
			next := cell.Step(d)
			if !visited.Has(next) {
				visited.Put(next)
				stack = append(stack, next)
			}
		}
	}

	stats.Loops = stats.Passages - stats.Reachable + 1
	stats.Unreachable = m.Width*m.Height - stats.Blocked - stats.Reachable
	return stats
}

// pop removes and returns the last element of a stack of CellPositions.
func pop(s *[]CellPosition) CellPosition {
	lastIndex := len(*s) - 1
	popped := (*s)[lastIndex]
	*s = (*s)[:lastIndex]
	return popped
}
