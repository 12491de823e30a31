package maze

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

// huntAndKill carves a spanning tree by alternating random walks (kill) with
// row-major scans for an unvisited cell bordering the carved region (hunt).
func huntAndKill(m *Maze, entry CellPosition, blocked mapset.Set[CellPosition], rng *rand.Rand) error {
	m.Cell(entry).Visited = true

	current := entry
	for {
		var err error
		if current, err = kill(m, current, blocked, rng); err != nil {
			return err
		}

		next, found, err := hunt(m, blocked, rng)
		if err != nil {
			return err
		}
		if !found {
			return nil
		}
		current = next
	}
}

// kill walks randomly from pos through unvisited cells, opening walls as it goes,
// and returns the cell where it got stuck.
func kill(m *Maze, pos CellPosition, blocked mapset.Set[CellPosition], rng *rand.Rand) (CellPosition, error) {
	candidates := make([]Move, 0, len(Directions))
	for {
		candidates = candidates[:0]
		for _, mv := range m.neighbors(pos) {
			if !blocked.Has(mv.To) && !m.Cell(mv.To).Visited {
				candidates = append(candidates, mv)
			}
		}

		if len(candidates) == 0 {
			return pos, nil
		}

		mv := candidates[rng.Intn(len(candidates))]
		if err := m.openMove(mv); err != nil {
			return pos, err
		}
		m.Cell(mv.To).Visited = true
		pos = mv.To
	}
}

// hunt finds the first unvisited, unblocked cell in row-major order that touches a
// visited cell, links it to one of those at random and returns it.
func hunt(m *Maze, blocked mapset.Set[CellPosition], rng *rand.Rand) (CellPosition, bool, error) {
	candidates := make([]Move, 0, len(Directions))
	for row := 0; row < m.Height; row++ {
		for col := 0; col < m.Width; col++ {
			pos := CellPosition{Row: row, Col: col}
			if m.Cell(pos).Visited || blocked.Has(pos) {
				continue
			}

			candidates = candidates[:0]
			for _, mv := range m.neighbors(pos) {
				if m.Cell(mv.To).Visited {
					candidates = append(candidates, mv)
				}
			}
			if len(candidates) == 0 {
				continue
			}

			mv := candidates[rng.Intn(len(candidates))]
			if err := m.openMove(mv); err != nil {
				return pos, false, err
			}
			m.Cell(pos).Visited = true
			return pos, true, nil
		}
	}

	return CellPosition{}, false, nil
}
