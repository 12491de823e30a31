package maze

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

// dfs carves a spanning tree with a randomized depth-first backtracker.
// Cells cut off from entry by the blocked set stay unvisited.
func dfs(m *Maze, entry CellPosition, blocked mapset.Set[CellPosition], rng *rand.Rand) error {
	stack := []CellPosition{entry}
	m.Cell(entry).Visited = true

	dirs := Directions
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		rng.Shuffle(len(dirs), func(i, j int) {
			dirs[i], dirs[j] = dirs[j], dirs[i]
		})

		moved := false
		for _, d := range dirs {
			next, ok := m.Neighbor(top, d)
			if !ok || blocked.Has(next) || m.Cell(next).Visited {
				continue
			}
			if err := m.OpenWall(top, next); err != nil {
				return err
			}
			m.Cell(next).Visited = true
			stack = append(stack, next)
			moved = true
			break
		}

		if !moved {
			stack = stack[:len(stack)-1]
		}
	}

	return nil
}
