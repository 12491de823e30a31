package maze

import (
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// Solve returns the shortest sequence of moves from one cell to another through
// open walls. The second result is false when to is unreachable.
func Solve(m *Maze, from, to CellPosition) ([]Direction, bool) {
	if !m.InBound(from) || !m.InBound(to) {
		return nil, false
	}

	type step struct {
		prev CellPosition
		dir  Direction
	}

	cameFrom := make(map[CellPosition]step)
	visited := mapset.New[CellPosition]()
	visited.Put(from)
	queue := []CellPosition{from}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		if curr == to {
			var path []Direction
			for curr != from {
				s := cameFrom[curr]
				path = append(path, s.dir)
				curr = s.prev
			}
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path, true
		}

		for _, d := range Directions {
			if !m.CanMove(curr, d) {
				continue
			}
			next := curr.Step(d)
			if visited.Has(next) {
				continue
			}
			visited.Put(next)
			cameFrom[next] = step{prev: curr, dir: d}
			queue = append(queue, next)
		}
	}

	return nil, false
}

// PathString renders a path as direction letters, e.g. "NNES".
func PathString(path []Direction) string {
	var b strings.Builder
	b.Grow(len(path))
	for _, d := range path {
		b.WriteByte(d.Letter())
	}
	return b.String()
}

// ParsePath is the inverse of PathString.
func ParsePath(s string) ([]Direction, bool) {
	path := make([]Direction, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'N':
			path = append(path, North)
		case 'E':
			path = append(path, East)
		case 'S':
			path = append(path, South)
		case 'W':
			path = append(path, West)
		default:
			return nil, false
		}
	}
	return path, true
}
