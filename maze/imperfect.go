package maze

import (
	"fmt"
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

// DefaultLoopProbability is the chance that a dead end gets an extra opening.
const DefaultLoopProbability = 0.5

// MakeImperfect adds loops to a perfect maze. In one row-major sweep every
// unblocked dead end gets at most one extra opening: the first neighbour (N, E,
// S, W) that is in bounds, unblocked and still walled off on both sides is
// opened with the given probability. Cells whose degree changes during the
// sweep are not revisited.
func MakeImperfect(m *Maze, blocked mapset.Set[CellPosition], probability float64, rng *rand.Rand) error {
	if probability < 0 || probability > 1 {
		return fmt.Errorf("%w: loop probability %v outside [0,1]", ErrConfiguration, probability)
	}

	for row := 0; row < m.Height; row++ {
		for col := 0; col < m.Width; col++ {
			pos := CellPosition{Row: row, Col: col}
			if blocked.Has(pos) || m.OpenWallCount(pos) != 1 {
				continue
			}

			for _, d := range Directions {
				next, ok := m.Neighbor(pos, d)
				if !ok || blocked.Has(next) {
					continue
				}
				if !m.HasWall(pos, d) || !m.HasWall(next, d.Opposite()) {
					continue
				}

				if rng.Float64() < probability {
					if err := m.OpenWall(pos, next); err != nil {
						return err
					}
				}
				break
			}
		}
	}

	return nil
}
