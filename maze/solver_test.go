package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolve(t *testing.T) {
	for _, algo := range algorithms {
		for _, perfect := range []bool{true, false} {
			res, err := Generate(Config{
				Width:     15,
				Height:    11,
				Entry:     Point{X: 0, Y: 0},
				Exit:      Point{X: 14, Y: 10},
				Seed:      seedOf(11),
				Perfect:   perfect,
				Algorithm: algo,
			})
			require.NoError(t, err)

			from, to := res.Entry.Position(), res.Exit.Position()
			path, ok := Solve(res.Maze, from, to)
			require.True(t, ok)
			assert.GreaterOrEqual(t, len(path), 14+10)

			pos := from
			for _, d := range path {
				require.True(t, res.Maze.CanMove(pos, d), "path crosses a wall at %v going %v", pos, d)
				pos = pos.Step(d)
			}
			assert.Equal(t, to, pos)
		}
	}
}

func TestSolveTrivialAndUnreachable(t *testing.T) {
	m, err := New(3, 1)
	require.NoError(t, err)

	path, ok := Solve(m, CellPosition{}, CellPosition{})
	assert.True(t, ok)
	assert.Empty(t, path)

	_, ok = Solve(m, CellPosition{}, CellPosition{Col: 2})
	assert.False(t, ok)

	require.NoError(t, m.OpenWall(CellPosition{Col: 0}, CellPosition{Col: 1}))
	require.NoError(t, m.OpenWall(CellPosition{Col: 1}, CellPosition{Col: 2}))
	path, ok = Solve(m, CellPosition{Col: 2}, CellPosition{})
	assert.True(t, ok)
	assert.Equal(t, "WW", PathString(path))

	_, ok = Solve(m, CellPosition{}, CellPosition{Row: 1})
	assert.False(t, ok)
}

func TestParsePath(t *testing.T) {
	path, ok := ParsePath("NESWWS")
	require.True(t, ok)
	assert.Equal(t, []Direction{North, East, South, West, West, South}, path)
	assert.Equal(t, "NESWWS", PathString(path))

	_, ok = ParsePath("NEX")
	assert.False(t, ok)

	path, ok = ParsePath("")
	assert.True(t, ok)
	assert.Empty(t, path)
}

func TestAnalyze(t *testing.T) {
	// A U-shaped corridor over a 2x2 grid; closing it into a ring adds one loop.
	m, err := New(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.OpenWall(CellPosition{Row: 0, Col: 0}, CellPosition{Row: 0, Col: 1}))
	require.NoError(t, m.OpenWall(CellPosition{Row: 0, Col: 1}, CellPosition{Row: 1, Col: 1}))
	require.NoError(t, m.OpenWall(CellPosition{Row: 1, Col: 1}, CellPosition{Row: 1, Col: 0}))

	blocked, err := ComputeMask(2, 2)
	require.NoError(t, err)

	stats := Analyze(m, CellPosition{}, blocked)
	assert.Equal(t, Stats{Reachable: 4, Passages: 3, DeadEnds: 2, Loops: 0}, stats)

	require.NoError(t, m.OpenWall(CellPosition{Row: 1, Col: 0}, CellPosition{Row: 0, Col: 0}))
	stats = Analyze(m, CellPosition{}, blocked)
	assert.Equal(t, Stats{Reachable: 4, Passages: 4, DeadEnds: 0, Loops: 1}, stats)
}

func TestAnalyzeCountsMaskedCells(t *testing.T) {
	res, err := Generate(Config{Width: 10, Height: 10, Exit: Point{X: 9, Y: 9}, Seed: seedOf(3), Perfect: true})
	require.NoError(t, err)

	stats := Analyze(res.Maze, CellPosition{}, res.Blocked)
	assert.Equal(t, len(emblem7x5), stats.Blocked)
	assert.Equal(t, 100-len(emblem7x5), stats.Reachable)
	assert.Equal(t, 0, stats.Unreachable)
	assert.Greater(t, stats.DeadEnds, 0)
}
