/*
Package maze provides tools for creating rectangular mazes on a wall bitmask grid.

It defines the `Maze` structure, composed of `Cell` objects whose four low bits
record the walls around them (bit0 north, bit1 east, bit2 south, bit3 west).

Mazes are carved by one of two spanning-tree generators, randomized depth-first
backtracking or Hunt-and-Kill, optionally around a "42" emblem mask that no
passage may enter. A loop-injection pass can turn the resulting perfect maze into
an imperfect one. Generation is a pure function of its configuration and seed.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration is returned when a maze cannot be generated from the given configuration.
	ErrConfiguration = errors.New("invalid maze configuration")

	// ErrInvariantViolation is returned when the grid is asked to perform an impossible mutation.
	ErrInvariantViolation = errors.New("maze invariant violation")
)

// Maze represents a rectangular grid of cells. It exclusively owns its cells.
type Maze struct {
	Width  int       // Width of the maze (number of columns)
	Height int       // Height of the maze (number of rows)
	Grid   [][]*Cell // 2D grid of cells, indexed [row][col]
}

// New allocates a maze of the given dimensions with every wall closed.
func New(width, height int) (*Maze, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive, got %dx%d", ErrConfiguration, width, height)
	}

	grid := make([][]*Cell, height)
	for i := range grid {
		grid[i] = make([]*Cell, width)
		for j := range grid[i] {
			grid[i][j] = &Cell{Walls: AllWalls}
		}
	}

	return &Maze{
		Width:  width,
		Height: height,
		Grid:   grid,
	}, nil
}

// InBound reports whether pos lies inside the grid.
func (m *Maze) InBound(pos CellPosition) bool {
	return pos.Row >= 0 && pos.Row < m.Height && pos.Col >= 0 && pos.Col < m.Width
}

// Cell returns the cell at pos, or nil when pos is out of bounds.
func (m *Maze) Cell(pos CellPosition) *Cell {
	if !m.InBound(pos) {
		return nil
	}
	return m.Grid[pos.Row][pos.Col]
}

// Neighbor returns the position adjacent to pos in direction d, if it is in bounds.
func (m *Maze) Neighbor(pos CellPosition, d Direction) (CellPosition, bool) {
	next := pos.Step(d)
	if !m.InBound(next) {
		return CellPosition{}, false
	}
	return next, true
}

// neighbors finds all in-bound moves from pos, in N, E, S, W order.
func (m *Maze) neighbors(pos CellPosition) []Move {
	result := make([]Move, 0, len(Directions))
	for _, d := range Directions {
		if next, ok := m.Neighbor(pos, d); ok {
			result = append(result, Move{From: pos, To: next, Direction: d})
		}
	}
	return result
}

// OpenWall removes the wall between two adjacent cells, on both sides.
// It is the only operation that changes wall state.
func (m *Maze) OpenWall(a, b CellPosition) error {
	if !m.InBound(a) || !m.InBound(b) {
		return fmt.Errorf("%w: open wall between %v and %v out of bounds", ErrInvariantViolation, a, b)
	}

	for _, d := range Directions {
		if a.Step(d) == b {
			m.Grid[a.Row][a.Col].Walls &^= d.Wall()
			m.Grid[b.Row][b.Col].Walls &^= d.Opposite().Wall()
			return nil
		}
	}

	return fmt.Errorf("%w: %v and %v are not adjacent", ErrInvariantViolation, a, b)
}

// openMove opens the wall crossed by mv.
func (m *Maze) openMove(mv Move) error {
	return m.OpenWall(mv.From, mv.To)
}

// OpenWallCount returns how many sides of the cell at pos are open.
func (m *Maze) OpenWallCount(pos CellPosition) int {
	c := m.Cell(pos)
	if c == nil {
		return 0
	}
	return c.OpenCount()
}

// HasWall reports whether the cell at pos has a wall on side d.
// Positions outside the grid are treated as solid.
func (m *Maze) HasWall(pos CellPosition, d Direction) bool {
	c := m.Cell(pos)
	if c == nil {
		return true
	}
	return c.HasWall(d)
}

// CanMove checks if a step from pos in direction d crosses an open wall on both sides.
func (m *Maze) CanMove(pos CellPosition, d Direction) bool {
	next, ok := m.Neighbor(pos, d)
	if !ok || !m.InBound(pos) {
		return false
	}
	return !m.HasWall(pos, d) && !m.HasWall(next, d.Opposite())
}

// resetVisited clears the generation-only visited flags.
func (m *Maze) resetVisited() {
	for _, row := range m.Grid {
		for _, c := range row {
			c.Visited = false
		}
	}
}

// HexRows returns one string per row, one uppercase hexadecimal digit per cell.
func (m *Maze) HexRows() []string {
	const digits = "0123456789ABCDEF"
	rows := make([]string, m.Height)
	for row := range rows {
		line := make([]byte, m.Width)
		for col := range line {
			line[col] = digits[m.Grid[row][col].Walls&AllWalls]
		}
		rows[row] = string(line)
	}
	return rows
}

// String provides a textual representation of the maze.
func (m *Maze) String() string {
	var output strings.Builder

	// Top boundary
	output.WriteString("+")
	for col := 0; col < m.Width; col++ {
		if m.Grid[0][col].HasWall(North) {
			output.WriteString("---+")
		} else {
			output.WriteString("   +")
		}
	}
	output.WriteString("\n")

	for row := 0; row < m.Height; row++ {
		// Cell rows
		if m.Grid[row][0].HasWall(West) {
			output.WriteString("|")
		} else {
			output.WriteString(" ")
		}
		for col := 0; col < m.Width; col++ {
			cell := m.Grid[row][col]
			if cell.Walls == AllWalls {
				output.WriteString("###")
			} else {
				output.WriteString("   ")
			}

			// Add east wall or space
			if cell.HasWall(East) {
				output.WriteString("|")
			} else {
				output.WriteString(" ")
			}
		}
		output.WriteString("\n")

		// Wall rows
		output.WriteString("+")
		for col := 0; col < m.Width; col++ {
			if m.Grid[row][col].HasWall(South) {
				output.WriteString("---+")
			} else {
				output.WriteString("   +")
			}
		}
		output.WriteString("\n")
	}

	return output.String()
}
