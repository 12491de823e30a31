// Package encoder converts generated mazes to and from the hexadecimal record
// format shared by the CLI output file, the cache and the HTTP API.
package encoder

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/beka-birhanu/amazeing/maze"
)

var (
	// ErrMalformed is returned when a record cannot be decoded or rebuilt into a maze.
	ErrMalformed = errors.New("malformed maze record")
)

// Record is one generated maze as handed to renderers and storage.
type Record struct {
	Width  int        `json:"width" bson:"width"`
	Height int        `json:"height" bson:"height"`
	Rows   []string   `json:"rows" bson:"rows"` // One hex digit per cell, row-major.
	Entry  maze.Point `json:"entry" bson:"entry"`
	Exit   maze.Point `json:"exit" bson:"exit"`
	Path   string     `json:"path" bson:"path"` // N/E/S/W letters from entry to exit.
}

// FromResult captures a generated maze and the path found through it.
func FromResult(res *maze.Result, path []maze.Direction) Record {
	return Record{
		Width:  res.Maze.Width,
		Height: res.Maze.Height,
		Rows:   res.Maze.HexRows(),
		Entry:  res.Entry,
		Exit:   res.Exit,
		Path:   maze.PathString(path),
	}
}

// Walls returns the wall mask of the cell at (row, col).
func (r Record) Walls(row, col int) (maze.Wall, error) {
	if row < 0 || row >= len(r.Rows) || col < 0 || col >= len(r.Rows[row]) {
		return 0, fmt.Errorf("%w: cell %d,%d out of range", ErrMalformed, col, row)
	}
	v, err := strconv.ParseUint(r.Rows[row][col:col+1], 16, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: cell %d,%d: %v", ErrMalformed, col, row, err)
	}
	return maze.Wall(v), nil
}

// Maze rebuilds the grid described by the record. Walls are opened pairwise, so a
// record with a one-sided or boundary opening is rejected.
func (r Record) Maze() (*maze.Maze, error) {
	if r.Height != len(r.Rows) {
		return nil, fmt.Errorf("%w: height %d but %d rows", ErrMalformed, r.Height, len(r.Rows))
	}
	m, err := maze.New(r.Width, r.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	for row, line := range r.Rows {
		if len(line) != r.Width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformed, row, len(line), r.Width)
		}
	}

	for row := 0; row < r.Height; row++ {
		for col := 0; col < r.Width; col++ {
			walls, err := r.Walls(row, col)
			if err != nil {
				return nil, err
			}
			pos := maze.CellPosition{Row: row, Col: col}
			for _, d := range maze.Directions {
				if walls&d.Wall() != 0 {
					continue
				}
				next, ok := m.Neighbor(pos, d)
				if !ok {
					return nil, fmt.Errorf("%w: cell %v is open towards the border", ErrMalformed, pos.Point())
				}
				theirs, err := r.Walls(next.Row, next.Col)
				if err != nil {
					return nil, err
				}
				if theirs&d.Opposite().Wall() != 0 {
					return nil, fmt.Errorf("%w: wall between %v and %v is one-sided", ErrMalformed, pos.Point(), next.Point())
				}
				if err := m.OpenWall(pos, next); err != nil {
					return nil, err
				}
			}
		}
	}

	return m, nil
}
