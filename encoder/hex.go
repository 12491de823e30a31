package encoder

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/beka-birhanu/amazeing/maze"
)

// Hex encodes records in the plain-text output file format:
//
//	<height lines of width hex digits>
//	<blank line>
//	entry_x,entry_y
//	exit_x,exit_y
//	<path letters>
type Hex struct{}

// NewHex returns a hex record encoder.
func NewHex() *Hex {
	return &Hex{}
}

// Marshal writes r in the output file format.
func (h *Hex) Marshal(r Record) ([]byte, error) {
	if len(r.Rows) != r.Height || r.Height == 0 {
		return nil, fmt.Errorf("%w: height %d but %d rows", ErrMalformed, r.Height, len(r.Rows))
	}

	var buf bytes.Buffer
	for row, line := range r.Rows {
		if len(line) != r.Width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformed, row, len(line), r.Width)
		}
		buf.WriteString(strings.ToUpper(line))
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	fmt.Fprintf(&buf, "%s\n%s\n%s\n", r.Entry, r.Exit, r.Path)

	return buf.Bytes(), nil
}

// Unmarshal parses the output file format. The blank separator line is optional.
func (h *Hex) Unmarshal(data []byte) (Record, error) {
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	var r Record
	idx := 0
	for ; idx < len(lines); idx++ {
		line := strings.TrimSpace(lines[idx])
		if line == "" || strings.Contains(line, ",") {
			break
		}
		if !isHex(line) {
			return Record{}, fmt.Errorf("%w: row %d is not hexadecimal: %q", ErrMalformed, len(r.Rows), line)
		}
		if len(r.Rows) > 0 && len(line) != len(r.Rows[0]) {
			return Record{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformed, len(r.Rows), len(line), len(r.Rows[0]))
		}
		r.Rows = append(r.Rows, strings.ToUpper(line))
	}
	if len(r.Rows) == 0 {
		return Record{}, fmt.Errorf("%w: no maze rows", ErrMalformed)
	}
	r.Height = len(r.Rows)
	r.Width = len(r.Rows[0])

	if idx < len(lines) && strings.TrimSpace(lines[idx]) == "" {
		idx++
	}

	rest := lines[idx:]
	if len(rest) < 2 {
		return Record{}, fmt.Errorf("%w: missing entry or exit line", ErrMalformed)
	}

	var err error
	if r.Entry, err = ParsePoint(rest[0]); err != nil {
		return Record{}, fmt.Errorf("%w: entry: %v", ErrMalformed, err)
	}
	if r.Exit, err = ParsePoint(rest[1]); err != nil {
		return Record{}, fmt.Errorf("%w: exit: %v", ErrMalformed, err)
	}
	if len(rest) > 2 {
		r.Path = strings.TrimSpace(rest[2])
		if _, ok := maze.ParsePath(r.Path); !ok {
			return Record{}, fmt.Errorf("%w: path %q has letters other than N, E, S, W", ErrMalformed, r.Path)
		}
	}

	return r, nil
}

// ParsePoint reads an "x,y" pair.
func ParsePoint(s string) (maze.Point, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return maze.Point{}, fmt.Errorf("want x,y, got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return maze.Point{}, fmt.Errorf("x coordinate: %w", err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return maze.Point{}, fmt.Errorf("y coordinate: %w", err)
	}
	return maze.Point{X: x, Y: y}, nil
}

func isHex(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
