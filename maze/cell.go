package maze

import "fmt"

// Wall is a 4-bit mask of the walls around a cell. A set bit means the wall is present.
type Wall uint8

// Wall bits, one per cardinal direction.
const (
	NorthWall Wall = 1 << iota // bit0
	EastWall                   // bit1
	SouthWall                  // bit2
	WestWall                   // bit3

	AllWalls = NorthWall | EastWall | SouthWall | WestWall
)

// Has reports whether every wall in bits is present.
func (w Wall) Has(bits Wall) bool {
	return w&bits == bits
}

// Direction is one of the four cardinal directions, in N, E, S, W order.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every direction in the fixed scan order used by the generators.
var Directions = [4]Direction{North, East, South, West}

var (
	directionDeltas = [4]CellPosition{
		North: {Row: -1, Col: 0},
		East:  {Row: 0, Col: 1},
		South: {Row: 1, Col: 0},
		West:  {Row: 0, Col: -1},
	}
	directionLetters = [4]byte{'N', 'E', 'S', 'W'}
)

// Delta returns the row/col offset of a single step in d.
func (d Direction) Delta() CellPosition {
	return directionDeltas[d]
}

// Wall returns the wall bit on the side of a cell facing d.
func (d Direction) Wall() Wall {
	return 1 << Wall(d)
}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Letter returns the single-letter form used in path strings.
func (d Direction) Letter() byte {
	return directionLetters[d]
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// CellPosition represents the position of a cell in the maze grid.
type CellPosition struct {
	Row int // Row index of the cell
	Col int // Column index of the cell
}

// Step returns the position one cell away in direction d. The result may be out of bounds.
func (p CellPosition) Step(d Direction) CellPosition {
	delta := d.Delta()
	return CellPosition{Row: p.Row + delta.Row, Col: p.Col + delta.Col}
}

// Point returns the caller-facing (x, y) form of p.
func (p CellPosition) Point() Point {
	return Point{X: p.Col, Y: p.Row}
}

// Point is a coordinate as written in configuration and output files: X is the column, Y the row.
type Point struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

// Position converts p to a grid position.
func (p Point) Position() CellPosition {
	return CellPosition{Row: p.Y, Col: p.X}
}

// String formats the point as "x,y".
func (p Point) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// Cell represents a single cell in a maze grid.
type Cell struct {
	Walls   Wall // Walls present around the cell.
	Visited bool // Visited is only meaningful while a generator runs.
}

// HasWall reports whether the wall on side d is present.
func (c *Cell) HasWall(d Direction) bool {
	return c.Walls&d.Wall() != 0
}

// OpenCount returns the number of open sides, in [0,4].
func (c *Cell) OpenCount() int {
	n := 0
	for _, d := range Directions {
		if !c.HasWall(d) {
			n++
		}
	}
	return n
}

// Move represents a step from one cell to an adjacent one.
type Move struct {
	From      CellPosition // Starting cell
	To        CellPosition // Destination cell
	Direction Direction    // Direction of the move
}
