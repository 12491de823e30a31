// Package render draws generated mazes on a terminal with tcell and lets the
// user regenerate them interactively.
package render

import (
	"context"
	"errors"
	"fmt"

	dmn "github.com/beka-birhanu/amazeing/domain"
	"github.com/beka-birhanu/amazeing/maze"
	"github.com/beka-birhanu/amazeing/service/i"
	"github.com/gdamore/tcell/v2"
	"github.com/zyedidia/generic/mapset"
)

const helpLine = "[r]egenerate  [p]ath  [c]olor  [a]lgorithm  [q]uit"

var wallColors = []tcell.Color{
	tcell.ColorWhite,
	tcell.ColorGreen,
	tcell.ColorBlue,
	tcell.ColorYellow,
	tcell.ColorPurple,
}

var (
	blockedStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	pathStyle    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	entryStyle   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen)
	exitStyle    = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorRed)
	statusStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
)

// Visualizer draws one maze at a time and reacts to key presses.
type Visualizer struct {
	screen    tcell.Screen
	generator i.MazeGenerator
	cfg       maze.Config
	current   *dmn.Maze

	walls   [][]maze.Wall
	blocked mapset.Set[maze.CellPosition]
	path    mapset.Set[maze.CellPosition]

	showPath   bool
	colorIndex int
	status     string
}

// NewVisualizer prepares a visualizer for m, which was generated from cfg.
// The screen must already be initialized.
func NewVisualizer(screen tcell.Screen, generator i.MazeGenerator, cfg maze.Config, m *dmn.Maze) (*Visualizer, error) {
	if screen == nil || generator == nil || m == nil {
		return nil, errors.New("visualizer needs a screen, a generator and a maze")
	}

	v := &Visualizer{
		screen:    screen,
		generator: generator,
		cfg:       cfg,
		showPath:  true,
	}
	if err := v.load(m); err != nil {
		return nil, err
	}
	return v, nil
}

// Current returns the maze on screen.
func (v *Visualizer) Current() *dmn.Maze {
	return v.current
}

// Run draws the maze and processes events until the user quits or ctx is done.
func (v *Visualizer) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go v.screen.ChannelEvents(events, quit)

	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				done, err := v.HandleKey(ctx, ev)
				if err != nil {
					v.status = err.Error()
				}
				if done {
					return nil
				}
			case *tcell.EventResize:
				v.screen.Sync()
			}
			v.Draw()
		}
	}
}

// HandleKey applies one key press and reports whether the user asked to quit.
func (v *Visualizer) HandleKey(ctx context.Context, ev *tcell.EventKey) (bool, error) {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return true, nil
	}
	if ev.Key() != tcell.KeyRune {
		return false, nil
	}

	switch ev.Rune() {
	case 'q', 'Q':
		return true, nil
	case 'p', 'P':
		v.showPath = !v.showPath
	case 'c', 'C':
		v.colorIndex = (v.colorIndex + 1) % len(wallColors)
	case 'r', 'R':
		v.cfg.Seed = nil
		return false, v.regenerate(ctx)
	case 'a', 'A':
		if v.cfg.Algorithm == maze.AlgorithmHuntAndKill {
			v.cfg.Algorithm = maze.AlgorithmDFS
		} else {
			v.cfg.Algorithm = maze.AlgorithmHuntAndKill
		}
		seed := v.current.Seed
		v.cfg.Seed = &seed
		return false, v.regenerate(ctx)
	}
	return false, nil
}

func (v *Visualizer) regenerate(ctx context.Context) error {
	m, err := v.generator.Generate(ctx, v.cfg)
	if err != nil {
		return err
	}
	return v.load(m)
}

func (v *Visualizer) load(m *dmn.Maze) error {
	rec := m.Record
	walls := make([][]maze.Wall, rec.Height)
	for row := range walls {
		walls[row] = make([]maze.Wall, rec.Width)
		for col := range walls[row] {
			w, err := rec.Walls(row, col)
			if err != nil {
				return err
			}
			walls[row][col] = w
		}
	}

	blocked, err := maze.ComputeMask(rec.Width, rec.Height)
	if err != nil {
		return err
	}

	path := mapset.New[maze.CellPosition]()
	dirs, ok := maze.ParsePath(rec.Path)
	if !ok {
		return fmt.Errorf("invalid path %q", rec.Path)
	}
	pos := rec.Entry.Position()
	path.Put(pos)
	for _, d := range dirs {
		pos = pos.Step(d)
		path.Put(pos)
	}

	v.current = m
	v.walls = walls
	v.blocked = blocked
	v.path = path
	v.status = ""
	return nil
}

// Draw renders the current maze and a status line. Anything outside the
// screen is clipped.
func (v *Visualizer) Draw() {
	v.screen.Clear()

	height, width := len(v.walls), 0
	if height > 0 {
		width = len(v.walls[0])
	}
	wallStyle := tcell.StyleDefault.Foreground(wallColors[v.colorIndex])

	for r := 0; r <= height; r++ {
		for c := 0; c <= width; c++ {
			v.screen.SetContent(c*cellWidth, r*cellHeight, cornerGlyphs[v.corner(r, c)], nil, wallStyle)
			if c < width && v.horizontalWall(r, c) {
				for x := 1; x < cellWidth; x++ {
					v.screen.SetContent(c*cellWidth+x, r*cellHeight, horizontalGlyph, nil, wallStyle)
				}
			}
			if r < height && v.verticalWall(r, c) {
				v.screen.SetContent(c*cellWidth, r*cellHeight+1, verticalGlyph, nil, wallStyle)
			}
		}
	}

	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			v.drawCell(maze.CellPosition{Row: r, Col: c})
		}
	}

	status := v.status
	if status == "" {
		kind := "perfect"
		if !v.current.Perfect {
			kind = "imperfect"
		}
		status = fmt.Sprintf("seed %d  %s  %s  %d loops  %s",
			v.current.Seed, v.current.Algorithm, kind, v.current.Stats.Loops, helpLine)
	}
	for x, ch := range []rune(status) {
		v.screen.SetContent(x, height*cellHeight+1, ch, nil, statusStyle)
	}

	v.screen.Show()
}

func (v *Visualizer) drawCell(pos maze.CellPosition) {
	x, y := pos.Col*cellWidth+1, pos.Row*cellHeight+1
	fill := func(ch rune, style tcell.Style) {
		for dx := 0; dx < cellWidth-1; dx++ {
			v.screen.SetContent(x+dx, y, ch, nil, style)
		}
	}

	rec := v.current.Record
	switch {
	case v.blocked.Has(pos):
		fill(blockedGlyph, blockedStyle)
	case pos == rec.Entry.Position():
		fill(' ', entryStyle)
		v.screen.SetContent(x+1, y, entryGlyph, nil, entryStyle)
	case pos == rec.Exit.Position():
		fill(' ', exitStyle)
		v.screen.SetContent(x+1, y, exitGlyph, nil, exitStyle)
	case v.showPath && v.path.Has(pos):
		v.screen.SetContent(x+1, y, pathGlyph, nil, pathStyle)
	}

	if !v.showPath || !v.path.Has(pos) {
		return
	}
	// Bridge the gaps towards the next path cells so the route reads as a line.
	if east := pos.Step(maze.East); v.path.Has(east) && !v.walls[pos.Row][pos.Col].Has(maze.EastWall) {
		v.screen.SetContent(x+cellWidth-1, y, pathGlyph, nil, pathStyle)
	}
	if south := pos.Step(maze.South); v.path.Has(south) && !v.walls[pos.Row][pos.Col].Has(maze.SouthWall) {
		v.screen.SetContent(x+1, y+1, pathGlyph, nil, pathStyle)
	}
}

// horizontalWall reports whether the top edge of cell (r, c) is closed. Row
// height stands for the bottom border.
func (v *Visualizer) horizontalWall(r, c int) bool {
	if r == len(v.walls) {
		return v.walls[r-1][c].Has(maze.SouthWall)
	}
	return v.walls[r][c].Has(maze.NorthWall)
}

// verticalWall reports whether the left edge of cell (r, c) is closed.
// Column width stands for the right border.
func (v *Visualizer) verticalWall(r, c int) bool {
	if c == len(v.walls[r]) {
		return v.walls[r][c-1].Has(maze.EastWall)
	}
	return v.walls[r][c].Has(maze.WestWall)
}

// corner returns the segments meeting at the lattice point above and left of cell (r, c).
func (v *Visualizer) corner(r, c int) int {
	height, width := len(v.walls), len(v.walls[0])
	var segs int
	if r > 0 && v.verticalWall(r-1, c) {
		segs |= segUp
	}
	if r < height && v.verticalWall(r, c) {
		segs |= segDown
	}
	if c > 0 && v.horizontalWall(r, c-1) {
		segs |= segLeft
	}
	if c < width && v.horizontalWall(r, c) {
		segs |= segRight
	}
	return segs
}
