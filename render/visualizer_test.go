package render

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/beka-birhanu/amazeing/config"
	dmn "github.com/beka-birhanu/amazeing/domain"
	"github.com/beka-birhanu/amazeing/encoder"
	"github.com/beka-birhanu/amazeing/logger"
	"github.com/beka-birhanu/amazeing/maze"
	"github.com/beka-birhanu/amazeing/service"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func newGenerator(t *testing.T) *service.MazeService {
	t.Helper()
	l, err := logger.New("TEST", config.ColorBlue, &bytes.Buffer{})
	require.NoError(t, err)
	svc, err := service.NewMazeService(nil, nil, encoder.NewHex(), l, nil)
	require.NoError(t, err)
	return svc
}

func runeAt(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func countRunes(screen tcell.Screen, want rune) int {
	width, height := screen.Size()
	n := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if runeAt(screen, x, y) == want {
				n++
			}
		}
	}
	return n
}

func TestDrawCorridor(t *testing.T) {
	screen := newScreen(t)
	m := &dmn.Maze{
		Seed:      1,
		Algorithm: maze.AlgorithmDFS,
		Perfect:   true,
		Record: encoder.Record{
			Width:  2,
			Height: 1,
			Rows:   []string{"D7"},
			Entry:  maze.Point{X: 0, Y: 0},
			Exit:   maze.Point{X: 1, Y: 0},
			Path:   "E",
		},
	}

	v, err := NewVisualizer(screen, newGenerator(t), maze.Config{}, m)
	require.NoError(t, err)
	v.Draw()

	top := []rune("╭───────╮")
	bottom := []rune("╰───────╯")
	for x := range top {
		assert.Equal(t, top[x], runeAt(screen, x, 0), "top x=%d", x)
		assert.Equal(t, bottom[x], runeAt(screen, x, 2), "bottom x=%d", x)
	}

	assert.Equal(t, '│', runeAt(screen, 0, 1))
	assert.Equal(t, 'E', runeAt(screen, 2, 1))
	assert.Equal(t, pathGlyph, runeAt(screen, 4, 1), "open wall on the path is bridged")
	assert.Equal(t, 'X', runeAt(screen, 6, 1))
	assert.Equal(t, '│', runeAt(screen, 8, 1))
}

func TestDrawGeneratedMaze(t *testing.T) {
	screen := newScreen(t)
	gen := newGenerator(t)
	seed := int64(5)
	cfg := maze.Config{
		Width:   10,
		Height:  10,
		Entry:   maze.Point{X: 0, Y: 0},
		Exit:    maze.Point{X: 9, Y: 9},
		Seed:    &seed,
		Perfect: true,
	}
	m, err := gen.Generate(context.Background(), cfg)
	require.NoError(t, err)

	v, err := NewVisualizer(screen, gen, cfg, m)
	require.NoError(t, err)
	v.Draw()

	assert.Equal(t, '╭', runeAt(screen, 0, 0))
	assert.Equal(t, '╮', runeAt(screen, 40, 0))
	assert.Equal(t, '╰', runeAt(screen, 0, 20))
	assert.Equal(t, '╯', runeAt(screen, 40, 20))

	// Cell (row 3, col 2) is the top-left of the emblem's "4".
	assert.Equal(t, blockedGlyph, runeAt(screen, 9, 7))
	assert.Equal(t, 20*(cellWidth-1), countRunes(screen, blockedGlyph))

	assert.Equal(t, entryGlyph, runeAt(screen, 2, 1))
	assert.Equal(t, exitGlyph, runeAt(screen, 9*cellWidth+2, 9*cellHeight+1))
	assert.Positive(t, countRunes(screen, pathGlyph))
}

func TestHandleKey(t *testing.T) {
	ctx := context.Background()
	screen := newScreen(t)
	gen := newGenerator(t)
	seed := int64(8)
	cfg := maze.Config{
		Width:   6,
		Height:  5,
		Entry:   maze.Point{X: 0, Y: 0},
		Exit:    maze.Point{X: 5, Y: 4},
		Seed:    &seed,
		Perfect: true,
	}
	m, err := gen.Generate(ctx, cfg)
	require.NoError(t, err)
	v, err := NewVisualizer(screen, gen, cfg, m)
	require.NoError(t, err)

	key := func(r rune) *tcell.EventKey {
		return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
	}

	t.Run("Toggle path", func(t *testing.T) {
		v.Draw()
		require.Positive(t, countRunes(screen, pathGlyph))

		done, err := v.HandleKey(ctx, key('p'))
		require.NoError(t, err)
		assert.False(t, done)
		v.Draw()
		assert.Zero(t, countRunes(screen, pathGlyph))

		_, err = v.HandleKey(ctx, key('p'))
		require.NoError(t, err)
	})

	t.Run("Cycle wall color", func(t *testing.T) {
		_, err := v.HandleKey(ctx, key('c'))
		require.NoError(t, err)
		v.Draw()

		_, _, style, _ := screen.GetContent(0, 0)
		fg, _, _ := style.Decompose()
		assert.Equal(t, wallColors[1], fg)
	})

	t.Run("Toggle algorithm keeps the seed", func(t *testing.T) {
		before := v.Current()
		_, err := v.HandleKey(ctx, key('a'))
		require.NoError(t, err)

		after := v.Current()
		assert.Equal(t, maze.AlgorithmHuntAndKill, after.Algorithm)
		assert.Equal(t, before.Seed, after.Seed)

		_, err = v.HandleKey(ctx, key('a'))
		require.NoError(t, err)
		assert.Equal(t, maze.AlgorithmDFS, v.Current().Algorithm)
		assert.Equal(t, before.Record, v.Current().Record)
	})

	t.Run("Regenerate", func(t *testing.T) {
		before := v.Current()
		_, err := v.HandleKey(ctx, key('r'))
		require.NoError(t, err)
		assert.NotSame(t, before, v.Current())
		assert.Equal(t, 6, v.Current().Record.Width)
	})

	t.Run("Quit", func(t *testing.T) {
		for _, ev := range []*tcell.EventKey{
			key('q'),
			tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
			tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
		} {
			done, err := v.HandleKey(ctx, ev)
			require.NoError(t, err)
			assert.True(t, done)
		}

		done, err := v.HandleKey(ctx, key('z'))
		require.NoError(t, err)
		assert.False(t, done)
	})
}

func TestRun(t *testing.T) {
	screen := newScreen(t)
	gen := newGenerator(t)
	cfg := maze.Config{Width: 4, Height: 4, Exit: maze.Point{X: 3, Y: 3}, Perfect: true}
	m, err := gen.Generate(context.Background(), cfg)
	require.NoError(t, err)
	v, err := NewVisualizer(screen, gen, cfg, m)
	require.NoError(t, err)

	require.NoError(t, screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone)))
	require.NoError(t, screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, v.Run(ctx))
	assert.False(t, v.showPath)
}

func TestNewVisualizer(t *testing.T) {
	_, err := NewVisualizer(nil, nil, maze.Config{}, nil)
	assert.Error(t, err)
}
