package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/beka-birhanu/amazeing/config"
	"github.com/beka-birhanu/amazeing/encoder"
	"github.com/beka-birhanu/amazeing/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.txt")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRunWritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "maze.txt")
	logFile := filepath.Join(dir, "amazeing.log")
	path := writeConfig(t, dir, "WIDTH=12\nHEIGHT=9\nENTRY=0,0\nEXIT=11,8\nOUTPUT_FILE="+out+"\nPERFECT=True\nSEED=42\n")

	require.NoError(t, run(path, false, logFile))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	rec, err := encoder.NewHex().Unmarshal(data)
	require.NoError(t, err)

	assert.Equal(t, 12, rec.Width)
	assert.Equal(t, 9, rec.Height)
	assert.Equal(t, maze.Point{X: 11, Y: 8}, rec.Exit)

	m, err := rec.Maze()
	require.NoError(t, err)
	dirs, ok := maze.ParsePath(rec.Path)
	require.True(t, ok)
	pos := rec.Entry.Position()
	for _, d := range dirs {
		require.True(t, m.CanMove(pos, d))
		pos = pos.Step(d)
	}
	assert.Equal(t, rec.Exit.Position(), pos)

	logs, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(logs), "seed 42")

	// Same seed, same file.
	require.NoError(t, run(path, false, logFile))
	again, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()

	err := run(filepath.Join(dir, "missing.txt"), false, "")
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := writeConfig(t, dir, "WIDTH=12\nHEIGHT=9\n")
	err = run(path, false, "")
	assert.ErrorIs(t, err, config.ErrParse)

	path = writeConfig(t, dir, "WIDTH=10\nHEIGHT=10\nENTRY=4,5\nEXIT=9,9\nOUTPUT_FILE="+filepath.Join(dir, "m.txt")+"\nPERFECT=False\n")
	err = run(path, false, "")
	assert.ErrorIs(t, err, maze.ErrConfiguration)
	assert.NoFileExists(t, filepath.Join(dir, "m.txt"))
}
