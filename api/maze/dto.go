// Package mazeapi serves maze generation and the maze archive over HTTP.
package mazeapi

import (
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/amazeing/domain"
	"github.com/beka-birhanu/amazeing/encoder"
	"github.com/beka-birhanu/amazeing/maze"
)

// MazeRequest describes a maze to generate. It binds from the query string of
// GET requests and from the JSON body of POST requests.
type MazeRequest struct {
	Width       int     `form:"width" json:"width" binding:"required,min=1"`
	Height      int     `form:"height" json:"height" binding:"required,min=1"`
	Entry       string  `form:"entry" json:"entry"` // "x,y", top-left corner when empty
	Exit        string  `form:"exit" json:"exit"`   // "x,y", bottom-right corner when empty
	Seed        *int64  `form:"seed" json:"seed"`
	Perfect     *bool   `form:"perfect" json:"perfect"` // true when omitted
	Algorithm   string  `form:"algorithm" json:"algorithm"`
	Probability float64 `form:"probability" json:"probability"`
}

// Config converts the request into a generation request.
func (r *MazeRequest) Config() (maze.Config, error) {
	cfg := maze.Config{
		Width:           r.Width,
		Height:          r.Height,
		Entry:           maze.Point{X: 0, Y: 0},
		Exit:            maze.Point{X: r.Width - 1, Y: r.Height - 1},
		Seed:            r.Seed,
		Perfect:         r.Perfect == nil || *r.Perfect,
		LoopProbability: r.Probability,
	}

	var err error
	if r.Entry != "" {
		if cfg.Entry, err = encoder.ParsePoint(r.Entry); err != nil {
			return maze.Config{}, fmt.Errorf("%w: entry: %v", maze.ErrConfiguration, err)
		}
	}
	if r.Exit != "" {
		if cfg.Exit, err = encoder.ParsePoint(r.Exit); err != nil {
			return maze.Config{}, fmt.Errorf("%w: exit: %v", maze.ErrConfiguration, err)
		}
	}
	if cfg.Algorithm, err = maze.ParseAlgorithm(r.Algorithm); err != nil {
		return maze.Config{}, err
	}

	return cfg, nil
}

// MazeResponse is the JSON form of a generated or archived maze.
type MazeResponse struct {
	ID        string     `json:"id"`
	Owner     string     `json:"owner,omitempty"`
	Seed      int64      `json:"seed"`
	Algorithm string     `json:"algorithm"`
	Perfect   bool       `json:"perfect"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	Rows      []string   `json:"rows"`
	Entry     maze.Point `json:"entry"`
	Exit      maze.Point `json:"exit"`
	Path      string     `json:"path"`
	Stats     maze.Stats `json:"stats"`
	CreatedAt time.Time  `json:"created_at"`
}

// ArchiveResponse is returned when a maze is archived.
type ArchiveResponse struct {
	ID string `json:"id"`
}

func toResponse(m *dmn.Maze) *MazeResponse {
	return &MazeResponse{
		ID:        m.ID.String(),
		Owner:     m.Owner,
		Seed:      m.Seed,
		Algorithm: string(m.Algorithm),
		Perfect:   m.Perfect,
		Width:     m.Record.Width,
		Height:    m.Record.Height,
		Rows:      m.Record.Rows,
		Entry:     m.Record.Entry,
		Exit:      m.Record.Exit,
		Path:      m.Record.Path,
		Stats:     m.Stats,
		CreatedAt: m.CreatedAt,
	}
}
