// Package dmn holds the records the maze service stores and returns.
package dmn

import (
	"errors"
	"time"

	"github.com/beka-birhanu/amazeing/encoder"
	"github.com/beka-birhanu/amazeing/maze"
	"github.com/google/uuid"
)

var (
	ErrMazeNotFound = errors.New("maze not found")
)

// Maze is one generated maze with the parameters needed to reproduce it.
type Maze struct {
	ID        uuid.UUID      `json:"id" bson:"_id"`
	Owner     string         `json:"owner,omitempty" bson:"owner,omitempty"`
	Seed      int64          `json:"seed" bson:"seed"`
	Algorithm maze.Algorithm `json:"algorithm" bson:"algorithm"`
	Perfect   bool           `json:"perfect" bson:"perfect"`
	Record    encoder.Record `json:"record" bson:"record"`
	Stats     maze.Stats     `json:"stats" bson:"stats"`
	CreatedAt time.Time      `json:"created_at" bson:"createdAt"`
}
