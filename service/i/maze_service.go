package i

import (
	"context"

	dmn "github.com/beka-birhanu/amazeing/domain"
	"github.com/beka-birhanu/amazeing/maze"
	"github.com/google/uuid"
)

// MazeGenerator produces solved maze records.
type MazeGenerator interface {
	Generate(ctx context.Context, cfg maze.Config) (*dmn.Maze, error)
}

// MazeService generates mazes and keeps an archive of them.
type MazeService interface {
	MazeGenerator

	// Archive stores m under owner and returns its ID.
	Archive(ctx context.Context, m *dmn.Maze, owner string) (uuid.UUID, error)

	// Fetch returns an archived maze.
	Fetch(ctx context.Context, id uuid.UUID) (*dmn.Maze, error)

	// List returns the mazes archived by owner, newest first.
	List(ctx context.Context, owner string) ([]dmn.Maze, error)
}
