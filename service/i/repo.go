package i

import (
	"context"

	dmn "github.com/beka-birhanu/amazeing/domain"
	"github.com/google/uuid"
)

// MazeRepo defines the interface for maze persistence operations.
type MazeRepo interface {
	// Save inserts or updates a maze in the repository.
	Save(ctx context.Context, m *dmn.Maze) error

	// ByID retrieves a maze by its unique ID.
	// Returns dmn.ErrMazeNotFound if no maze has that ID.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.Maze, error)

	// ByOwner lists up to limit mazes archived by owner, newest first.
	ByOwner(ctx context.Context, owner string, limit int64) ([]dmn.Maze, error)
}

// UserRepo defines the interface for user persistence operations.
type UserRepo interface {
	// Save inserts or updates a user in the repository.
	// Returns dmn.ErrUsernameConflict if the username is taken.
	Save(ctx context.Context, user *dmn.User) error

	// ByID retrieves a user by their unique ID.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.User, error)

	// ByUsername retrieves a user by their username.
	ByUsername(ctx context.Context, username string) (*dmn.User, error)
}
