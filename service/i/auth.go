package i

import (
	"context"

	dmn "github.com/beka-birhanu/amazeing/domain"
)

// Authenticator registers archive owners and signs them in.
type Authenticator interface {
	// Register creates a new user.
	Register(ctx context.Context, username, password string) (*dmn.User, error)

	// SignIn checks the credentials and returns the user with a fresh token.
	SignIn(ctx context.Context, username, password string) (*dmn.User, string, error)
}
