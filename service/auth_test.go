package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/beka-birhanu/amazeing/config"
	dmn "github.com/beka-birhanu/amazeing/domain"
	"github.com/beka-birhanu/amazeing/infrastruture/token"
	"github.com/beka-birhanu/amazeing/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[uuid.UUID]dmn.User
}

func (r *fakeUserRepo) Save(_ context.Context, user *dmn.User) error {
	for _, u := range r.users {
		if u.Username == user.Username && u.ID != user.ID {
			return dmn.ErrUsernameConflict
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) ByID(_ context.Context, id uuid.UUID) (*dmn.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, dmn.ErrUserNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) ByUsername(_ context.Context, username string) (*dmn.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, dmn.ErrUserNotFound
}

func TestAuth(t *testing.T) {
	const password = "corrugated-lantern-Vortex-81"
	ctx := context.Background()

	l, err := logger.New("TEST", config.ColorBlue, &bytes.Buffer{})
	require.NoError(t, err)
	tokenizer := token.NewJwtService("secret", "amazeing-test")
	repo := &fakeUserRepo{users: map[uuid.UUID]dmn.User{}}

	auth, err := NewAuth(repo, tokenizer, l, bcrypt.MinCost)
	require.NoError(t, err)

	user, err := auth.Register(ctx, "alice", password)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = auth.Register(ctx, "alice", password)
	assert.ErrorIs(t, err, dmn.ErrUsernameConflict)
	_, err = auth.Register(ctx, "bob", "123456")
	assert.ErrorIs(t, err, dmn.ErrWeakPassword)

	t.Run("Valid credentials", func(t *testing.T) {
		signedIn, tok, err := auth.SignIn(ctx, "alice", password)
		require.NoError(t, err)
		assert.Equal(t, user.ID, signedIn.ID)

		claims, err := tokenizer.Decode(tok)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims[ClaimSubject])
		assert.Equal(t, "alice", claims[ClaimUsername])

		exp, ok := claims["exp"].(float64)
		require.True(t, ok)
		assert.InDelta(t, float64(time.Now().Add(tokenTTL).Unix()), exp, 5)
	})

	t.Run("Invalid credentials", func(t *testing.T) {
		_, _, err := auth.SignIn(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		_, _, err = auth.SignIn(ctx, "nobody", password)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
