package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/amazeing/domain"
	"github.com/beka-birhanu/amazeing/service/i"
)

const (
	tokenTTL = 24 * time.Hour

	ClaimSubject  = "sub"
	ClaimUsername = "username"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
)

var _ i.Authenticator = &Auth{}

// Auth registers archive owners and issues their tokens.
type Auth struct {
	userRepo  i.UserRepo
	tokenizer i.Tokenizer
	logger    i.Logger
	hashCost  int
}

// NewAuth creates an Auth service. A zero hashCost uses the bcrypt default.
func NewAuth(userRepo i.UserRepo, tokenizer i.Tokenizer, logger i.Logger, hashCost int) (*Auth, error) {
	if userRepo == nil || tokenizer == nil || logger == nil {
		return nil, errors.New("auth needs a user repo, a tokenizer and a logger")
	}
	return &Auth{
		userRepo:  userRepo,
		tokenizer: tokenizer,
		logger:    logger,
		hashCost:  hashCost,
	}, nil
}

func (a *Auth) Register(ctx context.Context, username, password string) (*dmn.User, error) {
	user, err := dmn.NewUser(dmn.UserConfig{
		Username:      username,
		PlainPassword: password,
		HashCost:      a.hashCost,
	})
	if err != nil {
		return nil, err
	}

	if err := a.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	a.logger.Info(fmt.Sprintf("Registered user %s", user.Username))
	return user, nil
}

func (a *Auth) SignIn(ctx context.Context, username, password string) (*dmn.User, string, error) {
	user, err := a.userRepo.ByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, dmn.ErrUserNotFound) {
			a.logger.Error(fmt.Sprintf("Looking up user %s: %v", username, err))
		}
		return nil, "", ErrInvalidCredentials
	}

	if !user.VerifyPassword(password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := a.tokenizer.Generate(map[string]interface{}{
		ClaimSubject:  user.ID.String(),
		ClaimUsername: user.Username,
	}, tokenTTL)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
