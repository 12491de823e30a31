package dmn

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordStrengthScore = 3

	usernamePattern   = `^[a-zA-Z0-9_]+$` // Alphanumeric with underscores
	minUsernameLength = 3
	maxUsernameLength = 20
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUsernameConflict = errors.New("username already taken")
	ErrInvalidUsername  = errors.New("invalid username")
	ErrWeakPassword     = errors.New("weak password")

	usernameRegex = regexp.MustCompile(usernamePattern)
)

// User owns archived mazes.
type User struct {
	ID           uuid.UUID `json:"id" bson:"_id"`
	Username     string    `json:"username" bson:"username"`
	PasswordHash string    `json:"-" bson:"passwordHash"`
	CreatedAt    time.Time `json:"created_at" bson:"createdAt"`
}

// UserConfig holds parameters for creating a User from a plain password.
type UserConfig struct {
	ID            uuid.UUID
	Username      string
	PlainPassword string
	HashCost      int // bcrypt cost, bcrypt.DefaultCost when zero
}

// NewUser validates the username and password strength and hashes the password.
func NewUser(config UserConfig) (*User, error) {
	if err := validateUsername(config.Username); err != nil {
		return nil, err
	}

	if err := validatePassword(config.PlainPassword, config.Username); err != nil {
		return nil, err
	}

	cost := config.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(config.PlainPassword), cost)
	if err != nil {
		return nil, err
	}

	id := config.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	return &User{
		ID:           id,
		Username:     config.Username,
		PasswordHash: string(passwordHash),
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// VerifyPassword verifies if the given password matches the stored hash.
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

func validateUsername(username string) error {
	if len(username) < minUsernameLength {
		return fmt.Errorf("%w: shorter than %d characters", ErrInvalidUsername, minUsernameLength)
	}
	if len(username) > maxUsernameLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidUsername, maxUsernameLength)
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("%w: only letters, digits and underscores are allowed", ErrInvalidUsername)
	}
	return nil
}

// validatePassword rejects passwords zxcvbn scores below minPasswordStrengthScore.
// The username is passed as a user input so it does not count towards strength.
func validatePassword(password, username string) error {
	result := zxcvbn.PasswordStrength(password, []string{username})
	if result.Score < minPasswordStrengthScore {
		return ErrWeakPassword
	}
	return nil
}
