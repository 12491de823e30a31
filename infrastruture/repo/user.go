package repo

import (
	"context"
	"errors"
	"time"

	dmn "github.com/beka-birhanu/amazeing/domain"
	"github.com/beka-birhanu/amazeing/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ i.UserRepo = &UserRepo{}

// UserRepo handles the persistence of user models.
type UserRepo struct {
	collection *mongo.Collection
}

// NewUserRepo creates a new UserRepo with the given MongoDB client, database name, and collection name.
// Usernames are kept unique by an index created on first use.
func NewUserRepo(ctx context.Context, client *mongo.Client, dbName, collectionName string) (*UserRepo, error) {
	collection := client.Database(dbName).Collection(collectionName)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}

	return &UserRepo{
		collection: collection,
	}, nil
}

// Save inserts or updates a user in the repository.
// If the user already exists, it updates the existing record.
// If the user does not exist, it adds a new record.
func (u *UserRepo) Save(ctx context.Context, user *dmn.User) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	filter := bson.M{"_id": user.ID}
	update := bson.M{
		"$set": bson.M{
			"username":     user.Username,
			"passwordHash": user.PasswordHash,
			"createdAt":    user.CreatedAt,
			"updatedAt":    time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := u.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return dmn.ErrUsernameConflict
		}
		return errors.New("unexpected error: " + err.Error())
	}

	return nil
}

// ByID retrieves a user by their ID.
func (u *UserRepo) ByID(ctx context.Context, id uuid.UUID) (*dmn.User, error) {
	return u.findOne(ctx, bson.M{"_id": id})
}

// ByUsername retrieves a user by their username.
func (u *UserRepo) ByUsername(ctx context.Context, username string) (*dmn.User, error) {
	return u.findOne(ctx, bson.M{"username": username})
}

func (u *UserRepo) findOne(ctx context.Context, filter bson.M) (*dmn.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	var user dmn.User
	if err := u.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, dmn.ErrUserNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &user, nil
}
