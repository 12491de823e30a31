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

var _ i.MazeRepo = &MazeRepo{}

// MazeRepo handles the persistence of archived mazes.
type MazeRepo struct {
	collection *mongo.Collection
}

// NewMazeRepo creates a new MazeRepo with the given MongoDB client, database name, and collection name.
func NewMazeRepo(client *mongo.Client, dbName, collectionName string) *MazeRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &MazeRepo{
		collection: collection,
	}
}

// Save inserts or updates a maze in the repository.
// If the maze already exists, it updates the existing record.
// If the maze does not exist, it adds a new record.
func (r *MazeRepo) Save(ctx context.Context, m *dmn.Maze) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": m.ID}
	update := bson.M{
		"$set": bson.M{
			"owner":     m.Owner,
			"seed":      m.Seed,
			"algorithm": m.Algorithm,
			"perfect":   m.Perfect,
			"record":    m.Record,
			"stats":     m.Stats,
			"createdAt": m.CreatedAt,
			"updatedAt": time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}

	return nil
}

// ByID retrieves a maze by its ID.
// Returns dmn.ErrMazeNotFound if no maze has that ID.
func (r *MazeRepo) ByID(ctx context.Context, id uuid.UUID) (*dmn.Maze, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": id}
	var m dmn.Maze
	if err := r.collection.FindOne(ctx, filter).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, dmn.ErrMazeNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &m, nil
}

// ByOwner lists the mazes archived by owner, newest first.
func (r *MazeRepo) ByOwner(ctx context.Context, owner string, limit int64) ([]dmn.Maze, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"owner": owner}, opts)
	if err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	defer cursor.Close(ctx)

	mazes := []dmn.Maze{}
	if err := cursor.All(ctx, &mazes); err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return mazes, nil
}
