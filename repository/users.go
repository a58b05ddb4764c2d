package repository

import (
	"context"
	"time"

	"main/config"
	"main/middleware"
	"main/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UsersRepo is the user directory: the author join and the bid author
// snapshot both resolve public profile fields through it.
type UsersRepo struct {
	MongoCollection *mongo.Collection
}

func GetUsersRepo(client *mongo.Client) *UsersRepo {
	cfg := config.LoadDatabaseConfig()
	return &UsersRepo{
		MongoCollection: client.Database(cfg.DatabaseName).Collection("users"),
	}
}

// Insert adds a new user. The unique indexes on username and email turn
// duplicates into a driver duplicate-key error the caller can test for.
func (r *UsersRepo) Insert(ctx context.Context, user *model.User) (primitive.ObjectID, error) {
	timer := middleware.TrackDBOperation("insert", "users")
	defer timer.ObserveDuration()

	user.CreatedAt = time.Now()

	result, err := r.MongoCollection.InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, err
	}

	id, _ := result.InsertedID.(primitive.ObjectID)
	user.ID = id
	return id, nil
}

func (r *UsersRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	timer := middleware.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UsersRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	timer := middleware.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// AllIDs lists every known user id, the author set of the public feed.
func (r *UsersRepo) AllIDs(ctx context.Context) ([]primitive.ObjectID, error) {
	timer := middleware.TrackDBOperation("distinct", "users")
	defer timer.ObserveDuration()

	raw, err := r.MongoCollection.Distinct(ctx, "_id", bson.M{})
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
