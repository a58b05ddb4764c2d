package repository

import (
	"context"

	"main/config"
	"main/middleware"
	"main/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FollowsRepo is the follow-graph provider backing the personalized feed.
type FollowsRepo struct {
	MongoCollection *mongo.Collection
}

func GetFollowsRepo(client *mongo.Client) *FollowsRepo {
	cfg := config.LoadDatabaseConfig()
	return &FollowsRepo{
		MongoCollection: client.Database(cfg.DatabaseName).Collection("follows"),
	}
}

// FollowedIDs returns the ids of every user the visitor follows.
func (r *FollowsRepo) FollowedIDs(ctx context.Context, visitorID primitive.ObjectID) ([]primitive.ObjectID, error) {
	timer := middleware.TrackDBOperation("find", "follows")
	defer timer.ObserveDuration()

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"authorId": visitorID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var edges []model.Follow
	if err := cursor.All(ctx, &edges); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(edges))
	for _, edge := range edges {
		ids = append(ids, edge.FollowedID)
	}
	return ids, nil
}

// Add records a follow edge. Upserting keeps repeated follows from piling up
// duplicate edges.
func (r *FollowsRepo) Add(ctx context.Context, visitorID, followedID primitive.ObjectID) error {
	timer := middleware.TrackDBOperation("update", "follows")
	defer timer.ObserveDuration()

	filter := bson.M{"authorId": visitorID, "followedId": followedID}
	update := bson.M{"$setOnInsert": filter}

	_, err := r.MongoCollection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// Remove deletes the follow edge if present.
func (r *FollowsRepo) Remove(ctx context.Context, visitorID, followedID primitive.ObjectID) error {
	timer := middleware.TrackDBOperation("delete", "follows")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteOne(ctx, bson.M{"authorId": visitorID, "followedId": followedID})
	return err
}
