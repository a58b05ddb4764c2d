package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupIndexes creates the indexes the query paths depend on. The weighted
// text index over the project text fields is what makes Search work at all.
func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	projectIndexes := []mongo.IndexModel{
		// Author feed and profile listing
		{
			Keys: bson.D{
				{Key: "author", Value: 1},
				{Key: "createdDate", Value: -1},
			},
			Options: options.Index().
				SetName("author_projects_date"),
		},
		// Full-text search
		{
			Keys: bson.D{
				{Key: "title", Value: "text"},
				{Key: "description", Value: "text"},
				{Key: "location", Value: "text"},
			},
			Options: options.Index().
				SetName("project_text_search").
				SetDefaultLanguage("english").
				SetWeights(bson.D{
					{Key: "title", Value: 10},
					{Key: "description", Value: 5},
					{Key: "location", Value: 3},
				}),
		},
	}

	followIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "authorId", Value: 1},
				{Key: "followedId", Value: 1},
			},
			Options: options.Index().
				SetName("follow_edge_unique").
				SetUnique(true),
		},
	}

	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetName("username_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_unique").SetUnique(true),
		},
	}

	if _, err := db.Collection("projects").Indexes().CreateMany(ctx, projectIndexes); err != nil {
		return fmt.Errorf("failed to create project indexes: %w", err)
	}
	if _, err := db.Collection("follows").Indexes().CreateMany(ctx, followIndexes); err != nil {
		return fmt.Errorf("failed to create follow indexes: %w", err)
	}
	if _, err := db.Collection("users").Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	log.Println("Successfully created all indexes")
	return nil
}
