package repository

import (
	"context"
	"errors"
	"time"

	"main/config"
	"main/middleware"
	"main/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrBidNotFound     = errors.New("bid not found")
	ErrUserNotFound    = errors.New("user not found")
)

type ProjectsRepo struct {
	MongoCollection *mongo.Collection
}

func GetProjectsRepo(client *mongo.Client) *ProjectsRepo {
	cfg := config.LoadDatabaseConfig()
	return &ProjectsRepo{
		MongoCollection: client.Database(cfg.DatabaseName).Collection("projects"),
	}
}

// Create inserts a new project stamped with its creation time. The caller
// has already sanitized and validated the fields and set the author.
func (r *ProjectsRepo) Create(ctx context.Context, project *model.Project) (primitive.ObjectID, error) {
	timer := middleware.TrackDBOperation("insert", "projects")
	defer timer.ObserveDuration()

	project.CreatedDate = time.Now()

	result, err := r.MongoCollection.InsertOne(ctx, project)
	if err != nil {
		return primitive.NilObjectID, err
	}

	id, _ := result.InsertedID.(primitive.ObjectID)
	return id, nil
}

// Update replaces the editable fields in place. The bids array, author and
// createdDate are never touched here.
func (r *ProjectsRepo) Update(ctx context.Context, id primitive.ObjectID, project *model.Project) error {
	timer := middleware.TrackDBOperation("update", "projects")
	defer timer.ObserveDuration()

	update := bson.M{
		"$set": bson.M{
			"title":                 project.Title,
			"location":              project.Location,
			"bidSubmissionDeadline": project.BidSubmissionDeadline,
			"description":           project.Description,
			"email":                 project.Email,
			"phone":                 project.Phone,
			"updatedDate":           time.Now(),
		},
	}

	_, err := r.MongoCollection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// Delete removes the whole project document, embedded bids included.
func (r *ProjectsRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	timer := middleware.TrackDBOperation("delete", "projects")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// FindSingleByID resolves one project through the author-join pipeline. A
// string that is not a well-formed ObjectID is NotFound without a query.
func (r *ProjectsRepo) FindSingleByID(ctx context.Context, id string, visitorID primitive.ObjectID) (*model.ProjectView, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrProjectNotFound
	}

	views, err := r.runProjectQuery(ctx, []bson.D{
		{{Key: "$match", Value: bson.M{"_id": oid}}},
	}, visitorID)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, ErrProjectNotFound
	}
	return &views[0], nil
}

// FindByAuthorID returns every project by one author, newest first.
func (r *ProjectsRepo) FindByAuthorID(ctx context.Context, authorID primitive.ObjectID) ([]model.ProjectView, error) {
	return r.runProjectQuery(ctx, []bson.D{
		{{Key: "$match", Value: bson.M{"author": authorID}}},
		{{Key: "$sort", Value: bson.M{"createdDate": -1}}},
	}, primitive.NilObjectID)
}

// Search runs a full-text match over the project text index, most relevant
// first.
func (r *ProjectsRepo) Search(ctx context.Context, term string, visitorID primitive.ObjectID) ([]model.ProjectView, error) {
	return r.runProjectQuery(ctx, []bson.D{
		{{Key: "$match", Value: bson.M{"$text": bson.M{"$search": term}}}},
		{{Key: "$sort", Value: bson.M{"score": bson.M{"$meta": "textScore"}}}},
	}, visitorID)
}

// FeedForAuthors returns every project authored by any of the given users,
// newest first. An empty author list yields an empty result, not an error.
func (r *ProjectsRepo) FeedForAuthors(ctx context.Context, authorIDs []primitive.ObjectID, visitorID primitive.ObjectID) ([]model.ProjectView, error) {
	if authorIDs == nil {
		authorIDs = []primitive.ObjectID{}
	}
	return r.runProjectQuery(ctx, []bson.D{
		{{Key: "$match", Value: bson.M{"author": bson.M{"$in": authorIDs}}}},
		{{Key: "$sort", Value: bson.M{"createdDate": -1}}},
	}, visitorID)
}

// CountByAuthor counts the projects one author has posted, for profile stats.
func (r *ProjectsRepo) CountByAuthor(ctx context.Context, authorID primitive.ObjectID) (int, error) {
	timer := middleware.TrackDBOperation("count", "projects")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"author": authorID})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
