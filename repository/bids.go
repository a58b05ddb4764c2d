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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BidsRepo mutates the bids array embedded in project documents. It shares
// the projects collection with ProjectsRepo; bids are never stored on their
// own.
type BidsRepo struct {
	MongoCollection *mongo.Collection
}

func GetBidsRepo(client *mongo.Client) *BidsRepo {
	cfg := config.LoadDatabaseConfig()
	return &BidsRepo{
		MongoCollection: client.Database(cfg.DatabaseName).Collection("projects"),
	}
}

// AddBid appends the bid atomically with $push so concurrent bidders on the
// same project cannot lose each other's writes. The bid id is generated
// here and returned to the caller.
func (r *BidsRepo) AddBid(ctx context.Context, projectID primitive.ObjectID, bid *model.Bid) (primitive.ObjectID, error) {
	timer := middleware.TrackDBOperation("update", "projects")
	defer timer.ObserveDuration()

	bid.ID = primitive.NewObjectID()
	bid.BidCreationDate = time.Now()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": projectID},
		bson.M{"$push": bson.M{"bids": bid}})
	if err != nil {
		return primitive.NilObjectID, err
	}
	if result.MatchedCount == 0 {
		return primitive.NilObjectID, ErrProjectNotFound
	}

	return bid.ID, nil
}

// GetSingleBid fetches only the title and bids of the project and locates
// the bid by id within the array.
func (r *BidsRepo) GetSingleBid(ctx context.Context, projectID, bidID primitive.ObjectID) (string, *model.Bid, error) {
	timer := middleware.TrackDBOperation("find", "projects")
	defer timer.ObserveDuration()

	var doc struct {
		Title string      `bson:"title"`
		Bids  []model.Bid `bson:"bids"`
	}

	opts := options.FindOne().SetProjection(bson.M{"title": 1, "bids": 1, "_id": 0})
	err := r.MongoCollection.FindOne(ctx, bson.M{"_id": projectID}, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return "", nil, ErrProjectNotFound
	}
	if err != nil {
		return "", nil, err
	}

	for i := range doc.Bids {
		if doc.Bids[i].ID == bidID {
			return doc.Title, &doc.Bids[i], nil
		}
	}
	return "", nil, ErrBidNotFound
}

// DeleteBid pulls the matching bid out of the array. Pulling an id that is
// not there is a no-op success, so the call is idempotent.
func (r *BidsRepo) DeleteBid(ctx context.Context, projectID, bidID primitive.ObjectID) error {
	timer := middleware.TrackDBOperation("update", "projects")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": projectID},
		bson.M{"$pull": bson.M{"bids": bson.M{"id": bidID}}})
	return err
}

// EditBid replaces every mutable field of the bid matched by id, wherever it
// sits in the array. An id that matches no element leaves the document
// unchanged without an error.
func (r *BidsRepo) EditBid(ctx context.Context, projectID, bidID primitive.ObjectID, bid *model.Bid) error {
	timer := middleware.TrackDBOperation("update", "projects")
	defer timer.ObserveDuration()

	update := bson.M{
		"$set": bson.M{
			"bids.$[elem].whatBestDescribesYou": bid.WhatBestDescribesYou,
			"bids.$[elem].yearsOfExperience":    bid.YearsOfExperience,
			"bids.$[elem].items":                bid.Items,
			"bids.$[elem].otherDetails":         bid.OtherDetails,
			"bids.$[elem].phone":                bid.Phone,
			"bids.$[elem].email":                bid.Email,
			"bids.$[elem].userCreationDate":     bid.UserCreationDate,
			"bids.$[elem].bidAuthor":            bid.BidAuthor,
			"bids.$[elem].updatedDate":          time.Now(),
		},
	}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"elem.id": bidID}},
	})

	_, err := r.MongoCollection.UpdateOne(ctx, bson.M{"_id": projectID}, update, opts)
	return err
}
