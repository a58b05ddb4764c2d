package repository

import (
	"context"
	"time"

	"main/middleware"
	"main/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// joinedProject is the decode target for the author-join pipeline: the
// project fields plus the raw author id and the looked-up user document.
type joinedProject struct {
	ID                    primitive.ObjectID `bson:"_id"`
	Title                 string             `bson:"title"`
	Location              string             `bson:"location"`
	BidSubmissionDeadline string             `bson:"bidSubmissionDeadline"`
	Description           string             `bson:"description"`
	Email                 string             `bson:"email"`
	Phone                 string             `bson:"phone"`
	CreatedDate           time.Time          `bson:"createdDate"`
	UpdatedDate           time.Time          `bson:"updatedDate"`
	Bids                  []model.Bid        `bson:"bids"`
	AuthorID              primitive.ObjectID `bson:"authorId"`
	Author                struct {
		ID        primitive.ObjectID `bson:"_id"`
		Username  string             `bson:"username"`
		FirstName string             `bson:"firstName"`
		LastName  string             `bson:"lastName"`
		Email     string             `bson:"email"`
	} `bson:"author"`
}

// authorJoinStages is the shared tail of every project read: join the
// author's user document and project the curated field set, keeping the raw
// author id around for ownership tagging.
func authorJoinStages() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "author",
			"foreignField": "_id",
			"as":           "authorDocument",
		}}},
		{{Key: "$project", Value: bson.M{
			"title":                 1,
			"location":              1,
			"bidSubmissionDeadline": 1,
			"description":           1,
			"email":                 1,
			"phone":                 1,
			"createdDate":           1,
			"updatedDate":           1,
			"bids":                  1,
			"authorId":              "$author",
			"author":                bson.M{"$arrayElemAt": bson.A{"$authorDocument", 0}},
		}}},
	}
}

// runProjectQuery appends the author join to the caller's filter and sort
// stages and maps the result into visitor-tagged views. Every read path in
// this repo goes through here so all of them share one output shape.
func (r *ProjectsRepo) runProjectQuery(ctx context.Context, uniqueStages []bson.D, visitorID primitive.ObjectID) ([]model.ProjectView, error) {
	timer := middleware.TrackDBOperation("aggregate", "projects")
	defer timer.ObserveDuration()

	pipeline := append(append([]bson.D{}, uniqueStages...), authorJoinStages()...)

	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var joined []joinedProject
	if err := cursor.All(ctx, &joined); err != nil {
		return nil, err
	}

	views := make([]model.ProjectView, 0, len(joined))
	for i := range joined {
		views = append(views, joined[i].view(visitorID))
	}
	return views, nil
}

// view shapes one joined document for the visitor: ownership is computed
// here and the raw author id is dropped, the author's account-creation date
// comes from the timestamp embedded in their ObjectID.
func (p *joinedProject) view(visitorID primitive.ObjectID) model.ProjectView {
	return model.ProjectView{
		ID:                    p.ID.Hex(),
		Title:                 p.Title,
		Location:              p.Location,
		BidSubmissionDeadline: p.BidSubmissionDeadline,
		Description:           p.Description,
		Email:                 p.Email,
		Phone:                 p.Phone,
		CreatedDate:           p.CreatedDate,
		UpdatedDate:           p.UpdatedDate,
		Bids:                  p.Bids,
		IsVisitorOwner:        p.AuthorID == visitorID,
		Author: model.AuthorView{
			ID:               p.Author.ID.Hex(),
			UserCreationDate: p.Author.ID.Timestamp().UTC().Format("2006-01-02"),
			Username:         p.Author.Username,
			FirstName:        p.Author.FirstName,
			LastName:         p.Author.LastName,
			Avatar:           model.Avatar(p.Author.Email),
		},
	}
}
