package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Follow is one directed edge in the follow graph: AuthorID follows FollowedID.
type Follow struct {
	AuthorID   primitive.ObjectID `bson:"authorId" json:"authorId"`
	FollowedID primitive.ObjectID `bson:"followedId" json:"followedId"`
}
