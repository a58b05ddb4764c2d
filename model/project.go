package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BidItem is one line of an itemized quote. Quantity and price arrive from
// clients in whatever shape they typed them; the service layer coerces them
// to numbers before they get here.
type BidItem struct {
	Description  string  `bson:"description" json:"description"`
	Quantity     float64 `bson:"quantity" json:"quantity"`
	PricePerItem float64 `bson:"price_per_item" json:"price_per_item"`
}

// Bid lives embedded inside its parent project's bids array and is never
// persisted on its own. The id is generated server-side on add and is the
// only handle for later edits and deletes.
type Bid struct {
	ID                   primitive.ObjectID `bson:"id" json:"id"`
	WhatBestDescribesYou string             `bson:"whatBestDescribesYou" json:"whatBestDescribesYou"`
	YearsOfExperience    string             `bson:"yearsOfExperience" json:"yearsOfExperience"`
	Items                []BidItem          `bson:"items,omitempty" json:"items,omitempty"`
	OtherDetails         string             `bson:"otherDetails,omitempty" json:"otherDetails,omitempty"`
	Phone                string             `bson:"phone" json:"phone"`
	Email                string             `bson:"email" json:"email"`
	UserCreationDate     string             `bson:"userCreationDate,omitempty" json:"userCreationDate,omitempty"`
	BidAuthor            string             `bson:"bidAuthor,omitempty" json:"bidAuthor,omitempty"`
	BidCreationDate      time.Time          `bson:"bidCreationDate" json:"bidCreationDate"`
	UpdatedDate          time.Time          `bson:"updatedDate,omitempty" json:"updatedDate,omitempty"`
}

// Project is a posted job open for bids. Author is set once at creation and
// never changes; bidSubmissionDeadline is stored as free text, not a date.
type Project struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title                 string             `bson:"title" json:"title"`
	Location              string             `bson:"location" json:"location"`
	BidSubmissionDeadline string             `bson:"bidSubmissionDeadline" json:"bidSubmissionDeadline"`
	Description           string             `bson:"description" json:"description"`
	Email                 string             `bson:"email" json:"email"`
	Phone                 string             `bson:"phone" json:"phone"`
	CreatedDate           time.Time          `bson:"createdDate" json:"createdDate"`
	UpdatedDate           time.Time          `bson:"updatedDate,omitempty" json:"updatedDate,omitempty"`
	Author                primitive.ObjectID `bson:"author" json:"author"`
	Bids                  []Bid              `bson:"bids,omitempty" json:"bids,omitempty"`
}

// AuthorView is the curated slice of a user document exposed on project
// reads. The raw user document never leaves the repository layer.
type AuthorView struct {
	ID               string `json:"_id"`
	UserCreationDate string `json:"userCreationDate"`
	Username         string `json:"username"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Avatar           string `json:"avatar"`
}

// ProjectView is the read-side shape of a project: the author join applied,
// ownership tagged for the current visitor, raw author id dropped. It is
// derived per request and never persisted.
type ProjectView struct {
	ID                    string     `json:"_id"`
	Title                 string     `json:"title"`
	Location              string     `json:"location"`
	BidSubmissionDeadline string     `json:"bidSubmissionDeadline"`
	Description           string     `json:"description"`
	Email                 string     `json:"email"`
	Phone                 string     `json:"phone"`
	CreatedDate           time.Time  `json:"createdDate"`
	UpdatedDate           time.Time  `json:"updatedDate,omitempty"`
	Bids                  []Bid      `json:"bids,omitempty"`
	Author                AuthorView `json:"author"`
	IsVisitorOwner        bool       `json:"isVisitorOwner"`
}
