package usecase

import (
	"context"
	"errors"
	"testing"

	"main/dto"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCleanBidCoercesItems(t *testing.T) {
	in := &dto.BidInput{
		WhatBestDescribesYou: "<em>Roofer</em>",
		YearsOfExperience:    "5",
		Phone:                "555",
		Email:                "b@c.com",
		Items: []dto.BidItemInput{
			{Description: "Shingles", Quantity: "3", PricePerItem: 19.99},
			{Description: "<b>Labor</b>", Quantity: 2.0, PricePerItem: "40"},
			{Description: "Sealant", Quantity: nil, PricePerItem: "n/a"},
		},
	}

	bid := cleanBid(in)

	if bid.WhatBestDescribesYou != "Roofer" {
		t.Errorf("markup survived: %q", bid.WhatBestDescribesYou)
	}
	if len(bid.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(bid.Items))
	}
	if bid.Items[0].Quantity != 3 || bid.Items[0].PricePerItem != 19.99 {
		t.Errorf("item 0 not coerced: %+v", bid.Items[0])
	}
	if bid.Items[1].Description != "Labor" || bid.Items[1].PricePerItem != 40 {
		t.Errorf("item 1 not coerced: %+v", bid.Items[1])
	}
	if bid.Items[2].Quantity != 0 || bid.Items[2].PricePerItem != 0 {
		t.Errorf("uncoercible values should be 0: %+v", bid.Items[2])
	}
}

func TestAddBidRejectsBeforeStore(t *testing.T) {
	svc := &BidsService{}

	t.Run("MalformedProjectID", func(t *testing.T) {
		in := &dto.BidInput{
			ProjectID:            "not-an-object-id",
			WhatBestDescribesYou: "Roofer",
			YearsOfExperience:    "5",
			Phone:                "555",
			Email:                "b@c.com",
		}
		_, err := svc.AddBid(context.Background(), in, primitive.NewObjectID())
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("MissingRequiredFields", func(t *testing.T) {
		in := &dto.BidInput{ProjectID: primitive.NewObjectID().Hex()}
		_, err := svc.AddBid(context.Background(), in, primitive.NewObjectID())

		ve, ok := AsValidation(err)
		if !ok {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if len(ve.Messages) != 4 {
			t.Errorf("expected 4 messages, got %v", ve.Messages)
		}
	})
}

func TestBidRefRejectsMalformedIDs(t *testing.T) {
	svc := &BidsService{}

	refs := []*dto.BidRef{
		{ProjectID: "bogus", BidID: primitive.NewObjectID().Hex()},
		{ProjectID: primitive.NewObjectID().Hex(), BidID: "bogus"},
	}
	for _, ref := range refs {
		if _, err := svc.GetSingleBid(context.Background(), ref); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetSingleBid(%+v): expected ErrNotFound, got %v", ref, err)
		}
		if err := svc.DeleteBid(context.Background(), ref); !errors.Is(err, ErrNotFound) {
			t.Errorf("DeleteBid(%+v): expected ErrNotFound, got %v", ref, err)
		}
	}
}
