package usecase

import (
	"context"
	"errors"
	"log"

	"main/dto"
	"main/model"
	"main/repository"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BidsService orchestrates bid mutation inside project documents.
//
// Edit and delete gate only on possession of a valid projectId+bidId pair,
// exactly as the system has always worked: the bid id acts as a capability.
type BidsService struct {
	BidsRepo  *repository.BidsRepo
	UsersRepo *repository.UsersRepo
}

// cleanBid coerces and strips every free-text field and normalizes item
// quantities and prices to numbers.
func cleanBid(in *dto.BidInput) *model.Bid {
	items := make([]model.BidItem, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, model.BidItem{
			Description:  utils.SanitizeTrim(normalizeString(item.Description)),
			Quantity:     normalizeNumber(item.Quantity),
			PricePerItem: normalizeNumber(item.PricePerItem),
		})
	}

	return &model.Bid{
		WhatBestDescribesYou: utils.SanitizeTrim(normalizeString(in.WhatBestDescribesYou)),
		YearsOfExperience:    utils.SanitizeTrim(normalizeString(in.YearsOfExperience)),
		Items:                items,
		OtherDetails:         utils.SanitizeTrim(normalizeString(in.OtherDetails)),
		Phone:                utils.SanitizeTrim(normalizeString(in.Phone)),
		Email:                utils.SanitizeTrim(normalizeString(in.Email)),
	}
}

// stampBidder snapshots the bidder's identity onto the bid: username and
// the account-creation date read off the bidder's ObjectID, the same
// derivation the author join uses.
func (svc *BidsService) stampBidder(ctx context.Context, bid *model.Bid, bidderID primitive.ObjectID) error {
	bidder, err := svc.UsersRepo.FindByID(ctx, bidderID)
	if err != nil {
		return err
	}
	bid.BidAuthor = bidder.Username
	bid.UserCreationDate = bidder.CreationDate()
	return nil
}

// AddBid validates and sanitizes the bid, snapshots the bidder, and appends
// it atomically to the target project. The server-generated bid id comes
// back to the caller.
func (svc *BidsService) AddBid(ctx context.Context, in *dto.BidInput, bidderID primitive.ObjectID) (primitive.ObjectID, error) {
	projectID, err := primitive.ObjectIDFromHex(in.ProjectID)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}

	bid := cleanBid(in)
	if errs := ValidateBid(bid); len(errs) > 0 {
		return primitive.NilObjectID, &ValidationError{Messages: errs}
	}

	if err := svc.stampBidder(ctx, bid, bidderID); err != nil {
		log.Printf("bidder lookup failed: %v", err)
		return primitive.NilObjectID, ErrStorage
	}

	bidID, err := svc.BidsRepo.AddBid(ctx, projectID, bid)
	if errors.Is(err, repository.ErrProjectNotFound) {
		return primitive.NilObjectID, ErrNotFound
	}
	if err != nil {
		log.Printf("bid insert failed: %v", err)
		return primitive.NilObjectID, ErrStorage
	}
	return bidID, nil
}

// GetSingleBid returns one bid with its parent project's title.
func (svc *BidsService) GetSingleBid(ctx context.Context, ref *dto.BidRef) (*dto.SingleBidView, error) {
	projectID, err := primitive.ObjectIDFromHex(ref.ProjectID)
	if err != nil {
		return nil, ErrNotFound
	}
	bidID, err := primitive.ObjectIDFromHex(ref.BidID)
	if err != nil {
		return nil, ErrNotFound
	}

	title, bid, err := svc.BidsRepo.GetSingleBid(ctx, projectID, bidID)
	if errors.Is(err, repository.ErrProjectNotFound) || errors.Is(err, repository.ErrBidNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Printf("bid lookup failed: %v", err)
		return nil, ErrStorage
	}

	return &dto.SingleBidView{
		ProjectTitle: title,
		Bid:          *bid,
		ItemsTotal:   dto.BidItemsTotal(bid.Items),
	}, nil
}

// DeleteBid removes the bid by id. Deleting an id that is not there is a
// successful no-op.
func (svc *BidsService) DeleteBid(ctx context.Context, ref *dto.BidRef) error {
	projectID, err := primitive.ObjectIDFromHex(ref.ProjectID)
	if err != nil {
		return ErrNotFound
	}
	bidID, err := primitive.ObjectIDFromHex(ref.BidID)
	if err != nil {
		return ErrNotFound
	}

	if err := svc.BidsRepo.DeleteBid(ctx, projectID, bidID); err != nil {
		log.Printf("bid delete failed: %v", err)
		return ErrStorage
	}
	return nil
}

// EditBid validates and sanitizes, then replaces every mutable field of the
// matched bid in place. A bid id that matches nothing is a silent no-op.
func (svc *BidsService) EditBid(ctx context.Context, in *dto.BidInput, bidderID primitive.ObjectID) error {
	projectID, err := primitive.ObjectIDFromHex(in.ProjectID)
	if err != nil {
		return ErrNotFound
	}
	bidID, err := primitive.ObjectIDFromHex(in.BidID)
	if err != nil {
		return ErrNotFound
	}

	bid := cleanBid(in)
	if errs := ValidateBid(bid); len(errs) > 0 {
		return &ValidationError{Messages: errs}
	}

	if err := svc.stampBidder(ctx, bid, bidderID); err != nil {
		log.Printf("bidder lookup failed: %v", err)
		return ErrStorage
	}

	if err := svc.BidsRepo.EditBid(ctx, projectID, bidID, bid); err != nil {
		log.Printf("bid edit failed: %v", err)
		return ErrStorage
	}
	return nil
}
