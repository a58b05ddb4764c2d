package handler

import (
	"errors"

	"main/dto"
	"main/middleware"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func CreateBidHandler(c *gin.Context, bidsService *usecase.BidsService) {
	var in dto.BidInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	bidID, err := bidsService.AddBid(c.Request.Context(), &in, visitorID(c))
	if err != nil {
		if ve, ok := usecase.AsValidation(err); ok {
			utils.ValidationFailed(c, ve.Messages)
			return
		}
		if errors.Is(err, usecase.ErrNotFound) {
			utils.NotFound(c, "Project not found")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	middleware.BidOperationsTotal.WithLabelValues("add").Inc()
	utils.Created(c, gin.H{"status": "Success", "bidId": bidID.Hex()})
}

func ViewSingleBidHandler(c *gin.Context, bidsService *usecase.BidsService) {
	var ref dto.BidRef
	if err := c.ShouldBindJSON(&ref); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	view, err := bidsService.GetSingleBid(c.Request.Context(), &ref)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			utils.NotFound(c, "Bid not found")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, view)
}

func DeleteBidHandler(c *gin.Context, bidsService *usecase.BidsService) {
	var ref dto.BidRef
	if err := c.ShouldBindJSON(&ref); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	if err := bidsService.DeleteBid(c.Request.Context(), &ref); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			utils.NotFound(c, "Bid not found")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	middleware.BidOperationsTotal.WithLabelValues("delete").Inc()
	utils.Success(c, gin.H{"status": "Success"})
}

func EditBidHandler(c *gin.Context, bidsService *usecase.BidsService) {
	var in dto.BidInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	err := bidsService.EditBid(c.Request.Context(), &in, visitorID(c))
	if err != nil {
		if ve, ok := usecase.AsValidation(err); ok {
			utils.ValidationFailed(c, ve.Messages)
			return
		}
		if errors.Is(err, usecase.ErrNotFound) {
			utils.NotFound(c, "Bid not found")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	middleware.BidOperationsTotal.WithLabelValues("edit").Inc()
	utils.Success(c, gin.H{"status": "Success"})
}
