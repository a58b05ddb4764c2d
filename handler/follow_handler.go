package handler

import (
	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func AddFollowHandler(c *gin.Context, followsRepo *repository.FollowsRepo) {
	followedID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	visitor := visitorID(c)
	if visitor == followedID {
		utils.BadRequest(c, "You cannot follow yourself")
		return
	}

	if err := followsRepo.Add(c.Request.Context(), visitor, followedID); err != nil {
		utils.InternalError(c, "Please try again later.")
		return
	}

	utils.Success(c, gin.H{"message": "Followed"})
}

func RemoveFollowHandler(c *gin.Context, followsRepo *repository.FollowsRepo) {
	followedID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	if err := followsRepo.Remove(c.Request.Context(), visitorID(c), followedID); err != nil {
		utils.InternalError(c, "Please try again later.")
		return
	}

	utils.Success(c, gin.H{"message": "Unfollowed"})
}
