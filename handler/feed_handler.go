package handler

import (
	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// HomeFeedHandler serves the personalized feed: projects by everyone the
// visitor follows, newest first.
func HomeFeedHandler(c *gin.Context, projectsService *usecase.ProjectsService) {
	views, err := projectsService.FeedForVisitor(c.Request.Context(), visitorID(c))
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, dto.FeedItems(views))
}

// PublicFeedHandler serves the global feed for visitors who are not logged
// in: every user's projects, unfiltered by any follow relationship.
func PublicFeedHandler(c *gin.Context, projectsService *usecase.ProjectsService) {
	views, err := projectsService.GlobalFeed(c.Request.Context())
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, dto.FeedItems(views))
}
