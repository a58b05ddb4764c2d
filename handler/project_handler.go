package handler

import (
	"errors"

	"main/dto"
	"main/middleware"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// visitorID reads the authenticated visitor's id from the context. It is
// the zero ObjectID for anonymous visitors, which owns nothing.
func visitorID(c *gin.Context) primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(c.GetString("userID"))
	if err != nil {
		return primitive.NilObjectID
	}
	return id
}

func CreateProjectHandler(c *gin.Context, projectsService *usecase.ProjectsService) {
	var in dto.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	id, err := projectsService.Create(c.Request.Context(), &in, visitorID(c))
	if err != nil {
		if ve, ok := usecase.AsValidation(err); ok {
			utils.ValidationFailed(c, ve.Messages)
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	middleware.ProjectOperationsTotal.WithLabelValues("create").Inc()
	utils.Created(c, gin.H{"projectId": id.Hex()})
}

func ViewSingleProjectHandler(c *gin.Context, projectsService *usecase.ProjectsService) {
	view, err := projectsService.FindSingleByID(c.Request.Context(), c.Param("id"), visitorID(c))
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			utils.NotFound(c, "Project not found")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, view)
}

func UpdateProjectHandler(c *gin.Context, projectsService *usecase.ProjectsService) {
	var in dto.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	status, messages, err := projectsService.Update(c.Request.Context(), c.Param("id"), &in, visitorID(c))
	if err != nil {
		if errors.Is(err, usecase.ErrAccessDenied) {
			utils.Forbidden(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}
	if status == usecase.UpdateFailure {
		// soft outcome: the submission needs fixing, nothing else went wrong
		utils.ValidationFailed(c, messages)
		return
	}

	middleware.ProjectOperationsTotal.WithLabelValues("update").Inc()
	utils.Success(c, gin.H{"status": string(status)})
}

func DeleteProjectHandler(c *gin.Context, projectsService *usecase.ProjectsService) {
	if err := projectsService.Delete(c.Request.Context(), c.Param("id"), visitorID(c)); err != nil {
		if errors.Is(err, usecase.ErrAccessDenied) {
			utils.Forbidden(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	middleware.ProjectOperationsTotal.WithLabelValues("delete").Inc()
	utils.Success(c, gin.H{"message": "Project deleted"})
}

func SearchProjectsHandler(c *gin.Context, projectsService *usecase.ProjectsService) {
	var in dto.SearchInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	views, err := projectsService.Search(c.Request.Context(), in.SearchTerm, visitorID(c))
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			utils.BadRequest(c, "Search term must be a non-empty string")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, views)
}

func ProjectsByAuthorHandler(c *gin.Context, projectsService *usecase.ProjectsService) {
	authorID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	views, svcErr := projectsService.FindByAuthorID(c.Request.Context(), authorID)
	if svcErr != nil {
		utils.InternalError(c, svcErr.Error())
		return
	}

	utils.Success(c, views)
}

func ProjectCountByAuthorHandler(c *gin.Context, projectsService *usecase.ProjectsService) {
	authorID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	count, svcErr := projectsService.CountByAuthor(c.Request.Context(), authorID)
	if svcErr != nil {
		utils.InternalError(c, svcErr.Error())
		return
	}

	utils.Success(c, gin.H{"count": count})
}
