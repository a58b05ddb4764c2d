package handler

import (
	"errors"

	"main/dto"
	"main/middleware"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

func RegisterHandler(c *gin.Context, usersService *usecase.UsersService) {
	var in dto.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.BadRequest(c, "Invalid registration details")
		return
	}

	resp, err := usersService.Register(c.Request.Context(), &in)
	if err != nil {
		middleware.AuthAttempts.WithLabelValues("failure", "register").Inc()
		if errors.Is(err, usecase.ErrTaken) {
			utils.Conflict(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	middleware.AuthAttempts.WithLabelValues("success", "register").Inc()
	utils.Created(c, resp)
}

func LoginHandler(c *gin.Context, usersService *usecase.UsersService) {
	var in dto.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.BadRequest(c, "Invalid login details")
		return
	}

	resp, err := usersService.Login(c.Request.Context(), &in)
	if err != nil {
		middleware.AuthAttempts.WithLabelValues("failure", "login").Inc()
		if errors.Is(err, usecase.ErrBadCredentials) {
			utils.Unauthorized(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	middleware.AuthAttempts.WithLabelValues("success", "login").Inc()
	utils.Success(c, resp)
}
