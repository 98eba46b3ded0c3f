package controllers

import (
	"errors"
	"net/http"

	"sick-fits/constants"
	"sick-fits/dto"
	"sick-fits/middlewares"
	"sick-fits/services"

	"github.com/gin-gonic/gin"
)

type IUserController interface {
	List(ctx *gin.Context)
	UpdatePermissions(ctx *gin.Context)
}

type UserController struct {
	service services.IUserService
}

func NewUserController(service services.IUserService) IUserController {
	return &UserController{service: service}
}

func (c *UserController) List(ctx *gin.Context) {
	users, err := c.service.List(ctx.Request.Context(), middlewares.UserFrom(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": dto.NewUserResponses(users)})
}

func (c *UserController) UpdatePermissions(ctx *gin.Context) {
	userID, err := dto.ParseID(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidID})
		return
	}
	var input dto.UpdatePermissionsInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": dto.Describe(err)})
		return
	}

	updated, err := c.service.UpdatePermissions(ctx.Request.Context(), middlewares.UserFrom(ctx), userID, input.Permissions)
	if err != nil {
		if errors.Is(err, services.ErrNoSuchUser) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": dto.NewUserResponse(updated)})
}
