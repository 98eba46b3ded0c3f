package controllers

import (
	"net/http"
	"strconv"

	"sick-fits/constants"
	"sick-fits/dto"
	"sick-fits/middlewares"
	"sick-fits/services"

	"github.com/gin-gonic/gin"
)

type IItemController interface {
	FindAll(ctx *gin.Context)
	FindById(ctx *gin.Context)
	Create(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
	RequestImageUpload(ctx *gin.Context)
}

type ItemController struct {
	service services.IItemService
}

func NewItemController(service services.IItemService) IItemController {
	return &ItemController{service: service}
}

func (c *ItemController) FindAll(ctx *gin.Context) {
	skip, _ := strconv.Atoi(ctx.DefaultQuery("skip", "0"))
	first, _ := strconv.Atoi(ctx.DefaultQuery("first", strconv.Itoa(services.DefaultPerPage)))

	items, err := c.service.FindAll(ctx.Request.Context(), skip, first)
	if err != nil {
		respondError(ctx, err)
		return
	}
	count, err := c.service.Count(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": dto.NewItemResponses(items), "count": count})
}

func (c *ItemController) FindById(ctx *gin.Context) {
	itemID, err := dto.ParseID(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidID})
		return
	}

	item, err := c.service.FindById(ctx.Request.Context(), itemID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": dto.NewItemResponse(item)})
}

func (c *ItemController) Create(ctx *gin.Context) {
	var input dto.CreateItemInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": dto.Describe(err)})
		return
	}

	newItem, err := c.service.Create(ctx.Request.Context(), middlewares.UserFrom(ctx), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"data": dto.NewItemResponse(newItem)})
}

func (c *ItemController) Update(ctx *gin.Context) {
	itemID, err := dto.ParseID(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidID})
		return
	}
	var input dto.UpdateItemInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": dto.Describe(err)})
		return
	}

	updatedItem, err := c.service.Update(ctx.Request.Context(), middlewares.UserFrom(ctx), itemID, input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": dto.NewItemResponse(updatedItem)})
}

func (c *ItemController) Delete(ctx *gin.Context) {
	itemID, err := dto.ParseID(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": constants.ErrInvalidID})
		return
	}

	deleted, err := c.service.Delete(ctx.Request.Context(), middlewares.UserFrom(ctx), itemID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": dto.NewItemResponse(deleted)})
}

func (c *ItemController) RequestImageUpload(ctx *gin.Context) {
	var input dto.ImageUploadInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": dto.Describe(err)})
		return
	}

	upload, err := c.service.RequestImageUpload(ctx.Request.Context(), middlewares.UserFrom(ctx), input.ContentType)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"data": upload})
}
