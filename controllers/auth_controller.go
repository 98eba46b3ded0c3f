package controllers

import (
	"net/http"
	"time"

	"sick-fits/dto"
	"sick-fits/middlewares"
	"sick-fits/services"
	"sick-fits/session"

	"github.com/gin-gonic/gin"
)

type IAuthController interface {
	Signup(ctx *gin.Context)
	Signin(ctx *gin.Context)
	Signout(ctx *gin.Context)
	RequestReset(ctx *gin.Context)
	ResetPassword(ctx *gin.Context)
	Me(ctx *gin.Context)
}

type AuthController struct {
	service services.IAuthService
	cookies session.Cookies
}

func NewAuthController(service services.IAuthService, cookies session.Cookies) IAuthController {
	return &AuthController{service: service, cookies: cookies}
}

func (c *AuthController) signedIn(ctx *gin.Context, status int, result *services.AuthResult) {
	c.cookies.Write(ctx.Writer, result.Session, time.Now())
	ctx.JSON(status, gin.H{"data": dto.NewUserResponse(result.User)})
}

func (c *AuthController) Signup(ctx *gin.Context) {
	var input dto.SignupInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": dto.Describe(err)})
		return
	}

	result, err := c.service.Signup(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	c.signedIn(ctx, http.StatusCreated, result)
}

func (c *AuthController) Signin(ctx *gin.Context) {
	var input dto.SigninInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": dto.Describe(err)})
		return
	}

	result, err := c.service.Signin(ctx.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}
	c.signedIn(ctx, http.StatusOK, result)
}

func (c *AuthController) Signout(ctx *gin.Context) {
	message, err := c.service.Signout(ctx.Request.Context(), middlewares.TokenFrom(ctx))
	c.cookies.Clear(ctx.Writer)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": dto.MessageResponse{Message: message}})
}

func (c *AuthController) RequestReset(ctx *gin.Context) {
	var input dto.RequestResetInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": dto.Describe(err)})
		return
	}

	message, err := c.service.RequestReset(ctx.Request.Context(), input.Email)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": dto.MessageResponse{Message: message}})
}

func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var input dto.ResetPasswordInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": dto.Describe(err)})
		return
	}

	result, err := c.service.ResetPassword(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}
	c.signedIn(ctx, http.StatusOK, result)
}

func (c *AuthController) Me(ctx *gin.Context) {
	user := middlewares.UserFrom(ctx)
	if user == nil {
		ctx.JSON(http.StatusOK, gin.H{"data": nil})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": dto.NewUserResponse(user)})
}
