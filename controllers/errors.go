package controllers

import (
	"errors"
	"net/http"

	"sick-fits/constants"
	"sick-fits/logging"
	"sick-fits/services"
	"sick-fits/storage"

	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotLoggedIn),
		errors.Is(err, services.ErrInvalidPassword),
		errors.Is(err, services.ErrNoSuchUser):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrNoPermission):
		return http.StatusForbidden
	case errors.Is(err, services.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, services.ErrPasswordsDontMatch),
		errors.Is(err, services.ErrResetTokenInvalid),
		errors.Is(err, services.ErrInvalidPermission),
		errors.Is(err, storage.ErrUnsupportedType):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUploadsDisabled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError writes the user-facing message for known errors and hides
// everything else behind constants.ErrUnexpected.
func respondError(ctx *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logging.New("api").ErrorContext(ctx.Request.Context(), "request failed",
			"path", ctx.Request.URL.Path, "error", err)
		_ = ctx.Error(err)
		ctx.JSON(status, gin.H{"error": constants.ErrUnexpected})
		return
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}
