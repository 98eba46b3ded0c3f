package middlewares

import (
	"net/http"

	"sick-fits/constants"
	"sick-fits/logging"
	"sick-fits/models"

	"github.com/gin-gonic/gin"
)

// RequirePermission lets the request through when the user holds any of
// allowed. Use after CurrentUser; the user there was loaded from the
// database on this request, so the check sees current permissions.
func RequirePermission(allowed ...models.Permission) gin.HandlerFunc {
	logger := logging.New("auth")
	return func(ctx *gin.Context) {
		user := UserFrom(ctx)
		if user == nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": constants.ErrNotLoggedIn})
			return
		}

		if !user.Can(allowed...) {
			logger.InfoContext(ctx.Request.Context(), "access denied",
				"user_id", user.ID, "permissions", user.Permissions.Strings(), "required", allowed)
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": constants.ErrNoPermission})
			return
		}

		ctx.Next()
	}
}
