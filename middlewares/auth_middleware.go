package middlewares

import (
	"errors"
	"net/http"

	"sick-fits/constants"
	"sick-fits/logging"
	"sick-fits/models"
	"sick-fits/services"
	"sick-fits/session"

	"github.com/gin-gonic/gin"
)

// CurrentUser resolves the session token, if any, to a user and stores it in
// the context. Requests without a usable token continue anonymously. The
// cookie is cleared only when the token itself is bad or revoked.
func CurrentUser(authService services.IAuthService, cookies session.Cookies) gin.HandlerFunc {
	logger := logging.New("auth")
	return func(ctx *gin.Context) {
		token := cookies.Read(ctx.Request)
		if token == "" {
			ctx.Next()
			return
		}

		user, err := authService.Authenticate(ctx.Request.Context(), token)
		if err != nil {
			logger.DebugContext(ctx.Request.Context(), "ignoring session token", "error", err)
			if staleSession(err) {
				if _, cerr := ctx.Request.Cookie(cookies.Name); cerr == nil {
					cookies.Clear(ctx.Writer)
				}
			}
			ctx.Next()
			return
		}

		ctx.Set(constants.ContextUserKey, user)
		ctx.Set(constants.ContextTokenKey, token)
		ctx.Next()
	}
}

func staleSession(err error) bool {
	return errors.Is(err, session.ErrInvalidToken) || errors.Is(err, services.ErrSessionRevoked)
}

// RequireUser aborts with 401 unless CurrentUser found a user.
func RequireUser() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if UserFrom(ctx) == nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": constants.ErrNotLoggedIn})
			return
		}
		ctx.Next()
	}
}

// UserFrom returns the signed-in user or nil.
func UserFrom(ctx *gin.Context) *models.User {
	value, exists := ctx.Get(constants.ContextUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// TokenFrom returns the raw session token of the signed-in user.
func TokenFrom(ctx *gin.Context) string {
	return ctx.GetString(constants.ContextTokenKey)
}
