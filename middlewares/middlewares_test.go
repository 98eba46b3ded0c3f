package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sick-fits/dto"
	"sick-fits/models"
	"sick-fits/repositories"
	"sick-fits/services"
	"sick-fits/session"
	"sick-fits/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	auth    services.IAuthService
	users   repositories.IUserRepository
	cookies session.Cookies
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	users := repositories.NewUserRepository(db)
	return &fixture{
		auth: services.NewAuthService(users, repositories.NewSessionRepository(db),
			session.NewJWTSigner("test-secret", time.Hour), &testutil.Mailbox{}, "http://localhost"),
		users:   users,
		cookies: session.Cookies{Name: "token"},
	}
}

func (f *fixture) signup(t *testing.T, email string, perms ...models.Permission) string {
	t.Helper()
	result, err := f.auth.Signup(context.Background(), dto.SignupInput{Email: email, Name: "Wes", Password: "password123"})
	require.NoError(t, err)
	if len(perms) > 0 {
		_, err := f.users.UpdatePermissions(context.Background(), result.User.ID, perms)
		require.NoError(t, err)
	}
	return result.Session.Value
}

func (f *fixture) router(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(CurrentUser(f.auth, f.cookies))
	chain := append(handlers, func(ctx *gin.Context) {
		email := ""
		if user := UserFrom(ctx); user != nil {
			email = user.Email
		}
		ctx.JSON(http.StatusOK, gin.H{"email": email, "token": TokenFrom(ctx) != ""})
	})
	r.GET("/", chain...)
	return r
}

func request(r *gin.Engine, setup func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if setup != nil {
		setup(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCurrentUser(t *testing.T) {
	f := newFixture(t)
	token := f.signup(t, "wes@example.com")
	r := f.router()

	t.Run("anonymous", func(t *testing.T) {
		w := request(r, nil)
		assert.JSONEq(t, `{"email":"","token":false}`, w.Body.String())
	})

	t.Run("cookie", func(t *testing.T) {
		w := request(r, func(req *http.Request) { req.AddCookie(&http.Cookie{Name: "token", Value: token}) })
		assert.JSONEq(t, `{"email":"wes@example.com","token":true}`, w.Body.String())
	})

	t.Run("bearer", func(t *testing.T) {
		w := request(r, func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+token) })
		assert.JSONEq(t, `{"email":"wes@example.com","token":true}`, w.Body.String())
	})

	t.Run("stale cookie is cleared", func(t *testing.T) {
		w := request(r, func(req *http.Request) { req.AddCookie(&http.Cookie{Name: "token", Value: "forged"}) })
		assert.JSONEq(t, `{"email":"","token":false}`, w.Body.String())
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "token", cookies[0].Name)
		assert.Equal(t, "", cookies[0].Value)
	})
}

type unavailableAuth struct {
	services.IAuthService
}

func (unavailableAuth) Authenticate(context.Context, string) (*models.User, error) {
	return nil, errors.New("connection refused")
}

func TestCurrentUserKeepsCookieOnStoreFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CurrentUser(unavailableAuth{}, session.Cookies{Name: "token"}))
	r.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"signedIn": UserFrom(ctx) != nil})
	})

	w := request(r, func(req *http.Request) { req.AddCookie(&http.Cookie{Name: "token", Value: "valid-but-unchecked"}) })

	assert.JSONEq(t, `{"signedIn":false}`, w.Body.String())
	assert.Empty(t, w.Result().Cookies())
}

func TestCurrentUserClearsRevokedCookie(t *testing.T) {
	f := newFixture(t)
	token := f.signup(t, "wes@example.com")
	_, err := f.auth.Signout(context.Background(), token)
	require.NoError(t, err)

	w := request(f.router(), func(req *http.Request) { req.AddCookie(&http.Cookie{Name: "token", Value: token}) })

	assert.JSONEq(t, `{"email":"","token":false}`, w.Body.String())
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
}

func TestRequireUser(t *testing.T) {
	f := newFixture(t)
	token := f.signup(t, "wes@example.com")
	r := f.router(RequireUser())

	w := request(r, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"You must be logged in to do that!"}`, w.Body.String())

	w = request(r, func(req *http.Request) { req.AddCookie(&http.Cookie{Name: "token", Value: token}) })
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePermission(t *testing.T) {
	f := newFixture(t)
	plain := f.signup(t, "plain@example.com")
	manager := f.signup(t, "manager@example.com", models.PermissionPermissionUpdate)
	r := f.router(RequirePermission(models.PermissionAdmin, models.PermissionPermissionUpdate))

	w := request(r, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = request(r, func(req *http.Request) { req.AddCookie(&http.Cookie{Name: "token", Value: plain}) })
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"You don't have permission to do that!"}`, w.Body.String())

	w = request(r, func(req *http.Request) { req.AddCookie(&http.Cookie{Name: "token", Value: manager}) })
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(testutil.Logger(t)))
	r.GET("/ping", func(ctx *gin.Context) { ctx.String(http.StatusTeapot, "pong") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusTeapot, w.Code)
}
