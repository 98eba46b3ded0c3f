package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"sick-fits/dto"
	"sick-fits/middlewares"
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
	router  *gin.Engine
	auth    services.IAuthService
	items   services.IItemService
	users   repositories.IUserRepository
	mailbox *testutil.Mailbox
}

func setup(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	users := repositories.NewUserRepository(db)
	mailbox := &testutil.Mailbox{}
	cookies := session.Cookies{Name: "token"}
	auth := services.NewAuthService(users, repositories.NewSessionRepository(db),
		session.NewJWTSigner("test-secret", time.Hour), mailbox, "http://localhost:7777")
	items := services.NewItemService(repositories.NewItemRepository(db), users, nil)

	tmpl, err := Templates()
	require.NoError(t, err)
	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.Use(middlewares.CurrentUser(auth, cookies))
	NewHandler(auth, services.NewUserService(users), items, cookies).Register(router)

	return &fixture{router: router, auth: auth, items: items, users: users, mailbox: mailbox}
}

func (f *fixture) get(token string, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return f.serve(req, token)
}

func (f *fixture) post(token string, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return f.serve(req, token)
}

func (f *fixture) serve(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) signup(t *testing.T, email string, perms ...models.Permission) (string, *models.User) {
	t.Helper()
	result, err := f.auth.Signup(context.Background(), dto.SignupInput{Email: email, Name: strings.Split(email, "@")[0], Password: "password123"})
	require.NoError(t, err)
	if len(perms) > 0 {
		_, err = f.users.UpdatePermissions(context.Background(), result.User.ID, perms)
		require.NoError(t, err)
	}
	return result.Session.Value, result.User
}

func (f *fixture) createItem(t *testing.T, owner *models.User, title string, price int) *models.Item {
	t.Helper()
	item, err := f.items.Create(context.Background(), owner, dto.CreateItemInput{Title: title, Description: "desc", Price: price})
	require.NoError(t, err)
	return item
}

func hasCookie(w *httptest.ResponseRecorder) bool {
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" && c.Value != "" {
			return true
		}
	}
	return false
}

func TestItemsPage(t *testing.T) {
	f := setup(t)
	_, owner := f.signup(t, "owner@example.com")
	f.createItem(t, owner, "Denim Jacket", 5000)

	w := f.get("", "/")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Denim Jacket")
	assert.Contains(t, body, "$50")
	assert.Contains(t, body, "Page 1 of 1")
	assert.NotContains(t, body, "Delete This Item")
}

func TestSingleItemNotFound(t *testing.T) {
	f := setup(t)

	w := f.get("", "/item?id=999")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Shoot!")
	assert.Contains(t, w.Body.String(), "No item found for 999")
}

func TestSellIsGated(t *testing.T) {
	f := setup(t)

	w := f.get("", "/sell")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Please Signin")
	assert.Contains(t, w.Body.String(), `action="/signin"`)

	token, _ := f.signup(t, "seller@example.com")
	w = f.get(token, "/sell")
	assert.NotContains(t, w.Body.String(), "Please Signin")
	assert.Contains(t, w.Body.String(), `action="/sell"`)
}

func TestCreateItemRedirects(t *testing.T) {
	f := setup(t)
	token, _ := f.signup(t, "seller@example.com")

	w := f.post(token, "/sell", url.Values{"title": {"Hat"}, "description": {"Warm"}, "price": {"1250"}})

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/item?id="))
	page := f.get("", w.Header().Get("Location"))
	assert.Contains(t, page.Body.String(), "Viewing Hat")
	assert.Contains(t, page.Body.String(), "$12.50")
}

func TestSignupPageComposesForms(t *testing.T) {
	f := setup(t)

	body := f.get("", "/signup").Body.String()

	assert.Contains(t, body, `data-test="signup"`)
	assert.Contains(t, body, `data-test="signin"`)
	assert.Contains(t, body, `data-test="request-reset"`)
}

func TestSignin(t *testing.T) {
	f := setup(t)
	f.signup(t, "wes@example.com")

	t.Run("wrong password", func(t *testing.T) {
		w := f.post("", "/signin", url.Values{"email": {"wes@example.com"}, "password": {"nope"}})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid Password!")
		assert.False(t, hasCookie(w))
	})

	t.Run("success returns to next", func(t *testing.T) {
		w := f.post("", "/signin", url.Values{"email": {"wes@example.com"}, "password": {"password123"}, "next": {"/sell"}})
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/sell", w.Header().Get("Location"))
		assert.True(t, hasCookie(w))
	})
}

func TestRequestResetShowsSuccess(t *testing.T) {
	f := setup(t)
	f.signup(t, "wes@example.com")

	w := f.post("", "/request-reset", url.Values{"email": {"wes@example.com"}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Success! Check your email")
	assert.Len(t, f.mailbox.Sent(), 1)
}

func TestDeleteItemDenied(t *testing.T) {
	f := setup(t)
	_, owner := f.signup(t, "owner@example.com")
	otherToken, _ := f.signup(t, "other@example.com")
	item := f.createItem(t, owner, "Boots", 900)

	w := f.post(otherToken, "/delete", url.Values{"id": {dto.FormatID(item.ID)}})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "have permission to do that!")
	assert.Contains(t, w.Body.String(), "Boots")
}

func TestPermissionsPage(t *testing.T) {
	f := setup(t)
	adminToken, _ := f.signup(t, "admin@example.com", models.PermissionAdmin)
	userToken, target := f.signup(t, "plain@example.com")

	w := f.get(userToken, "/permissions")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Shoot!")

	w = f.get(adminToken, "/permissions")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "plain@example.com")
	assert.Contains(t, w.Body.String(), `value="PERMISSIONUPDATE"`)

	w = f.post(adminToken, "/permissions", url.Values{
		"userId":      {dto.FormatID(target.ID)},
		"permissions": {"USER", "ITEMCREATE"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Updated permissions for plain")

	updated, err := f.users.FindByID(context.Background(), target.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Permissions{models.PermissionUser, models.PermissionItemCreate}, updated.Permissions)
}

func TestSignoutClearsCookie(t *testing.T) {
	f := setup(t)
	token, _ := f.signup(t, "wes@example.com")

	w := f.post(token, "/signout", nil)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.False(t, hasCookie(w))
	assert.NotContains(t, f.get(token, "/").Body.String(), "Sign Out")
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0", formatMoney(0))
	assert.Equal(t, "$50", formatMoney(5000))
	assert.Equal(t, "$12.50", formatMoney(1250))
	assert.Equal(t, "$0.05", formatMoney(5))
}

func TestSafeNext(t *testing.T) {
	assert.Equal(t, "/sell", safeNext("/sell"))
	assert.Equal(t, "/", safeNext(""))
	assert.Equal(t, "/", safeNext("//evil.example.com"))
	assert.Equal(t, "/", safeNext("https://evil.example.com"))
	assert.Equal(t, "/", safeNext("/\\evil.example.com"))
	assert.Equal(t, "/", safeNext("/\\/evil.example.com"))
	assert.Equal(t, "/item?id=3", safeNext("/item?id=3"))
}
