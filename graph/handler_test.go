package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
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
	users   repositories.IUserRepository
	auth    services.IAuthService
	mailbox *testutil.Mailbox
}

func setup(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	users := repositories.NewUserRepository(db)
	mailbox := &testutil.Mailbox{}
	signer := session.NewJWTSigner("test-secret", time.Hour)
	cookies := session.Cookies{Name: "token"}

	auth := services.NewAuthService(users, repositories.NewSessionRepository(db), signer, mailbox, "http://localhost:7777")
	userService := services.NewUserService(users)
	itemService := services.NewItemService(repositories.NewItemRepository(db), users, nil)

	handler, err := NewHandler(NewResolver(auth, userService, itemService, cookies))
	require.NoError(t, err)

	router := gin.New()
	router.Use(middlewares.CurrentUser(auth, cookies))
	router.POST("/graphql", handler.Serve)

	return &fixture{router: router, users: users, auth: auth, mailbox: mailbox}
}

type gqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (f *fixture) do(t *testing.T, token string, query string, variables map[string]interface{}) (*httptest.ResponseRecorder, gqlResponse) {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{"query": query, "variables": variables})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp gqlResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	return nil
}

func (f *fixture) signup(t *testing.T, email string) (string, *models.User) {
	t.Helper()
	result, err := f.auth.Signup(context.Background(), dto.SignupInput{Email: email, Name: "Wes", Password: "password123"})
	require.NoError(t, err)
	return result.Session.Value, result.User
}

const signupMutation = `mutation($email: String!, $name: String!, $password: String!) {
	signup(email: $email, name: $name, password: $password) { id email permissions }
}`

func TestSignupSetsCookie(t *testing.T) {
	f := setup(t)

	w, resp := f.do(t, "", signupMutation, map[string]interface{}{
		"email": "Wes@Example.com", "name": "Wes", "password": "password123",
	})

	require.Empty(t, resp.Errors)
	var user dto.UserResponse
	require.NoError(t, json.Unmarshal(resp.Data["signup"], &user))
	assert.Equal(t, "wes@example.com", user.Email)
	assert.Equal(t, []string{"USER"}, user.Permissions)

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	_, me := f.do(t, cookie.Value, `{ me { email } }`, nil)
	assert.JSONEq(t, `{"email":"wes@example.com"}`, string(me.Data["me"]))
}

func TestSignupRejectsInvalidInput(t *testing.T) {
	f := setup(t)

	w, resp := f.do(t, "", signupMutation, map[string]interface{}{
		"email": "not-an-email", "name": "Wes", "password": "password123",
	})

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "email must be a valid email address", resp.Errors[0].Message)
	assert.Nil(t, sessionCookie(w))
}

func TestSigninWrongPasswordSetsNoCookie(t *testing.T) {
	f := setup(t)
	f.signup(t, "wes@example.com")

	w, resp := f.do(t, "", `mutation { signin(email: "wes@example.com", password: "nope") { id } }`, nil)

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "Invalid Password!", resp.Errors[0].Message)
	assert.Nil(t, sessionCookie(w))
}

func TestSigninUnknownEmail(t *testing.T) {
	f := setup(t)

	_, resp := f.do(t, "", `mutation { signin(email: "ghost@example.com", password: "password123") { id } }`, nil)

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "No such user found for email ghost@example.com", resp.Errors[0].Message)
}

func TestSignoutRevokesSession(t *testing.T) {
	f := setup(t)
	token, _ := f.signup(t, "wes@example.com")

	w, resp := f.do(t, token, `mutation { signout { message } }`, nil)
	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"message":"Goodbye!"}`, string(resp.Data["signout"]))
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)

	_, me := f.do(t, token, `{ me { id } }`, nil)
	assert.Equal(t, "null", string(me.Data["me"]))
}

func TestRequestResetAlwaysThanks(t *testing.T) {
	f := setup(t)
	f.signup(t, "wes@example.com")

	_, resp := f.do(t, "", `mutation { requestReset(email: "wes@example.com") { message } }`, nil)

	require.Empty(t, resp.Errors)
	assert.JSONEq(t, `{"message":"Thanks!"}`, string(resp.Data["requestReset"]))
	require.Len(t, f.mailbox.Sent(), 1)
	assert.Equal(t, "wes@example.com", f.mailbox.Sent()[0].To)
}

const resetMutation = `mutation($t: String!, $p: String!, $c: String!) {
	resetPassword(resetToken: $t, password: $p, confirmPassword: $c) { id }
}`

func (f *fixture) resetToken(t *testing.T, email string) string {
	t.Helper()
	_, err := f.auth.RequestReset(context.Background(), email)
	require.NoError(t, err)
	user, err := f.users.FindByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NotNil(t, user.ResetToken)
	return *user.ResetToken
}

func TestResetPasswordRejectsShortPassword(t *testing.T) {
	f := setup(t)
	f.signup(t, "wes@example.com")
	token := f.resetToken(t, "wes@example.com")

	w, resp := f.do(t, "", resetMutation, map[string]interface{}{"t": token, "p": "x", "c": "x"})

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "password must be at least 8 characters", resp.Errors[0].Message)
	assert.Nil(t, sessionCookie(w))

	_, err := f.auth.Signin(context.Background(), "wes@example.com", "x")
	assert.ErrorIs(t, err, services.ErrInvalidPassword)
	_, err = f.auth.Signin(context.Background(), "wes@example.com", "password123")
	assert.NoError(t, err)
}

func TestResetPassword(t *testing.T) {
	f := setup(t)
	f.signup(t, "wes@example.com")
	token := f.resetToken(t, "wes@example.com")

	w, resp := f.do(t, "", resetMutation, map[string]interface{}{"t": token, "p": "newpassword", "c": "newpassword"})

	require.Empty(t, resp.Errors)
	assert.NotNil(t, sessionCookie(w))
	_, err := f.auth.Signin(context.Background(), "wes@example.com", "newpassword")
	assert.NoError(t, err)
}

type failingSignout struct {
	services.IAuthService
}

func (failingSignout) Signout(context.Context, string) (string, error) {
	return "", errors.New("database is locked")
}

func TestSignoutClearsCookieWhenRevokeFails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler, err := NewHandler(NewResolver(failingSignout{}, nil, nil, session.Cookies{Name: "token"}))
	require.NoError(t, err)
	router := gin.New()
	router.POST("/graphql", handler.Serve)
	f := &fixture{router: router}

	w, resp := f.do(t, "", `mutation { signout { message } }`, nil)

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "Unexpected error", resp.Errors[0].Message)
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
}

func TestUpdatePermissions(t *testing.T) {
	f := setup(t)
	_, target := f.signup(t, "target@example.com")
	userToken, _ := f.signup(t, "plain@example.com")
	adminToken, admin := f.signup(t, "admin@example.com")
	_, err := f.users.UpdatePermissions(context.Background(), admin.ID, models.Permissions{models.PermissionAdmin})
	require.NoError(t, err)

	mutation := `mutation($id: ID!) { updatePermissions(userId: $id, permissions: [USER, ITEMCREATE]) { permissions } }`
	vars := map[string]interface{}{"id": dto.FormatID(target.ID)}

	t.Run("anonymous", func(t *testing.T) {
		_, resp := f.do(t, "", mutation, vars)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "You must be logged in to do that!", resp.Errors[0].Message)
	})

	t.Run("unprivileged", func(t *testing.T) {
		_, resp := f.do(t, userToken, mutation, vars)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "You don't have permission to do that!", resp.Errors[0].Message)
	})

	t.Run("admin", func(t *testing.T) {
		_, resp := f.do(t, adminToken, mutation, vars)
		require.Empty(t, resp.Errors)
		assert.JSONEq(t, `{"permissions":["USER","ITEMCREATE"]}`, string(resp.Data["updatePermissions"]))
	})
}

func TestItemLifecycle(t *testing.T) {
	f := setup(t)
	ownerToken, _ := f.signup(t, "owner@example.com")
	otherToken, _ := f.signup(t, "other@example.com")

	_, created := f.do(t, ownerToken, `mutation {
		createItem(title: "Shoes", description: "Nice", price: 5000) { id title price user { email } }
	}`, nil)
	require.Empty(t, created.Errors)
	var item struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		Price int    `json:"price"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(created.Data["createItem"], &item))
	assert.Equal(t, "owner@example.com", item.User.Email)

	_, listed := f.do(t, "", `{ items { id } itemsCount }`, nil)
	require.Empty(t, listed.Errors)
	assert.Equal(t, "1", string(listed.Data["itemsCount"]))

	deleteMutation := `mutation($id: ID!) { deleteItem(id: $id) { id } }`
	_, denied := f.do(t, otherToken, deleteMutation, map[string]interface{}{"id": item.ID})
	require.Len(t, denied.Errors, 1)
	assert.Equal(t, "You don't have permission to do that!", denied.Errors[0].Message)

	_, deleted := f.do(t, ownerToken, deleteMutation, map[string]interface{}{"id": item.ID})
	require.Empty(t, deleted.Errors)

	_, missing := f.do(t, "", `query($id: ID!) { item(id: $id) { id } }`, map[string]interface{}{"id": item.ID})
	require.Empty(t, missing.Errors)
	assert.Equal(t, "null", string(missing.Data["item"]))
}

func TestCreateItemRequiresSignin(t *testing.T) {
	f := setup(t)

	_, resp := f.do(t, "", `mutation { createItem(title: "x", description: "y", price: 1) { id } }`, nil)

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "You must be logged in to do that!", resp.Errors[0].Message)
}

func TestRequestImageUploadDisabled(t *testing.T) {
	f := setup(t)
	token, _ := f.signup(t, "wes@example.com")

	_, resp := f.do(t, token, `mutation { requestImageUpload(contentType: "image/png") { uploadUrl } }`, nil)

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "image uploads are not configured", resp.Errors[0].Message)
}
