// Package web serves the server-rendered storefront pages.
package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"sick-fits/constants"
	"sick-fits/dto"
	"sick-fits/logging"
	"sick-fits/middlewares"
	"sick-fits/models"
	"sick-fits/services"
	"sick-fits/session"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"money": formatMoney,
	"has":   slices.Contains[[]string, string],
}

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

// formatMoney renders an amount in cents as dollars.
func formatMoney(cents int) string {
	if cents%100 == 0 {
		return fmt.Sprintf("$%d", cents/100)
	}
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

type Handler struct {
	auth    services.IAuthService
	users   services.IUserService
	items   services.IItemService
	cookies session.Cookies
	logger  *slog.Logger
}

func NewHandler(auth services.IAuthService, users services.IUserService, items services.IItemService, cookies session.Cookies) *Handler {
	return &Handler{auth: auth, users: users, items: items, cookies: cookies, logger: logging.New("web")}
}

// Register mounts the pages on r. r must have templates from Templates set
// and middlewares.CurrentUser installed.
func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/", h.Items)
	r.GET("/item", h.SingleItem)
	r.GET("/sell", h.Sell)
	r.POST("/sell", h.CreateItem)
	r.GET("/update", h.EditItem)
	r.POST("/update", h.UpdateItem)
	r.POST("/delete", h.DeleteItem)
	r.GET("/signup", h.SignupPage)
	r.POST("/signup", h.Signup)
	r.GET("/signin", h.SigninPage)
	r.POST("/signin", h.Signin)
	r.GET("/request-reset", h.RequestResetPage)
	r.POST("/request-reset", h.RequestReset)
	r.GET("/reset", h.ResetPage)
	r.POST("/reset", h.Reset)
	r.GET("/permissions", h.Permissions)
	r.POST("/permissions", h.UpdatePermissions)
	r.POST("/signout", h.Signout)
}

func (h *Handler) newPage(ctx *gin.Context, title string) *page {
	me := middlewares.UserFrom(ctx)
	return &page{
		Title:                title,
		Me:                   dto.NewUserResponse(me),
		CanManagePermissions: me.Can(models.PermissionAdmin, models.PermissionPermissionUpdate),
	}
}

func (h *Handler) render(ctx *gin.Context, status int, name string, p *page) {
	ctx.HTML(status, name, p)
}

// formError is a problem with submitted form data that is shown as is.
type formError string

func (e formError) Error() string { return string(e) }

// message turns err into the text of the error component.
func (h *Handler) message(ctx *gin.Context, err error) string {
	var fe formError
	switch {
	case services.IsPublic(err), errors.As(err, &fe):
		return err.Error()
	case dto.IsValidation(err):
		return dto.Describe(err)
	}
	h.logger.ErrorContext(ctx.Request.Context(), "page failed", "path", ctx.Request.URL.Path, "error", err)
	return constants.ErrUnexpected
}

func statusFor(err error) int {
	var fe formError
	switch {
	case errors.Is(err, services.ErrNotLoggedIn),
		errors.Is(err, services.ErrInvalidPassword),
		errors.Is(err, services.ErrNoSuchUser):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrNoPermission):
		return http.StatusForbidden
	case errors.Is(err, services.ErrItemNotFound):
		return http.StatusNotFound
	case services.IsPublic(err), dto.IsValidation(err), errors.As(err, &fe):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// gate renders the signin prompt for anonymous visitors and reports whether
// the caller may continue.
func (h *Handler) gate(ctx *gin.Context) bool {
	if middlewares.UserFrom(ctx) != nil {
		return true
	}
	p := h.newPage(ctx, "Sign In")
	p.Next = ctx.Request.URL.RequestURI()
	h.render(ctx, http.StatusOK, "gate.html", p)
	return false
}

func (h *Handler) signedIn(ctx *gin.Context, result *services.AuthResult, next string) {
	h.cookies.Write(ctx.Writer, result.Session, time.Now())
	ctx.Redirect(http.StatusSeeOther, safeNext(next))
}

// safeNext keeps redirects on this site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.ContainsRune(next, '\\') {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return next
}

func (h *Handler) Items(ctx *gin.Context) {
	p := h.newPage(ctx, "Shop")
	pageNum, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || pageNum < 1 {
		pageNum = 1
	}
	c := ctx.Request.Context()

	count, err := h.items.Count(c)
	if err != nil {
		p.Error = h.message(ctx, err)
		h.render(ctx, http.StatusInternalServerError, "items.html", p)
		return
	}
	items, err := h.items.FindAll(c, (pageNum-1)*services.DefaultPerPage, services.DefaultPerPage)
	if err != nil {
		p.Error = h.message(ctx, err)
		h.render(ctx, http.StatusInternalServerError, "items.html", p)
		return
	}
	p.Items = dto.NewItemResponses(items)
	p.Pagination = newPagination(pageNum, services.DefaultPerPage, count)
	h.render(ctx, http.StatusOK, "items.html", p)
}

func (h *Handler) SingleItem(ctx *gin.Context) {
	p := h.newPage(ctx, "Item")
	raw := ctx.Query("id")
	id, err := dto.ParseID(raw)
	if err != nil {
		p.Error = fmt.Sprintf("No item found for %s", raw)
		h.render(ctx, http.StatusNotFound, "item.html", p)
		return
	}
	item, err := h.items.FindById(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			p.Error = fmt.Sprintf("No item found for %s", raw)
		} else {
			p.Error = h.message(ctx, err)
		}
		h.render(ctx, statusFor(err), "item.html", p)
		return
	}
	p.Item = dto.NewItemResponse(item)
	p.Title = item.Title
	h.render(ctx, http.StatusOK, "item.html", p)
}

func (h *Handler) Sell(ctx *gin.Context) {
	if !h.gate(ctx) {
		return
	}
	h.render(ctx, http.StatusOK, "sell.html", h.newPage(ctx, "Sell"))
}

func (h *Handler) CreateItem(ctx *gin.Context) {
	if !h.gate(ctx) {
		return
	}
	p := h.newPage(ctx, "Sell")
	var input dto.CreateItemInput
	if err := ctx.ShouldBind(&input); err != nil {
		p.Form = input
		p.Error = dto.Describe(err)
		h.render(ctx, http.StatusBadRequest, "sell.html", p)
		return
	}
	item, err := h.items.Create(ctx.Request.Context(), middlewares.UserFrom(ctx), input)
	if err != nil {
		p.Form = input
		p.Error = h.message(ctx, err)
		h.render(ctx, statusFor(err), "sell.html", p)
		return
	}
	ctx.Redirect(http.StatusSeeOther, "/item?id="+dto.FormatID(item.ID))
}

func (h *Handler) EditItem(ctx *gin.Context) {
	p := h.newPage(ctx, "Edit")
	id, err := dto.ParseID(ctx.Query("id"))
	if err != nil {
		p.Error = constants.ErrInvalidID
		h.render(ctx, http.StatusBadRequest, "update.html", p)
		return
	}
	item, err := h.items.FindById(ctx.Request.Context(), id)
	if err != nil {
		p.Error = h.message(ctx, err)
		h.render(ctx, statusFor(err), "update.html", p)
		return
	}
	p.Item = dto.NewItemResponse(item)
	h.render(ctx, http.StatusOK, "update.html", p)
}

// updateInput reads only the fields present and non-empty in the form.
func updateInput(ctx *gin.Context) (dto.UpdateItemInput, error) {
	var input dto.UpdateItemInput
	if v := ctx.PostForm("title"); v != "" {
		input.Title = &v
	}
	if v := ctx.PostForm("description"); v != "" {
		input.Description = &v
	}
	if v := ctx.PostForm("price"); v != "" {
		price, err := strconv.Atoi(v)
		if err != nil {
			return input, formError("price must be a whole number of cents")
		}
		input.Price = &price
	}
	if v := ctx.PostForm("image"); v != "" {
		input.Image = &v
	}
	if v := ctx.PostForm("largeImage"); v != "" {
		input.LargeImage = &v
	}
	return input, dto.Validate(input)
}

func (h *Handler) UpdateItem(ctx *gin.Context) {
	p := h.newPage(ctx, "Edit")
	id, err := dto.ParseID(ctx.Query("id"))
	if err != nil {
		p.Error = constants.ErrInvalidID
		h.render(ctx, http.StatusBadRequest, "update.html", p)
		return
	}
	c := ctx.Request.Context()

	input, err := updateInput(ctx)
	if err == nil {
		var item *models.Item
		item, err = h.items.Update(c, middlewares.UserFrom(ctx), id, input)
		if err == nil {
			ctx.Redirect(http.StatusSeeOther, "/item?id="+dto.FormatID(item.ID))
			return
		}
	}

	status := statusFor(err)
	p.Error = h.message(ctx, err)
	if current, ferr := h.items.FindById(c, id); ferr == nil {
		p.Item = dto.NewItemResponse(current)
	}
	h.render(ctx, status, "update.html", p)
}

func (h *Handler) DeleteItem(ctx *gin.Context) {
	id, err := dto.ParseID(ctx.PostForm("id"))
	if err != nil {
		err = formError(constants.ErrInvalidID)
	} else if _, err = h.items.Delete(ctx.Request.Context(), middlewares.UserFrom(ctx), id); err == nil {
		ctx.Redirect(http.StatusSeeOther, "/")
		return
	}

	p := h.newPage(ctx, "Shop")
	p.Error = h.message(ctx, err)
	h.firstPage(ctx, p)
	h.render(ctx, statusFor(err), "items.html", p)
}

func (h *Handler) firstPage(ctx *gin.Context, p *page) {
	c := ctx.Request.Context()
	if count, err := h.items.Count(c); err == nil {
		p.Pagination = newPagination(1, services.DefaultPerPage, count)
	}
	if items, err := h.items.FindAll(c, 0, services.DefaultPerPage); err == nil {
		p.Items = dto.NewItemResponses(items)
	}
}

func (h *Handler) SignupPage(ctx *gin.Context) {
	h.render(ctx, http.StatusOK, "signup.html", h.newPage(ctx, "Sign Up"))
}

func (h *Handler) Signup(ctx *gin.Context) {
	p := h.newPage(ctx, "Sign Up")
	var input dto.SignupInput
	if err := ctx.ShouldBind(&input); err != nil {
		p.SignupEmail, p.SignupName = input.Email, input.Name
		p.SignupError = dto.Describe(err)
		h.render(ctx, http.StatusBadRequest, "signup.html", p)
		return
	}
	result, err := h.auth.Signup(ctx.Request.Context(), input)
	if err != nil {
		p.SignupEmail, p.SignupName = input.Email, input.Name
		p.SignupError = h.message(ctx, err)
		h.render(ctx, statusFor(err), "signup.html", p)
		return
	}
	h.signedIn(ctx, result, "/")
}

func (h *Handler) SigninPage(ctx *gin.Context) {
	p := h.newPage(ctx, "Sign In")
	p.Next = ctx.Query("next")
	h.render(ctx, http.StatusOK, "signin.html", p)
}

func (h *Handler) Signin(ctx *gin.Context) {
	p := h.newPage(ctx, "Sign In")
	p.Next = ctx.PostForm("next")
	var input dto.SigninInput
	if err := ctx.ShouldBind(&input); err != nil {
		p.SigninEmail = input.Email
		p.SigninError = dto.Describe(err)
		h.render(ctx, http.StatusBadRequest, "signin.html", p)
		return
	}
	result, err := h.auth.Signin(ctx.Request.Context(), input.Email, input.Password)
	if err != nil {
		p.SigninEmail = input.Email
		p.SigninError = h.message(ctx, err)
		h.render(ctx, statusFor(err), "signin.html", p)
		return
	}
	h.signedIn(ctx, result, p.Next)
}

func (h *Handler) RequestResetPage(ctx *gin.Context) {
	h.render(ctx, http.StatusOK, "request-reset.html", h.newPage(ctx, "Reset"))
}

func (h *Handler) RequestReset(ctx *gin.Context) {
	p := h.newPage(ctx, "Reset")
	var input dto.RequestResetInput
	if err := ctx.ShouldBind(&input); err != nil {
		p.ResetError = dto.Describe(err)
		h.render(ctx, http.StatusBadRequest, "request-reset.html", p)
		return
	}
	if _, err := h.auth.RequestReset(ctx.Request.Context(), input.Email); err != nil {
		p.ResetError = h.message(ctx, err)
		h.render(ctx, statusFor(err), "request-reset.html", p)
		return
	}
	p.ResetSent = true
	h.render(ctx, http.StatusOK, "request-reset.html", p)
}

func (h *Handler) ResetPage(ctx *gin.Context) {
	p := h.newPage(ctx, "Reset Your Password")
	p.ResetToken = ctx.Query("resetToken")
	h.render(ctx, http.StatusOK, "reset.html", p)
}

func (h *Handler) Reset(ctx *gin.Context) {
	p := h.newPage(ctx, "Reset Your Password")
	var input dto.ResetPasswordInput
	if err := ctx.ShouldBind(&input); err != nil {
		p.ResetToken = input.ResetToken
		p.Error = dto.Describe(err)
		h.render(ctx, http.StatusBadRequest, "reset.html", p)
		return
	}
	result, err := h.auth.ResetPassword(ctx.Request.Context(), input)
	if err != nil {
		p.ResetToken = input.ResetToken
		p.Error = h.message(ctx, err)
		h.render(ctx, statusFor(err), "reset.html", p)
		return
	}
	h.signedIn(ctx, result, "/")
}

func (h *Handler) permissionsPage(ctx *gin.Context) *page {
	p := h.newPage(ctx, "Permissions")
	p.AllPermissions = models.Permissions(models.AllPermissions).Strings()
	return p
}

func (h *Handler) Permissions(ctx *gin.Context) {
	if !h.gate(ctx) {
		return
	}
	p := h.permissionsPage(ctx)
	users, err := h.users.List(ctx.Request.Context(), middlewares.UserFrom(ctx))
	if err != nil {
		p.Error = h.message(ctx, err)
		h.render(ctx, statusFor(err), "permissions.html", p)
		return
	}
	p.Users = dto.NewUserResponses(users)
	h.render(ctx, http.StatusOK, "permissions.html", p)
}

func (h *Handler) UpdatePermissions(ctx *gin.Context) {
	if !h.gate(ctx) {
		return
	}
	p := h.permissionsPage(ctx)
	c := ctx.Request.Context()
	caller := middlewares.UserFrom(ctx)

	status := http.StatusOK
	userID, err := dto.ParseID(ctx.PostForm("userId"))
	if err != nil {
		status = http.StatusBadRequest
		p.Error = constants.ErrInvalidID
	} else if updated, err := h.users.UpdatePermissions(c, caller, userID, ctx.PostFormArray("permissions")); err != nil {
		status = statusFor(err)
		p.Error = h.message(ctx, err)
	} else {
		p.Updated = updated.Name
	}

	// A permission change may have removed the caller's own access.
	if users, err := h.users.List(c, caller); err == nil {
		p.Users = dto.NewUserResponses(users)
	}
	h.render(ctx, status, "permissions.html", p)
}

func (h *Handler) Signout(ctx *gin.Context) {
	if _, err := h.auth.Signout(ctx.Request.Context(), middlewares.TokenFrom(ctx)); err != nil {
		h.logger.ErrorContext(ctx.Request.Context(), "signout failed", "error", err)
	}
	h.cookies.Clear(ctx.Writer)
	ctx.Redirect(http.StatusSeeOther, "/")
}
