package graph

import (
	"errors"
	"time"

	"sick-fits/constants"
	"sick-fits/dto"
	"sick-fits/logging"
	"sick-fits/metrics"
	"sick-fits/services"
	"sick-fits/session"

	"github.com/graphql-go/graphql"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Resolver binds GraphQL fields to the service layer.
type Resolver struct {
	auth    services.IAuthService
	users   services.IUserService
	items   services.IItemService
	cookies session.Cookies
}

func NewResolver(auth services.IAuthService, users services.IUserService, items services.IItemService, cookies session.Cookies) *Resolver {
	return &Resolver{auth: auth, users: users, items: items, cookies: cookies}
}

var errInvalidInput = errors.New(constants.ErrInvalidInput)

// observe counts the field outcome and replaces internal errors with a
// generic message after logging them.
func observe(fn graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		out, err := fn(p)
		metrics.ObserveField(p.Info.FieldName, err)
		span := trace.SpanFromContext(p.Context)
		span.SetAttributes(attribute.String("graphql.field", p.Info.FieldName))
		if err == nil {
			return out, nil
		}
		span.RecordError(err)
		if services.IsPublic(err) || errors.Is(err, errInvalidInput) {
			return nil, err
		}
		logging.New("graphql").ErrorContext(p.Context, "resolver failed", "field", p.Info.FieldName, "error", err)
		return nil, errors.New(constants.ErrUnexpected)
	}
}

func invalid(err error) error {
	return &inputError{msg: dto.Describe(err)}
}

type inputError struct{ msg string }

func (e *inputError) Error() string        { return e.msg }
func (e *inputError) Is(target error) bool { return target == errInvalidInput }

func stringArg(p graphql.ResolveParams, name string) string {
	s, _ := p.Args[name].(string)
	return s
}

func optionalString(p graphql.ResolveParams, name string) *string {
	if s, ok := p.Args[name].(string); ok {
		return &s
	}
	return nil
}

func optionalInt(p graphql.ResolveParams, name string) *int {
	if n, ok := p.Args[name].(int); ok {
		return &n
	}
	return nil
}

func idArg(p graphql.ResolveParams, name string) (uint, error) {
	id, err := dto.ParseID(stringArg(p, name))
	if err != nil {
		return 0, &inputError{msg: constants.ErrInvalidID}
	}
	return id, nil
}

func (r *Resolver) signedIn(p graphql.ResolveParams, result *services.AuthResult) *dto.UserResponse {
	st := stateFrom(p.Context)
	if st.writer != nil {
		r.cookies.Write(st.writer, result.Session, time.Now())
	}
	st.user = result.User
	st.token = result.Session.Value
	return dto.NewUserResponse(result.User)
}

func (r *Resolver) me(p graphql.ResolveParams) (interface{}, error) {
	user := stateFrom(p.Context).user
	if user == nil {
		return nil, nil
	}
	return dto.NewUserResponse(user), nil
}

func (r *Resolver) itemsList(p graphql.ResolveParams) (interface{}, error) {
	skip, _ := p.Args["skip"].(int)
	first, _ := p.Args["first"].(int)
	items, err := r.items.FindAll(p.Context, skip, first)
	if err != nil {
		return nil, err
	}
	return dto.NewItemResponses(items), nil
}

func (r *Resolver) item(p graphql.ResolveParams) (interface{}, error) {
	id, err := idArg(p, "id")
	if err != nil {
		return nil, err
	}
	item, err := r.items.FindById(p.Context, id)
	if errors.Is(err, services.ErrItemNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return dto.NewItemResponse(item), nil
}

func (r *Resolver) itemsCount(p graphql.ResolveParams) (interface{}, error) {
	count, err := r.items.Count(p.Context)
	if err != nil {
		return nil, err
	}
	return int(count), nil
}

func (r *Resolver) itemUser(p graphql.ResolveParams) (interface{}, error) {
	src, ok := p.Source.(*dto.ItemResponse)
	if !ok {
		return nil, nil
	}
	id, err := dto.ParseID(src.UserID)
	if err != nil {
		return nil, nil
	}
	user, err := r.users.FindByID(p.Context, id)
	if errors.Is(err, services.ErrNoSuchUser) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

func (r *Resolver) usersList(p graphql.ResolveParams) (interface{}, error) {
	users, err := r.users.List(p.Context, stateFrom(p.Context).user)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponses(users), nil
}

func (r *Resolver) createItem(p graphql.ResolveParams) (interface{}, error) {
	input := dto.CreateItemInput{
		Title:       stringArg(p, "title"),
		Description: stringArg(p, "description"),
		Image:       stringArg(p, "image"),
		LargeImage:  stringArg(p, "largeImage"),
	}
	if price := optionalInt(p, "price"); price != nil {
		input.Price = *price
	}
	if err := dto.Validate(input); err != nil {
		return nil, invalid(err)
	}
	item, err := r.items.Create(p.Context, stateFrom(p.Context).user, input)
	if err != nil {
		return nil, err
	}
	return dto.NewItemResponse(item), nil
}

func (r *Resolver) updateItem(p graphql.ResolveParams) (interface{}, error) {
	id, err := idArg(p, "id")
	if err != nil {
		return nil, err
	}
	// Everything but the id is the update payload.
	input := dto.UpdateItemInput{
		Title:       optionalString(p, "title"),
		Description: optionalString(p, "description"),
		Price:       optionalInt(p, "price"),
		Image:       optionalString(p, "image"),
		LargeImage:  optionalString(p, "largeImage"),
	}
	if err := dto.Validate(input); err != nil {
		return nil, invalid(err)
	}
	item, err := r.items.Update(p.Context, stateFrom(p.Context).user, id, input)
	if err != nil {
		return nil, err
	}
	return dto.NewItemResponse(item), nil
}

func (r *Resolver) deleteItem(p graphql.ResolveParams) (interface{}, error) {
	id, err := idArg(p, "id")
	if err != nil {
		return nil, err
	}
	item, err := r.items.Delete(p.Context, stateFrom(p.Context).user, id)
	if err != nil {
		return nil, err
	}
	return dto.NewItemResponse(item), nil
}

func (r *Resolver) requestImageUpload(p graphql.ResolveParams) (interface{}, error) {
	input := dto.ImageUploadInput{ContentType: stringArg(p, "contentType")}
	if err := dto.Validate(input); err != nil {
		return nil, invalid(err)
	}
	return r.items.RequestImageUpload(p.Context, stateFrom(p.Context).user, input.ContentType)
}

func (r *Resolver) signup(p graphql.ResolveParams) (interface{}, error) {
	input := dto.SignupInput{
		Email:    stringArg(p, "email"),
		Name:     stringArg(p, "name"),
		Password: stringArg(p, "password"),
	}
	if err := dto.Validate(input); err != nil {
		return nil, invalid(err)
	}
	result, err := r.auth.Signup(p.Context, input)
	if err != nil {
		return nil, err
	}
	return r.signedIn(p, result), nil
}

func (r *Resolver) signin(p graphql.ResolveParams) (interface{}, error) {
	result, err := r.auth.Signin(p.Context, stringArg(p, "email"), stringArg(p, "password"))
	if err != nil {
		return nil, err
	}
	return r.signedIn(p, result), nil
}

func (r *Resolver) signout(p graphql.ResolveParams) (interface{}, error) {
	st := stateFrom(p.Context)
	message, err := r.auth.Signout(p.Context, st.token)
	if st.writer != nil {
		r.cookies.Clear(st.writer)
	}
	st.user = nil
	st.token = ""
	if err != nil {
		return nil, err
	}
	return dto.MessageResponse{Message: message}, nil
}

func (r *Resolver) requestReset(p graphql.ResolveParams) (interface{}, error) {
	message, err := r.auth.RequestReset(p.Context, stringArg(p, "email"))
	if err != nil {
		return nil, err
	}
	return dto.MessageResponse{Message: message}, nil
}

func (r *Resolver) resetPassword(p graphql.ResolveParams) (interface{}, error) {
	input := dto.ResetPasswordInput{
		ResetToken:      stringArg(p, "resetToken"),
		Password:        stringArg(p, "password"),
		ConfirmPassword: stringArg(p, "confirmPassword"),
	}
	if err := dto.Validate(input); err != nil {
		return nil, invalid(err)
	}
	result, err := r.auth.ResetPassword(p.Context, input)
	if err != nil {
		return nil, err
	}
	return r.signedIn(p, result), nil
}

func (r *Resolver) updatePermissions(p graphql.ResolveParams) (interface{}, error) {
	userID, err := idArg(p, "userId")
	if err != nil {
		return nil, err
	}
	var permissions []string
	if raw, ok := p.Args["permissions"].([]interface{}); ok {
		for _, v := range raw {
			if s, ok := v.(string); ok {
				permissions = append(permissions, s)
			}
		}
	}
	user, err := r.users.UpdatePermissions(p.Context, stateFrom(p.Context).user, userID, permissions)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}
