package dto

import (
	"strconv"
	"time"

	"sick-fits/models"
)

type UserResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Permissions []string `json:"permissions"`
}

type ItemResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	LargeImage  string    `json:"largeImage"`
	Price       int       `json:"price"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func FormatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseID parses an identifier coming from a client.
func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, strconv.ErrSyntax
	}
	return uint(id), nil
}

func NewUserResponse(u *models.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:          FormatID(u.ID),
		Name:        u.Name,
		Email:       u.Email,
		Permissions: u.Permissions.Strings(),
	}
}

func NewUserResponses(users []models.User) []*UserResponse {
	out := make([]*UserResponse, len(users))
	for i := range users {
		out[i] = NewUserResponse(&users[i])
	}
	return out
}

func NewItemResponse(i *models.Item) *ItemResponse {
	if i == nil {
		return nil
	}
	return &ItemResponse{
		ID:          FormatID(i.ID),
		Title:       i.Title,
		Description: i.Description,
		Image:       i.Image,
		LargeImage:  i.LargeImage,
		Price:       i.Price,
		UserID:      FormatID(i.UserID),
		CreatedAt:   i.CreatedAt,
	}
}

func NewItemResponses(items []models.Item) []*ItemResponse {
	out := make([]*ItemResponse, len(items))
	for i := range items {
		out[i] = NewItemResponse(&items[i])
	}
	return out
}
