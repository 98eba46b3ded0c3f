package services

import (
	"context"
	"errors"

	"sick-fits/dto"
	"sick-fits/models"
	"sick-fits/repositories"
	"sick-fits/storage"
)

const (
	DefaultPerPage = 4
	MaxPerPage     = 100
)

type IItemService interface {
	FindAll(ctx context.Context, skip int, first int) ([]models.Item, error)
	Count(ctx context.Context) (int64, error)
	FindById(ctx context.Context, itemID uint) (*models.Item, error)
	Create(ctx context.Context, caller *models.User, input dto.CreateItemInput) (*models.Item, error)
	Update(ctx context.Context, caller *models.User, itemID uint, input dto.UpdateItemInput) (*models.Item, error)
	Delete(ctx context.Context, caller *models.User, itemID uint) (*models.Item, error)
	RequestImageUpload(ctx context.Context, caller *models.User, contentType string) (*storage.Upload, error)
}

type ItemService struct {
	repository repositories.IItemRepository
	users      repositories.IUserRepository
	images     storage.ImageStore
}

// NewItemService builds the item service. images may be nil, which disables
// image uploads.
func NewItemService(repository repositories.IItemRepository, users repositories.IUserRepository, images storage.ImageStore) IItemService {
	return &ItemService{repository: repository, users: users, images: images}
}

func (s *ItemService) FindAll(ctx context.Context, skip int, first int) ([]models.Item, error) {
	if skip < 0 {
		skip = 0
	}
	if first <= 0 {
		first = DefaultPerPage
	}
	if first > MaxPerPage {
		first = MaxPerPage
	}
	return s.repository.FindAll(ctx, skip, first)
}

func (s *ItemService) Count(ctx context.Context) (int64, error) {
	return s.repository.Count(ctx)
}

func (s *ItemService) FindById(ctx context.Context, itemID uint) (*models.Item, error) {
	item, err := s.repository.FindById(ctx, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// actor re-reads the caller's current record, including permissions.
func (s *ItemService) actor(ctx context.Context, caller *models.User) (*models.User, error) {
	if caller == nil {
		return nil, ErrNotLoggedIn
	}
	current, err := s.users.FindByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotLoggedIn
		}
		return nil, err
	}
	return current, nil
}

func (s *ItemService) Create(ctx context.Context, caller *models.User, input dto.CreateItemInput) (*models.Item, error) {
	if caller == nil {
		return nil, ErrNotLoggedIn
	}
	newItem := models.Item{
		Title:       input.Title,
		Description: input.Description,
		Image:       input.Image,
		LargeImage:  input.LargeImage,
		Price:       input.Price,
		UserID:      caller.ID,
	}
	return s.repository.Create(ctx, newItem)
}

// Update applies the provided fields. The item id is only ever the lookup
// key, never part of the written columns.
func (s *ItemService) Update(ctx context.Context, caller *models.User, itemID uint, input dto.UpdateItemInput) (*models.Item, error) {
	current, err := s.actor(ctx, caller)
	if err != nil {
		return nil, err
	}
	targetItem, err := s.FindById(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !canModify(current, targetItem, models.PermissionItemUpdate) {
		return nil, ErrNoPermission
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}
	if input.Image != nil {
		updates["image"] = *input.Image
	}
	if input.LargeImage != nil {
		updates["large_image"] = *input.LargeImage
	}
	return s.repository.Update(ctx, itemID, updates)
}

func (s *ItemService) Delete(ctx context.Context, caller *models.User, itemID uint) (*models.Item, error) {
	current, err := s.actor(ctx, caller)
	if err != nil {
		return nil, err
	}
	item, err := s.FindById(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !canModify(current, item, models.PermissionItemDelete) {
		return nil, ErrNoPermission
	}
	if err := s.repository.Delete(ctx, itemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *ItemService) RequestImageUpload(ctx context.Context, caller *models.User, contentType string) (*storage.Upload, error) {
	if caller == nil {
		return nil, ErrNotLoggedIn
	}
	if s.images == nil {
		return nil, ErrUploadsDisabled
	}
	return s.images.PresignUpload(ctx, contentType)
}

// canModify allows the owner, an ADMIN, or a holder of the operation's
// dedicated permission. Everyone else is denied.
func canModify(user *models.User, item *models.Item, perm models.Permission) bool {
	if item.OwnedBy(user) {
		return true
	}
	return user.Can(models.PermissionAdmin, perm)
}
