package services

import (
	"context"
	"errors"
	"fmt"

	"sick-fits/logging"
	"sick-fits/models"
	"sick-fits/repositories"
)

type IUserService interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context, caller *models.User) ([]models.User, error)
	UpdatePermissions(ctx context.Context, caller *models.User, userID uint, permissions []string) (*models.User, error)
	Grant(ctx context.Context, email string, permissions []string) (*models.User, error)
}

type UserService struct {
	repository repositories.IUserRepository
}

func NewUserService(repository repositories.IUserRepository) IUserService {
	return &UserService{repository: repository}
}

var permissionManagers = []models.Permission{models.PermissionAdmin, models.PermissionPermissionUpdate}

// authorize re-reads the caller so a permission revoked since the session
// began takes effect immediately.
func (s *UserService) authorize(ctx context.Context, caller *models.User, perms ...models.Permission) (*models.User, error) {
	if caller == nil {
		return nil, ErrNotLoggedIn
	}
	current, err := s.repository.FindByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotLoggedIn
		}
		return nil, err
	}
	if !current.Can(perms...) {
		return nil, ErrNoPermission
	}
	return current, nil
}

func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoSuchUser
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, caller *models.User) ([]models.User, error) {
	if _, err := s.authorize(ctx, caller, permissionManagers...); err != nil {
		return nil, err
	}
	return s.repository.List(ctx)
}

func (s *UserService) UpdatePermissions(ctx context.Context, caller *models.User, userID uint, permissions []string) (*models.User, error) {
	current, err := s.authorize(ctx, caller, permissionManagers...)
	if err != nil {
		return nil, err
	}

	perms, err := models.ParsePermissions(permissions)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPermission, err)
	}

	updated, err := s.repository.UpdatePermissions(ctx, userID, perms)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoSuchUser
		}
		return nil, err
	}
	logging.New("users").InfoContext(ctx, "permissions updated",
		"by", current.ID, "user_id", updated.ID, "permissions", updated.Permissions.Strings())
	return updated, nil
}

// Grant sets permissions without a caller check. It backs the operator CLI
// used to create the first administrator.
func (s *UserService) Grant(ctx context.Context, email string, permissions []string) (*models.User, error) {
	perms, err := models.ParsePermissions(permissions)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPermission, err)
	}
	user, err := s.repository.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, noSuchUser(email)
		}
		return nil, err
	}
	return s.repository.UpdatePermissions(ctx, user.ID, perms)
}
