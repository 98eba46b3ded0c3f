package repositories

import (
	"context"
	"strings"
	"time"

	"sick-fits/models"

	"gorm.io/gorm"
)

type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	SetResetToken(ctx context.Context, userID uint, token string, expiresAt time.Time) error
	ConsumeResetToken(ctx context.Context, userID uint, token string, passwordHash string) error
	UpdatePermissions(ctx context.Context, userID uint, permissions models.Permissions) (*models.User, error)
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) IUserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	result := r.db.WithContext(ctx).Create(user)
	return translate(result.Error)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).First(&user, "email = ?", strings.ToLower(email))
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).First(&user, "id = ?", id)
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	return &user, nil
}

// FindByResetToken returns the user holding token only while the token has
// not expired at now.
func (r *UserRepository) FindByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).
		Where("reset_token = ? AND reset_token_expiry > ?", token, now).
		First(&user)
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	result := r.db.WithContext(ctx).Order("id").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, userID uint, token string, expiresAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"reset_token":        token,
			"reset_token_expiry": expiresAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ConsumeResetToken stores the new password hash and clears the reset token
// in one conditional update. It fails with ErrNotFound when the token was
// already consumed by someone else.
func (r *UserRepository) ConsumeResetToken(ctx context.Context, userID uint, token string, passwordHash string) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND reset_token = ?", userID, token).
		Updates(map[string]interface{}{
			"password":           passwordHash,
			"reset_token":        nil,
			"reset_token_expiry": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePermissions(ctx context.Context, userID uint, permissions models.Permissions) (*models.User, error) {
	user, err := r.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Permissions = permissions
	if err := r.db.WithContext(ctx).Model(user).Select("permissions").Updates(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
