package repositories

import (
	"context"

	"sick-fits/models"

	"gorm.io/gorm"
)

type IItemRepository interface {
	FindAll(ctx context.Context, offset int, limit int) ([]models.Item, error)
	Count(ctx context.Context) (int64, error)
	FindById(ctx context.Context, itemID uint) (*models.Item, error)
	Create(ctx context.Context, newItem models.Item) (*models.Item, error)
	Update(ctx context.Context, itemID uint, updates map[string]interface{}) (*models.Item, error)
	Delete(ctx context.Context, itemID uint) error
}

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) IItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Create(ctx context.Context, newItem models.Item) (*models.Item, error) {
	result := r.db.WithContext(ctx).Create(&newItem)
	if result.Error != nil {
		return nil, result.Error
	}
	return &newItem, nil
}

func (r *ItemRepository) Delete(ctx context.Context, itemID uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Item{}, "id = ?", itemID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindAll returns items newest first. A non-positive limit means no limit.
func (r *ItemRepository) FindAll(ctx context.Context, offset int, limit int) ([]models.Item, error) {
	var items []models.Item
	query := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}
	result := query.Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}

func (r *ItemRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.Item{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func (r *ItemRepository) FindById(ctx context.Context, itemID uint) (*models.Item, error) {
	var item models.Item
	result := r.db.WithContext(ctx).First(&item, "id = ?", itemID)
	if result.Error != nil {
		return nil, translate(result.Error)
	}
	return &item, nil
}

func (r *ItemRepository) Update(ctx context.Context, itemID uint, updates map[string]interface{}) (*models.Item, error) {
	if len(updates) > 0 {
		result := r.db.WithContext(ctx).Model(&models.Item{}).
			Where("id = ?", itemID).
			Updates(updates)

		if result.Error != nil {
			return nil, result.Error
		}

		if result.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}

	return r.FindById(ctx, itemID)
}
