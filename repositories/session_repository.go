package repositories

import (
	"context"
	"time"

	"sick-fits/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ISessionRepository interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	PruneExpired(ctx context.Context, now time.Time) (int64, error)
}

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) ISessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	revoked := models.RevokedSession{
		TokenID:   tokenID,
		ExpiresAt: expiresAt.Unix(),
	}
	// Signing out twice with the same token is not an error.
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "token_id"}}, DoNothing: true}).
		Create(&revoked)
	return result.Error
}

func (r *SessionRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.RevokedSession{}).
		Where("token_id = ?", tokenID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

func (r *SessionRepository) PruneExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Unscoped().
		Where("expires_at < ?", now.Unix()).
		Delete(&models.RevokedSession{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
