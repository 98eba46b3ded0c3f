package migrations

import (
	"sick-fits/models"

	"gorm.io/gorm"
)

// Run creates or updates every table the application uses.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Item{}, &models.RevokedSession{})
}
