package models

import "gorm.io/gorm"

// RevokedSession records a signed-out session token id until the token
// would have expired on its own.
type RevokedSession struct {
	gorm.Model
	TokenID   string `gorm:"not null;uniqueIndex"`
	ExpiresAt int64  `gorm:"not null;index"`
}
