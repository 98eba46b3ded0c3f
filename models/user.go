package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name             string      `gorm:"not null"`
	Email            string      `gorm:"not null;uniqueIndex"`
	Password         string      `gorm:"not null" json:"-"`
	Permissions      Permissions `gorm:"serializer:json;type:text;not null"`
	ResetToken       *string     `gorm:"index" json:"-"`
	ResetTokenExpiry *time.Time  `json:"-"`
	Items            []Item      `gorm:"constraint:OnDelete:CASCADE;"`
}

// Can reports whether the user holds any of the given permissions.
func (u *User) Can(perms ...Permission) bool {
	if u == nil {
		return false
	}
	return u.Permissions.HasAny(perms...)
}
