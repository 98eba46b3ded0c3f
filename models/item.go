package models

import "gorm.io/gorm"

type Item struct {
	gorm.Model
	Title       string `gorm:"not null"`
	Description string `gorm:"not null"`
	Image       string
	LargeImage  string
	Price       int  `gorm:"not null"`
	UserID      uint `gorm:"not null;index"`
}

func (i *Item) OwnedBy(user *User) bool {
	return user != nil && i.UserID == user.ID
}
