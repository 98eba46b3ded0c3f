package dto

type CreateItemInput struct {
	Title       string `json:"title" form:"title" binding:"required,max=200"`
	Description string `json:"description" form:"description" binding:"required"`
	Price       int    `json:"price" form:"price" binding:"gte=0"`
	Image       string `json:"image" form:"image" binding:"omitempty,url"`
	LargeImage  string `json:"largeImage" form:"largeImage" binding:"omitempty,url"`
}

// UpdateItemInput carries only the fields being changed; nil means keep.
type UpdateItemInput struct {
	Title       *string `json:"title" form:"title" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" form:"description" binding:"omitempty,min=1"`
	Price       *int    `json:"price" form:"price" binding:"omitempty,gte=0"`
	Image       *string `json:"image" form:"image" binding:"omitempty,url"`
	LargeImage  *string `json:"largeImage" form:"largeImage" binding:"omitempty,url"`
}

type ImageUploadInput struct {
	ContentType string `json:"contentType" form:"contentType" binding:"required,oneof=image/jpeg image/png image/gif image/webp"`
}
