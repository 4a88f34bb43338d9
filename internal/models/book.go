package models

import "gorm.io/gorm"

// Book represents a title in the store catalog.
type Book struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string  `json:"title" gorm:"type:varchar(200)" validate:"required,min=1,max=200"`
	Author      string  `json:"author" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	Category    string  `json:"category" gorm:"index;type:varchar(100)" validate:"omitempty,max=100"`
	Description string  `json:"description" validate:"omitempty,max=2000"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	ImageURL    string  `json:"image_url" validate:"omitempty,max=500"`
	gorm.Model          // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
