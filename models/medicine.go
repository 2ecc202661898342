package models

import (
	"time"

	"gorm.io/gorm"
)

type Medicine struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string  `gorm:"not null" json:"name"`    // English name
	NameAr        string  `gorm:"not null" json:"name_ar"` // Arabic name
	Description   string  `json:"description"`
	DescriptionAr string  `json:"description_ar"`
	Price         float64 `gorm:"not null" json:"price"`
	Stock         int     `json:"stock"`
	ImageURL      string  `json:"image_url"`
	Category      string  `json:"category"`
	CategoryAr    string  `json:"category_ar"`

	// Optional substitute offered when this medicine is out of stock.
	AlternativeMedicineID *uint     `json:"alternative_medicine_id"`
	Alternative           *Medicine `gorm:"foreignKey:AlternativeMedicineID" json:"alternative,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
