package models

import "time"

// RareMedicineRequest records a user asking the pharmacy to source a medicine
// that is not in the catalog. Name and phone are copied from the
// authenticated user at submission time.
type RareMedicineRequest struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Phone        string    `gorm:"not null" json:"phone"`
	Address      string    `gorm:"not null" json:"address"`
	MedicineName string    `gorm:"not null" json:"medicine_name"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	CreatedAt    time.Time `json:"created_at"`
}

func (RareMedicineRequest) TableName() string {
	return "rare_medicines_requests"
}
