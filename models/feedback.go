package models

import "time"

type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Feedback  string    `gorm:"not null" json:"feedback"`
	Rating    int       `gorm:"not null" json:"rating"` // 1..5
	CreatedAt time.Time `json:"created_at"`
}
