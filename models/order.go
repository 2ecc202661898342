package models

import "time"

type OrderStatus string
type PaymentMethod string

const (
	// Order statuses only move forward: pending -> completed | payment_failed.
	OrderStatusPending       OrderStatus = "pending"
	OrderStatusCompleted     OrderStatus = "completed"
	OrderStatusPaymentFailed OrderStatus = "payment_failed"

	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
)

type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	UserID        uint          `gorm:"not null;index" json:"user_id"`
	Address       string        `gorm:"not null" json:"address"`
	PaymentMethod PaymentMethod `gorm:"type:VARCHAR(10);not null" json:"payment_method"`
	TotalPrice    float64       `gorm:"not null" json:"total_price"`
	Status        OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	Items         []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt     time.Time     `json:"created_at"`
}

// OrderItem snapshots the medicine name (both locales) and the catalog price
// at the moment of checkout. Later catalog edits never touch these rows.
type OrderItem struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	OrderID        uint          `gorm:"index" json:"order_id"`
	MedicineName   string        `gorm:"not null" json:"medicine_name"`
	MedicineNameAr string        `json:"medicine_name_ar"`
	Quantity       int           `gorm:"not null" json:"quantity"`
	Price          float64       `gorm:"not null" json:"price"`
	PaymentMethod  PaymentMethod `gorm:"type:VARCHAR(10)" json:"payment_method"`
}
