// payment.go - Local record of a Creem.io checkout

package models

import "time"

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
)

type Payment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"index;not null;size:64" json:"userId"`
	CheckoutID string    `gorm:"uniqueIndex;not null" json:"checkoutId"`
	OrderID    string    `json:"orderId"`
	ProductID  string    `json:"productId"`
	RequestID  string    `gorm:"index" json:"requestId"`
	Amount     int64     `json:"amount"` // minor units
	Currency   string    `json:"currency"`
	Status     string    `gorm:"default:'pending'" json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
