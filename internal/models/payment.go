package models

import (
	"time"
)

// Payment is an append-only record of a completed checkout.
type Payment struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"_id" bson:"_id"`
	BookingID     string    `gorm:"size:64;not null;index" json:"bookingId" bson:"bookingId"`
	ProductID     string    `gorm:"size:64;not null;index" json:"productId" bson:"productId"`
	Email         string    `gorm:"size:255;index" json:"email,omitempty" bson:"email,omitempty"`
	TransactionID string    `gorm:"size:255;not null" json:"transactionId" bson:"transactionId"`
	Price         float64   `json:"price" bson:"price"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

func (Payment) TableName() string {
	return "payments"
}
