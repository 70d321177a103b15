package models

import (
	"time"
)

// ReportedProduct flags a listing for admin review.
type ReportedProduct struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"_id" bson:"_id"`
	ProductID     string    `gorm:"size:64;not null;index" json:"productId" bson:"productId"`
	ProductName   string    `gorm:"size:255" json:"productName" bson:"productName"`
	ReporterEmail string    `gorm:"size:255" json:"reporterEmail,omitempty" bson:"reporterEmail,omitempty"`
	SellerEmail   string    `gorm:"size:255" json:"sellerEmail,omitempty" bson:"sellerEmail,omitempty"`
	Reason        string    `gorm:"size:500" json:"reason,omitempty" bson:"reason,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

func (ReportedProduct) TableName() string {
	return "reported_products"
}
