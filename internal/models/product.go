package models

import (
	"time"
)

const (
	SalesAvailable = "available"
	SalesSold      = "sold"
)

type Product struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"_id" bson:"_id"`
	Name          string    `gorm:"not null;size:255" json:"name" bson:"name"`
	Image         string    `gorm:"size:1024" json:"image" bson:"image"`
	Location      string    `gorm:"size:255" json:"location" bson:"location"`
	ResalePrice   float64   `json:"resalePrice" bson:"resalePrice"`
	OriginalPrice float64   `json:"originalPrice" bson:"originalPrice"`
	YearsOfUse    float64   `json:"yearsOfUse" bson:"yearsOfUse"`
	Condition     string    `gorm:"size:50" json:"condition" bson:"condition"`
	Description   string    `gorm:"type:text" json:"description" bson:"description"`
	Phone         string    `gorm:"size:50" json:"phone" bson:"phone"`
	SellerName    string    `gorm:"size:255" json:"sellerName" bson:"sellerName"`
	SellerEmail   string    `gorm:"not null;size:255;index" json:"sellerEmail" bson:"sellerEmail"`
	CategoryID    string    `gorm:"size:64;index" json:"categoryId" bson:"categoryId"`
	Verify        bool      `gorm:"default:false" json:"verify" bson:"verify"`
	Advertise     bool      `gorm:"default:false;index" json:"advertise" bson:"advertise"`
	SalesStatus   string    `gorm:"size:20;default:'available';index" json:"sales_status" bson:"sales_status"`
	PostedAt      time.Time `json:"postedAt" bson:"postedAt"`
}

func (Product) TableName() string {
	return "products"
}

// Advertisable reports whether the product may be shown in the advertised
// carousel. Sold products never qualify.
func (p *Product) Advertisable() bool {
	return p.Advertise && p.SalesStatus == SalesAvailable
}
