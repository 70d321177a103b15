package models

// BookingProduct is a buyer's reservation of a product, paid later through
// the payment flow.
type BookingProduct struct {
	ID            string  `gorm:"type:uuid;primaryKey" json:"_id" bson:"_id"`
	Name          string  `gorm:"size:255" json:"name" bson:"name"`
	Email         string  `gorm:"not null;size:255;index" json:"email" bson:"email"`
	Phone         string  `gorm:"size:50" json:"phone" bson:"phone"`
	Location      string  `gorm:"size:255" json:"location" bson:"location"`
	ProductID     string  `gorm:"size:64;index" json:"productId" bson:"productId"`
	ProductName   string  `gorm:"size:255" json:"productName" bson:"productName"`
	Image         string  `gorm:"size:1024" json:"image" bson:"image"`
	Price         float64 `json:"price" bson:"price"`
	Paid          bool    `gorm:"default:false" json:"paid" bson:"paid"`
	TransactionID string  `gorm:"size:255" json:"transactionId,omitempty" bson:"transactionId,omitempty"`
}

func (BookingProduct) TableName() string {
	return "booking_products"
}
