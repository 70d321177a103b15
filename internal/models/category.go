package models

// Category is static reference data grouping products.
type Category struct {
	ID    string `gorm:"type:uuid;primaryKey" json:"_id" bson:"_id"`
	Name  string `gorm:"not null;size:100;uniqueIndex" json:"name" bson:"name"`
	Image string `gorm:"size:1024" json:"image,omitempty" bson:"image,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}
