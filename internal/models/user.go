package models

import (
	"time"
)

const (
	RoleAdmin = "admin"

	AccountBuyer  = "buyer"
	AccountSeller = "seller"
)

// User is a marketplace account. Identity is established client-side; the
// backend only stores profile, role and account type keyed by email.
type User struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"_id" bson:"_id"`
	Name        string    `gorm:"size:255" json:"name" bson:"name"`
	Email       string    `gorm:"not null;size:255;uniqueIndex" json:"email" bson:"email"`
	PhotoURL    string    `gorm:"size:1024" json:"photoURL,omitempty" bson:"photoURL,omitempty"`
	Role        string    `gorm:"size:20;index" json:"role,omitempty" bson:"role,omitempty"`
	AccountType string    `gorm:"size:20;index" json:"accountType" bson:"accountType"`
	Verify      bool      `gorm:"default:false" json:"verify" bson:"verify"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

func (u *User) IsSeller() bool {
	return u != nil && u.AccountType == AccountSeller
}
