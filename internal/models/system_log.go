package models

import (
	"time"

	"gorm.io/datatypes"
)

// SystemLog stores ERROR-level log records so failed partial writes
// (payment completion, seller cascade) can be audited after the fact.
type SystemLog struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"_id"`
	Timestamp time.Time      `gorm:"not null;index" json:"timestamp"`
	Level     string         `gorm:"size:10;not null;index" json:"level"`
	Message   string         `gorm:"type:text" json:"message"`
	RequestID string         `gorm:"size:36;index" json:"requestId"`
	Email     string         `gorm:"size:255" json:"email"`
	Step      string         `gorm:"size:100" json:"step"`
	Error     string         `gorm:"type:text" json:"error"`
	Extra     datatypes.JSON `gorm:"type:jsonb" json:"extra"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (SystemLog) TableName() string {
	return "system_logs"
}
