package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification is a pending moderation event surfaced on the admin
// dashboard. It is removed once the admin approves or rejects it.
type Notification struct {
	BaseModel
	Type      NotificationType `gorm:"type:varchar(40);not null" json:"type"`
	Text      string           `gorm:"not null" json:"text"`
	SubjectID string           `gorm:"type:uuid;not null;index" json:"subject_id"`
	Data      datatypes.JSON   `gorm:"type:jsonb" json:"data"`
	Unread    bool             `gorm:"default:true" json:"unread"`
	ReadAt    *time.Time       `json:"read_at,omitempty"`
}
