package models

import "time"

// PasswordResetCode holds the 6-digit one-time code for a reset request.
// Email is the unique key: a new request overwrites the previous row, so
// at most one code is active per address at any time.
type PasswordResetCode struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Code      string    `gorm:"type:varchar(6);not null" json:"-"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

func (c *PasswordResetCode) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// BlacklistedToken stores the JTI of a revoked access token until the
// token would have expired anyway.
type BlacklistedToken struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	JTI       string    `gorm:"column:jti;uniqueIndex;not null" json:"jti"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
}
