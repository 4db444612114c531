package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"growcoach_backend/internal/models"
)

type TokenBlacklistRepository interface {
	Add(jti string, expiresAt time.Time) error
	IsBlacklisted(jti string) (bool, error)
	DeleteExpired(now time.Time) (int64, error)
}

type TokenBlacklistRepositoryImpl struct {
	db *gorm.DB
}

func NewTokenBlacklistRepository(db *gorm.DB) TokenBlacklistRepository {
	return &TokenBlacklistRepositoryImpl{db: db}
}

func (r *TokenBlacklistRepositoryImpl) Add(jti string, expiresAt time.Time) error {
	err := r.db.Create(&models.BlacklistedToken{
		JTI:       jti,
		ExpiresAt: expiresAt,
	}).Error
	// Revoking an already revoked token is a no-op.
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

func (r *TokenBlacklistRepositoryImpl) IsBlacklisted(jti string) (bool, error) {
	var count int64
	err := r.db.Model(&models.BlacklistedToken{}).Where("jti = ?", jti).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *TokenBlacklistRepositoryImpl) DeleteExpired(now time.Time) (int64, error) {
	result := r.db.Where("expires_at < ?", now).Delete(&models.BlacklistedToken{})
	return result.RowsAffected, result.Error
}
