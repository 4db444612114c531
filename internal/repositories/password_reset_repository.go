package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"growcoach_backend/internal/models"
)

var ErrResetCodeNotFound = errors.New("reset code not found")

type PasswordResetRepository interface {
	// Upsert replaces any existing code for the email so only the most
	// recent request is honored.
	Upsert(code *models.PasswordResetCode) error
	FindByEmail(email string) (*models.PasswordResetCode, error)
	DeleteByEmail(email string) error
	DeleteExpired(now time.Time) (int64, error)
}

type PasswordResetRepositoryImpl struct {
	db *gorm.DB
}

func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &PasswordResetRepositoryImpl{db: db}
}

func (r *PasswordResetRepositoryImpl) Upsert(code *models.PasswordResetCode) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "created_at", "expires_at"}),
	}).Create(code).Error
}

func (r *PasswordResetRepositoryImpl) FindByEmail(email string) (*models.PasswordResetCode, error) {
	var code models.PasswordResetCode
	err := r.db.First(&code, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResetCodeNotFound
		}
		return nil, err
	}
	return &code, nil
}

func (r *PasswordResetRepositoryImpl) DeleteByEmail(email string) error {
	return r.db.Where("email = ?", email).Delete(&models.PasswordResetCode{}).Error
}

func (r *PasswordResetRepositoryImpl) DeleteExpired(now time.Time) (int64, error) {
	result := r.db.Where("expires_at < ?", now).Delete(&models.PasswordResetCode{})
	return result.RowsAffected, result.Error
}
