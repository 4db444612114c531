package repositories

import (
	"errors"

	"gorm.io/gorm"

	"growcoach_backend/internal/models"
)

var (
	ErrCandidateProfileNotFound = errors.New("candidate profile not found")
	ErrCompanyProfileNotFound   = errors.New("company profile not found")
)

type CandidateProfileRepository interface {
	FindByUserID(userID string) (*models.CandidateProfile, error)
	Create(profile *models.CandidateProfile) error
	Update(profile *models.CandidateProfile) error
	UpdateFields(userID string, fields map[string]interface{}) error
}

type CandidateProfileRepositoryImpl struct {
	db *gorm.DB
}

func NewCandidateProfileRepository(db *gorm.DB) CandidateProfileRepository {
	return &CandidateProfileRepositoryImpl{db: db}
}

func (r *CandidateProfileRepositoryImpl) FindByUserID(userID string) (*models.CandidateProfile, error) {
	var profile models.CandidateProfile
	err := r.db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCandidateProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *CandidateProfileRepositoryImpl) Create(profile *models.CandidateProfile) error {
	return r.db.Create(profile).Error
}

func (r *CandidateProfileRepositoryImpl) Update(profile *models.CandidateProfile) error {
	return r.db.Save(profile).Error
}

func (r *CandidateProfileRepositoryImpl) UpdateFields(userID string, fields map[string]interface{}) error {
	result := r.db.Model(&models.CandidateProfile{}).Where("user_id = ?", userID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCandidateProfileNotFound
	}
	return nil
}

type CompanyProfileRepository interface {
	FindByUserID(userID string) (*models.CompanyProfile, error)
	Create(profile *models.CompanyProfile) error
	Update(profile *models.CompanyProfile) error
	SetVerified(userID string, verified bool) error
}

type CompanyProfileRepositoryImpl struct {
	db *gorm.DB
}

func NewCompanyProfileRepository(db *gorm.DB) CompanyProfileRepository {
	return &CompanyProfileRepositoryImpl{db: db}
}

func (r *CompanyProfileRepositoryImpl) FindByUserID(userID string) (*models.CompanyProfile, error) {
	var profile models.CompanyProfile
	err := r.db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *CompanyProfileRepositoryImpl) Create(profile *models.CompanyProfile) error {
	return r.db.Create(profile).Error
}

func (r *CompanyProfileRepositoryImpl) Update(profile *models.CompanyProfile) error {
	return r.db.Save(profile).Error
}

func (r *CompanyProfileRepositoryImpl) SetVerified(userID string, verified bool) error {
	result := r.db.Model(&models.CompanyProfile{}).Where("user_id = ?", userID).Update("verified", verified)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCompanyProfileNotFound
	}
	return nil
}
