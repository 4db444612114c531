package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"growcoach_backend/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserFilter narrows the admin user listing.
type UserFilter struct {
	Role     models.UserRole
	Status   models.UserStatus
	Verified *bool // company verification flag
	Search   string
	Page     int
	PageSize int
}

// UserStats feeds the admin dashboard counters.
type UserStats struct {
	TotalCandidates   int64 `json:"total_candidates"`
	ActiveCandidates  int64 `json:"active_candidates"`
	PendingCandidates int64 `json:"pending_candidates"`
	BlockedCandidates int64 `json:"blocked_candidates"`
	TotalCompanies    int64 `json:"total_companies"`
	VerifiedCompanies int64 `json:"verified_companies"`
	BlockedCompanies  int64 `json:"blocked_companies"`
	TotalJobs         int64 `json:"total_jobs"`
	TotalApplications int64 `json:"total_applications"`
	RecentSignups     int64 `json:"recent_signups"`
}

type UserRepository interface {
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	UpdateStatus(userID string, status models.UserStatus) error
	UpdatePassword(userID string, passwordHash string) error
	Delete(userID string) error
	FindWithFilter(filter UserFilter) ([]models.User, int64, error)
	CountByRole(role models.UserRole) (int64, error)
	GetStats() (*UserStats, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("CandidateProfile").Preload("CompanyProfile").
		First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("CandidateProfile").Preload("CompanyProfile").
		First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	var existing models.User
	if err := r.db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}

	return r.db.Create(user).Error
}

func (r *UserRepositoryImpl) UpdateStatus(userID string, status models.UserStatus) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdatePassword(userID string, passwordHash string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"password_hash": passwordHash,
		"updated_at":    time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes the user and everything hanging off the account.
func (r *UserRepositoryImpl) Delete(userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if err := tx.Where("candidate_id = ?", userID).Delete(&models.JobApplication{}).Error; err != nil {
			return err
		}

		// A company account takes its jobs and their applications along.
		var jobIDs []string
		if err := tx.Model(&models.Job{}).Where("company_id = ?", userID).Pluck("id", &jobIDs).Error; err != nil {
			return err
		}
		if len(jobIDs) > 0 {
			if err := tx.Where("job_id IN ?", jobIDs).Delete(&models.JobApplication{}).Error; err != nil {
				return err
			}
			if err := tx.Where("company_id = ?", userID).Delete(&models.Job{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("subject_id = ?", userID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		// A live reset code must not outlast the account it was issued for.
		if err := tx.Where("email = ?", user.Email).Delete(&models.PasswordResetCode{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.CandidateProfile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.CompanyProfile{}).Error; err != nil {
			return err
		}

		return tx.Delete(&user).Error
	})
}

func (r *UserRepositoryImpl) FindWithFilter(filter UserFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{}).
		Preload("CandidateProfile").Preload("CompanyProfile")

	if filter.Role != "" {
		query = query.Where("users.role = ?", filter.Role)
	}
	if filter.Status != "" {
		query = query.Where("users.status = ?", filter.Status)
	}
	if filter.Verified != nil {
		query = query.Joins("JOIN company_profiles ON company_profiles.user_id = users.id").
			Where("company_profiles.verified = ?", *filter.Verified)
	}
	if filter.Search != "" {
		query = query.Where("users.email ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Limit(filter.PageSize).Offset((page - 1) * filter.PageSize)
	}

	var users []models.User
	if err := query.Order("users.created_at DESC").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepositoryImpl) CountByRole(role models.UserRole) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

func (r *UserRepositoryImpl) GetStats() (*UserStats, error) {
	var stats UserStats

	type roleStatusCount struct {
		Role   models.UserRole
		Status models.UserStatus
		N      int64
	}
	var rows []roleStatusCount
	err := r.db.Model(&models.User{}).
		Select("role, status, COUNT(*) AS n").
		Where("role IN ?", []models.UserRole{models.UserRoleCandidate, models.UserRoleCompany}).
		Group("role, status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		switch row.Role {
		case models.UserRoleCandidate:
			stats.TotalCandidates += row.N
			switch row.Status {
			case models.UserStatusActive:
				stats.ActiveCandidates += row.N
			case models.UserStatusPending:
				stats.PendingCandidates += row.N
			case models.UserStatusBlocked:
				stats.BlockedCandidates += row.N
			}
		case models.UserRoleCompany:
			stats.TotalCompanies += row.N
			if row.Status == models.UserStatusBlocked {
				stats.BlockedCompanies += row.N
			}
		}
	}

	if err := r.db.Model(&models.CompanyProfile{}).Where("verified = ?", true).Count(&stats.VerifiedCompanies).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Job{}).Count(&stats.TotalJobs).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.JobApplication{}).Count(&stats.TotalApplications).Error; err != nil {
		return nil, err
	}
	since := time.Now().AddDate(0, 0, -30)
	if err := r.db.Model(&models.User{}).
		Where("role <> ? AND created_at >= ?", models.UserRoleAdmin, since).
		Count(&stats.RecentSignups).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
