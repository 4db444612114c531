package repositories

import (
	"errors"

	"gorm.io/gorm"

	"growcoach_backend/internal/models"
)

var (
	ErrJobNotFound          = errors.New("job not found")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("candidate already applied to this job")
)

// JobFilter narrows the public job listing.
type JobFilter struct {
	CompanyID string
	Status    models.JobStatus
	Location  string
	Search    string
	Page      int
	PageSize  int
}

type JobRepository interface {
	FindByID(id string) (*models.Job, error)
	Create(job *models.Job) error
	Update(job *models.Job) error
	Delete(id string) error
	FindWithFilter(filter JobFilter) ([]models.Job, int64, error)

	CreateApplication(app *models.JobApplication) error
	FindApplication(jobID, candidateID string) (*models.JobApplication, error)
	FindApplicationsByJob(jobID string) ([]models.JobApplication, error)
	FindApplicationsByCandidate(candidateID string) ([]models.JobApplication, error)
	UpdateApplicationStatus(id string, status models.ApplicationStatus) error
	CountApplicationsByJob(jobID string) (int64, error)
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) FindByID(id string) (*models.Job, error) {
	var job models.Job
	err := r.db.First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

func (r *JobRepositoryImpl) Update(job *models.Job) error {
	return r.db.Save(job).Error
}

func (r *JobRepositoryImpl) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&models.JobApplication{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Job{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrJobNotFound
		}
		return nil
	})
}

func (r *JobRepositoryImpl) FindWithFilter(filter JobFilter) ([]models.Job, int64, error) {
	query := r.db.Model(&models.Job{})

	if filter.CompanyID != "" {
		query = query.Where("company_id = ?", filter.CompanyID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Location != "" {
		query = query.Where("location ILIKE ?", "%"+filter.Location+"%")
	}
	if filter.Search != "" {
		query = query.Where("title ILIKE ? OR description ILIKE ?", "%"+filter.Search+"%", "%"+filter.Search+"%")
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

	var jobs []models.Job
	if err := query.Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// CreateApplication relies on the unique (job_id, candidate_id) index
// to reject duplicates atomically.
func (r *JobRepositoryImpl) CreateApplication(app *models.JobApplication) error {
	err := r.db.Create(app).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateApplication
	}
	return err
}

func (r *JobRepositoryImpl) FindApplication(jobID, candidateID string) (*models.JobApplication, error) {
	var app models.JobApplication
	err := r.db.First(&app, "job_id = ? AND candidate_id = ?", jobID, candidateID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *JobRepositoryImpl) FindApplicationsByJob(jobID string) ([]models.JobApplication, error) {
	var apps []models.JobApplication
	err := r.db.Where("job_id = ?", jobID).Order("applied_at DESC").Find(&apps).Error
	return apps, err
}

func (r *JobRepositoryImpl) FindApplicationsByCandidate(candidateID string) ([]models.JobApplication, error) {
	var apps []models.JobApplication
	err := r.db.Where("candidate_id = ?", candidateID).Order("applied_at DESC").Find(&apps).Error
	return apps, err
}

func (r *JobRepositoryImpl) UpdateApplicationStatus(id string, status models.ApplicationStatus) error {
	result := r.db.Model(&models.JobApplication{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) CountApplicationsByJob(jobID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.JobApplication{}).Where("job_id = ?", jobID).Count(&count).Error
	return count, err
}
