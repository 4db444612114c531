package services

import (
	"context"

	"github.com/lib/pq"

	"growcoach_backend/internal/models"
	"growcoach_backend/internal/repositories"
	"growcoach_backend/internal/services/dto"
	"growcoach_backend/pkg/apperrors"
)

type JobService interface {
	Create(companyUserID string, req *dto.CreateJobRequest) (*models.Job, error)
	Update(companyUserID, jobID string, req *dto.UpdateJobRequest) (*models.Job, error)
	Delete(companyUserID, jobID string) error
	Get(ctx context.Context, jobID string, viewerID string) (*dto.JobResponse, error)
	List(ctx context.Context, filter *dto.JobListFilter, viewerID string) (*dto.JobListResponse, error)
	ListByCompany(ctx context.Context, companyUserID string) (*dto.JobListResponse, error)

	Apply(candidateUserID, jobID string) (*models.JobApplication, error)
	ApplicationsForJob(ctx context.Context, companyUserID, jobID string) ([]dto.ApplicationResponse, error)
	MyApplications(candidateUserID string) ([]dto.ApplicationResponse, error)
	UpdateApplicationStatus(companyUserID, applicationID string, status models.ApplicationStatus) error
}

type JobServiceImpl struct {
	jobRepo       repositories.JobRepository
	userRepo      repositories.UserRepository
	candidateRepo repositories.CandidateProfileRepository
	companyRepo   repositories.CompanyProfileRepository
	uploads       UploadService
}

func NewJobService(
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
	candidateRepo repositories.CandidateProfileRepository,
	companyRepo repositories.CompanyProfileRepository,
	uploads UploadService,
) JobService {
	return &JobServiceImpl{
		jobRepo:       jobRepo,
		userRepo:      userRepo,
		candidateRepo: candidateRepo,
		companyRepo:   companyRepo,
		uploads:       uploads,
	}
}

func (s *JobServiceImpl) Create(companyUserID string, req *dto.CreateJobRequest) (*models.Job, error) {
	job := &models.Job{
		CompanyID:          companyUserID,
		Title:              req.Title,
		Salary:             req.Salary,
		LookingForProfile:  req.LookingForProfile,
		RequiredExperience: req.RequiredExperience,
		RequiredSkills:     pq.StringArray(req.RequiredSkills),
		Location:           req.Location,
		EmploymentType:     req.EmploymentType,
		Description:        req.Description,
		Status:             models.JobStatusActive,
	}
	if err := s.jobRepo.Create(job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

func (s *JobServiceImpl) ownedJob(companyUserID, jobID string) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if job.CompanyID != companyUserID {
		return nil, apperrors.ErrNotJobOwner
	}
	return job, nil
}

func (s *JobServiceImpl) Update(companyUserID, jobID string, req *dto.UpdateJobRequest) (*models.Job, error) {
	job, err := s.ownedJob(companyUserID, jobID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Salary != nil {
		job.Salary = *req.Salary
	}
	if req.LookingForProfile != nil {
		job.LookingForProfile = *req.LookingForProfile
	}
	if req.RequiredExperience != nil {
		job.RequiredExperience = *req.RequiredExperience
	}
	if req.RequiredSkills != nil {
		job.RequiredSkills = pq.StringArray(*req.RequiredSkills)
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.EmploymentType != nil {
		job.EmploymentType = *req.EmploymentType
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Status != nil {
		job.Status = models.JobStatus(*req.Status)
	}

	if err := s.jobRepo.Update(job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

func (s *JobServiceImpl) Delete(companyUserID, jobID string) error {
	if _, err := s.ownedJob(companyUserID, jobID); err != nil {
		return err
	}
	if err := s.jobRepo.Delete(jobID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *JobServiceImpl) decorate(ctx context.Context, job models.Job, viewerID string) dto.JobResponse {
	j := job
	resp := dto.JobResponse{Job: &j}

	if company, err := s.companyRepo.FindByUserID(job.CompanyID); err == nil {
		resp.CompanyName = company.CompanyName
		resp.CompanyVerified = company.Verified
		resp.CompanyLogoURL = s.uploads.FileURL(ctx, company.Logo)
	}

	if viewerID != "" {
		if _, err := s.jobRepo.FindApplication(job.ID, viewerID); err == nil {
			resp.HasApplied = true
		}
		if profile, err := s.candidateRepo.FindByUserID(viewerID); err == nil {
			for _, id := range profile.SavedJobs {
				if id == job.ID {
					resp.Saved = true
					break
				}
			}
		}
	}
	return resp
}

func (s *JobServiceImpl) Get(ctx context.Context, jobID string, viewerID string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	resp := s.decorate(ctx, *job, viewerID)
	return &resp, nil
}

// List returns active postings only; company dashboards go through
// ListByCompany.
func (s *JobServiceImpl) List(ctx context.Context, filter *dto.JobListFilter, viewerID string) (*dto.JobListResponse, error) {
	jobs, total, err := s.jobRepo.FindWithFilter(repositories.JobFilter{
		Status:   models.JobStatusActive,
		Location: filter.Location,
		Search:   filter.Search,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.JobResponse, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, s.decorate(ctx, job, viewerID))
	}
	return &dto.JobListResponse{Jobs: out, Total: total}, nil
}

func (s *JobServiceImpl) ListByCompany(ctx context.Context, companyUserID string) (*dto.JobListResponse, error) {
	jobs, total, err := s.jobRepo.FindWithFilter(repositories.JobFilter{CompanyID: companyUserID})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.JobResponse, 0, len(jobs))
	for _, job := range jobs {
		resp := s.decorate(ctx, job, "")
		if count, err := s.jobRepo.CountApplicationsByJob(job.ID); err == nil {
			resp.ApplicationCount = count
		}
		out = append(out, resp)
	}
	return &dto.JobListResponse{Jobs: out, Total: total}, nil
}

// Apply records a candidacy. A second application to the same job is
// rejected.
func (s *JobServiceImpl) Apply(candidateUserID, jobID string) (*models.JobApplication, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if job.Status != models.JobStatusActive {
		return nil, apperrors.ErrJobNotFound
	}

	if _, err := s.jobRepo.FindApplication(jobID, candidateUserID); err == nil {
		return nil, apperrors.ErrAlreadyApplied
	}

	app := &models.JobApplication{
		JobID:       jobID,
		CandidateID: candidateUserID,
		Status:      models.ApplicationStatusPending,
	}
	if err := s.jobRepo.CreateApplication(app); err != nil {
		if apperrors.Is(err, repositories.ErrDuplicateApplication) {
			return nil, apperrors.ErrAlreadyApplied
		}
		return nil, apperrors.InternalError(err)
	}
	return app, nil
}

func (s *JobServiceImpl) ApplicationsForJob(ctx context.Context, companyUserID, jobID string) ([]dto.ApplicationResponse, error) {
	if _, err := s.ownedJob(companyUserID, jobID); err != nil {
		return nil, err
	}

	apps, err := s.jobRepo.FindApplicationsByJob(jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		a := app
		resp := dto.ApplicationResponse{JobApplication: &a}
		if profile, err := s.candidateRepo.FindByUserID(app.CandidateID); err == nil {
			resp.CandidateName = profile.FullName()
			resp.ResumeURL = s.uploads.FileURL(ctx, profile.Resume)
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *JobServiceImpl) MyApplications(candidateUserID string) ([]dto.ApplicationResponse, error) {
	apps, err := s.jobRepo.FindApplicationsByCandidate(candidateUserID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		a := app
		resp := dto.ApplicationResponse{JobApplication: &a}
		if job, err := s.jobRepo.FindByID(app.JobID); err == nil {
			resp.JobTitle = job.Title
			if company, err := s.companyRepo.FindByUserID(job.CompanyID); err == nil {
				resp.CompanyName = company.CompanyName
			}
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *JobServiceImpl) UpdateApplicationStatus(companyUserID, applicationID string, status models.ApplicationStatus) error {
	var app models.JobApplication
	found := false

	// Resolve the application through the company's own jobs so one
	// company cannot touch another's applications.
	jobs, _, err := s.jobRepo.FindWithFilter(repositories.JobFilter{CompanyID: companyUserID})
	if err != nil {
		return apperrors.InternalError(err)
	}
	for _, job := range jobs {
		apps, err := s.jobRepo.FindApplicationsByJob(job.ID)
		if err != nil {
			continue
		}
		for _, a := range apps {
			if a.ID == applicationID {
				app = a
				found = true
				break
			}
		}
		if found {
			break
		}
	}
	if !found {
		return apperrors.NewNotFoundError("job", "Candidature introuvable.")
	}

	if err := s.jobRepo.UpdateApplicationStatus(app.ID, status); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
