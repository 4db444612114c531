package services

import (
	"context"

	"github.com/lib/pq"

	"growcoach_backend/internal/models"
	"growcoach_backend/internal/repositories"
	"growcoach_backend/internal/services/dto"
	"growcoach_backend/pkg/apperrors"
)

type CandidateService interface {
	GetProfile(ctx context.Context, userID string) (*dto.CandidateProfileResponse, error)
	UpdateProfile(userID string, req *dto.UpdateCandidateProfileRequest) (*models.CandidateProfile, error)
	SaveJob(userID, jobID string) error
	UnsaveJob(userID, jobID string) error
	SavedJobIDs(userID string) ([]string, error)
	Dashboard(userID string) (*dto.CandidateDashboardResponse, error)
}

type CandidateServiceImpl struct {
	userRepo      repositories.UserRepository
	candidateRepo repositories.CandidateProfileRepository
	jobRepo       repositories.JobRepository
	uploads       UploadService
}

func NewCandidateService(
	userRepo repositories.UserRepository,
	candidateRepo repositories.CandidateProfileRepository,
	jobRepo repositories.JobRepository,
	uploads UploadService,
) CandidateService {
	return &CandidateServiceImpl{
		userRepo:      userRepo,
		candidateRepo: candidateRepo,
		jobRepo:       jobRepo,
		uploads:       uploads,
	}
}

func (s *CandidateServiceImpl) GetProfile(ctx context.Context, userID string) (*dto.CandidateProfileResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrCandidateNotFound
	}
	profile, err := s.candidateRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.ErrCandidateNotFound
	}

	return &dto.CandidateProfileResponse{
		CandidateProfile:  profile,
		Email:             user.Email,
		CompletionPercent: profile.CompletionPercent(user.Email),
		AvatarURL:         s.uploads.FileURL(ctx, profile.Avatar),
		ResumeURL:         s.uploads.FileURL(ctx, profile.Resume),
	}, nil
}

func (s *CandidateServiceImpl) UpdateProfile(userID string, req *dto.UpdateCandidateProfileRequest) (*models.CandidateProfile, error) {
	profile, err := s.candidateRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.ErrCandidateNotFound
	}

	if req.FirstName != nil {
		profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		profile.LastName = *req.LastName
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Skills != nil {
		profile.Skills = pq.StringArray(*req.Skills)
	}
	if req.Education != nil {
		profile.Education = *req.Education
	}
	if req.Experience != nil {
		profile.Experience = *req.Experience
	}
	if req.ProfessionalFormation != nil {
		profile.ProfessionalFormation = *req.ProfessionalFormation
	}
	if req.Projects != nil {
		profile.Projects = *req.Projects
	}

	if err := s.candidateRepo.Update(profile); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}

func (s *CandidateServiceImpl) SaveJob(userID, jobID string) error {
	if _, err := s.jobRepo.FindByID(jobID); err != nil {
		return apperrors.ErrJobNotFound
	}

	profile, err := s.candidateRepo.FindByUserID(userID)
	if err != nil {
		return apperrors.ErrCandidateNotFound
	}

	for _, id := range profile.SavedJobs {
		if id == jobID {
			return nil // already saved
		}
	}
	profile.SavedJobs = append(profile.SavedJobs, jobID)

	if err := s.candidateRepo.Update(profile); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *CandidateServiceImpl) UnsaveJob(userID, jobID string) error {
	profile, err := s.candidateRepo.FindByUserID(userID)
	if err != nil {
		return apperrors.ErrCandidateNotFound
	}

	kept := profile.SavedJobs[:0]
	for _, id := range profile.SavedJobs {
		if id != jobID {
			kept = append(kept, id)
		}
	}
	profile.SavedJobs = kept

	if err := s.candidateRepo.Update(profile); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *CandidateServiceImpl) SavedJobIDs(userID string) ([]string, error) {
	profile, err := s.candidateRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.ErrCandidateNotFound
	}
	return profile.SavedJobs, nil
}

// Dashboard aggregates the numbers shown on the candidate home screen.
func (s *CandidateServiceImpl) Dashboard(userID string) (*dto.CandidateDashboardResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrCandidateNotFound
	}
	profile, err := s.candidateRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.ErrCandidateNotFound
	}

	apps, err := s.jobRepo.FindApplicationsByCandidate(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.CandidateDashboardResponse{
		CompletionPercent: profile.CompletionPercent(user.Email),
		ApplicationCount:  len(apps),
		SavedJobCount:     len(profile.SavedJobs),
	}
	for _, app := range apps {
		switch app.Status {
		case models.ApplicationStatusPending:
			resp.PendingApplications++
		case models.ApplicationStatusAccepted:
			resp.AcceptedApplications++
		case models.ApplicationStatusRejected:
			resp.RejectedApplications++
		}
	}
	return resp, nil
}
