package services

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"growcoach_backend/internal/logger"
	"growcoach_backend/internal/models"
	"growcoach_backend/internal/repositories"
	"growcoach_backend/internal/services/dto"
	"growcoach_backend/pkg/apperrors"
)

type CompanyService interface {
	GetProfile(ctx context.Context, userID string) (*dto.CompanyProfileResponse, error)
	UpdateProfile(userID string, req *dto.UpdateCompanyProfileRequest) (*models.CompanyProfile, error)
	RequestVerification(userID string) error
	VerificationStatus(userID string) (*dto.VerificationStatusResponse, error)
	BrowseCandidates(ctx context.Context, search string, page, pageSize int) (*dto.CandidateListResponse, error)
}

type CompanyServiceImpl struct {
	userRepo         repositories.UserRepository
	companyRepo      repositories.CompanyProfileRepository
	notificationRepo repositories.NotificationRepository
	uploads          UploadService
}

func NewCompanyService(
	userRepo repositories.UserRepository,
	companyRepo repositories.CompanyProfileRepository,
	notificationRepo repositories.NotificationRepository,
	uploads UploadService,
) CompanyService {
	return &CompanyServiceImpl{
		userRepo:         userRepo,
		companyRepo:      companyRepo,
		notificationRepo: notificationRepo,
		uploads:          uploads,
	}
}

func (s *CompanyServiceImpl) GetProfile(ctx context.Context, userID string) (*dto.CompanyProfileResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrCompanyNotFound
	}
	profile, err := s.companyRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.ErrCompanyNotFound
	}

	return &dto.CompanyProfileResponse{
		CompanyProfile: profile,
		Email:          user.Email,
		LogoURL:        s.uploads.FileURL(ctx, profile.Logo),
	}, nil
}

func (s *CompanyServiceImpl) UpdateProfile(userID string, req *dto.UpdateCompanyProfileRequest) (*models.CompanyProfile, error) {
	profile, err := s.companyRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.ErrCompanyNotFound
	}

	if req.CompanyName != nil {
		profile.CompanyName = *req.CompanyName
	}
	if req.Industry != nil {
		profile.Industry = *req.Industry
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.Website != nil {
		profile.Website = *req.Website
	}
	if req.Description != nil {
		profile.Description = *req.Description
	}
	if req.CompanySize != nil {
		profile.CompanySize = *req.CompanySize
	}
	if req.FoundedYear != nil {
		profile.FoundedYear = *req.FoundedYear
	}

	if err := s.companyRepo.Update(profile); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}

// RequestVerification puts the company in the admin review queue.
func (s *CompanyServiceImpl) RequestVerification(userID string) error {
	profile, err := s.companyRepo.FindByUserID(userID)
	if err != nil {
		return apperrors.ErrCompanyNotFound
	}
	if profile.Verified {
		return apperrors.ErrAlreadyVerified
	}

	// One pending request per company.
	notifications, _, err := s.notificationRepo.FindAll(0, 0)
	if err != nil {
		return apperrors.InternalError(err)
	}
	for _, n := range notifications {
		if n.SubjectID == userID && n.Type == models.NotificationVerificationRequest {
			return apperrors.ErrVerificationPending
		}
	}

	data, _ := json.Marshal(map[string]string{"company_name": profile.CompanyName})
	n := &models.Notification{
		Type:      models.NotificationVerificationRequest,
		Text:      fmt.Sprintf("Demande de vérification : %s", profile.CompanyName),
		SubjectID: userID,
		Data:      datatypes.JSON(data),
	}
	if err := s.notificationRepo.Create(n); err != nil {
		logger.Error("failed to create verification request", "error", err, "user_id", userID)
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *CompanyServiceImpl) VerificationStatus(userID string) (*dto.VerificationStatusResponse, error) {
	profile, err := s.companyRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.ErrCompanyNotFound
	}

	status := &dto.VerificationStatusResponse{Verified: profile.Verified}
	if status.Verified {
		return status, nil
	}

	notifications, _, err := s.notificationRepo.FindAll(0, 0)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	for _, n := range notifications {
		if n.SubjectID == userID && n.Type == models.NotificationVerificationRequest {
			status.RequestPending = true
			break
		}
	}
	return status, nil
}

// BrowseCandidates lists active candidates for a company's talent search.
func (s *CompanyServiceImpl) BrowseCandidates(ctx context.Context, search string, page, pageSize int) (*dto.CandidateListResponse, error) {
	users, total, err := s.userRepo.FindWithFilter(repositories.UserFilter{
		Role:     models.UserRoleCandidate,
		Status:   models.UserStatusActive,
		Search:   search,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	summaries := make([]dto.CandidateSummary, 0, len(users))
	for _, user := range users {
		if user.CandidateProfile == nil {
			continue
		}
		p := user.CandidateProfile
		summaries = append(summaries, dto.CandidateSummary{
			UserID:    user.ID,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Location:  p.Location,
			Bio:       p.Bio,
			Skills:    p.Skills,
			AvatarURL: s.uploads.FileURL(ctx, p.Avatar),
		})
	}

	return &dto.CandidateListResponse{
		Candidates: summaries,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}
