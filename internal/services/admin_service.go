package services

import (
	"context"
	"time"

	"growcoach_backend/internal/email"
	"growcoach_backend/internal/logger"
	"growcoach_backend/internal/models"
	"growcoach_backend/internal/repositories"
	"growcoach_backend/internal/services/dto"
	"growcoach_backend/pkg/apperrors"
)

type AdminService interface {
	ListUsers(filter *dto.AdminUserFilter) (*dto.AdminUserListResponse, error)
	ApproveUser(userID string) error
	RejectUser(userID string) error
	BlockUser(userID string) error
	UnblockUser(userID string) error
	VerifyCompany(userID string) error
	UnverifyCompany(userID string) error
	ApproveNotification(notificationID string) error
	RejectNotification(notificationID string) error
	BulkModerate(req *dto.BulkModerateRequest) (*dto.BulkModerateResponse, error)
	DeleteUser(ctx context.Context, userID string) error
	Stats() (*dto.AdminStatsResponse, error)
}

type AdminServiceImpl struct {
	userRepo         repositories.UserRepository
	candidateRepo    repositories.CandidateProfileRepository
	companyRepo      repositories.CompanyProfileRepository
	notificationRepo repositories.NotificationRepository
	uploads          UploadService
	emailProvider    email.Provider
}

func NewAdminService(
	userRepo repositories.UserRepository,
	candidateRepo repositories.CandidateProfileRepository,
	companyRepo repositories.CompanyProfileRepository,
	notificationRepo repositories.NotificationRepository,
	uploads UploadService,
	emailProvider email.Provider,
) AdminService {
	return &AdminServiceImpl{
		userRepo:         userRepo,
		candidateRepo:    candidateRepo,
		companyRepo:      companyRepo,
		notificationRepo: notificationRepo,
		uploads:          uploads,
		emailProvider:    emailProvider,
	}
}

func (s *AdminServiceImpl) ListUsers(filter *dto.AdminUserFilter) (*dto.AdminUserListResponse, error) {
	users, total, err := s.userRepo.FindWithFilter(repositories.UserFilter{
		Role:     models.UserRole(filter.Role),
		Status:   models.UserStatus(filter.Status),
		Verified: filter.Verified,
		Search:   filter.Search,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	rows := make([]dto.AdminUserRow, 0, len(users))
	for _, user := range users {
		row := dto.AdminUserRow{
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.DisplayName(),
			Role:      user.Role,
			Status:    user.Status,
			CreatedAt: user.CreatedAt.Format(time.RFC3339),
		}
		if user.CompanyProfile != nil {
			row.Verified = user.CompanyProfile.Verified
		}
		rows = append(rows, row)
	}
	return &dto.AdminUserListResponse{Users: rows, Total: total}, nil
}

func (s *AdminServiceImpl) findModeratedUser(userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if user.Role == models.UserRoleAdmin {
		return nil, apperrors.NewForbiddenError("Impossible de modérer un administrateur.")
	}
	return user, nil
}

// ApproveUser activates a pending account and clears its registration
// entry from the dashboard. Approving an already active account is an
// explicit error rather than a silent no-op.
func (s *AdminServiceImpl) ApproveUser(userID string) error {
	user, err := s.findModeratedUser(userID)
	if err != nil {
		return err
	}
	if user.Status != models.UserStatusPending {
		return apperrors.ErrInvalidStatusTransition("Ce compte n'est pas en attente d'approbation.")
	}

	if err := s.userRepo.UpdateStatus(userID, models.UserStatusActive); err != nil {
		return apperrors.InternalError(err)
	}
	s.clearRegistrationNotifications(user)
	return nil
}

func (s *AdminServiceImpl) RejectUser(userID string) error {
	user, err := s.findModeratedUser(userID)
	if err != nil {
		return err
	}
	if user.Status != models.UserStatusPending {
		return apperrors.ErrInvalidStatusTransition("Ce compte n'est pas en attente d'approbation.")
	}

	if err := s.userRepo.UpdateStatus(userID, models.UserStatusRejected); err != nil {
		return apperrors.InternalError(err)
	}
	s.clearRegistrationNotifications(user)
	return nil
}

// ApproveNotification grants whatever the notification asks for: account
// activation for registrations, the verified badge for verification
// requests. The transition itself clears the notification.
func (s *AdminServiceImpl) ApproveNotification(notificationID string) error {
	n, err := s.findNotification(notificationID)
	if err != nil {
		return err
	}

	switch n.Type {
	case models.NotificationCandidateRegistration, models.NotificationCompanyRegistration:
		return s.ApproveUser(n.SubjectID)
	case models.NotificationVerificationRequest:
		return s.VerifyCompany(n.SubjectID)
	default:
		return apperrors.NewBadRequestError("Cette notification ne peut pas être approuvée.")
	}
}

// RejectNotification denies the request. A denied verification request
// only removes the notification; the account keeps its status.
func (s *AdminServiceImpl) RejectNotification(notificationID string) error {
	n, err := s.findNotification(notificationID)
	if err != nil {
		return err
	}

	switch n.Type {
	case models.NotificationCandidateRegistration, models.NotificationCompanyRegistration:
		return s.RejectUser(n.SubjectID)
	case models.NotificationVerificationRequest:
		if err := s.notificationRepo.Delete(n.ID); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	default:
		return apperrors.NewBadRequestError("Cette notification ne peut pas être rejetée.")
	}
}

func (s *AdminServiceImpl) findNotification(id string) (*models.Notification, error) {
	n, err := s.notificationRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return n, nil
}

// BulkModerate applies approve or reject to a batch of accounts. Each
// failure is reported per user instead of aborting the batch.
func (s *AdminServiceImpl) BulkModerate(req *dto.BulkModerateRequest) (*dto.BulkModerateResponse, error) {
	apply := s.ApproveUser
	if req.Action == "reject" {
		apply = s.RejectUser
	}

	resp := &dto.BulkModerateResponse{
		Results: make([]dto.BulkModerateResult, 0, len(req.UserIDs)),
	}
	for _, id := range req.UserIDs {
		result := dto.BulkModerateResult{UserID: id}
		if err := apply(id); err != nil {
			result.Error = apperrors.UserMessage(err)
			resp.Failed++
		} else {
			resp.Processed++
		}
		resp.Results = append(resp.Results, result)
	}
	return resp, nil
}

func (s *AdminServiceImpl) clearRegistrationNotifications(user *models.User) {
	t := models.NotificationCandidateRegistration
	if user.Role == models.UserRoleCompany {
		t = models.NotificationCompanyRegistration
	}
	if err := s.notificationRepo.DeleteBySubjectAndType(user.ID, t); err != nil {
		logger.Warn("failed to clear registration notifications", "error", err, "user_id", user.ID)
	}
}

func (s *AdminServiceImpl) BlockUser(userID string) error {
	user, err := s.findModeratedUser(userID)
	if err != nil {
		return err
	}
	if user.Status == models.UserStatusBlocked {
		return apperrors.ErrInvalidStatusTransition("Ce compte est déjà bloqué.")
	}

	if err := s.userRepo.UpdateStatus(userID, models.UserStatusBlocked); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AdminServiceImpl) UnblockUser(userID string) error {
	user, err := s.findModeratedUser(userID)
	if err != nil {
		return err
	}
	if user.Status != models.UserStatusBlocked {
		return apperrors.ErrInvalidStatusTransition("Ce compte n'est pas bloqué.")
	}

	if err := s.userRepo.UpdateStatus(userID, models.UserStatusActive); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// VerifyCompany grants the verified badge. The account must be active.
func (s *AdminServiceImpl) VerifyCompany(userID string) error {
	user, err := s.findModeratedUser(userID)
	if err != nil {
		return err
	}
	if user.Role != models.UserRoleCompany || user.CompanyProfile == nil {
		return apperrors.ErrCompanyNotFound
	}
	if user.Status != models.UserStatusActive {
		return apperrors.ErrInvalidStatusTransition("Le compte doit être actif pour être vérifié.")
	}
	if user.CompanyProfile.Verified {
		return apperrors.ErrAlreadyVerified
	}

	if err := s.companyRepo.SetVerified(userID, true); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.notificationRepo.DeleteBySubjectAndType(userID, models.NotificationVerificationRequest); err != nil {
		logger.Warn("failed to clear verification request", "error", err, "user_id", userID)
	}

	go func(addr, name string) {
		if err := s.emailProvider.SendCompanyVerified(addr, name); err != nil {
			logger.Warn("failed to send verification email", "error", err)
		}
	}(user.Email, user.CompanyProfile.CompanyName)

	return nil
}

func (s *AdminServiceImpl) UnverifyCompany(userID string) error {
	user, err := s.findModeratedUser(userID)
	if err != nil {
		return err
	}
	if user.Role != models.UserRoleCompany || user.CompanyProfile == nil {
		return apperrors.ErrCompanyNotFound
	}
	if !user.CompanyProfile.Verified {
		return apperrors.ErrInvalidStatusTransition("Cette entreprise n'est pas vérifiée.")
	}

	if err := s.companyRepo.SetVerified(userID, false); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// DeleteUser removes the account, its rows and its stored files.
func (s *AdminServiceImpl) DeleteUser(ctx context.Context, userID string) error {
	user, err := s.findModeratedUser(userID)
	if err != nil {
		return err
	}

	var fileKeys []string
	if user.CandidateProfile != nil {
		fileKeys = append(fileKeys, user.CandidateProfile.Avatar, user.CandidateProfile.Resume, user.CandidateProfile.AdminResume)
	}
	if user.CompanyProfile != nil {
		fileKeys = append(fileKeys, user.CompanyProfile.Logo)
	}

	if err := s.userRepo.Delete(userID); err != nil {
		return apperrors.InternalError(err)
	}
	s.uploads.DeleteUserFiles(ctx, fileKeys...)
	return nil
}

func (s *AdminServiceImpl) Stats() (*dto.AdminStatsResponse, error) {
	stats, err := s.userRepo.GetStats()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	unread, err := s.notificationRepo.CountUnread()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AdminStatsResponse{UserStats: stats, UnreadNotifications: unread}, nil
}
