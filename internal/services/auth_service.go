package services

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"growcoach_backend/internal/auth"
	"growcoach_backend/internal/email"
	"growcoach_backend/internal/logger"
	"growcoach_backend/internal/models"
	"growcoach_backend/internal/repositories"
	"growcoach_backend/internal/services/dto"
	"growcoach_backend/internal/validator"
	"growcoach_backend/pkg/apperrors"
)

type AuthService interface {
	RegisterCandidate(req *dto.RegisterCandidateRequest) (*dto.UserInfo, error)
	RegisterCompany(req *dto.RegisterCompanyRequest) (*dto.UserInfo, error)
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(jti string, expiresAt time.Time) error
	CheckAuth(userID string) (*dto.UserInfo, error)
}

type AuthServiceImpl struct {
	userRepo         repositories.UserRepository
	candidateRepo    repositories.CandidateProfileRepository
	companyRepo      repositories.CompanyProfileRepository
	notificationRepo repositories.NotificationRepository
	blacklistRepo    repositories.TokenBlacklistRepository
	tokens           *auth.TokenManager
	emailProvider    email.Provider
}

func NewAuthService(
	userRepo repositories.UserRepository,
	candidateRepo repositories.CandidateProfileRepository,
	companyRepo repositories.CompanyProfileRepository,
	notificationRepo repositories.NotificationRepository,
	blacklistRepo repositories.TokenBlacklistRepository,
	tokens *auth.TokenManager,
	emailProvider email.Provider,
) AuthService {
	return &AuthServiceImpl{
		userRepo:         userRepo,
		candidateRepo:    candidateRepo,
		companyRepo:      companyRepo,
		notificationRepo: notificationRepo,
		blacklistRepo:    blacklistRepo,
		tokens:           tokens,
		emailProvider:    emailProvider,
	}
}

// RegisterCandidate creates a pending candidate account. The account
// stays unusable until an admin approves it.
func (s *AuthServiceImpl) RegisterCandidate(req *dto.RegisterCandidateRequest) (*dto.UserInfo, error) {
	if problems := validator.ValidatePassword(req.Password); len(problems) > 0 {
		return nil, apperrors.ValidationError(map[string]interface{}{"password": problems})
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.UserRoleCandidate,
		Status:       models.UserStatusPending,
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	profile := &models.CandidateProfile{
		UserID:        user.ID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		Location:      req.Location,
		TermsAccepted: req.TermsAccepted,
	}
	if err := s.candidateRepo.Create(profile); err != nil {
		if delErr := s.userRepo.Delete(user.ID); delErr != nil {
			logger.Error("failed to roll back user after profile create error",
				"error", delErr, "user_id", user.ID)
		}
		return nil, apperrors.InternalError(err)
	}
	user.CandidateProfile = profile

	s.notifyRegistration(user, models.NotificationCandidateRegistration,
		fmt.Sprintf("Nouveau candidat inscrit : %s", profile.FullName()))

	go func() {
		if err := s.emailProvider.SendWelcome(user.Email, profile.FullName()); err != nil {
			logger.Warn("failed to send welcome email", "error", err)
		}
	}()

	return dto.NewUserInfo(user), nil
}

// RegisterCompany creates a pending company account and surfaces it on
// the admin dashboard for review.
func (s *AuthServiceImpl) RegisterCompany(req *dto.RegisterCompanyRequest) (*dto.UserInfo, error) {
	if problems := validator.ValidatePassword(req.Password); len(problems) > 0 {
		return nil, apperrors.ValidationError(map[string]interface{}{"password": problems})
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.UserRoleCompany,
		Status:       models.UserStatusPending,
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	profile := &models.CompanyProfile{
		UserID:        user.ID,
		CompanyName:   req.CompanyName,
		Industry:      req.Industry,
		Phone:         req.Phone,
		Location:      req.Location,
		Website:       req.Website,
		TermsAccepted: req.TermsAccepted,
	}
	if err := s.companyRepo.Create(profile); err != nil {
		if delErr := s.userRepo.Delete(user.ID); delErr != nil {
			logger.Error("failed to roll back user after profile create error",
				"error", delErr, "user_id", user.ID)
		}
		return nil, apperrors.InternalError(err)
	}
	user.CompanyProfile = profile

	s.notifyRegistration(user, models.NotificationCompanyRegistration,
		fmt.Sprintf("Nouvelle entreprise inscrite : %s", profile.CompanyName))

	go func() {
		if err := s.emailProvider.SendWelcome(user.Email, profile.CompanyName); err != nil {
			logger.Warn("failed to send welcome email", "error", err)
		}
	}()

	return dto.NewUserInfo(user), nil
}

func (s *AuthServiceImpl) notifyRegistration(user *models.User, t models.NotificationType, text string) {
	data, _ := json.Marshal(map[string]string{"email": user.Email})
	n := &models.Notification{
		Type:      t,
		Text:      text,
		SubjectID: user.ID,
		Data:      datatypes.JSON(data),
	}
	if err := s.notificationRepo.Create(n); err != nil {
		logger.Error("failed to create registration notification", "error", err, "user_id", user.ID)
	}
}

func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	switch user.Status {
	case models.UserStatusBlocked, models.UserStatusRejected:
		return nil, apperrors.ErrUserBlocked
	case models.UserStatusPending:
		if user.Role == models.UserRoleCandidate {
			return nil, apperrors.ErrAccountPending
		}
		// Pending companies may log in to finish their profile while
		// awaiting verification.
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User:  dto.NewUserInfo(user),
	}, nil
}

// Logout revokes the current token by JTI until its natural expiry.
func (s *AuthServiceImpl) Logout(jti string, expiresAt time.Time) error {
	if err := s.blacklistRepo.Add(jti, expiresAt); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) CheckAuth(userID string) (*dto.UserInfo, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserInfo(user), nil
}
