package services

import (
	"context"
	"time"

	"growcoach_backend/internal/auth"
	"growcoach_backend/internal/cooldown"
	"growcoach_backend/internal/email"
	"growcoach_backend/internal/logger"
	"growcoach_backend/internal/models"
	"growcoach_backend/internal/repositories"
	"growcoach_backend/internal/services/dto"
	"growcoach_backend/internal/validator"
	"growcoach_backend/pkg/apperrors"
)

// ResetRequestedMessage is returned for every forgot-password call,
// whether or not the address has an account.
const ResetRequestedMessage = "Si cet e-mail existe, un code de réinitialisation a été envoyé."

type PasswordResetService interface {
	// RequestReset issues a 6-digit code and emails it. Unknown emails
	// get the same success response without a code being stored.
	RequestReset(ctx context.Context, req *dto.ForgotPasswordRequest) error

	// VerifyCode checks a code without consuming it.
	VerifyCode(req *dto.VerifyResetCodeRequest) error

	// ResetPassword sets the new password and consumes the code.
	ResetPassword(req *dto.ResetPasswordRequest) error
}

type PasswordResetServiceImpl struct {
	userRepo      repositories.UserRepository
	resetRepo     repositories.PasswordResetRepository
	emailProvider email.Provider
	cooldowns     cooldown.Store
	codeTTL       time.Duration
	resendWindow  time.Duration
	now           func() time.Time
}

func NewPasswordResetService(
	userRepo repositories.UserRepository,
	resetRepo repositories.PasswordResetRepository,
	emailProvider email.Provider,
	cooldowns cooldown.Store,
	codeTTL time.Duration,
	resendWindow time.Duration,
) *PasswordResetServiceImpl {
	return &PasswordResetServiceImpl{
		userRepo:      userRepo,
		resetRepo:     resetRepo,
		emailProvider: emailProvider,
		cooldowns:     cooldowns,
		codeTTL:       codeTTL,
		resendWindow:  resendWindow,
		now:           time.Now,
	}
}

func (s *PasswordResetServiceImpl) RequestReset(ctx context.Context, req *dto.ForgotPasswordRequest) error {
	ok, remaining, err := s.cooldowns.Acquire(ctx, "pwreset:"+req.Email, s.resendWindow)
	if err != nil {
		logger.Warn("cooldown store unavailable, allowing reset request", "error", err)
	} else if !ok {
		// Within the resend window the response stays success-shaped
		// but the code is not rotated and no mail goes out.
		logger.Info("reset request throttled", "email", req.Email,
			"retry_after_seconds", int(remaining.Seconds())+1)
		return nil
	}

	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			// Same response as the success path so the endpoint cannot
			// be used to enumerate accounts.
			return nil
		}
		return apperrors.InternalError(err)
	}

	code, err := auth.GenerateResetCode()
	if err != nil {
		return apperrors.InternalError(err)
	}

	now := s.now()
	record := &models.PasswordResetCode{
		Email:     user.Email,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(s.codeTTL),
	}
	if err := s.resetRepo.Upsert(record); err != nil {
		return apperrors.InternalError(err)
	}

	validMinutes := int(s.codeTTL.Minutes())
	go func() {
		if err := s.emailProvider.SendResetCode(user.Email, code, validMinutes); err != nil {
			logger.Error("failed to send reset code email", "error", err)
		}
	}()

	return nil
}

// findValidCode loads the active code for the email and checks value
// and expiry. Both failure modes collapse into the same error.
func (s *PasswordResetServiceImpl) findValidCode(emailAddr, code string) (*models.PasswordResetCode, error) {
	record, err := s.resetRepo.FindByEmail(emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrResetCodeNotFound) {
			return nil, apperrors.ErrInvalidResetCode
		}
		return nil, apperrors.InternalError(err)
	}

	if record.Expired(s.now()) {
		// Lazy cleanup; the worker only catches rows nobody retries.
		if err := s.resetRepo.DeleteByEmail(record.Email); err != nil {
			logger.Warn("failed to delete expired reset code", "error", err, "email", record.Email)
		}
		return nil, apperrors.ErrInvalidResetCode
	}
	if record.Code != code {
		return nil, apperrors.ErrInvalidResetCode
	}
	return record, nil
}

func (s *PasswordResetServiceImpl) VerifyCode(req *dto.VerifyResetCodeRequest) error {
	_, err := s.findValidCode(req.Email, req.Code)
	return err
}

func (s *PasswordResetServiceImpl) ResetPassword(req *dto.ResetPasswordRequest) error {
	// The code is revalidated here: verification grants nothing that
	// survives a later request or the code's expiry.
	record, err := s.findValidCode(req.Email, req.Code)
	if err != nil {
		return err
	}

	if req.NewPassword != req.ConfirmPassword {
		return apperrors.ErrPasswordMismatch
	}
	if problems := validator.ValidatePassword(req.NewPassword); len(problems) > 0 {
		return apperrors.ValidationError(map[string]interface{}{"new_password": problems})
	}

	user, err := s.userRepo.FindByEmail(record.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidResetCode
		}
		return apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(user.ID, hash); err != nil {
		return apperrors.InternalError(err)
	}

	// Consume the code so it cannot be replayed.
	if err := s.resetRepo.DeleteByEmail(record.Email); err != nil {
		logger.Error("failed to delete consumed reset code", "error", err, "email", record.Email)
	}
	if err := s.cooldowns.Clear(context.Background(), "pwreset:"+record.Email); err != nil {
		logger.Warn("failed to clear reset cooldown", "error", err)
	}

	return nil
}
