package dto

import "growcoach_backend/internal/models"

type RegisterCandidateRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required"`
	FirstName     string `json:"first_name" validate:"required"`
	LastName      string `json:"last_name" validate:"required"`
	Phone         string `json:"phone"`
	Location      string `json:"location"`
	TermsAccepted bool   `json:"terms_accepted"`
}

type RegisterCompanyRequest struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required"`
	CompanyName   string `json:"company_name" validate:"required"`
	Industry      string `json:"industry"`
	Phone         string `json:"phone"`
	Location      string `json:"location"`
	Website       string `json:"website"`
	TermsAccepted bool   `json:"terms_accepted"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}

// UserInfo is the sanitized account shape returned to clients.
type UserInfo struct {
	ID       string            `json:"id"`
	Email    string            `json:"email"`
	Role     models.UserRole   `json:"role"`
	Status   models.UserStatus `json:"status"`
	Name     string            `json:"name"`
	Verified bool              `json:"verified,omitempty"`
}

func NewUserInfo(user *models.User) *UserInfo {
	info := &UserInfo{
		ID:     user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Status: user.Status,
		Name:   user.DisplayName(),
	}
	if user.CompanyProfile != nil {
		info.Verified = user.CompanyProfile.Verified
	}
	return info
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyResetCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type ResetPasswordRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Code            string `json:"code" validate:"required,len=6,numeric"`
	NewPassword     string `json:"new_password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}
