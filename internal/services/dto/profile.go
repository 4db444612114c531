package dto

import (
	"gorm.io/datatypes"

	"growcoach_backend/internal/models"
)

type UpdateCandidateProfileRequest struct {
	FirstName             *string         `json:"first_name"`
	LastName              *string         `json:"last_name"`
	Phone                 *string         `json:"phone"`
	Location              *string         `json:"location"`
	Bio                   *string         `json:"bio"`
	Skills                *[]string       `json:"skills"`
	Education             *datatypes.JSON `json:"education"`
	Experience            *datatypes.JSON `json:"experience"`
	ProfessionalFormation *datatypes.JSON `json:"professional_formation"`
	Projects              *datatypes.JSON `json:"projects"`
}

type CandidateProfileResponse struct {
	*models.CandidateProfile
	Email             string `json:"email"`
	CompletionPercent int    `json:"completion_percent"`
	AvatarURL         string `json:"avatar_url,omitempty"`
	ResumeURL         string `json:"resume_url,omitempty"`
}

type UpdateCompanyProfileRequest struct {
	CompanyName *string `json:"company_name"`
	Industry    *string `json:"industry"`
	Phone       *string `json:"phone"`
	Location    *string `json:"location"`
	Website     *string `json:"website" validate:"omitempty,url"`
	Description *string `json:"description"`
	CompanySize *string `json:"company_size"`
	FoundedYear *string `json:"founded_year"`
}

type CompanyProfileResponse struct {
	*models.CompanyProfile
	Email   string `json:"email"`
	LogoURL string `json:"logo_url,omitempty"`
}

type VerificationStatusResponse struct {
	Verified       bool `json:"verified"`
	RequestPending bool `json:"request_pending"`
}

// CandidateSummary is the trimmed-down view companies get when browsing.
type CandidateSummary struct {
	UserID    string   `json:"user_id"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Location  string   `json:"location,omitempty"`
	Bio       string   `json:"bio,omitempty"`
	Skills    []string `json:"skills"`
	AvatarURL string   `json:"avatar_url,omitempty"`
}

type CandidateListResponse struct {
	Candidates []CandidateSummary `json:"candidates"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
}

type CandidateDashboardResponse struct {
	CompletionPercent    int `json:"completion_percent"`
	ApplicationCount     int `json:"application_count"`
	PendingApplications  int `json:"pending_applications"`
	AcceptedApplications int `json:"accepted_applications"`
	RejectedApplications int `json:"rejected_applications"`
	SavedJobCount        int `json:"saved_job_count"`
}
