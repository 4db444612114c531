package models

import (
	"strings"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type CandidateProfile struct {
	BaseModel
	UserID    string `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	FirstName string `gorm:"not null" json:"first_name"`
	LastName  string `gorm:"not null" json:"last_name"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	Bio       string `json:"bio"`

	Skills                pq.StringArray `gorm:"type:text[]" json:"skills"`
	Education             datatypes.JSON `gorm:"type:jsonb" json:"education"`
	Experience            datatypes.JSON `gorm:"type:jsonb" json:"experience"`
	ProfessionalFormation datatypes.JSON `gorm:"type:jsonb" json:"professional_formation"`
	Projects              datatypes.JSON `gorm:"type:jsonb" json:"projects"`

	// Storage keys of the uploaded files. AdminResume is the CV curated
	// by an administrator on the candidate's behalf.
	Avatar      string `json:"avatar"`
	Resume      string `json:"resume"`
	AdminResume string `json:"admin_resume"`

	SavedJobs     pq.StringArray `gorm:"type:text[]" json:"saved_jobs"`
	TermsAccepted bool           `gorm:"default:false" json:"terms_accepted"`
}

func (p *CandidateProfile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// CompletionPercent scores how much of the profile is filled in.
// Six identity fields plus education, experience, skills and avatar.
func (p *CandidateProfile) CompletionPercent(email string) int {
	total := 10
	completed := 0

	for _, f := range []string{p.FirstName, p.LastName, email, p.Phone, p.Location, p.Bio} {
		if strings.TrimSpace(f) != "" {
			completed++
		}
	}
	if len(p.Education) > 0 && string(p.Education) != "[]" && string(p.Education) != "null" {
		completed++
	}
	if len(p.Experience) > 0 && string(p.Experience) != "[]" && string(p.Experience) != "null" {
		completed++
	}
	if len(p.Skills) > 0 {
		completed++
	}
	if p.Avatar != "" {
		completed++
	}

	return completed * 100 / total
}
