package models

import (
	"time"

	"github.com/lib/pq"
)

type Job struct {
	BaseModel
	CompanyID          string         `gorm:"type:uuid;not null;index" json:"company_id"`
	Title              string         `gorm:"not null" json:"job_title"`
	Salary             string         `json:"salary"`
	LookingForProfile  string         `json:"looking_for_profile"`
	RequiredExperience string         `json:"required_experience"`
	RequiredSkills     pq.StringArray `gorm:"type:text[]" json:"required_skills"`
	Location           string         `json:"location"`
	EmploymentType     string         `json:"employment_type"`
	Description        string         `json:"job_description"`
	Status             JobStatus      `gorm:"type:varchar(20);default:'active'" json:"status"`

	Applications []JobApplication `gorm:"foreignKey:JobID" json:"-"`
}

type JobApplication struct {
	BaseModel
	JobID       string            `gorm:"type:uuid;not null;uniqueIndex:idx_job_candidate" json:"job_id"`
	CandidateID string            `gorm:"type:uuid;not null;uniqueIndex:idx_job_candidate" json:"candidate_id"`
	Status      ApplicationStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	AppliedAt   time.Time         `gorm:"default:now()" json:"applied_at"`
}
