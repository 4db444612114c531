package dto

import "growcoach_backend/internal/models"

type CreateJobRequest struct {
	Title              string   `json:"job_title" validate:"required"`
	Salary             string   `json:"salary"`
	LookingForProfile  string   `json:"looking_for_profile"`
	RequiredExperience string   `json:"required_experience"`
	RequiredSkills     []string `json:"required_skills"`
	Location           string   `json:"location"`
	EmploymentType     string   `json:"employment_type"`
	Description        string   `json:"job_description" validate:"required"`
}

type UpdateJobRequest struct {
	Title              *string   `json:"job_title"`
	Salary             *string   `json:"salary"`
	LookingForProfile  *string   `json:"looking_for_profile"`
	RequiredExperience *string   `json:"required_experience"`
	RequiredSkills     *[]string `json:"required_skills"`
	Location           *string   `json:"location"`
	EmploymentType     *string   `json:"employment_type"`
	Description        *string   `json:"job_description"`
	Status             *string   `json:"status" validate:"omitempty,is-job-status"`
}

type JobListFilter struct {
	Location string `form:"location"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type JobResponse struct {
	*models.Job
	CompanyName      string `json:"company_name"`
	CompanyLogoURL   string `json:"company_logo_url,omitempty"`
	CompanyVerified  bool   `json:"company_verified"`
	ApplicationCount int64  `json:"application_count,omitempty"`
	HasApplied       bool   `json:"has_applied,omitempty"`
	Saved            bool   `json:"saved,omitempty"`
}

type JobListResponse struct {
	Jobs  []JobResponse `json:"jobs"`
	Total int64         `json:"total"`
}

type ApplicationResponse struct {
	*models.JobApplication
	JobTitle      string `json:"job_title,omitempty"`
	CompanyName   string `json:"company_name,omitempty"`
	CandidateName string `json:"candidate_name,omitempty"`
	ResumeURL     string `json:"resume_url,omitempty"`
}

type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" validate:"required,is-application-status"`
}
