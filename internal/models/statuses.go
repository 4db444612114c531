package models

type UserStatus string
type UserRole string
type JobStatus string
type ApplicationStatus string
type NotificationType string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusActive   UserStatus = "active"
	UserStatusBlocked  UserStatus = "blocked"
	UserStatusRejected UserStatus = "rejected"

	UserRoleCandidate UserRole = "candidate"
	UserRoleCompany   UserRole = "company"
	UserRoleAdmin     UserRole = "admin"

	JobStatusActive   JobStatus = "active"
	JobStatusInactive JobStatus = "inactive"
	JobStatusClosed   JobStatus = "closed"

	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"

	NotificationCandidateRegistration NotificationType = "candidate_registration"
	NotificationCompanyRegistration   NotificationType = "company_registration"
	NotificationVerificationRequest   NotificationType = "verification_request"
)
