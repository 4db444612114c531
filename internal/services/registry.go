package services

// ServiceContainer bundles the application services for handler wiring.
type ServiceContainer struct {
	AuthService          AuthService
	PasswordResetService PasswordResetService
	CandidateService     CandidateService
	CompanyService       CompanyService
	JobService           JobService
	AdminService         AdminService
	NotificationService  NotificationService
	UploadService        UploadService
}
