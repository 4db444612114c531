package handlers

// AppHandlers bundles the HTTP handlers for route registration.
type AppHandlers struct {
	AuthHandler      *AuthHandler
	CandidateHandler *CandidateHandler
	CompanyHandler   *CompanyHandler
	JobHandler       *JobHandler
	AdminHandler     *AdminHandler
	FileHandler      *FileHandler
}
