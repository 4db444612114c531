package validator

import (
	"log"
	"unicode"

	"github.com/go-playground/validator/v10"

	"growcoach_backend/internal/models"
)

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-job-status", validateJobStatus)
	mustRegister("is-application-status", validateApplicationStatus)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' handles empty
	}
	switch models.UserRole(value) {
	case models.UserRoleCandidate, models.UserRoleCompany, models.UserRoleAdmin:
		return true
	default:
		return false
	}
}

func validateJobStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.JobStatus(value) {
	case models.JobStatusActive, models.JobStatusInactive, models.JobStatusClosed:
		return true
	default:
		return false
	}
}

func validateApplicationStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.ApplicationStatus(value) {
	case models.ApplicationStatusPending, models.ApplicationStatusAccepted, models.ApplicationStatusRejected:
		return true
	default:
		return false
	}
}

// ValidatePassword enforces the account password policy. It returns one
// message per violated rule so the client can show them all at once.
func ValidatePassword(password string) []string {
	var problems []string

	if len(password) < 8 {
		problems = append(problems, "Le mot de passe doit contenir au moins 8 caractères.")
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		problems = append(problems, "Le mot de passe doit contenir au moins une majuscule.")
	}
	if !hasLower {
		problems = append(problems, "Le mot de passe doit contenir au moins une minuscule.")
	}
	if !hasDigit {
		problems = append(problems, "Le mot de passe doit contenir au moins un chiffre.")
	}

	return problems
}
