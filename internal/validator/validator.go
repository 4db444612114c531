package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError holds a field -> message map for failed requests.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	var errMsgs []string
	for field, msg := range e.Errors {
		errMsgs = append(errMsgs, fmt.Sprintf("field '%s': %s", field, msg))
	}
	return "Validation failed: " + strings.Join(errMsgs, "; ")
}

// Validator wraps go-playground/validator with JSON field names and the
// custom domain rules from rules.go.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// Report field names as they appear in the JSON body, not as Go
	// struct fields.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomRules(v)

	return &Validator{
		validate: v,
	}
}

// Validate checks the struct and returns *ValidationError on failure.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	customErrors := make(map[string]string)
	for _, fe := range validationErrors {
		customErrors[fe.Field()] = v.getErrorMessage(fe)
	}

	return &ValidationError{Errors: customErrors}
}

func (v *Validator) getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Ce champ est requis."
	case "email":
		return "Adresse e-mail invalide."
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return fmt.Sprintf("Doit contenir au moins %s caractères.", fe.Param())
		}
		return fmt.Sprintf("Doit être au moins %s.", fe.Param())
	case "max":
		return fmt.Sprintf("Doit être au plus %s.", fe.Param())
	case "len":
		return fmt.Sprintf("Doit contenir exactement %s caractères.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Doit être parmi : %s.", strings.Replace(fe.Param(), " ", ", ", -1))
	case "url":
		return "Doit être une URL valide."
	case "numeric":
		return "Doit être numérique."
	case "is-user-role":
		return "Rôle utilisateur invalide."
	case "is-job-status":
		return "Statut d'offre invalide."
	case "is-application-status":
		return "Statut de candidature invalide."
	default:
		return fmt.Sprintf("Valeur invalide (règle '%s').", fe.Tag())
	}
}
