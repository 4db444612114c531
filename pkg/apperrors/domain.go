package apperrors

import "net/http"

// Predefined domain errors. Messages are user-facing and in French,
// matching what the frontend surfaces inline.

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"E-mail ou mot de passe incorrect.",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Un utilisateur avec cet e-mail existe déjà.",
	http.StatusConflict,
)

var ErrInvalidEmailFormat = New(
	CodeValidationFailed,
	"auth",
	"Format d'e-mail invalide.",
	http.StatusBadRequest,
)

var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"auth",
	"Rôle invalide.",
	http.StatusBadRequest,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Le token fourni n'est pas valide.",
	http.StatusUnauthorized,
)

var ErrTokenRevoked = New(
	CodeInvalidToken,
	"auth",
	"Ce token a été révoqué.",
	http.StatusUnauthorized,
)

var ErrUserBlocked = New(
	CodeForbidden,
	"auth",
	"Votre compte a été bloqué.",
	http.StatusForbidden,
)

var ErrAccountPending = New(
	CodeForbidden,
	"auth",
	"Votre compte est en attente d'approbation.",
	http.StatusForbidden,
)

// ErrInvalidResetCode covers both a wrong code and an expired one; the
// caller cannot distinguish the two cases.
var ErrInvalidResetCode = New(
	CodeInvalidResetCode,
	"password_reset",
	"Code invalide ou expiré.",
	http.StatusBadRequest,
)

var ErrPasswordMismatch = New(
	CodeValidationFailed,
	"password_reset",
	"Les mots de passe ne correspondent pas.",
	http.StatusBadRequest,
)

var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"Utilisateur non trouvé.",
	http.StatusNotFound,
)

var ErrCandidateNotFound = New(
	CodeNotFound,
	"candidate",
	"Candidat non trouvé.",
	http.StatusNotFound,
)

var ErrCompanyNotFound = New(
	CodeNotFound,
	"company",
	"Entreprise non trouvée.",
	http.StatusNotFound,
)

var ErrJobNotFound = New(
	CodeNotFound,
	"job",
	"Offre d'emploi non trouvée.",
	http.StatusNotFound,
)

var ErrNotJobOwner = New(
	CodeForbidden,
	"job",
	"Vous n'êtes pas autorisé à modifier cette offre.",
	http.StatusForbidden,
)

var ErrAlreadyApplied = New(
	CodeConflict,
	"application",
	"Candidature déjà envoyée.",
	http.StatusBadRequest,
)

var ErrNotificationNotFound = New(
	CodeNotFound,
	"notification",
	"Notification non trouvée.",
	http.StatusNotFound,
)

var ErrAlreadyVerified = New(
	CodeInvalidStatus,
	"company",
	"Entreprise déjà vérifiée.",
	http.StatusBadRequest,
)

var ErrVerificationPending = New(
	CodeConflict,
	"company",
	"Demande de vérification déjà en cours.",
	http.StatusBadRequest,
)

var ErrFileTypeNotAllowed = New(
	CodeValidationFailed,
	"upload",
	"Format de fichier non autorisé.",
	http.StatusUnsupportedMediaType,
)

var ErrFileTooLarge = New(
	CodeValidationFailed,
	"upload",
	"Le fichier dépasse la taille autorisée.",
	http.StatusRequestEntityTooLarge,
)

var ErrTooManyRequests = New(
	CodeRateLimited,
	"request",
	"Trop de requêtes. Veuillez patienter.",
	http.StatusTooManyRequests,
)

// ErrInvalidStatusTransition flags a moderation action whose precondition
// does not hold (approving an already-active user, verifying a blocked
// company, ...).
func ErrInvalidStatusTransition(message string) *AppError {
	return New(CodeInvalidStatus, "moderation", message, http.StatusBadRequest)
}
