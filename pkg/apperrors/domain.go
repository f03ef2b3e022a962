package apperrors

import (
	"net/http"
)

// Factories for wrapping repository-level errors.

// ErrNotFound converts a lookup miss (e.g. gorm.ErrRecordNotFound) into a 404.
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409.
func ErrAlreadyExists(err error, domain, message string) *AppError {
	return Wrap(err, CodeAlreadyExists, domain, message, http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrIdentityProvider wraps any failure reported by the external identity
// provider. Always a safe abort for creates: the provider call is the first
// write in every provisioning flow.
func ErrIdentityProvider(err error) *AppError {
	return Wrap(err, CodeExternalServiceError, "identity", "Identity provider error", http.StatusServiceUnavailable)
}

// Static domain errors.

var ErrProfileNotFound = New(
	CodeNotFound,
	"profile",
	"No profile found for the authenticated identity",
	http.StatusNotFound,
)

var ErrMemberNotFound = New(
	CodeNotFound,
	"member",
	"Member not found",
	http.StatusNotFound,
)

var ErrTrainerNotFound = New(
	CodeNotFound,
	"trainer",
	"Trainer not found",
	http.StatusNotFound,
)

var ErrExerciseNotFound = New(
	CodeNotFound,
	"exercise",
	"Exercise not found",
	http.StatusNotFound,
)

var ErrCategoryNotFound = New(
	CodeNotFound,
	"exercise",
	"Exercise category not found",
	http.StatusNotFound,
)

var ErrPlanNotFound = New(
	CodeNotFound,
	"subscription",
	"Membership plan not found",
	http.StatusNotFound,
)

var ErrTenantInactive = New(
	CodeForbidden,
	"tenant",
	"Tenant is deactivated",
	http.StatusForbidden,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"identity",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)
