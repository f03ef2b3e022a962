package validator

import (
	"log"
	"strings"

	"gymdesk_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs the enum-membership rules used by the DTOs.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a startup error, not a
			// request error.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-difficulty", validateDifficulty)
	mustRegister("is-gender", validateGender)
	mustRegister("is-subscription-status", validateSubscriptionStatus)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty is handled by 'required'
	}
	return models.ValidRole(value)
}

func validateDifficulty(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.Difficulty(value) {
	case models.DifficultyBeginner, models.DifficultyIntermediate, models.DifficultyAdvanced:
		return true
	default:
		return false
	}
}

func validateGender(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch strings.ToLower(value) {
	case "male", "female", "other":
		return true
	default:
		return false
	}
}

func validateSubscriptionStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.SubscriptionStatus(value) {
	case models.SubscriptionStatusActive, models.SubscriptionStatusPending,
		models.SubscriptionStatusExpired, models.SubscriptionStatusCancelled:
		return true
	default:
		return false
	}
}
