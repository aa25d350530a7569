package validation

import (
	"regexp"
	"strings"

	"go-matching-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Korean visa codes: letter, dash, number, optional sub-class (E-7, F-2, D-10, E-7-4)
var visaRegex = regexp.MustCompile(`^[A-Za-z]-[0-9]{1,2}(-[0-9]{1,2})?$`)

// New returns a validator with the custom match tags registered
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("match_mode", ValidMatchMode)
	_ = v.RegisterValidation("experience_level", ValidExperienceLevel)
	_ = v.RegisterValidation("visa_status", ValidVisaStatus)
}

// ValidMatchMode accepts postings_for_candidate and candidates_for_posting
func ValidMatchMode(fl validator.FieldLevel) bool {
	return domain.MatchMode(fl.Field().String()).Valid()
}

// ValidExperienceLevel accepts entry, junior, mid and senior in any case
func ValidExperienceLevel(fl validator.FieldLevel) bool {
	val := strings.ToLower(strings.TrimSpace(fl.Field().String()))
	if val == "" {
		return true // Optional, use required if needed
	}
	for _, level := range domain.ExperienceLevels {
		if val == level {
			return true
		}
	}
	return false
}

// ValidVisaStatus checks the shape of a visa code, not whether it exists
func ValidVisaStatus(fl validator.FieldLevel) bool {
	val := strings.TrimSpace(fl.Field().String())
	if val == "" {
		return true
	}
	return visaRegex.MatchString(val)
}
