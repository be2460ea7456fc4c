package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/tutorlane/marketplace-service/internal/models"
)

// ValidationError describes a single failed field.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// Validator wraps go-playground/validator with the service's custom rules.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerRules()

	return v
}

// Validate validates any request struct, returning ValidationErrors when
// invalid.
func (v *Validator) Validate(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

var timeOfDayPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func (v *Validator) registerRules() {
	// Academic track classification
	v.validate.RegisterValidation("academic_group", func(fl validator.FieldLevel) bool {
		switch models.AcademicGroup(fl.Field().String()) {
		case models.GroupNone, models.GroupScience, models.GroupHumanities, models.GroupBusinessStudies:
			return true
		}
		return false
	})

	// Review rating (integer 1-5)
	v.validate.RegisterValidation("rating", func(fl validator.FieldLevel) bool {
		rating := fl.Field().Int()
		return rating >= 1 && rating <= 5
	})

	// Role values assignable by admins
	v.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		switch models.UserRole(fl.Field().String()) {
		case models.RoleStudent, models.RoleTutor, models.RoleAdmin:
			return true
		}
		return false
	})

	// Account status values assignable by admins
	v.validate.RegisterValidation("user_status", func(fl validator.FieldLevel) bool {
		switch models.UserStatus(fl.Field().String()) {
		case models.UserActive, models.UserInactive, models.UserSuspended:
			return true
		}
		return false
	})

	// Availability window bound, "HH:MM" 24h clock
	v.validate.RegisterValidation("time_of_day", func(fl validator.FieldLevel) bool {
		return timeOfDayPattern.MatchString(fl.Field().String())
	})
}

// ToValidationErrors converts go-playground errors into ValidationErrors.
func ToValidationErrors(err error) ValidationErrors {
	var result ValidationErrors

	validatorErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Field: "request", Message: err.Error()}}
	}

	for _, fieldErr := range validatorErrs {
		result = append(result, ValidationError{
			Field:   fieldErr.Field(),
			Message: messageForTag(fieldErr),
			Value:   fieldErr.Value(),
			Rule:    fieldErr.Tag(),
		})
	}

	return result
}

func messageForTag(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fieldErr.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fieldErr.Param())
	case "rating":
		return "must be an integer between 1 and 5"
	case "academic_group":
		return "must be one of NONE, SCIENCE, HUMANITIES, BUSINESS_STUDIES"
	case "user_role":
		return "must be one of student, tutor, admin"
	case "user_status":
		return "must be one of active, inactive, suspended"
	case "time_of_day":
		return "must be a HH:MM time"
	default:
		return fmt.Sprintf("failed %s validation", fieldErr.Tag())
	}
}
