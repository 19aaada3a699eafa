// Package validator wraps go-playground/validator with the business rules
// of the booking domain.
package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var contactPattern = regexp.MustCompile(`^\d{10}$`)

// ValidationError describes a single failed rule.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule"`
}

// ValidationErrors aggregates failed rules; it satisfies error so services
// can return it directly.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Message
	}
	return strings.Join(msgs, "; ")
}

// Validator validates request structs.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerBusinessRules()

	return v
}

func (v *Validator) registerBusinessRules() {
	// contact_number: exactly 10 digits
	_ = v.validate.RegisterValidation("contact_number", func(fl validator.FieldLevel) bool {
		return contactPattern.MatchString(fl.Field().String())
	})

	// trimmed_name: at least 2 characters after trimming whitespace
	_ = v.validate.RegisterValidation("trimmed_name", func(fl validator.FieldLevel) bool {
		return len(strings.TrimSpace(fl.Field().String())) >= 2
	})

	// user_role: one of the registration roles
	_ = v.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "user", "instructor", "admin":
			return true
		}
		return false
	})
}

// Validate runs struct validation and converts failures to ValidationErrors.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Message: err.Error(), Rule: "struct"}}
	}

	out := make(ValidationErrors, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: messageFor(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Invalid email format"
	case "min":
		if fe.Field() == "Password" {
			return "Password must be at least 6 characters"
		}
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "trimmed_name":
		return "Name must be at least 2 characters"
	case "contact_number":
		return "Contact number must be exactly 10 digits"
	case "user_role":
		return "Invalid role selected"
	case "datetime":
		return "Invalid date format"
	default:
		return fmt.Sprintf("%s failed validation rule %s", fe.Field(), fe.Tag())
	}
}
