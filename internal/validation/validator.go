package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/guestbook-api/internal/models"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Validator validates guestbook requests
type Validator struct {
	v *validatorv10.Validate
}

// NewValidator creates a validator reporting field names as they appear on the wire
func NewValidator() *Validator {
	v := validatorv10.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
	return &Validator{v: v}
}

// ValidateCreate validates a new post
func (v *Validator) ValidateCreate(in *models.CreatePostInput) []ValidationError {
	return v.validate(in)
}

// ValidateUpdate validates a post edit
func (v *Validator) ValidateUpdate(in *models.UpdatePostInput) []ValidationError {
	return v.validate(in)
}

// ValidateListParams validates public listing parameters
func (v *Validator) ValidateListParams(p *models.ListPostsParams) []ValidationError {
	return v.validate(p)
}

// ValidateModerationListParams validates moderation listing parameters
func (v *Validator) ValidateModerationListParams(p *models.ModerationListParams) []ValidationError {
	return v.validate(p)
}

// ValidateModerate validates a moderation status change
func (v *Validator) ValidateModerate(in *models.ModerateInput) []ValidationError {
	return v.validate(in)
}

func (v *Validator) validate(s interface{}) []ValidationError {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validatorv10.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []ValidationError{{Field: "request", Message: err.Error()}}
	}

	var errs []ValidationError
	for _, fe := range fieldErrs {
		errs = append(errs, ValidationError{
			Field:   fe.Field(),
			Message: message(fe),
			Value:   truncate(fe.Value()),
		})
	}
	return errs
}

func message(fe validatorv10.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

// truncate keeps long rejected values out of error responses
func truncate(value interface{}) interface{} {
	switch s := value.(type) {
	case string:
		if len([]rune(s)) > 50 {
			return string([]rune(s)[:50]) + "..."
		}
		return s
	case *string:
		if s == nil {
			return nil
		}
		return truncate(*s)
	default:
		return value
	}
}

// Fields returns the field names in errs, in order
func Fields(errs []ValidationError) []string {
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	return fields
}
