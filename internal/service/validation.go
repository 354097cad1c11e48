package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"founder-assessment/internal/domain"
)

var (
	ErrInvalidData    = errors.New("invalid data")
	ErrRequiredFields = errors.New("required fields missing")
	ErrInvalidField   = errors.New("invalid field")
	ErrInvalidEmail   = errors.New("invalid email")
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidationError lleva el mensaje localizado que se devuelve al cliente tal cual.
type ValidationError struct {
	Err     error
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%v: %s", e.Err, e.Field)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

func newValidationError(err error, field string, lang domain.Language, key messageKey) *ValidationError {
	return &ValidationError{Err: err, Field: field, Message: Message(lang, key)}
}

// ContactValidator sanitiza y valida los datos de contacto.
type ContactValidator struct {
	validate *validator.Validate
}

func NewContactValidator() *ContactValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("assessment_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return &ContactValidator{validate: v}
}

// SanitizeField quita los caracteres '<' y '>' y recorta espacios.
func SanitizeField(s string) string {
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	return strings.TrimSpace(s)
}

func SanitizeContact(c domain.ContactInfo) domain.ContactInfo {
	return domain.ContactInfo{
		FirstName:   SanitizeField(c.FirstName),
		LastName:    SanitizeField(c.LastName),
		CompanyName: SanitizeField(c.CompanyName),
		Email:       SanitizeField(c.Email),
	}
}

// Validate sanitiza el contacto y devuelve la version limpia o un *ValidationError.
func (v *ContactValidator) Validate(c domain.ContactInfo, lang domain.Language) (domain.ContactInfo, error) {
	clean := SanitizeContact(c)
	if clean.FirstName == "" || clean.LastName == "" || clean.CompanyName == "" || clean.Email == "" {
		return clean, newValidationError(ErrRequiredFields, "", lang, msgRequiredFields)
	}

	err := v.validate.Struct(clean)
	if err == nil {
		return clean, nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return clean, newValidationError(ErrInvalidData, "", lang, msgInvalidData)
	}
	switch fieldErrs[0].Field() {
	case "FirstName":
		return clean, newValidationError(ErrInvalidField, "firstName", lang, msgFirstName)
	case "LastName":
		return clean, newValidationError(ErrInvalidField, "lastName", lang, msgLastName)
	case "CompanyName":
		return clean, newValidationError(ErrInvalidField, "companyName", lang, msgCompanyName)
	case "Email":
		return clean, newValidationError(ErrInvalidEmail, "email", lang, msgInvalidEmail)
	default:
		return clean, newValidationError(ErrInvalidData, "", lang, msgInvalidData)
	}
}

// ValidateScores comprueba que cada categoria exista y que cada valor este en la escala.
// Listas mas cortas se aceptan: el motor completa con el minimo.
func ValidateScores(categories []domain.Category, scale domain.Scale, scores domain.AnswerSet, lang domain.Language) error {
	counts := make(map[string]int, len(categories))
	for _, cat := range categories {
		counts[cat.ID] = len(cat.Questions)
	}
	for id, vals := range scores {
		n, ok := counts[id]
		if !ok {
			return newValidationError(ErrInvalidData, "scores."+id, lang, msgInvalidData)
		}
		if len(vals) > n {
			return newValidationError(ErrInvalidData, "scores."+id, lang, msgInvalidData)
		}
		for _, v := range vals {
			if !scale.Contains(v) {
				return newValidationError(ErrInvalidData, "scores."+id, lang, msgInvalidData)
			}
		}
	}
	return nil
}
