// Package validation wires go-playground/validator into Echo so request
// structs can declare their rules as struct tags.
package validation

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Validator implements echo.Validator on top of go-playground/validator.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator instance for e.Validator.
func NewValidator() *Validator {
	return &Validator{
		validate: validator.New(),
	}
}

// Validate validates a struct using its validation tags. Echo calls this
// through c.Validate().
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			formatted := FormatValidationErrors(validationErrors)
			var messages []string
			for field, message := range formatted {
				messages = append(messages, fmt.Sprintf("%s: %s", field, message))
			}
			return errors.New(strings.Join(messages, "; "))
		}
		return err
	}
	return nil
}

// FormatValidationErrors converts validator errors to user-friendly
// messages keyed by lowercase field name.
func FormatValidationErrors(err error) map[string]string {
	out := make(map[string]string)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_error"] = err.Error()
		return out
	}

	for _, fieldErr := range validationErrors {
		fieldName := strings.ToLower(fieldErr.Field())

		switch fieldErr.Tag() {
		case "required":
			out[fieldName] = "is required"
		case "min":
			out[fieldName] = fmt.Sprintf("must be at least %s", fieldErr.Param())
		case "max":
			out[fieldName] = fmt.Sprintf("must be no more than %s", fieldErr.Param())
		case "gte":
			out[fieldName] = fmt.Sprintf("must be greater than or equal to %s", fieldErr.Param())
		case "lte":
			out[fieldName] = fmt.Sprintf("must be less than or equal to %s", fieldErr.Param())
		case "oneof":
			out[fieldName] = fmt.Sprintf("must be one of: %s", fieldErr.Param())
		case "datetime":
			out[fieldName] = fmt.Sprintf("must be a date in %s format", fieldErr.Param())
		case "dive":
			out[fieldName] = "contains an invalid entry"
		default:
			out[fieldName] = fmt.Sprintf("failed validation: %s", fieldErr.Tag())
		}
	}

	return out
}

// SanitizeInput trims whitespace and strips control characters from
// free-text user input. Output encoding remains the primary XSS defense.
func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)

	var builder strings.Builder
	for _, r := range input {
		if r == '\t' || r == '\n' || r == '\r' || !unicode.IsControl(r) {
			builder.WriteRune(r)
		}
	}

	return builder.String()
}

// ValidateFileUpload checks an uploaded evidence photo against the size
// limit and the accepted MIME types before it is handed to storage.
func ValidateFileUpload(header *multipart.FileHeader, maxSize int64, allowedTypes []string) error {
	if header == nil {
		return errors.New("no file provided")
	}
	if header.Size > maxSize {
		return fmt.Errorf("file size %d exceeds maximum of %d bytes", header.Size, maxSize)
	}

	contentType := header.Header.Get("Content-Type")
	for _, allowed := range allowedTypes {
		if contentType == allowed {
			return nil
		}
	}
	return fmt.Errorf("file type %q is not allowed", contentType)
}
